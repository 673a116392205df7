package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/silabu/attendance-backend-go/internal/domain/attendance"
	"github.com/silabu/attendance-backend-go/internal/domain/employee"
	"github.com/silabu/attendance-backend-go/internal/domain/office"
)

// AttendanceJobs reports on the previous day's attendance. Absence is
// derived, never stored, so the job only writes to the log.
type AttendanceJobs struct {
	eventRepo    attendance.EventRepository
	employeeRepo employee.EmployeeRepository
	officeRepo   office.OfficeRepository
}

func NewAttendanceJobs(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
	officeRepo office.OfficeRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		eventRepo:    eventRepo,
		employeeRepo: employeeRepo,
		officeRepo:   officeRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_daily_absentees", 1*time.Hour, j.ReportDailyAbsentees)
}

// ReportDailyAbsentees logs every employee who had no check-in on the
// previous local working day.
func (j *AttendanceJobs) ReportDailyAbsentees(ctx context.Context) error {
	off, err := j.officeRepo.GetPrimary(ctx)
	if err != nil {
		// Nothing to report until an office exists.
		return nil
	}

	loc := off.Location()

	// Only run during the first local hour of the day.
	if time.Now().In(loc).Hour() != 0 {
		return nil
	}

	yesterday := time.Now().In(loc).AddDate(0, 0, -1)
	if _, working := off.HoursFor(yesterday.Weekday()); !working {
		return nil
	}
	if off.IsHoliday(yesterday.Month(), yesterday.Day()) {
		return nil
	}

	dayStart := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 0, 0, 0, 0, loc).UTC()
	dayEnd := dayStart.Add(24 * time.Hour)

	events, err := j.eventRepo.ListBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return fmt.Errorf("failed to list yesterday's events: %w", err)
	}

	checkedIn := make(map[string]bool)
	for _, ev := range events {
		if ev.Kind == attendance.KindCheckIn {
			checkedIn[ev.UserID] = true
		}
	}

	employees, err := j.employeeRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	absent := 0
	for _, emp := range employees {
		if !checkedIn[emp.ID] {
			slog.Info("Cron: Employee absent yesterday",
				"employee_id", emp.ID,
				"full_name", emp.FullName,
				"date", yesterday.Format("2006-01-02"))
			absent++
		}
	}

	slog.Info("Cron: Daily absentee report complete",
		"date", yesterday.Format("2006-01-02"),
		"absent_count", absent,
		"employee_count", len(employees))
	return nil
}
