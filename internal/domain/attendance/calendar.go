package attendance

import (
	"sort"
	"time"

	"github.com/silabu/attendance-backend-go/internal/domain/office"
)

// BuildMonth synthesizes one DayRecord per working day of the given
// month under the office's policy, most recent day first. Non-working
// days and holidays are omitted entirely rather than marked absent.
//
// The result is a pure function of the event log and the office policy:
// it holds no state of its own and rebuilding it with the same inputs
// yields the same output.
func BuildMonth(year int, month time.Month, off office.Office, events []Event, graceMinutes int) []DayRecord {
	loc := off.Location()

	// Partition events by local civil date.
	byDate := make(map[string][]Event)
	for _, ev := range events {
		key := ev.Timestamp.In(loc).Format("2006-01-02")
		byDate[key] = append(byDate[key], ev)
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	records := make([]DayRecord, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, loc)

		hours, working := off.HoursFor(date.Weekday())
		if !working || off.IsHoliday(month, d) {
			continue
		}

		dayEvents := byDate[date.Format("2006-01-02")]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].Timestamp.Before(dayEvents[j].Timestamp)
		})

		checkIn := firstOfKind(dayEvents, KindCheckIn)
		checkOut := firstOfKind(dayEvents, KindCheckOut)

		status := StatusAbsent
		if checkIn != nil {
			if checkIn.Status != nil {
				// Prefer the status recorded at check-in time.
				status = *checkIn.Status
			} else {
				status = ClassifyPunctuality(checkIn.Timestamp, hours.Start, graceMinutes, loc)
			}
		}

		var hoursWorked *float64
		if checkIn != nil && checkOut != nil {
			// Not clamped: a negative value is a data-quality problem
			// the caller should see, not hide.
			h := checkOut.Timestamp.Sub(checkIn.Timestamp).Hours()
			hoursWorked = &h
		}

		records = append(records, DayRecord{
			Date:        date,
			Events:      dayEvents,
			Status:      status,
			HoursWorked: hoursWorked,
		})
	}

	// Most recent first, for display.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	return records
}

func firstOfKind(events []Event, kind Kind) *Event {
	for i := range events {
		if events[i].Kind == kind {
			return &events[i]
		}
	}
	return nil
}
