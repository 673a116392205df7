package leave

import "time"

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// LeaveRecord is an employee's request for time off. Approved leave is
// presentation context alongside the attendance calendar; it does not
// change how day records are synthesized.
type LeaveRecord struct {
	ID        string
	UserID    string
	StartDate time.Time
	EndDate   time.Time
	Reason    string
	Status    LeaveStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
