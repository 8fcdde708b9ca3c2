package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave_submitted"
	LeaveApproved  = "leave_approved"
	LeaveRejected  = "leave_rejected"
	LeaveCancelled = "leave_cancelled"
)

// LeaveLifecycleEvent is emitted on submission and on every status
// transition. The notification consumer turns these into inbox rows;
// emission is best-effort and never blocks the accounting path.
type LeaveLifecycleEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	LeaveID         string    `json:"leave_id"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name,omitempty"`
	LeaveTypeName   string    `json:"leave_type_name"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	TotalDays       int       `json:"total_days"`
	ActorID         string    `json:"actor_id,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
