package events

import "time"

const EmployeeCreatedTopic = "hr.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	HireDate   string    `json:"hire_date"`
	OccurredAt time.Time `json:"occurred_at"`
}
