package events

import "time"

const AppointmentScheduledTopic = "hr.appointment.lifecycle.v1"

type AppointmentScheduledEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	AppointmentID string    `json:"appointment_id"`
	EmployeeID    string    `json:"employee_id"`
	OrganizerID   string    `json:"organizer_id"`
	Title         string    `json:"title"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}
