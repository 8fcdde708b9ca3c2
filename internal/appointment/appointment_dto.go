package appointment

type CreateAppointmentRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Title      string `json:"title" binding:"required"`
	Notes      string `json:"notes"`
	Location   string `json:"location"`
	StartsAt   string `json:"starts_at" binding:"required"`
	EndsAt     string `json:"ends_at" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Title    string `json:"title" binding:"required"`
	Notes    string `json:"notes"`
	Location string `json:"location"`
	StartsAt string `json:"starts_at" binding:"required"`
	EndsAt   string `json:"ends_at" binding:"required"`
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	OrganizerID string `json:"organizer_id"`
	Title       string `json:"title"`
	Notes       string `json:"notes,omitempty"`
	Location    string `json:"location,omitempty"`
	StartsAt    string `json:"starts_at"`
	EndsAt      string `json:"ends_at"`
	Status      string `json:"status"`
}
