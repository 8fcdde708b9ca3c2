package leavetype

type CreateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DefaultDays int    `json:"default_days" binding:"gte=0"`
}

type UpdateLeaveTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DefaultDays int    `json:"default_days" binding:"gte=0"`
}

type LeaveTypeResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DefaultDays int    `json:"default_days"`
}
