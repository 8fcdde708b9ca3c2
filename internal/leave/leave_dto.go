package leave

type CreateLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type UpdateLeaveReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required"`
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	EmployeePosition string  `json:"employee_position,omitempty"`
	LeaveTypeID      string  `json:"leave_type_id"`
	LeaveTypeName    string  `json:"leave_type_name"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	TotalDays        int     `json:"total_days"`
	Reason           string  `json:"reason"`
	Status           string  `json:"status"`
	AppliedDate      string  `json:"applied_date"`
	CreatedBy        string  `json:"created_by"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
}
