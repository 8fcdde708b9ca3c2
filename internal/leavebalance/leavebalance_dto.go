package leavebalance

type ProvisionBalanceRequest struct {
	EmployeeID       string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID      string `json:"leave_type_id" binding:"required,uuid"`
	Year             int    `json:"year" binding:"required"`
	TotalEntitlement int    `json:"total_entitlement" binding:"gte=0"`
}

// BalanceView is a balance row joined with its leave type name for display.
type BalanceView struct {
	ID               string `json:"id"`
	EmployeeID       string `json:"employee_id"`
	LeaveTypeID      string `json:"leave_type_id"`
	LeaveTypeName    string `json:"leave_type_name"`
	Year             int    `json:"year"`
	TotalEntitlement int    `json:"total_entitlement"`
	DaysUsed         int    `json:"days_used"`
	Remaining        int    `json:"remaining"`
}
