package analytics

type LeaveSummaryRow struct {
	LeaveTypeID   string `json:"leave_type_id"`
	LeaveTypeName string `json:"leave_type_name"`
	Status        string `json:"status"`
	Requests      int64  `json:"requests"`
	TotalDays     int64  `json:"total_days"`
}

type LeaveSummaryResponse struct {
	Year  int               `json:"year"`
	Rows  []LeaveSummaryRow `json:"rows"`
	Total int64             `json:"total_requests"`
}

type HeadcountRow struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Employees      int64  `json:"employees"`
}

type HeadcountResponse struct {
	Rows  []HeadcountRow `json:"rows"`
	Total int64          `json:"total_employees"`
}
