package employee

type CreateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	PositionID       string `json:"position_id" binding:"required,uuid"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE PROBATION CONTRACT TERMINATED"`
}

type UpdateEmployeeRequest struct {
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	PositionID       string `json:"position_id" binding:"required,uuid"`
	EmployeeNumber   string `json:"employee_number"`
	Phone            string `json:"phone"`
	HireDate         string `json:"hire_date" binding:"required"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE PROBATION CONTRACT TERMINATED"`
}

type EmployeeDepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeePositionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployeeResponse struct {
	ID               string                      `json:"id"`
	FullName         string                      `json:"full_name"`
	Email            string                      `json:"email"`
	EmployeeNumber   string                      `json:"employee_number"`
	Phone            string                      `json:"phone,omitempty"`
	HireDate         string                      `json:"hire_date"`
	EmploymentStatus string                      `json:"employment_status"`
	DepartmentID     string                      `json:"department_id,omitempty"`
	PositionID       string                      `json:"position_id,omitempty"`
	Department       *EmployeeDepartmentResponse `json:"department,omitempty"`
	Position         *EmployeePositionResponse   `json:"position,omitempty"`
}
