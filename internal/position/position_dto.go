package position

type CreatePositionRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Level        int    `json:"level" binding:"omitempty,gte=0"`
}

type UpdatePositionRequest struct {
	DepartmentID string `json:"department_id" binding:"required,uuid"`
	Name         string `json:"name" binding:"required"`
	Level        int    `json:"level" binding:"omitempty,gte=0"`
}

type PositionResponse struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	Name         string `json:"name"`
	Level        int    `json:"level"`
}
