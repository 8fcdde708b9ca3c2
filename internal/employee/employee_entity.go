package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	DepartmentID     *uuid.UUID `gorm:"type:uuid"`
	PositionID       *uuid.UUID `gorm:"type:uuid"`
	FullName         string
	Email            string `gorm:"uniqueIndex:uq_employee_email"`
	EmployeeNumber   string `gorm:"uniqueIndex:uq_employee_number"`
	Phone            string
	HireDate         time.Time
	EmploymentStatus string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Department *Department `gorm:"foreignKey:DepartmentID"`
	Position   *Position   `gorm:"foreignKey:PositionID"`
}

// Department and Position mirror the master-data tables for preloads;
// the owning structs live in their own packages.
type Department struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

type Position struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string
}

func (Department) TableName() string { return "departments" }
func (Position) TableName() string   { return "positions" }
