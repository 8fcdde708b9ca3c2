package position

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Position struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DepartmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_positions_department_name"`
	Name         string    `gorm:"size:255;not null;uniqueIndex:uq_positions_department_name"`
	Level        int
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
