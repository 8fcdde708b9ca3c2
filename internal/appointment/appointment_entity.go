package appointment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

type Appointment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;index"`
	OrganizerID uuid.UUID `gorm:"type:uuid"`
	Title       string    `gorm:"size:255;not null"`
	Notes       string
	Location    string
	StartsAt    time.Time
	EndsAt      time.Time
	Status      string `gorm:"size:20;default:SCHEDULED"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
