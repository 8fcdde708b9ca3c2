package leave

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Leave is one leave request. LeaveTypeID is the authoritative reference
// into the leave type registry; the name and the employee's name/position
// are denormalized copies kept for historical display only and are never
// used for lookups.
type Leave struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`

	EmployeeName     string `gorm:"type:varchar(255);not null"`
	EmployeePosition string `gorm:"type:varchar(255)"`

	LeaveTypeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	LeaveTypeName string    `gorm:"type:varchar(100);not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	TotalDays int       `gorm:"type:int;not null;default:1"`
	Reason    string    `gorm:"type:text"`

	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leaves_status"`
	AppliedDate     time.Time  `gorm:"type:date;not null"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	RejectionReason *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ApprovedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}
