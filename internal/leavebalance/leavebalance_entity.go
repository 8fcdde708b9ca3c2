package leavebalance

import (
	"time"

	"github.com/google/uuid"
)

// LeaveBalance is one employee's entitlement for one leave type in one
// year. DaysUsed is written only by the leave accounting transaction.
type LeaveBalance struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_leave_balances_employee_type_year"`
	Year        int       `gorm:"type:int;not null;uniqueIndex:uq_leave_balances_employee_type_year"`

	TotalEntitlement int `gorm:"type:int;not null;default:0"`
	DaysUsed         int `gorm:"type:int;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
