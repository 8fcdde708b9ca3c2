package appointment

import (
	"context"
	"database/sql"
	"time"

	"go-hrportal/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=appointment_repo.go -destination=mock/appointment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, appt *Appointment) error
	FindAll(ctx context.Context) ([]Appointment, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Appointment, error)
	FindByID(ctx context.Context, id string) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	HasOverlappingSlot(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, appt *Appointment) error {
	return r.db.WithContext(ctx).Create(appt).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Appointment, error) {
	var appts []Appointment
	err := r.db.WithContext(ctx).
		Order("starts_at DESC").
		Find(&appts).Error
	return appts, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Appointment, error) {
	var appts []Appointment
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("starts_at DESC").
		Find(&appts).Error
	return appts, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Appointment, error) {
	var appt Appointment
	err := r.db.WithContext(ctx).First(&appt, "id = ?", id).Error
	return &appt, err
}

func (r *repository) Update(ctx context.Context, appt *Appointment) error {
	return r.db.WithContext(ctx).Save(appt).Error
}

// HasOverlappingSlot reports whether the employee already has a
// SCHEDULED appointment touching [startsAt, endsAt). Half-open: two
// slots that only share an endpoint do not overlap.
func (r *repository) HasOverlappingSlot(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Appointment{}).
		Scopes(scope.ByEmployee(employeeID)).
		Where("status = ?", StatusScheduled).
		Where("starts_at < ? AND ends_at > ?", endsAt, startsAt)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
