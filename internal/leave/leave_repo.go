package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-hrportal/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindAll(ctx context.Context) ([]Leave, error)
	FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	FindForUpdate(ctx context.Context, id string) (*Leave, error)
	Update(ctx context.Context, l *Leave) error
	UpdateStatus(ctx context.Context, l *Leave) error
	HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(scope.ByEmployee(employeeID)).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

// FindForUpdate loads a request and locks its row on the surrounding
// transaction's connection, so concurrent transitions on the same request
// serialize and each sees the status the previous one committed. Raw SQL
// through the tx handle, same shape as the balance repository's locked read.
func (r *repository) FindForUpdate(ctx context.Context, id string) (*Leave, error) {
	query := `
SELECT id, employee_id, employee_name, employee_position, leave_type_id, leave_type_name,
	start_date, end_date, total_days, reason, status, applied_date, created_by,
	approved_by, approved_at, rejection_reason
FROM leaves
WHERE id = $1 AND deleted_at IS NULL
FOR UPDATE
`

	var (
		l                               Leave
		rowID, empID, typeID, createdBy string
		approvedBy                      sql.NullString
		approvedAt                      sql.NullTime
		rejectionReason                 sql.NullString
	)
	err := r.querier().QueryRowContext(ctx, query, id).Scan(
		&rowID, &empID, &l.EmployeeName, &l.EmployeePosition, &typeID, &l.LeaveTypeName,
		&l.StartDate, &l.EndDate, &l.TotalDays, &l.Reason, &l.Status, &l.AppliedDate, &createdBy,
		&approvedBy, &approvedAt, &rejectionReason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	l.ID = uuid.MustParse(rowID)
	l.EmployeeID = uuid.MustParse(empID)
	l.LeaveTypeID = uuid.MustParse(typeID)
	l.CreatedBy = uuid.MustParse(createdBy)
	if approvedBy.Valid {
		u := uuid.MustParse(approvedBy.String)
		l.ApprovedBy = &u
	}
	if approvedAt.Valid {
		at := approvedAt.Time
		l.ApprovedAt = &at
	}
	if rejectionReason.Valid {
		reason := rejectionReason.String
		l.RejectionReason = &reason
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Save(l).Error
}

// UpdateStatus persists the status fields on the transaction when one is
// active, so the accounting adjustment and the status change commit or
// roll back together. Raw SQL through the tx handle, same shape as the
// outbox repository.
func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	query := `
UPDATE leaves
SET status = $2,
	approved_by = $3,
	approved_at = $4,
	rejection_reason = $5,
	reason = $6,
	updated_at = NOW()
WHERE id = $1
`

	var approvedBy any
	if l.ApprovedBy != nil {
		approvedBy = l.ApprovedBy.String()
	}

	_, err := r.execer().ExecContext(ctx, query,
		l.ID.String(), l.Status, approvedBy, l.ApprovedAt, l.RejectionReason, l.Reason,
	)
	return err
}

func (r *repository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB()
}

func (r *repository) querier() interface {
	QueryRowContext(context.Context, string, ...any) *sql.Row
} {
	if r.tx != nil {
		return r.tx
	}
	return r.sqlDB()
}

func (r *repository) sqlDB() *sql.DB {
	db, err := r.db.DB()
	if err != nil {
		panic(err)
	}
	return db
}

// HasOverlappingPeriod reports whether the employee already has a
// non-cancelled, non-rejected request touching [startDate, endDate].
func (r *repository) HasOverlappingPeriod(ctx context.Context, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(scope.ByEmployee(employeeID)).
		Where("status NOT IN ?", []string{StatusCancelled, StatusRejected}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
