package leavebalance

import (
	"context"
	"database/sql"
	"errors"

	"go-hrportal/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type balanceRow struct {
	LeaveBalance
	LeaveTypeName string
}

//go:generate mockgen -source=leavebalance_repo.go -destination=mock/leavebalance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, b *LeaveBalance) error
	FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]BalanceView, error)
	FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	UpdateDaysUsed(ctx context.Context, id string, daysUsed int) error
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

func (r *repository) Create(ctx context.Context, b *LeaveBalance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]BalanceView, error) {
	var rows []balanceRow
	err := r.db.WithContext(ctx).
		Table("leave_balances").
		Select("leave_balances.*, leave_types.name AS leave_type_name").
		Joins("JOIN leave_types ON leave_types.id = leave_balances.leave_type_id").
		Scopes(scope.ByEmployee(employeeID), scope.ByYear(year)).
		Order("leave_types.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]BalanceView, len(rows))
	for i, row := range rows {
		views[i] = BalanceView{
			ID:               row.ID.String(),
			EmployeeID:       row.EmployeeID.String(),
			LeaveTypeID:      row.LeaveTypeID.String(),
			LeaveTypeName:    row.LeaveTypeName,
			Year:             row.Year,
			TotalEntitlement: row.TotalEntitlement,
			DaysUsed:         row.DaysUsed,
			Remaining:        row.TotalEntitlement - row.DaysUsed,
		}
	}
	return views, nil
}

// FindForUpdate locks the unique balance row on the surrounding
// transaction's connection, so concurrent transitions on the same row
// serialize on the row lock. Raw SQL through the tx handle, mirroring the
// outbox repository: a FOR UPDATE issued on the pool would lock on the
// wrong connection.
func (r *repository) FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	query := `
SELECT id, employee_id, leave_type_id, year, total_entitlement, days_used
FROM leave_balances
WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
FOR UPDATE
`

	var (
		b                 LeaveBalance
		id, empID, typeID string
	)
	err := r.querier().QueryRowContext(ctx, query, employeeID, leaveTypeID, year).Scan(
		&id, &empID, &typeID, &b.Year, &b.TotalEntitlement, &b.DaysUsed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, err
	}

	b.ID = uuid.MustParse(id)
	b.EmployeeID = uuid.MustParse(empID)
	b.LeaveTypeID = uuid.MustParse(typeID)
	return &b, nil
}

// UpdateDaysUsed applies the adjustment as a single update keyed by the
// balance row's id, on the transaction when one is active.
func (r *repository) UpdateDaysUsed(ctx context.Context, id string, daysUsed int) error {
	query := `
UPDATE leave_balances
SET days_used = $2, updated_at = NOW()
WHERE id = $1
`
	_, err := r.execer().ExecContext(ctx, query, id, daysUsed)
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
