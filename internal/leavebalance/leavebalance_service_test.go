package leavebalance_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-hrportal/internal/leavebalance"
	leavebalanceerrors "go-hrportal/internal/leavebalance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	createFn                func(ctx context.Context, b *leavebalance.LeaveBalance) error
	findByEmployeeAndYearFn func(ctx context.Context, employeeID string, year int) ([]leavebalance.BalanceView, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository { return f }

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) FindByEmployeeAndYear(ctx context.Context, employeeID string, year int) ([]leavebalance.BalanceView, error) {
	if f.findByEmployeeAndYearFn != nil {
		return f.findByEmployeeAndYearFn(ctx, employeeID, year)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) FindForUpdate(ctx context.Context, employeeID, leaveTypeID string, year int) (*leavebalance.LeaveBalance, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) UpdateDaysUsed(ctx context.Context, id string, daysUsed int) error {
	return nil
}

func setupBalanceServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeBalanceRepository, leavebalance.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	svc := leavebalance.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestLeaveBalanceService_Provision(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupBalanceServiceTest(t)
		defer db.Close()

		employeeID := uuid.New().String()
		leaveTypeID := uuid.New().String()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, employeeID, b.EmployeeID.String())
			assert.Equal(t, leaveTypeID, b.LeaveTypeID.String())
			assert.Equal(t, 2026, b.Year)
			assert.Equal(t, 12, b.TotalEntitlement)
			assert.Equal(t, 0, b.DaysUsed)
			return nil
		}

		view, err := svc.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       employeeID,
			LeaveTypeID:      leaveTypeID,
			Year:             2026,
			TotalEntitlement: 12,
		})

		assert.NoError(t, err)
		assert.Equal(t, 12, view.Remaining)
		assert.Equal(t, 0, view.DaysUsed)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate row", func(t *testing.T) {
		db, sqlMock, repo, svc := setupBalanceServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			return errors.New(`ERROR: duplicate key value violates unique constraint "uq_leave_balances_employee_type_year" (SQLSTATE 23505)`)
		}

		_, err := svc.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       uuid.New().String(),
			LeaveTypeID:      uuid.New().String(),
			Year:             2026,
			TotalEntitlement: 12,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceAlreadyExists)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed leave type id", func(t *testing.T) {
		db, _, _, svc := setupBalanceServiceTest(t)
		defer db.Close()

		_, err := svc.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       uuid.New().String(),
			LeaveTypeID:      "not-a-uuid",
			Year:             2026,
			TotalEntitlement: 12,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidLeaveTypeID)
	})

	t.Run("negative entitlement", func(t *testing.T) {
		db, _, _, svc := setupBalanceServiceTest(t)
		defer db.Close()

		_, err := svc.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       uuid.New().String(),
			LeaveTypeID:      uuid.New().String(),
			Year:             2026,
			TotalEntitlement: -1,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidEntitlement)
	})

	t.Run("implausible year", func(t *testing.T) {
		db, _, _, svc := setupBalanceServiceTest(t)
		defer db.Close()

		_, err := svc.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       uuid.New().String(),
			LeaveTypeID:      uuid.New().String(),
			Year:             190,
			TotalEntitlement: 12,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidYear)
	})
}

func TestLeaveBalanceService_GetBalances(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to the current year", func(t *testing.T) {
		db, _, repo, svc := setupBalanceServiceTest(t)
		defer db.Close()

		var queriedYear int
		repo.findByEmployeeAndYearFn = func(ctx context.Context, employeeID string, year int) ([]leavebalance.BalanceView, error) {
			queriedYear = year
			return nil, nil
		}

		_, err := svc.GetBalances(ctx, uuid.New().String(), 0)

		assert.NoError(t, err)
		assert.Equal(t, time.Now().UTC().Year(), queriedYear)
	})

	t.Run("invalid employee id", func(t *testing.T) {
		db, _, _, svc := setupBalanceServiceTest(t)
		defer db.Close()

		_, err := svc.GetBalances(ctx, "not-a-uuid", 2026)

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidEmployeeID)
	})
}
