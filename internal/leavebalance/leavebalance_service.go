package leavebalance

import (
	"context"
	"database/sql"
	"strings"
	"time"

	leavebalanceerrors "go-hrportal/internal/leavebalance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceView, error)
	Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceView, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceView, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidEmployeeID
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	if year < 1900 || year > 9999 {
		return nil, leavebalanceerrors.ErrInvalidYear
	}

	return s.repo.FindByEmployeeAndYear(ctx, employeeID, year)
}

// Provision creates the unique balance row for an employee/type/year.
// The accounting path never auto-creates balances, so this (plus the
// employee-created consumer) is the only way rows come into existence.
func (s *service) Provision(ctx context.Context, req ProvisionBalanceRequest) (BalanceView, error) {
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return BalanceView{}, leavebalanceerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return BalanceView{}, leavebalanceerrors.ErrInvalidLeaveTypeID
	}
	if req.Year < 1900 || req.Year > 9999 {
		return BalanceView{}, leavebalanceerrors.ErrInvalidYear
	}
	if req.TotalEntitlement < 0 {
		return BalanceView{}, leavebalanceerrors.ErrInvalidEntitlement
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("provision balance begin tx failed", zap.Error(err))
		return BalanceView{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &LeaveBalance{
		ID:               uuid.New(),
		EmployeeID:       employeeUUID,
		LeaveTypeID:      typeUUID,
		Year:             req.Year,
		TotalEntitlement: req.TotalEntitlement,
		DaysUsed:         0,
	}

	if err := qtx.Create(ctx, b); err != nil {
		if isUniqueBalanceViolation(err) {
			return BalanceView{}, leavebalanceerrors.ErrBalanceAlreadyExists
		}
		s.logger.Error("provision balance persist failed", zap.Error(err))
		return BalanceView{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("provision balance commit failed", zap.Error(err))
		return BalanceView{}, err
	}

	s.logger.Info("provision balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("year", req.Year),
	)

	return BalanceView{
		ID:               b.ID.String(),
		EmployeeID:       b.EmployeeID.String(),
		LeaveTypeID:      b.LeaveTypeID.String(),
		Year:             b.Year,
		TotalEntitlement: b.TotalEntitlement,
		DaysUsed:         b.DaysUsed,
		Remaining:        b.TotalEntitlement,
	}, nil
}

func isUniqueBalanceViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_leave_balances_employee_type_year")
}
