package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-hrportal/internal/events"
	leaveerrors "go-hrportal/internal/leave/errors"
	"go-hrportal/internal/leavebalance"
	leavebalanceerrors "go-hrportal/internal/leavebalance/errors"
	"go-hrportal/internal/leavetype"
	leavetypeerrors "go-hrportal/internal/leavetype/errors"
	"go-hrportal/internal/messaging/kafka"
	"go-hrportal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// EmployeeDirectory is the narrow view of the employee repository the
// lifecycle needs: the display fields denormalized onto a request.
type EmployeeDirectory interface {
	FindDisplayByID(ctx context.Context, id string) (fullName, position string, err error)
}

// Config toggles the optional creation-time balance check. The
// non-positive-duration check is always enforced.
type Config struct {
	CheckBalanceOnSubmit bool
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, employeeID string, canReadAll bool) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	UpdateReason(ctx context.Context, actorID, id string, req UpdateLeaveReasonRequest) (LeaveResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	types     leavetype.Repository
	balances  leavebalance.Repository
	employees EmployeeDirectory
	outbox    kafka.OutboxRepository
	cfg       Config
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	balances leavebalance.Repository,
	employees EmployeeDirectory,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, types, balances, employees, nil, cfg, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	types leavetype.Repository,
	balances leavebalance.Repository,
	employees EmployeeDirectory,
	outboxRepo kafka.OutboxRepository,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		types:     types,
		balances:  balances,
		employees: employees,
		outbox:    outboxRepo,
		cfg:       cfg,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	typeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	totalDays := CountDays(startDate, endDate)
	if totalDays <= 0 {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := s.types.WithTx(tx).FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveResponse{}, err
	}

	fullName, position, err := s.employees.FindDisplayByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("submit leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		s.logger.Warn("submit leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	if s.cfg.CheckBalanceOnSubmit {
		bal, err := s.balances.WithTx(tx).FindForUpdate(ctx, req.EmployeeID, req.LeaveTypeID, startDate.Year())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return LeaveResponse{}, leavebalanceerrors.ErrBalanceNotProvisioned
			}
			return LeaveResponse{}, err
		}
		if bal.DaysUsed+totalDays > bal.TotalEntitlement {
			return LeaveResponse{}, leavebalanceerrors.ErrInsufficientBalance
		}
	}

	l := &Leave{
		ID:               uuid.New(),
		EmployeeID:       employeeUUID,
		EmployeeName:     fullName,
		EmployeePosition: position,
		LeaveTypeID:      typeUUID,
		LeaveTypeName:    lt.Name,
		StartDate:        startDate,
		EndDate:          endDate,
		TotalDays:        totalDays,
		Reason:           req.Reason,
		Status:           StatusPending,
		AppliedDate:      atMidnightUTC(time.Now().UTC()),
		CreatedBy:        createdByUUID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", totalDays),
	)

	s.emitLifecycleEvent(ctx, events.LeaveSubmitted, l, actorID, nil)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string, canReadAll bool) ([]LeaveResponse, error) {
	var (
		leaves []Leave
		err    error
	)
	if canReadAll {
		leaves, err = s.repo.FindAll(ctx)
	} else {
		leaves, err = s.repo.FindAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

// UpdateReason edits free text on a pending request. It is deliberately
// not a status transition: no balance adjustment can happen here.
func (s *service) UpdateReason(ctx context.Context, actorID, id string, req UpdateLeaveReasonRequest) (LeaveResponse, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !isAllowedStatusTransition(l.Status, l.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Reason = req.Reason

	if err := qtx.Update(ctx, l); err != nil {
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return LeaveResponse{}, err
	}

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actorID, id, rejectionReason string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusRejected, &rejectionReason)
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, actorID, id, StatusCancelled, nil)
}

// transitionLeaveStatus is the single write path for both a request's
// status and its balance row. Steps: lock the request row and validate
// the transition against its committed status, lock+adjust the balance
// when the transition debits or credits, persist the status. Everything
// runs inside one transaction, so a failure at any step leaves both rows
// untouched and concurrent transitions on the same request serialize on
// the row lock instead of each debiting the balance.
func (s *service) transitionLeaveStatus(ctx context.Context, actorID, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	// Day count is recomputed from the stored dates, never read back from
	// the cached total_days column.
	adjustment := adjustmentDays(l.Status, targetStatus, CountDays(l.StartDate, l.EndDate))
	if adjustment != 0 {
		if err := s.applyBalanceAdjustment(ctx, tx, l, adjustment); err != nil {
			return LeaveResponse{}, err
		}
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		l.ApprovedBy = &actorUUID
		now := time.Now().UTC()
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		if rejectionReason == nil || *rejectionReason == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
		}
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	default:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = nil
	}

	if err := qtx.UpdateStatus(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
		zap.Int("balance_adjustment", adjustment),
	)

	switch targetStatus {
	case StatusApproved:
		s.emitLifecycleEvent(ctx, events.LeaveApproved, l, actorID, nil)
	case StatusRejected:
		s.emitLifecycleEvent(ctx, events.LeaveRejected, l, actorID, rejectionReason)
	case StatusCancelled:
		s.emitLifecycleEvent(ctx, events.LeaveCancelled, l, actorID, nil)
	}

	return mapToResponse(*l), nil
}

// adjustmentDays maps a status transition to its balance effect:
// entering APPROVED debits the full day count, leaving APPROVED credits
// it back, everything else leaves the balance alone.
func adjustmentDays(current, target string, days int) int {
	if target == StatusApproved && current != StatusApproved {
		return days
	}
	if current == StatusApproved && (target == StatusRejected || target == StatusCancelled) {
		return -days
	}
	return 0
}

// applyBalanceAdjustment applies the debit or credit for a status
// transition on the transaction: resolve the type, lock the unique
// balance row for the request's start-date year, refuse debits past the
// entitlement, clamp credits at zero.
func (s *service) applyBalanceAdjustment(ctx context.Context, tx *sql.Tx, l *Leave, adjustment int) error {
	if _, err := s.types.WithTx(tx).FindByID(ctx, l.LeaveTypeID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	year := l.StartDate.Year()
	qtx := s.balances.WithTx(tx)

	bal, err := qtx.FindForUpdate(ctx, l.EmployeeID.String(), l.LeaveTypeID.String(), year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("transition leave balance row missing",
				zap.String("leave_id", l.ID.String()),
				zap.String("employee_id", l.EmployeeID.String()),
				zap.Int("year", year),
			)
			return leavebalanceerrors.ErrBalanceNotProvisioned
		}
		return err
	}

	newUsed := bal.DaysUsed + adjustment
	if adjustment > 0 && newUsed > bal.TotalEntitlement {
		s.logger.Warn("transition leave insufficient balance",
			zap.String("leave_id", l.ID.String()),
			zap.Int("days_used", bal.DaysUsed),
			zap.Int("requested", adjustment),
			zap.Int("total_entitlement", bal.TotalEntitlement),
		)
		return leavebalanceerrors.ErrInsufficientBalance
	}
	if newUsed < 0 {
		newUsed = 0
	}

	return qtx.UpdateDaysUsed(ctx, bal.ID.String(), newUsed)
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		// Reason edits on a pending request re-persist the same status.
		return currentStatus == StatusPending
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved || targetStatus == StatusRejected || targetStatus == StatusCancelled
	case StatusApproved:
		return targetStatus == StatusRejected || targetStatus == StatusCancelled
	case StatusRejected:
		return targetStatus == StatusApproved
	default:
		return false
	}
}

// emitLifecycleEvent queues a notification event after the primary
// operation has committed. Best-effort: a failure here is logged and
// never surfaces to the caller.
func (s *service) emitLifecycleEvent(ctx context.Context, eventType string, l *Leave, actorID string, rejectionReason *string) {
	if s.outbox == nil {
		return
	}

	event := events.LeaveLifecycleEvent{
		EventType:     eventType,
		RequestID:     contextutil.GetRequestID(ctx),
		LeaveID:       l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  l.EmployeeName,
		LeaveTypeName: l.LeaveTypeName,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		TotalDays:     l.TotalDays,
		ActorID:       actorID,
		OccurredAt:    time.Now().UTC(),
	}
	if rejectionReason != nil {
		event.RejectionReason = *rejectionReason
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave lifecycle event failed", zap.Error(err))
		return
	}

	if err := s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue leave lifecycle event failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:               l.ID.String(),
		EmployeeID:       l.EmployeeID.String(),
		EmployeeName:     l.EmployeeName,
		EmployeePosition: l.EmployeePosition,
		LeaveTypeID:      l.LeaveTypeID.String(),
		LeaveTypeName:    l.LeaveTypeName,
		StartDate:        l.StartDate.Format(dateLayout),
		EndDate:          l.EndDate.Format(dateLayout),
		TotalDays:        l.TotalDays,
		Reason:           l.Reason,
		Status:           l.Status,
		AppliedDate:      l.AppliedDate.Format(dateLayout),
		CreatedBy:        l.CreatedBy.String(),
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	resp.RejectionReason = l.RejectionReason
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
