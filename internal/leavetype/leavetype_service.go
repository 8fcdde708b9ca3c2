package leavetype

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	leavetypeerrors "go-hrportal/internal/leavetype/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_service.go -destination=mock/leavetype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	GetByID(ctx context.Context, id string) (LeaveTypeResponse, error)
	GetByName(ctx context.Context, name string) (LeaveTypeResponse, error)
	Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if req.DefaultDays < 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidDefaultDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave type begin tx failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt := &LeaveType{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DefaultDays: req.DefaultDays,
	}

	if err := qtx.Create(ctx, lt); err != nil {
		if isUniqueNameViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameTaken
		}
		s.logger.Error("create leave type persist failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave type commit failed", zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.logger.Info("create leave type success",
		zap.String("leave_type_id", lt.ID.String()),
		zap.String("name", lt.Name),
	)
	return mapToResponse(*lt), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) GetByName(ctx context.Context, name string) (LeaveTypeResponse, error) {
	lt, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}
	return mapToResponse(*lt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateLeaveTypeRequest) (LeaveTypeResponse, error) {
	if req.DefaultDays < 0 {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidDefaultDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return LeaveTypeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeResponse{}, err
	}

	lt.Name = strings.TrimSpace(req.Name)
	lt.Description = req.Description
	lt.DefaultDays = req.DefaultDays

	if err := qtx.Update(ctx, lt); err != nil {
		if isUniqueNameViolation(err) {
			return LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNameTaken
		}
		s.logger.Error("update leave type persist failed",
			zap.String("leave_type_id", id),
			zap.Error(err),
		)
		return LeaveTypeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return LeaveTypeResponse{}, err
	}

	return mapToResponse(*lt), nil
}

// Delete refuses to remove a type that is still referenced by leave
// requests or balance rows.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	refs, err := qtx.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		s.logger.Warn("delete leave type refused, still referenced",
			zap.String("leave_type_id", id),
			zap.Int64("references", refs),
		)
		return leavetypeerrors.ErrLeaveTypeInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete leave type success", zap.String("leave_type_id", id))
	return nil
}

func isUniqueNameViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_leave_types_name")
}

func mapToResponse(lt LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:          lt.ID.String(),
		Name:        lt.Name,
		Description: lt.Description,
		DefaultDays: lt.DefaultDays,
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, lt := range types {
		resp[i] = mapToResponse(lt)
	}
	return resp
}
