package position

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	positionerrors "go-hrportal/internal/position/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=position_service.go -destination=mock/position_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context, departmentID string) ([]PositionResponse, error)
	GetByID(ctx context.Context, id string) (PositionResponse, error)
	Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreatePositionRequest) (PositionResponse, error) {
	deptUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return PositionResponse{}, err
	}
	if !exists {
		return PositionResponse{}, positionerrors.ErrDepartmentNotFound
	}

	pos := &Position{
		ID:           uuid.New(),
		DepartmentID: deptUUID,
		Name:         req.Name,
		Level:        req.Level,
	}

	if err := qtx.Create(ctx, pos); err != nil {
		if isUniqueNameViolation(err) {
			return PositionResponse{}, positionerrors.ErrPositionNameTaken
		}
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*pos), nil
}

func (s *service) GetAll(ctx context.Context, departmentID string) ([]PositionResponse, error) {
	var (
		positions []Position
		err       error
	)
	if departmentID != "" {
		positions, err = s.repo.FindAllByDepartment(ctx, departmentID)
	} else {
		positions, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(positions), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PositionResponse, error) {
	pos, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}
	return mapToResponse(*pos), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePositionRequest) (PositionResponse, error) {
	deptUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PositionResponse{}, positionerrors.ErrPositionNotFound
		}
		return PositionResponse{}, err
	}

	exists, err := qtx.DepartmentExists(ctx, req.DepartmentID)
	if err != nil {
		return PositionResponse{}, err
	}
	if !exists {
		return PositionResponse{}, positionerrors.ErrDepartmentNotFound
	}

	pos.DepartmentID = deptUUID
	pos.Name = req.Name
	pos.Level = req.Level

	if err := qtx.Update(ctx, pos); err != nil {
		if isUniqueNameViolation(err) {
			return PositionResponse{}, positionerrors.ErrPositionNameTaken
		}
		return PositionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PositionResponse{}, err
	}

	return mapToResponse(*pos), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return positionerrors.ErrPositionNotFound
		}
		return err
	}

	refs, err := qtx.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return positionerrors.ErrPositionInUse
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func isUniqueNameViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName == "uq_positions_department_name"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_positions_department_name")
}

func mapToResponse(pos Position) PositionResponse {
	return PositionResponse{
		ID:           pos.ID.String(),
		DepartmentID: pos.DepartmentID.String(),
		Name:         pos.Name,
		Level:        pos.Level,
	}
}

func mapToListResponse(positions []Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res
}
