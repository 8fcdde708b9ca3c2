package appointment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	appointmenterrors "go-hrportal/internal/appointment/errors"
	"go-hrportal/internal/events"
	"go-hrportal/internal/messaging/kafka"
	"go-hrportal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=appointment_service.go -destination=mock/appointment_service_mock.go -package=mock
type Service interface {
	Schedule(ctx context.Context, organizerID string, req CreateAppointmentRequest) (AppointmentResponse, error)
	GetAll(ctx context.Context, employeeID string, canReadAll bool) ([]AppointmentResponse, error)
	GetByID(ctx context.Context, id string) (AppointmentResponse, error)
	Update(ctx context.Context, id string, req UpdateAppointmentRequest) (AppointmentResponse, error)
	Complete(ctx context.Context, id string) (AppointmentResponse, error)
	Cancel(ctx context.Context, id string) (AppointmentResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("appointment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("appointment.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Schedule(ctx context.Context, organizerID string, req CreateAppointmentRequest) (AppointmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("schedule appointment requested",
		zap.String("request_id", rid),
		zap.String("organizer_id", organizerID),
		zap.String("employee_id", req.EmployeeID),
	)

	organizerUUID, err := uuid.Parse(organizerID)
	if err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidOrganizerID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidEmployeeID
	}

	startsAt, endsAt, err := parseTimeRange(req.StartsAt, req.EndsAt)
	if err != nil {
		return AppointmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("schedule appointment begin tx failed", zap.Error(err))
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := qtx.HasOverlappingSlot(ctx, req.EmployeeID, startsAt, endsAt, nil)
	if err != nil {
		s.logger.Error("schedule appointment overlap check failed", zap.Error(err))
		return AppointmentResponse{}, err
	}
	if overlap {
		return AppointmentResponse{}, appointmenterrors.ErrAppointmentOverlap
	}

	appt := &Appointment{
		ID:          uuid.New(),
		EmployeeID:  employeeUUID,
		OrganizerID: organizerUUID,
		Title:       req.Title,
		Notes:       req.Notes,
		Location:    req.Location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		Status:      StatusScheduled,
	}

	if err := qtx.Create(ctx, appt); err != nil {
		s.logger.Error("schedule appointment persist failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	if s.outbox != nil {
		event := events.AppointmentScheduledEvent{
			EventType:     "appointment_scheduled",
			RequestID:     rid,
			AppointmentID: appt.ID.String(),
			EmployeeID:    appt.EmployeeID.String(),
			OrganizerID:   appt.OrganizerID.String(),
			Title:         appt.Title,
			StartsAt:      appt.StartsAt,
			EndsAt:        appt.EndsAt,
			OccurredAt:    time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal appointment event failed", zap.Error(err))
			return AppointmentResponse{}, err
		}

		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "appointment",
			AggregateID:   appt.ID.String(),
			EventType:     event.EventType,
			Topic:         events.AppointmentScheduledTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("schedule appointment outbox persist failed", zap.Error(err))
			return AppointmentResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("schedule appointment commit failed", zap.Error(err))
		return AppointmentResponse{}, err
	}

	s.logger.Info("schedule appointment success",
		zap.String("request_id", rid),
		zap.String("appointment_id", appt.ID.String()),
	)

	return mapToResponse(*appt), nil
}

func (s *service) GetAll(ctx context.Context, employeeID string, canReadAll bool) ([]AppointmentResponse, error) {
	var (
		appts []Appointment
		err   error
	)
	if canReadAll {
		appts, err = s.repo.FindAll(ctx)
	} else {
		appts, err = s.repo.FindAllByEmployee(ctx, employeeID)
	}
	if err != nil {
		return nil, err
	}
	return mapToListResponse(appts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AppointmentResponse, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
		}
		return AppointmentResponse{}, err
	}
	return mapToResponse(*appt), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAppointmentRequest) (AppointmentResponse, error) {
	startsAt, endsAt, err := parseTimeRange(req.StartsAt, req.EndsAt)
	if err != nil {
		return AppointmentResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	appt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
		}
		return AppointmentResponse{}, err
	}
	if appt.Status != StatusScheduled {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidStatusTransition
	}

	overlap, err := qtx.HasOverlappingSlot(ctx, appt.EmployeeID.String(), startsAt, endsAt, &id)
	if err != nil {
		return AppointmentResponse{}, err
	}
	if overlap {
		return AppointmentResponse{}, appointmenterrors.ErrAppointmentOverlap
	}

	appt.Title = req.Title
	appt.Notes = req.Notes
	appt.Location = req.Location
	appt.StartsAt = startsAt
	appt.EndsAt = endsAt

	if err := qtx.Update(ctx, appt); err != nil {
		return AppointmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AppointmentResponse{}, err
	}

	return mapToResponse(*appt), nil
}

func (s *service) Complete(ctx context.Context, id string) (AppointmentResponse, error) {
	return s.transitionStatus(ctx, id, StatusCompleted)
}

func (s *service) Cancel(ctx context.Context, id string) (AppointmentResponse, error) {
	return s.transitionStatus(ctx, id, StatusCancelled)
}

// Only SCHEDULED appointments can move; COMPLETED and CANCELLED are
// terminal.
func (s *service) transitionStatus(ctx context.Context, id, targetStatus string) (AppointmentResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AppointmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	appt, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AppointmentResponse{}, appointmenterrors.ErrAppointmentNotFound
		}
		return AppointmentResponse{}, err
	}
	if appt.Status != StatusScheduled {
		return AppointmentResponse{}, appointmenterrors.ErrInvalidStatusTransition
	}

	appt.Status = targetStatus

	if err := qtx.Update(ctx, appt); err != nil {
		return AppointmentResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AppointmentResponse{}, err
	}

	s.logger.Info("appointment status changed",
		zap.String("appointment_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*appt), nil
}

func parseTimeRange(start, end string) (time.Time, time.Time, error) {
	startsAt, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return time.Time{}, time.Time{}, appointmenterrors.ErrInvalidTimeFormat
	}
	endsAt, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return time.Time{}, time.Time{}, appointmenterrors.ErrInvalidTimeFormat
	}
	if !endsAt.After(startsAt) {
		return time.Time{}, time.Time{}, appointmenterrors.ErrInvalidTimeRange
	}
	return startsAt, endsAt, nil
}

func mapToResponse(appt Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          appt.ID.String(),
		EmployeeID:  appt.EmployeeID.String(),
		OrganizerID: appt.OrganizerID.String(),
		Title:       appt.Title,
		Notes:       appt.Notes,
		Location:    appt.Location,
		StartsAt:    appt.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:      appt.EndsAt.UTC().Format(time.RFC3339),
		Status:      appt.Status,
	}
}

func mapToListResponse(appts []Appointment) []AppointmentResponse {
	res := make([]AppointmentResponse, len(appts))
	for i, a := range appts {
		res[i] = mapToResponse(a)
	}
	return res
}
