package appointment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-hrportal/internal/appointment"
	appointmenterrors "go-hrportal/internal/appointment/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAppointmentRepository struct {
	createFn             func(ctx context.Context, appt *appointment.Appointment) error
	findByIDFn           func(ctx context.Context, id string) (*appointment.Appointment, error)
	updateFn             func(ctx context.Context, appt *appointment.Appointment) error
	hasOverlappingSlotFn func(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error)
}

func (f *fakeAppointmentRepository) WithTx(tx *sql.Tx) appointment.Repository { return f }

func (f *fakeAppointmentRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	if f.createFn != nil {
		return f.createFn(ctx, appt)
	}
	return nil
}

func (f *fakeAppointmentRepository) FindAll(ctx context.Context) ([]appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepository) FindAllByEmployee(ctx context.Context, employeeID string) ([]appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepository) FindByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAppointmentRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, appt)
	}
	return nil
}

func (f *fakeAppointmentRepository) HasOverlappingSlot(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error) {
	if f.hasOverlappingSlotFn != nil {
		return f.hasOverlappingSlotFn(ctx, employeeID, startsAt, endsAt, excludeID)
	}
	return false, nil
}

func setupAppointmentServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeAppointmentRepository, appointment.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAppointmentRepository{}
	svc := appointment.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestAppointmentService_Schedule(t *testing.T) {
	ctx := context.Background()
	organizerID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		employeeID := uuid.New().String()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, appt *appointment.Appointment) error {
			assert.Equal(t, employeeID, appt.EmployeeID.String())
			assert.Equal(t, organizerID, appt.OrganizerID.String())
			assert.Equal(t, appointment.StatusScheduled, appt.Status)
			return nil
		}

		resp, err := svc.Schedule(ctx, organizerID, appointment.CreateAppointmentRequest{
			EmployeeID: employeeID,
			Title:      "Performance review",
			StartsAt:   "2026-04-01T09:00:00Z",
			EndsAt:     "2026-04-01T09:30:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, appointment.StatusScheduled, resp.Status)
		assert.Equal(t, "2026-04-01T09:00:00Z", resp.StartsAt)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("conflicting slot", func(t *testing.T) {
		db, sqlMock, repo, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.hasOverlappingSlotFn = func(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error) {
			return true, nil
		}

		_, err := svc.Schedule(ctx, organizerID, appointment.CreateAppointmentRequest{
			EmployeeID: uuid.New().String(),
			Title:      "Performance review",
			StartsAt:   "2026-04-01T09:00:00Z",
			EndsAt:     "2026-04-01T09:30:00Z",
		})

		assert.ErrorIs(t, err, appointmenterrors.ErrAppointmentOverlap)
	})

	t.Run("end must follow start", func(t *testing.T) {
		db, _, _, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		_, err := svc.Schedule(ctx, organizerID, appointment.CreateAppointmentRequest{
			EmployeeID: uuid.New().String(),
			Title:      "Performance review",
			StartsAt:   "2026-04-01T09:30:00Z",
			EndsAt:     "2026-04-01T09:30:00Z",
		})

		assert.ErrorIs(t, err, appointmenterrors.ErrInvalidTimeRange)
	})

	t.Run("malformed employee id", func(t *testing.T) {
		db, _, _, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		_, err := svc.Schedule(ctx, organizerID, appointment.CreateAppointmentRequest{
			EmployeeID: "not-a-uuid",
			Title:      "Performance review",
			StartsAt:   "2026-04-01T09:00:00Z",
			EndsAt:     "2026-04-01T09:30:00Z",
		})

		assert.ErrorIs(t, err, appointmenterrors.ErrInvalidEmployeeID)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		db, _, _, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		_, err := svc.Schedule(ctx, organizerID, appointment.CreateAppointmentRequest{
			EmployeeID: uuid.New().String(),
			Title:      "Performance review",
			StartsAt:   "01-04-2026 09:00",
			EndsAt:     "2026-04-01T09:30:00Z",
		})

		assert.ErrorIs(t, err, appointmenterrors.ErrInvalidTimeFormat)
	})
}

func TestAppointmentService_Transitions(t *testing.T) {
	ctx := context.Background()

	scheduled := func() *appointment.Appointment {
		return &appointment.Appointment{
			ID:          uuid.New(),
			EmployeeID:  uuid.New(),
			OrganizerID: uuid.New(),
			Title:       "Performance review",
			StartsAt:    time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			EndsAt:      time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC),
			Status:      appointment.StatusScheduled,
		}
	}

	t.Run("complete a scheduled appointment", func(t *testing.T) {
		db, sqlMock, repo, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		appt := scheduled()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.findByIDFn = func(ctx context.Context, id string) (*appointment.Appointment, error) {
			return appt, nil
		}

		resp, err := svc.Complete(ctx, appt.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, appointment.StatusCompleted, resp.Status)
	})

	t.Run("terminal states refuse transitions", func(t *testing.T) {
		db, sqlMock, repo, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		appt := scheduled()
		appt.Status = appointment.StatusCompleted

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.findByIDFn = func(ctx context.Context, id string) (*appointment.Appointment, error) {
			return appt, nil
		}

		_, err := svc.Cancel(ctx, appt.ID.String())

		assert.ErrorIs(t, err, appointmenterrors.ErrInvalidStatusTransition)
	})

	t.Run("update excludes the appointment itself from overlap", func(t *testing.T) {
		db, sqlMock, repo, svc := setupAppointmentServiceTest(t)
		defer db.Close()

		appt := scheduled()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.findByIDFn = func(ctx context.Context, id string) (*appointment.Appointment, error) {
			return appt, nil
		}
		repo.hasOverlappingSlotFn = func(ctx context.Context, employeeID string, startsAt, endsAt time.Time, excludeID *string) (bool, error) {
			if assert.NotNil(t, excludeID) {
				assert.Equal(t, appt.ID.String(), *excludeID)
			}
			return false, nil
		}

		resp, err := svc.Update(ctx, appt.ID.String(), appointment.UpdateAppointmentRequest{
			Title:    "Performance review (moved)",
			StartsAt: "2026-04-02T10:00:00Z",
			EndsAt:   "2026-04-02T10:30:00Z",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Performance review (moved)", resp.Title)
		assert.Equal(t, "2026-04-02T10:00:00Z", resp.StartsAt)
	})
}
