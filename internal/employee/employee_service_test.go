package employee_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrportal/internal/employee"
	employeeerrors "go-hrportal/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeEmployeeRepository struct {
	createFn                    func(ctx context.Context, empl *employee.Employee) error
	findAllFn                   func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn                  func(ctx context.Context, id string) (*employee.Employee, error)
	getDepartmentIDByPositionFn func(ctx context.Context, positionID string) (string, error)
	updateFn                    func(ctx context.Context, empl *employee.Employee) error
	deleteFn                    func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindOptions(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) FindDisplayByID(ctx context.Context, id string) (string, string, error) {
	return "", "", gorm.ErrRecordNotFound
}

func (f *fakeEmployeeRepository) GetDepartmentIDByPosition(ctx context.Context, positionID string) (string, error) {
	if f.getDepartmentIDByPositionFn != nil {
		return f.getDepartmentIDByPositionFn(ctx, positionID)
	}
	return "", nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, empl)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success generates a sequential number", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		positionID := uuid.New().String()
		departmentID := uuid.New().String()

		repo := &fakeEmployeeRepository{
			getDepartmentIDByPositionFn: func(ctx context.Context, pid string) (string, error) {
				assert.Equal(t, positionID, pid)
				return departmentID, nil
			},
		}
		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, counterType string) (int64, error) {
				assert.Equal(t, "employee_number", counterType)
				return 42, nil
			},
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, empl *employee.Employee) error {
			assert.Equal(t, "EMP-000042", empl.EmployeeNumber)
			assert.Equal(t, "ACTIVE", empl.EmploymentStatus)
			assert.Equal(t, departmentID, empl.DepartmentID.String())
			return nil
		}

		svc := employee.NewService(db, repo, counterRepo, nil)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:   "Jane Roe",
			Email:      "jane@example.com",
			PositionID: positionID,
			HireDate:   "2026-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-000042", resp.EmployeeNumber)
		assert.Equal(t, "2026-01-15", resp.HireDate)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit employee number is kept", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := &fakeEmployeeRepository{
			getDepartmentIDByPositionFn: func(ctx context.Context, pid string) (string, error) {
				return uuid.New().String(), nil
			},
		}
		counterRepo := &fakeCounterRepository{
			getNextValueFn: func(ctx context.Context, counterType string) (int64, error) {
				t.Fatal("counter must not run when a number is supplied")
				return 0, nil
			},
		}

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		svc := employee.NewService(db, repo, counterRepo, nil)

		resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:       "Jane Roe",
			Email:          "jane@example.com",
			PositionID:     uuid.New().String(),
			EmployeeNumber: "EMP-CUSTOM",
			HireDate:       "2026-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "EMP-CUSTOM", resp.EmployeeNumber)
	})

	t.Run("unknown position", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

		_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:   "Jane Roe",
			Email:      "jane@example.com",
			PositionID: uuid.New().String(),
			HireDate:   "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrPositionNotFound)
	})

	t.Run("malformed hire date", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := employee.NewService(db, &fakeEmployeeRepository{}, &fakeCounterRepository{}, nil)

		_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:   "Jane Roe",
			Email:      "jane@example.com",
			PositionID: uuid.New().String(),
			HireDate:   "15/01/2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, sqlMock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo := &fakeEmployeeRepository{
			getDepartmentIDByPositionFn: func(ctx context.Context, pid string) (string, error) {
				return uuid.New().String(), nil
			},
			createFn: func(ctx context.Context, empl *employee.Employee) error {
				return &mockPgUniqueError{constraint: "uq_employee_email"}
			},
		}

		svc := employee.NewService(db, repo, &fakeCounterRepository{}, nil)

		_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
			FullName:   "Jane Roe",
			Email:      "jane@example.com",
			PositionID: uuid.New().String(),
			HireDate:   "2026-01-15",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

type mockPgUniqueError struct {
	constraint string
}

func (e *mockPgUniqueError) Error() string {
	return `ERROR: duplicate key value violates unique constraint "` + e.constraint + `" (SQLSTATE 23505)`
}
