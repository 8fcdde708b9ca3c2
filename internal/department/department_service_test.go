package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrportal/internal/department"
	departmenterrors "go-hrportal/internal/department/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	createFn          func(ctx context.Context, dept *department.Department) error
	findByIDFn        func(ctx context.Context, id string) (*department.Department, error)
	deleteFn          func(ctx context.Context, id string) error
	countReferencesFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository { return f }

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDepartmentRepository) CountReferences(ctx context.Context, id string) (int64, error) {
	if f.countReferencesFn != nil {
		return f.countReferencesFn(ctx, id)
	}
	return 0, nil
}

func setupDepartmentServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeDepartmentRepository, department.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDepartmentRepository{}
	svc := department.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, dept *department.Department) error {
			assert.Equal(t, "Engineering", dept.Name)
			return nil
		}

		resp, err := svc.Create(ctx, department.CreateDepartmentRequest{
			Name:        "Engineering",
			Description: "product development",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Engineering", resp.Name)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.createFn = func(ctx context.Context, dept *department.Department) error {
			return errors.New(`ERROR: duplicate key value violates unique constraint "uq_departments_name" (SQLSTATE 23505)`)
		}

		_, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Engineering"})

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNameTaken)
	})
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced department is protected", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.findByIDFn = func(ctx context.Context, did string) (*department.Department, error) {
			return &department.Department{ID: id, Name: "Engineering"}, nil
		}
		repo.countReferencesFn = func(ctx context.Context, did string) (int64, error) {
			return 5, nil
		}
		repo.deleteFn = func(ctx context.Context, did string) error {
			t.Fatal("delete must not run while positions or employees reference the department")
			return nil
		}

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentInUse)
	})

	t.Run("empty department is removed", func(t *testing.T) {
		db, sqlMock, repo, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.findByIDFn = func(ctx context.Context, did string) (*department.Department, error) {
			return &department.Department{ID: id, Name: "Engineering"}, nil
		}

		var deleted bool
		repo.deleteFn = func(ctx context.Context, did string) error {
			deleted = true
			return nil
		}

		err := svc.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("unknown department", func(t *testing.T) {
		db, sqlMock, _, svc := setupDepartmentServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
