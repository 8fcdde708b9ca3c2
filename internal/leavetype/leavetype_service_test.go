package leavetype_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-hrportal/internal/leavetype"
	leavetypeerrors "go-hrportal/internal/leavetype/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeLeaveTypeRepository struct {
	createFn          func(ctx context.Context, lt *leavetype.LeaveType) error
	findAllFn         func(ctx context.Context) ([]leavetype.LeaveType, error)
	findByIDFn        func(ctx context.Context, id string) (*leavetype.LeaveType, error)
	findByNameFn      func(ctx context.Context, name string) (*leavetype.LeaveType, error)
	updateFn          func(ctx context.Context, lt *leavetype.LeaveType) error
	deleteFn          func(ctx context.Context, id string) error
	countReferencesFn func(ctx context.Context, id string) (int64, error)
}

func (f *fakeLeaveTypeRepository) WithTx(tx *sql.Tx) leavetype.Repository { return f }

func (f *fakeLeaveTypeRepository) Create(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.createFn != nil {
		return f.createFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) FindAll(ctx context.Context) ([]leavetype.LeaveType, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeLeaveTypeRepository) FindByID(ctx context.Context, id string) (*leavetype.LeaveType, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) FindByName(ctx context.Context, name string) (*leavetype.LeaveType, error) {
	if f.findByNameFn != nil {
		return f.findByNameFn(ctx, name)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveTypeRepository) Update(ctx context.Context, lt *leavetype.LeaveType) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, lt)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeLeaveTypeRepository) CountReferences(ctx context.Context, id string) (int64, error) {
	if f.countReferencesFn != nil {
		return f.countReferencesFn(ctx, id)
	}
	return 0, nil
}

func setupLeaveTypeServiceTest(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *fakeLeaveTypeRepository, leavetype.Service) {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveTypeRepository{}
	svc := leavetype.NewService(db, repo)
	return db, sqlMock, repo, svc
}

func TestLeaveTypeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims the name", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			assert.Equal(t, "Annual Leave", lt.Name)
			assert.Equal(t, 12, lt.DefaultDays)
			return nil
		}

		resp, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{
			Name:        "  Annual Leave  ",
			Description: "paid yearly allowance",
			DefaultDays: 12,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Annual Leave", resp.Name)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate name", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.createFn = func(ctx context.Context, lt *leavetype.LeaveType) error {
			return errors.New(`ERROR: duplicate key value violates unique constraint "uq_leave_types_name" (SQLSTATE 23505)`)
		}

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave", DefaultDays: 12})

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNameTaken)
	})

	t.Run("negative default days", func(t *testing.T) {
		db, _, _, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		_, err := svc.Create(ctx, leavetype.CreateLeaveTypeRequest{Name: "Annual Leave", DefaultDays: -1})

		assert.ErrorIs(t, err, leavetypeerrors.ErrInvalidDefaultDays)
	})
}

func TestLeaveTypeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("referenced type is protected", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		repo.findByIDFn = func(ctx context.Context, lid string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Annual Leave"}, nil
		}
		repo.countReferencesFn = func(ctx context.Context, lid string) (int64, error) {
			return 3, nil
		}
		repo.deleteFn = func(ctx context.Context, lid string) error {
			t.Fatal("delete must not run while references exist")
			return nil
		}

		err := svc.Delete(ctx, id.String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeInUse)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("unreferenced type is removed", func(t *testing.T) {
		db, sqlMock, repo, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		id := uuid.New()

		sqlMock.ExpectBegin()
		sqlMock.ExpectCommit()

		repo.findByIDFn = func(ctx context.Context, lid string) (*leavetype.LeaveType, error) {
			return &leavetype.LeaveType{ID: id, Name: "Annual Leave"}, nil
		}

		var deleted bool
		repo.deleteFn = func(ctx context.Context, lid string) error {
			deleted = true
			return nil
		}

		err := svc.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("unknown type", func(t *testing.T) {
		db, sqlMock, _, svc := setupLeaveTypeServiceTest(t)
		defer db.Close()

		sqlMock.ExpectBegin()
		sqlMock.ExpectRollback()

		err := svc.Delete(ctx, uuid.New().String())

		assert.ErrorIs(t, err, leavetypeerrors.ErrLeaveTypeNotFound)
	})
}
