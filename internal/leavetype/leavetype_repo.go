package leavetype

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leavetype_repo.go -destination=mock/leavetype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, lt *LeaveType) error
	FindAll(ctx context.Context) ([]LeaveType, error)
	FindByID(ctx context.Context, id string) (*LeaveType, error)
	FindByName(ctx context.Context, name string) (*LeaveType, error)
	Update(ctx context.Context, lt *LeaveType) error
	Delete(ctx context.Context, id string) error
	CountReferences(ctx context.Context, id string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Create(lt).Error
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveType, error) {
	var types []LeaveType
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	return &lt, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).First(&lt, "name = ?", name).Error
	return &lt, err
}

func (r *repository) Update(ctx context.Context, lt *LeaveType) error {
	return r.db.WithContext(ctx).Save(lt).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&LeaveType{}, "id = ?", id).Error
}

// CountReferences returns how many leave requests and balance rows still
// point at the type. Deletion is refused while this is non-zero.
func (r *repository) CountReferences(ctx context.Context, id string) (int64, error) {
	var leaveCount int64
	err := r.db.WithContext(ctx).
		Table("leaves").
		Where("leave_type_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&leaveCount).Error
	if err != nil {
		return 0, err
	}

	var balanceCount int64
	err = r.db.WithContext(ctx).
		Table("leave_balances").
		Where("leave_type_id = ?", id).
		Count(&balanceCount).Error
	if err != nil {
		return 0, err
	}

	return leaveCount + balanceCount, nil
}
