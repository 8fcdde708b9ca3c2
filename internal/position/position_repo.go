package position

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindAll(ctx context.Context) ([]Position, error)
	FindAllByDepartment(ctx context.Context, departmentID string) ([]Position, error)
	FindByID(ctx context.Context, id string) (*Position, error)
	DepartmentExists(ctx context.Context, departmentID string) (bool, error)
	Update(ctx context.Context, pos *Position) error
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

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).Order("name ASC").Find(&positions).Error
	return positions, err
}

func (r *repository) FindAllByDepartment(ctx context.Context, departmentID string) ([]Position, error) {
	var positions []Position
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("name ASC").
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Position, error) {
	var pos Position
	err := r.db.WithContext(ctx).First(&pos, "id = ?", id).Error
	return &pos, err
}

func (r *repository) DepartmentExists(ctx context.Context, departmentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("departments").
		Where("id = ?", departmentID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Position{}, "id = ?", id).Error
}

func (r *repository) CountReferences(ctx context.Context, id string) (int64, error) {
	var employees int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("position_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&employees).Error
	return employees, err
}
