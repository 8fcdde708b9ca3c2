package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindOptions(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindDisplayByID(ctx context.Context, id string) (fullName, position string, err error)
	GetDepartmentIDByPosition(ctx context.Context, positionID string) (string, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

// FindOptions returns the slim projection used to populate dropdowns.
func (r *repository) FindOptions(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Select("id", "full_name", "email", "employee_number", "hire_date", "employment_status").
		Order("full_name ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Preload("Department").
		Preload("Position").
		First(&empl, "id = ?", id).Error
	return &empl, err
}

// FindDisplayByID returns the two fields the leave module denormalizes
// onto a request.
func (r *repository) FindDisplayByID(ctx context.Context, id string) (string, string, error) {
	var row struct {
		FullName     string
		PositionName string
	}
	tx := r.db.WithContext(ctx).
		Table("employees").
		Select("employees.full_name, COALESCE(positions.name, '') AS position_name").
		Joins("LEFT JOIN positions ON positions.id = employees.position_id").
		Where("employees.id = ?", id).
		Where("employees.deleted_at IS NULL").
		Take(&row)
	if tx.Error != nil {
		return "", "", tx.Error
	}
	return row.FullName, row.PositionName, nil
}

func (r *repository) GetDepartmentIDByPosition(ctx context.Context, positionID string) (string, error) {
	var departmentID string
	err := r.db.WithContext(ctx).
		Table("positions").
		Select("department_id").
		Where("id = ?", positionID).
		Where("deleted_at IS NULL").
		Scan(&departmentID).Error
	return departmentID, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
