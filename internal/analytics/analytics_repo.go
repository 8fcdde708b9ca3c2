package analytics

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=analytics_repo.go -destination=mock/analytics_repo_mock.go -package=mock
type Repository interface {
	LeaveSummary(ctx context.Context, year int) ([]LeaveSummaryRow, error)
	Headcount(ctx context.Context) ([]HeadcountRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LeaveSummary(ctx context.Context, year int) ([]LeaveSummaryRow, error) {
	var rows []LeaveSummaryRow
	err := r.db.WithContext(ctx).
		Table("leaves").
		Select(`leaves.leave_type_id::text AS leave_type_id,
leaves.leave_type_name,
leaves.status,
COUNT(*) AS requests,
COALESCE(SUM(leaves.total_days), 0) AS total_days`).
		Where("EXTRACT(YEAR FROM leaves.start_date) = ?", year).
		Where("leaves.deleted_at IS NULL").
		Group("leaves.leave_type_id, leaves.leave_type_name, leaves.status").
		Order("leaves.leave_type_name ASC, leaves.status ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Headcount(ctx context.Context) ([]HeadcountRow, error) {
	var rows []HeadcountRow
	err := r.db.WithContext(ctx).
		Table("employees").
		Select(`COALESCE(departments.id::text, '') AS department_id,
COALESCE(departments.name, 'Unassigned') AS department_name,
COUNT(*) AS employees`).
		Joins("LEFT JOIN departments ON departments.id = employees.department_id AND departments.deleted_at IS NULL").
		Where("employees.deleted_at IS NULL").
		Group("departments.id, departments.name").
		Order("department_name ASC").
		Scan(&rows).Error
	return rows, err
}
