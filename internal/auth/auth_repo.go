package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return &user, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return &user, err
	}
	return &user, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return &user, err
	}
	if err := r.resolveEffectiveRole(ctx, &user); err != nil {
		return &user, err
	}
	return &user, nil
}

// resolveEffectiveRole overrides the stored role with the highest role
// granted through employee_roles, when the user is linked to an
// employee. The stored column is only a fallback.
func (r *repository) resolveEffectiveRole(ctx context.Context, user *User) error {
	if user.EmployeeID == nil || *user.EmployeeID == uuid.Nil {
		if user.Role == "" {
			user.Role = "employee"
		}
		user.Role = strings.ToLower(strings.TrimSpace(user.Role))
		return nil
	}

	var roleName string
	err := r.db.WithContext(ctx).
		Table("employee_roles er").
		Select("roles.name").
		Joins("JOIN roles ON roles.id = er.role_id").
		Where("er.employee_id = ?", *user.EmployeeID).
		Order(`
			CASE LOWER(roles.name)
				WHEN 'admin' THEN 1
				WHEN 'hr' THEN 2
				WHEN 'manager' THEN 3
				WHEN 'employee' THEN 4
				ELSE 99
			END ASC`).
		Limit(1).
		Scan(&roleName).Error
	if err != nil {
		return err
	}

	if strings.TrimSpace(roleName) == "" {
		roleName = user.Role
	}
	if strings.TrimSpace(roleName) == "" {
		roleName = "employee"
	}
	user.Role = strings.ToLower(strings.TrimSpace(roleName))
	return nil
}
