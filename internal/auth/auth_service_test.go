package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrportal/internal/auth"
	autherrors "go-hrportal/internal/auth/errors"
	"go-hrportal/internal/employee"
	employeeerrors "go-hrportal/internal/employee/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, user *auth.User) error
	getByEmailFn func(ctx context.Context, email string) (*auth.User, error)
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, user)
	}
	return nil
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEmployeeRepository struct {
	findByIDFn func(ctx context.Context, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository { return f }

func (f *fakeEmployeeRepository) Create(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
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
	return "", nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, empl *employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error { return nil }

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	employeeID := uuid.New()
	return &auth.User{
		ID:         uuid.New(),
		EmployeeID: &employeeID,
		Name:       "Jane Roe",
		Email:      "jane@example.com",
		Password:   string(hashed),
		Role:       "employee",
		IsActive:   true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues both tokens", func(t *testing.T) {
		user := activeUser(t, "s3cret")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				assert.Equal(t, "jane@example.com", email)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		accessToken, refreshToken, resp, err := svc.Login(ctx, "jane@example.com", "s3cret")

		assert.NoError(t, err)
		assert.NotEmpty(t, accessToken)
		assert.NotEmpty(t, refreshToken)
		assert.Equal(t, user.ID.String(), resp.ID)
		assert.Equal(t, "employee", resp.Role)

		parsed, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		assert.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, user.ID.String(), claims["user_id"])
		assert.Equal(t, user.EmployeeID.String(), claims["employee_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		user := activeUser(t, "s3cret")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		_, _, _, err := svc.Login(ctx, "jane@example.com", "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeRepository{})

		_, _, _, err := svc.Login(ctx, "nobody@example.com", "s3cret")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive account", func(t *testing.T) {
		user := activeUser(t, "s3cret")
		user.IsActive = false
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		_, _, _, err := svc.Login(ctx, "jane@example.com", "s3cret")

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("rotates a valid refresh token", func(t *testing.T) {
		user := activeUser(t, "s3cret")
		repo := &fakeUserRepository{
			getByEmailFn: func(ctx context.Context, email string) (*auth.User, error) {
				return user, nil
			},
			getByIDFn: func(ctx context.Context, id uuid.UUID) (*auth.User, error) {
				assert.Equal(t, user.ID, id)
				return user, nil
			},
		}

		svc := auth.NewService(repo, &fakeEmployeeRepository{})

		_, refreshToken, _, err := svc.Login(ctx, "jane@example.com", "s3cret")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refreshToken)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, user.ID.String(), resp.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeRepository{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success defaults to the employee role", func(t *testing.T) {
		employeeID := uuid.New()

		empRepo := &fakeEmployeeRepository{
			findByIDFn: func(ctx context.Context, id string) (*employee.Employee, error) {
				assert.Equal(t, employeeID.String(), id)
				return &employee.Employee{ID: employeeID}, nil
			},
		}

		var created *auth.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, user *auth.User) error {
				created = user
				return nil
			},
		}

		svc := auth.NewService(repo, empRepo)

		resp, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: employeeID.String(),
			Name:       "Jane Roe",
			Email:      "jane@example.com",
			Password:   "s3cret",
		})

		assert.NoError(t, err)
		assert.Equal(t, "employee", resp.Role)
		if assert.NotNil(t, created) {
			assert.True(t, created.IsActive)
			assert.NotEqual(t, "s3cret", created.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("s3cret")))
		}
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc := auth.NewService(&fakeUserRepository{}, &fakeEmployeeRepository{})

		_, err := svc.Register(ctx, auth.RegisterRequest{
			EmployeeID: uuid.New().String(),
			Name:       "Jane Roe",
			Email:      "jane@example.com",
			Password:   "s3cret",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
