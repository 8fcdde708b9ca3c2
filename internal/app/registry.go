package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"go-hrportal/internal/analytics"
	"go-hrportal/internal/appointment"
	"go-hrportal/internal/auth"
	"go-hrportal/internal/department"
	"go-hrportal/internal/employee"
	"go-hrportal/internal/leave"
	"go-hrportal/internal/leavebalance"
	"go-hrportal/internal/leavetype"
	"go-hrportal/internal/messaging/kafka"
	"go-hrportal/internal/notification"
	"go-hrportal/internal/position"
	"go-hrportal/internal/rbac"
	"go-hrportal/internal/rbac/infra"
	"go-hrportal/internal/rbac/rbac_http"
	"go-hrportal/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)
	appointmentRepo := appointment.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	positionRepo := position.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)
	if err := rbacService.LoadPolicy(); err != nil {
		return err
	}

	// --- Services ---
	leaveCfg := leave.Config{
		CheckBalanceOnSubmit: os.Getenv("LEAVE_CHECK_BALANCE_ON_SUBMIT") != "false",
	}

	analyticsService := analytics.NewService(analyticsRepo, rdb)
	appointmentService := appointment.NewServiceWithOutbox(db, appointmentRepo, outboxRepo)
	authService := auth.NewService(authRepo, employeeRepo)
	departmentService := department.NewService(db, departmentRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveService := leave.NewServiceWithOutbox(db, leaveRepo, leaveTypeRepo, leaveBalanceRepo, employeeRepo, outboxRepo, leaveCfg)
	leaveBalanceService := leavebalance.NewService(db, leaveBalanceRepo)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo)
	notificationService := notification.NewService(notificationRepo)
	positionService := position.NewService(db, positionRepo)

	// --- Handlers ---
	analyticsHandler := analytics.NewHandler(analyticsService)
	appointmentHandler := appointment.NewHandler(appointmentService)
	authHandler := auth.NewHandler(authService)
	departmentHandler := department.NewHandler(departmentService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveHandler := leave.NewHandlerWithRedis(leaveService, rdb)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	notificationHandler := notification.NewHandler(notificationService)
	positionHandler := position.NewHandler(positionService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		analytics.RegisterRoutes(api, analyticsHandler, rbacService)
		appointment.RegisterRoutes(api, appointmentHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler)
		position.RegisterRoutes(api, positionHandler, rbacService)
		rbac_http.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}
