package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrportal/internal/events"
	"go-hrportal/internal/leavebalance"
	leavebalanceerrors "go-hrportal/internal/leavebalance/errors"
	"go-hrportal/internal/leavetype"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle provisions a leave balance per leave type
// for every new employee, seeded with the type's default entitlement.
// Redelivered events are tolerated: the unique balance constraint makes
// provisioning idempotent.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	leaveTypeRepo leavetype.Repository,
	balanceService leavebalance.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee_created event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		year := time.Now().UTC().Year()
		if hireDate, err := time.Parse("2006-01-02", event.HireDate); err == nil {
			year = hireDate.Year()
		}

		if err := provisionDefaultBalances(ctx, leaveTypeRepo, balanceService, event.EmployeeID, year, log); err != nil {
			log.Error("provision default leave balances failed",
				zap.String("employee_id", event.EmployeeID),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave balances provisioned from employee_created event",
			zap.String("employee_id", event.EmployeeID),
			zap.Int("year", year),
		)
	}
}

func provisionDefaultBalances(
	ctx context.Context,
	leaveTypeRepo leavetype.Repository,
	balanceService leavebalance.Service,
	employeeID string,
	year int,
	log *zap.Logger,
) error {
	types, err := leaveTypeRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, lt := range types {
		_, err := balanceService.Provision(ctx, leavebalance.ProvisionBalanceRequest{
			EmployeeID:       employeeID,
			LeaveTypeID:      lt.ID.String(),
			Year:             year,
			TotalEntitlement: lt.DefaultDays,
		})
		if err != nil {
			if errors.Is(err, leavebalanceerrors.ErrBalanceAlreadyExists) {
				log.Warn("leave balance already provisioned, skipping",
					zap.String("employee_id", employeeID),
					zap.String("leave_type_id", lt.ID.String()),
					zap.Int("year", year),
				)
				continue
			}
			return err
		}
	}
	return nil
}
