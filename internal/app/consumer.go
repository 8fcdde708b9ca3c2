package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hrportal/internal/events"
	"go-hrportal/internal/leavebalance"
	"go-hrportal/internal/leavetype"
	"go-hrportal/internal/messaging/kafka/consumer"
	"go-hrportal/internal/notification"
	"go-hrportal/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer runs the event consumers: balance provisioning for new
// employees plus inbox notifications for leave and appointment events.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	leaveBalanceService := leavebalance.NewService(sqlDB, leaveBalanceRepo)
	notificationRepo := notification.NewRepository(gormDB)
	notificationService := notification.NewService(notificationRepo)

	newReader := func(topic, groupID string) *kafkago.Reader {
		return kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:        []string{kafkaBroker},
			Topic:          topic,
			GroupID:        groupID,
			CommitInterval: 0,
			StartOffset:    kafkago.FirstOffset,
		})
	}

	employeeReader := newReader(events.EmployeeCreatedTopic, "go-hrportal-leave-balance")
	defer employeeReader.Close()

	leaveReader := newReader(events.LeaveLifecycleTopic, "go-hrportal-leave-notifications")
	defer leaveReader.Close()

	appointmentReader := newReader(events.AppointmentScheduledTopic, "go-hrportal-appointment-notifications")
	defer appointmentReader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, employeeReader, leaveTypeRepo, leaveBalanceService, logger)
	go consumer.ConsumeLeaveLifecycle(ctx, leaveReader, notificationService, logger)
	go consumer.ConsumeAppointmentScheduled(ctx, appointmentReader, notificationService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
