package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-hrportal/internal/events"
	"go-hrportal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeAppointmentScheduled notifies an employee when an appointment
// has been scheduled with them.
func ConsumeAppointmentScheduled(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.appointment_scheduled")
	log.Info("appointment consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("appointment consumer stopped")
				return
			}
			log.Error("fetch appointment message failed", zap.Error(err))
			continue
		}

		var event events.AppointmentScheduledEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode appointment_scheduled event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := fmt.Sprintf("An appointment \"%s\" has been scheduled for you from %s to %s.",
			event.Title,
			event.StartsAt.UTC().Format(time.RFC3339),
			event.EndsAt.UTC().Format(time.RFC3339),
		)
		if err := notifications.Create(ctx, event.EmployeeID, event.EventType, "Appointment scheduled", message); err != nil {
			log.Error("create appointment notification failed",
				zap.String("appointment_id", event.AppointmentID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit appointment message failed", zap.Error(err))
			continue
		}

		log.Info("appointment notification delivered",
			zap.String("appointment_id", event.AppointmentID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}
