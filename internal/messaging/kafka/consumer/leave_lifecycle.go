package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-hrportal/internal/events"
	"go-hrportal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveLifecycle turns leave lifecycle events into inbox
// notifications for the employee who owns the request.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.LeaveLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode leave lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		title, message := leaveNotificationContent(event)
		if title == "" {
			log.Warn("unknown leave lifecycle event type, skipping",
				zap.String("event_type", event.EventType),
				zap.String("leave_id", event.LeaveID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.Create(ctx, event.EmployeeID, event.EventType, title, message); err != nil {
			log.Error("create leave notification failed",
				zap.String("leave_id", event.LeaveID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("leave notification delivered",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

func leaveNotificationContent(event events.LeaveLifecycleEvent) (title, message string) {
	period := fmt.Sprintf("%s to %s (%d days)", event.StartDate, event.EndDate, event.TotalDays)

	switch event.EventType {
	case events.LeaveSubmitted:
		return "Leave request submitted",
			fmt.Sprintf("Your %s request for %s has been submitted and is awaiting review.", event.LeaveTypeName, period)
	case events.LeaveApproved:
		return "Leave request approved",
			fmt.Sprintf("Your %s request for %s has been approved.", event.LeaveTypeName, period)
	case events.LeaveRejected:
		msg := fmt.Sprintf("Your %s request for %s has been rejected.", event.LeaveTypeName, period)
		if event.RejectionReason != "" {
			msg += " Reason: " + event.RejectionReason
		}
		return "Leave request rejected", msg
	case events.LeaveCancelled:
		return "Leave request cancelled",
			fmt.Sprintf("Your %s request for %s has been cancelled.", event.LeaveTypeName, period)
	default:
		return "", ""
	}
}
