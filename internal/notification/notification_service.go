package notification

import (
	"context"
	"errors"
	"time"

	notificationerrors "go-hrportal/internal/notification/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, recipientID, notifType, title, message string) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error)
	UnreadCount(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, recipientID, notifType, title, message string) error {
	recipientUUID, err := uuid.Parse(recipientID)
	if err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}

	n := &Notification{
		ID:          uuid.New(),
		RecipientID: recipientUUID,
		Type:        notifType,
		Title:       title,
		Message:     message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("create notification failed",
			zap.String("recipient_id", recipientID),
			zap.String("type", notifType),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification created",
		zap.String("notification_id", n.ID.String()),
		zap.String("recipient_id", recipientID),
		zap.String("type", notifType),
	)
	return nil
}

func (s *service) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindAllByRecipient(ctx, recipientID, unreadOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(notifications), nil
}

func (s *service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return err
	}
	if n.RecipientID.String() != recipientID {
		return notificationerrors.ErrNotificationForbidden
	}

	return s.repo.MarkRead(ctx, id)
}

func (s *service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:        n.ID.String(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.UTC().Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(notifications []Notification) []NotificationResponse {
	res := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		res[i] = mapToResponse(n)
	}
	return res
}
