package notification_test

import (
	"context"
	"database/sql"
	"testing"

	"go-hrportal/internal/notification"
	notificationerrors "go-hrportal/internal/notification/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeNotificationRepository struct {
	createFn             func(ctx context.Context, n *notification.Notification) error
	findAllByRecipientFn func(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error)
	findByIDFn           func(ctx context.Context, id string) (*notification.Notification, error)
	markReadFn           func(ctx context.Context, id string) error
	markAllReadFn        func(ctx context.Context, recipientID string) (int64, error)
	countUnreadFn        func(ctx context.Context, recipientID string) (int64, error)
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository { return f }

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
	if f.findAllByRecipientFn != nil {
		return f.findAllByRecipientFn(ctx, recipientID, unreadOnly)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) FindByID(ctx context.Context, id string) (*notification.Notification, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, id string) error {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id)
	}
	return nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, recipientID)
	}
	return 0, nil
}

func (f *fakeNotificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	if f.countUnreadFn != nil {
		return f.countUnreadFn(ctx, recipientID)
	}
	return 0, nil
}

func TestNotificationService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		recipientID := uuid.New().String()
		repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			assert.Equal(t, recipientID, n.RecipientID.String())
			assert.Equal(t, "leave_approved", n.Type)
			assert.Equal(t, "Leave request approved", n.Title)
			assert.Nil(t, n.ReadAt)
			return nil
		}

		err := svc.Create(ctx, recipientID, "leave_approved", "Leave request approved", "Your leave has been approved.")

		assert.NoError(t, err)
	})

	t.Run("invalid recipient id", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		err := svc.Create(ctx, "not-a-uuid", "leave_approved", "title", "message")

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidRecipientID)
	})
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("owner can mark read", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		recipientID := uuid.New()
		notifID := uuid.New()

		repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: notifID, RecipientID: recipientID}, nil
		}

		var marked bool
		repo.markReadFn = func(ctx context.Context, id string) error {
			assert.Equal(t, notifID.String(), id)
			marked = true
			return nil
		}

		err := svc.MarkRead(ctx, recipientID.String(), notifID.String())

		assert.NoError(t, err)
		assert.True(t, marked)
	})

	t.Run("foreign notification is forbidden", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		repo.findByIDFn = func(ctx context.Context, id string) (*notification.Notification, error) {
			return &notification.Notification{ID: uuid.New(), RecipientID: uuid.New()}, nil
		}
		repo.markReadFn = func(ctx context.Context, id string) error {
			t.Fatal("mark read must not run for a foreign recipient")
			return nil
		}

		err := svc.MarkRead(ctx, uuid.New().String(), uuid.New().String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationForbidden)
	})

	t.Run("unknown notification", func(t *testing.T) {
		svc := notification.NewService(&fakeNotificationRepository{})

		err := svc.MarkRead(ctx, uuid.New().String(), uuid.New().String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})
}

func TestNotificationService_ListByRecipient(t *testing.T) {
	ctx := context.Background()

	t.Run("unread filter passes through", func(t *testing.T) {
		repo := &fakeNotificationRepository{}
		svc := notification.NewService(repo)

		var gotUnreadOnly bool
		repo.findAllByRecipientFn = func(ctx context.Context, recipientID string, unreadOnly bool) ([]notification.Notification, error) {
			gotUnreadOnly = unreadOnly
			return []notification.Notification{{ID: uuid.New(), RecipientID: uuid.New(), Title: "Leave request approved"}}, nil
		}

		resp, err := svc.ListByRecipient(ctx, uuid.New().String(), true)

		assert.NoError(t, err)
		assert.True(t, gotUnreadOnly)
		assert.Len(t, resp, 1)
	})
}
