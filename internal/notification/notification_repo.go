package notification

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, n *Notification) error
	FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	FindByID(ctx context.Context, id string) (*Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByRecipient(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error) {
	db := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(200)
	if unreadOnly {
		db = db.Where("read_at IS NULL")
	}

	var notifications []Notification
	err := db.Find(&notifications).Error
	return notifications, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Where("read_at IS NULL").
		Update("read_at", gorm.Expr("NOW()")).Error
}

func (r *repository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("read_at IS NULL").
		Update("read_at", gorm.Expr("NOW()"))
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ?", recipientID).
		Where("read_at IS NULL").
		Count(&count).Error
	return count, err
}
