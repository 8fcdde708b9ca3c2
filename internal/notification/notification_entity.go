package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an inbox row. Rows are written by the lifecycle
// consumers; the API only reads and marks them.
type Notification struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	RecipientID uuid.UUID `gorm:"type:uuid;index"`
	Type        string    `gorm:"size:50"`
	Title       string    `gorm:"size:255"`
	Message     string
	ReadAt      *time.Time
	CreatedAt   time.Time
}
