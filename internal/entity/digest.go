package entity

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Digest is an append-only record of one email sent to a user.
type Digest struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Tickers   pq.StringArray `gorm:"type:text[];not null" json:"tickers"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Results   datatypes.JSON `gorm:"type:jsonb" json:"results,omitempty"`
	SentAt    time.Time      `gorm:"not null" json:"sent_at"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the Digest model.
func (Digest) TableName() string {
	return "digests"
}
