package entity

import (
	"time"

	"github.com/lib/pq"
)

// ScheduleFrequency is how often a user wants a digest.
type ScheduleFrequency string

const (
	FrequencyDaily  ScheduleFrequency = "daily"
	FrequencyWeekly ScheduleFrequency = "weekly"
	FrequencyCustom ScheduleFrequency = "custom"
)

// UserProfile holds a user's watchlist and delivery schedule. The ID is the
// auth backend user id.
type UserProfile struct {
	ID                string            `gorm:"primaryKey;type:uuid" json:"id"`
	Email             string            `gorm:"not null" json:"email"`
	Tickers           pq.StringArray    `gorm:"type:text[];not null" json:"tickers"`
	ScheduleFrequency ScheduleFrequency `gorm:"type:varchar(16);not null;default:'daily'" json:"schedule_frequency"`
	ScheduleTime      string            `gorm:"type:varchar(5);not null;default:'08:00'" json:"schedule_time"`
	ScheduleDays      pq.StringArray    `gorm:"type:text[];not null" json:"schedule_days"`
	Timezone          string            `gorm:"not null;default:'UTC'" json:"timezone"`
	EmailsPaused      bool              `gorm:"not null;default:false" json:"emails_paused"`
	CreatedAt         time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "profiles"
}
