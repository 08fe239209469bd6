package dto

import "time"

// Schedule frequencies.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	FrequencyCustom = "custom"
)

// ProfileResponse is the caller's profile plus derived scheduling data.
type ProfileResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Tickers           []string   `json:"tickers"`
	ScheduleFrequency string     `json:"schedule_frequency"`
	ScheduleTime      string     `json:"schedule_time"`
	ScheduleDays      []string   `json:"schedule_days"`
	Timezone          string     `json:"timezone"`
	EmailsPaused      bool       `json:"emails_paused"`
	NextDigestAt      *time.Time `json:"next_digest_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// UpdateTickersRequest replaces the whole ordered watchlist.
type UpdateTickersRequest struct {
	Tickers []string `json:"tickers"`
}

// UpdateScheduleRequest replaces the delivery schedule.
type UpdateScheduleRequest struct {
	Frequency string   `json:"schedule_frequency"`
	Time      string   `json:"schedule_time"`
	Days      []string `json:"schedule_days"`
	Timezone  string   `json:"timezone"`
}

// UpdatePauseRequest pauses or resumes scheduled emails.
type UpdatePauseRequest struct {
	Paused bool `json:"emails_paused"`
}
