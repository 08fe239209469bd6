package dto

import "time"

// SendDigestResponse is returned by the on-demand send endpoint.
type SendDigestResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Tickers []string `json:"tickers"`
}

// DigestResponse describes a previously sent digest.
type DigestResponse struct {
	ID      string    `json:"id"`
	Tickers []string  `json:"tickers"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}
