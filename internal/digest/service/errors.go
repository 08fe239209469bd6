package service

import "errors"

var (
	// ErrNoTickers is returned when a user asks for a digest without a watchlist.
	ErrNoTickers = errors.New("no tickers configured")
	// ErrProfileNotFound is returned when the user has no stored profile.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInvalidTicker is returned for malformed or duplicate watchlist entries.
	ErrInvalidTicker = errors.New("invalid ticker")
	// ErrInvalidSchedule is returned for schedules that break the frequency rules.
	ErrInvalidSchedule = errors.New("invalid schedule")
)
