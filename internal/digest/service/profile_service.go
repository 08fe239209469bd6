package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/repository"
	"golang-stock-digest/internal/entity"
	"golang-stock-digest/pkg/common"
	"golang-stock-digest/pkg/logger"
	"golang-stock-digest/pkg/utils"
)

// Defaults for a profile that was never saved.
const (
	DefaultScheduleTime = "08:00"
	DefaultTimezone     = "UTC"
)

// ProfileService manages a user's watchlist and schedule.
type ProfileService interface {
	GetProfile(ctx context.Context, userID, email string) (*dto.ProfileResponse, error)
	UpdateTickers(ctx context.Context, userID, email string, req *dto.UpdateTickersRequest) (*dto.ProfileResponse, error)
	UpdateSchedule(ctx context.Context, userID, email string, req *dto.UpdateScheduleRequest) (*dto.ProfileResponse, error)
	SetPaused(ctx context.Context, userID, email string, paused bool) (*dto.ProfileResponse, error)
	RecentDigests(ctx context.Context, userID string) ([]*dto.DigestResponse, error)
}

// NewProfileService creates a new profile service.
func NewProfileService(profileRepo repository.ProfileRepository, digestRepo repository.DigestRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		digestRepo:  digestRepo,
		logger:      logger,
		now:         time.Now,
	}
}

type profileService struct {
	profileRepo repository.ProfileRepository
	digestRepo  repository.DigestRepository
	logger      *logger.Logger
	now         func() time.Time
}

// DefaultProfile returns the profile a new user starts with.
func DefaultProfile(userID, email string) *entity.UserProfile {
	return &entity.UserProfile{
		ID:                userID,
		Email:             email,
		Tickers:           []string{},
		ScheduleFrequency: entity.FrequencyDaily,
		ScheduleTime:      DefaultScheduleTime,
		ScheduleDays:      append([]string(nil), utils.Weekdays...),
		Timezone:          DefaultTimezone,
	}
}

func (s *profileService) load(ctx context.Context, userID, email string) (*entity.UserProfile, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil {
		return DefaultProfile(userID, email), nil
	}
	if profile.Email == "" {
		profile.Email = email
	}
	return profile, nil
}

func (s *profileService) save(ctx context.Context, profile *entity.UserProfile) (*dto.ProfileResponse, error) {
	profile.UpdatedAt = s.now().UTC()
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.mapToProfileResponse(profile), nil
}

// GetProfile returns the stored profile, or the defaults when none exists.
func (s *profileService) GetProfile(ctx context.Context, userID, email string) (*dto.ProfileResponse, error) {
	profile, err := s.load(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	return s.mapToProfileResponse(profile), nil
}

func (s *profileService) UpdateTickers(ctx context.Context, userID, email string, req *dto.UpdateTickersRequest) (*dto.ProfileResponse, error) {
	tickers, err := NormalizeTickers(req.Tickers)
	if err != nil {
		return nil, err
	}

	profile, err := s.load(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	profile.Tickers = tickers
	return s.save(ctx, profile)
}

func (s *profileService) UpdateSchedule(ctx context.Context, userID, email string, req *dto.UpdateScheduleRequest) (*dto.ProfileResponse, error) {
	frequency, days, err := NormalizeSchedule(req.Frequency, req.Days)
	if err != nil {
		return nil, err
	}
	if _, _, err := ParseScheduleTime(req.Time); err != nil {
		return nil, err
	}
	timezone := strings.TrimSpace(req.Timezone)
	if timezone == "" {
		timezone = DefaultTimezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidSchedule, timezone)
	}

	profile, err := s.load(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	profile.ScheduleFrequency = frequency
	profile.ScheduleTime = req.Time
	profile.ScheduleDays = days
	profile.Timezone = timezone
	return s.save(ctx, profile)
}

func (s *profileService) SetPaused(ctx context.Context, userID, email string, paused bool) (*dto.ProfileResponse, error) {
	profile, err := s.load(ctx, userID, email)
	if err != nil {
		return nil, err
	}
	profile.EmailsPaused = paused
	return s.save(ctx, profile)
}

func (s *profileService) RecentDigests(ctx context.Context, userID string) ([]*dto.DigestResponse, error) {
	digests, err := s.digestRepo.FindRecent(ctx, userID, common.RecentDigestsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch digests: %w", err)
	}

	res := make([]*dto.DigestResponse, 0, len(digests))
	for _, d := range digests {
		res = append(res, &dto.DigestResponse{
			ID:      d.ID,
			Tickers: []string(d.Tickers),
			Content: d.Content,
			SentAt:  d.SentAt,
		})
	}
	return res, nil
}

func (s *profileService) mapToProfileResponse(p *entity.UserProfile) *dto.ProfileResponse {
	tickers := []string(p.Tickers)
	if tickers == nil {
		tickers = []string{}
	}
	return &dto.ProfileResponse{
		ID:                p.ID,
		Email:             p.Email,
		Tickers:           tickers,
		ScheduleFrequency: string(p.ScheduleFrequency),
		ScheduleTime:      p.ScheduleTime,
		ScheduleDays:      []string(p.ScheduleDays),
		Timezone:          p.Timezone,
		EmailsPaused:      p.EmailsPaused,
		NextDigestAt:      NextDigestAt(p, s.now()),
		UpdatedAt:         p.UpdatedAt,
	}
}

// NormalizeTickers trims and upper-cases every entry, then enforces the
// format, uniqueness and size rules of a watchlist. Order is preserved.
func NormalizeTickers(raw []string) ([]string, error) {
	if len(raw) > common.MaxTickers {
		return nil, fmt.Errorf("%w: at most %d tickers allowed", ErrInvalidTicker, common.MaxTickers)
	}

	seen := make(map[string]struct{}, len(raw))
	tickers := make([]string, 0, len(raw))
	for _, t := range raw {
		ticker := NormalizeTicker(t)
		if !dto.IsValidTicker(ticker) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTicker, t)
		}
		if _, dup := seen[ticker]; dup {
			return nil, fmt.Errorf("%w: duplicate %s", ErrInvalidTicker, ticker)
		}
		seen[ticker] = struct{}{}
		tickers = append(tickers, ticker)
	}
	return tickers, nil
}

// NormalizeTicker trims whitespace and upper-cases s.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeSchedule validates the day set against the frequency. Daily is
// always stored as monday through friday. Days come back in week order.
func NormalizeSchedule(frequency string, days []string) (entity.ScheduleFrequency, []string, error) {
	freq := entity.ScheduleFrequency(strings.ToLower(strings.TrimSpace(frequency)))
	if freq == entity.FrequencyDaily {
		return freq, append([]string(nil), utils.Weekdays...), nil
	}

	var set [7]bool
	for _, d := range days {
		wd, ok := utils.ParseDayName(d)
		if !ok {
			return "", nil, fmt.Errorf("%w: unknown day %q", ErrInvalidSchedule, d)
		}
		set[wd] = true
	}
	ordered := make([]string, 0, len(set))
	for i := time.Monday; i <= time.Saturday; i++ {
		if set[i] {
			ordered = append(ordered, utils.DayNames[i])
		}
	}
	if set[time.Sunday] {
		ordered = append(ordered, utils.DayNames[time.Sunday])
	}

	switch freq {
	case entity.FrequencyWeekly:
		if len(ordered) != 1 {
			return "", nil, fmt.Errorf("%w: weekly needs exactly one day", ErrInvalidSchedule)
		}
	case entity.FrequencyCustom:
		if len(ordered) < 2 {
			return "", nil, fmt.Errorf("%w: custom needs at least two days", ErrInvalidSchedule)
		}
	default:
		return "", nil, fmt.Errorf("%w: unknown frequency %q", ErrInvalidSchedule, frequency)
	}
	return freq, ordered, nil
}
