package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/repository"
	"golang-stock-digest/internal/entity"
	"golang-stock-digest/pkg/logger"
	"golang-stock-digest/pkg/telegram"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DigestService runs scheduled digest cycles and on-demand sends.
type DigestService interface {
	RunDigestCycle(ctx context.Context, now time.Time) (*dto.CycleReport, error)
	SendNow(ctx context.Context, userID, email string) ([]string, error)
}

// DigestOptions tunes the orchestrator.
type DigestOptions struct {
	// DeduplicateSlot skips users already handled in the current slot.
	DeduplicateSlot bool
}

// NewDigestService creates a new digest service.
func NewDigestService(
	profileRepo repository.ProfileRepository,
	digestRepo repository.DigestRepository,
	researchSvc ResearchService,
	mailer Mailer,
	slotGuard SlotGuard,
	notifier telegram.Notifier,
	logger *logger.Logger,
	opts DigestOptions,
) DigestService {
	if slotGuard == nil {
		slotGuard = NewNopSlotGuard()
	}
	if notifier == nil {
		notifier = telegram.NewNopNotifier()
	}
	return &digestService{
		profileRepo: profileRepo,
		digestRepo:  digestRepo,
		researchSvc: researchSvc,
		mailer:      mailer,
		slotGuard:   slotGuard,
		notifier:    notifier,
		logger:      logger,
		opts:        opts,
		now:         time.Now,
	}
}

type digestService struct {
	profileRepo repository.ProfileRepository
	digestRepo  repository.DigestRepository
	researchSvc ResearchService
	mailer      Mailer
	slotGuard   SlotGuard
	notifier    telegram.Notifier
	logger      *logger.Logger
	opts        DigestOptions
	now         func() time.Time
}

// RunDigestCycle sends a digest to every profile due at now. Users are handled
// one after another and a failing user never stops the cycle.
func (s *digestService) RunDigestCycle(ctx context.Context, now time.Time) (*dto.CycleReport, error) {
	slot := NewSlot(now)
	from, to := slot.Window()

	s.logger.Info("Running digest cycle",
		logger.StringField("time", slot.Time),
		logger.StringField("day", slot.Day))

	candidates, err := s.profileRepo.FindScheduled(ctx, slot.Day, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheduled profiles: %w", err)
	}

	profiles := make([]entity.UserProfile, 0, len(candidates))
	for i := range candidates {
		if slot.Matches(&candidates[i]) {
			profiles = append(profiles, candidates[i])
		}
	}

	report := &dto.CycleReport{
		Time:           slot.Time,
		Day:            slot.Day,
		UsersProcessed: len(profiles),
	}
	if len(profiles) == 0 {
		report.Message = dto.MessageNoUsersScheduled
		return report, nil
	}

	report.Message = dto.MessageCycleCompleted
	report.Results = make([]dto.UserResult, 0, len(profiles))
	for i := range profiles {
		report.Results = append(report.Results, s.processUser(ctx, &profiles[i], slot))
	}

	s.notifyFailures(report)
	return report, nil
}

func (s *digestService) processUser(ctx context.Context, profile *entity.UserProfile, slot Slot) dto.UserResult {
	result := dto.UserResult{UserID: profile.ID}

	lastSentAt, err := s.digestRepo.LastSentAt(ctx, profile.ID)
	if err != nil {
		s.logger.Error("Failed to fetch last digest", logger.ErrorField(err), logger.StringField("user_id", profile.ID))
		result.Status = dto.StatusError
		return result
	}

	if s.opts.DeduplicateSlot {
		if lastSentAt != nil && slot.InSameHour(*lastSentAt) {
			result.Status = dto.StatusSkipped
			return result
		}
		claimed, err := s.slotGuard.Claim(ctx, profile.ID, slot)
		if err != nil {
			s.logger.Error("Failed to claim slot", logger.ErrorField(err), logger.StringField("user_id", profile.ID))
			result.Status = dto.StatusError
			return result
		}
		if !claimed {
			result.Status = dto.StatusSkipped
			return result
		}
	}

	if err := s.deliver(ctx, profile.ID, profile.Email, profile.Tickers, lastSentAt, true); err != nil {
		s.logger.Error("Failed to process user", logger.ErrorField(err), logger.StringField("user_id", profile.ID))
		if s.opts.DeduplicateSlot {
			if relErr := s.slotGuard.Release(ctx, profile.ID, slot); relErr != nil {
				s.logger.Warn("Failed to release slot", logger.ErrorField(relErr), logger.StringField("user_id", profile.ID))
			}
		}
		result.Status = dto.StatusError
		return result
	}

	count := len(profile.Tickers)
	result.Status = dto.StatusSuccess
	result.Tickers = &count
	return result
}

// SendNow researches and mails the caller's watchlist immediately to email,
// or to the stored address when email is empty. The pause flag is ignored. A
// failure to record the digest is logged only.
func (s *digestService) SendNow(ctx context.Context, userID, email string) ([]string, error) {
	profile, err := s.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if profile == nil || len(profile.Tickers) == 0 {
		return nil, ErrNoTickers
	}
	if email == "" {
		email = profile.Email
	}

	lastSentAt, err := s.digestRepo.LastSentAt(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch last digest: %w", err)
	}

	if err := s.deliver(ctx, userID, email, profile.Tickers, lastSentAt, false); err != nil {
		return nil, err
	}
	return []string(profile.Tickers), nil
}

// deliver runs research, mail and persist for one user. When strictPersist is
// false a persist failure is only logged, since the email already went out.
func (s *digestService) deliver(ctx context.Context, userID, email string, tickers []string, since *time.Time, strictPersist bool) error {
	results, err := s.researchSvc.ResearchMultiple(ctx, tickers, since)
	if err != nil {
		return err
	}

	messageID, err := s.mailer.Send(ctx, email, results)
	if err != nil {
		return err
	}

	digest, err := buildDigest(userID, tickers, results, s.now())
	if err == nil {
		err = s.digestRepo.Create(ctx, digest)
	}
	if err != nil {
		if strictPersist {
			return fmt.Errorf("failed to save digest: %w", err)
		}
		s.logger.Error("Failed to save digest", logger.ErrorField(err), logger.StringField("user_id", userID))
	}

	s.logger.Info("Digest sent",
		logger.StringField("user_id", userID),
		logger.StringField("message_id", messageID),
		logger.StringsField("tickers", tickers))
	return nil
}

func buildDigest(userID string, tickers []string, results []*dto.StockResearchResult, sentAt time.Time) (*entity.Digest, error) {
	payload, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal research results: %w", err)
	}
	return &entity.Digest{
		ID:      uuid.NewString(),
		UserID:  userID,
		Tickers: append([]string(nil), tickers...),
		Content: DigestContent(results),
		Results: datatypes.JSON(payload),
		SentAt:  sentAt.UTC(),
	}, nil
}

// DigestContent joins "TICKER: summary" pairs with blank lines.
func DigestContent(results []*dto.StockResearchResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Ticker, r.Summary))
	}
	return strings.Join(parts, "\n\n")
}

func (s *digestService) notifyFailures(report *dto.CycleReport) {
	msg := telegram.FormatCycleReportForTelegram(report)
	if msg == "" {
		return
	}
	if err := s.notifier.SendMessage(msg); err != nil {
		s.logger.Warn("Failed to send operator notification", logger.ErrorField(err))
	}
}
