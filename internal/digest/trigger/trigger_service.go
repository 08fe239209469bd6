package trigger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/pkg/logger"

	"github.com/robfig/cron/v3"
)

// TriggerService periodically calls the cron endpoint of the digest service.
type TriggerService interface {
	Start(ctx context.Context)
	Fire(ctx context.Context) (*dto.CycleReport, error)
}

// NewTriggerService creates a new trigger for url firing on the cron spec.
func NewTriggerService(url, spec, secret string, timeout time.Duration, client *http.Client, logger *logger.Logger) (TriggerService, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid trigger spec %q: %w", spec, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &triggerService{
		url:      url,
		secret:   secret,
		timeout:  timeout,
		schedule: schedule,
		client:   client,
		logger:   logger,
		now:      time.Now,
	}, nil
}

type triggerService struct {
	url      string
	secret   string
	timeout  time.Duration
	schedule cron.Schedule
	client   *http.Client
	logger   *logger.Logger
	now      func() time.Time
}

// Start fires on every activation of the schedule until ctx is done.
func (s *triggerService) Start(ctx context.Context) {
	for {
		next := s.schedule.Next(s.now())
		timer := time.NewTimer(time.Until(next))
		s.logger.Debug("Next trigger scheduled", logger.Field("at", next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Trigger service stopping")
			return
		case <-timer.C:
			report, err := s.Fire(ctx)
			if err != nil {
				s.logger.Error("Failed to trigger digest cycle", logger.ErrorField(err))
				continue
			}
			s.logger.Info("Digest cycle triggered",
				logger.StringField("message", report.Message),
				logger.StringField("time", report.Time),
				logger.IntField("users_processed", report.UsersProcessed))
		}
	}
}

// Fire performs a single authenticated call to the cron endpoint.
func (s *triggerService) Fire(ctx context.Context) (*dto.CycleReport, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secret)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call cron endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cron endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var report dto.CycleReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cycle report: %w", err)
	}
	return &report, nil
}
