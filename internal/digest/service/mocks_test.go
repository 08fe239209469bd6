package service

import (
	"context"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/entity"

	"github.com/stretchr/testify/mock"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*entity.UserProfile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) FindScheduled(ctx context.Context, day, from, to string) ([]entity.UserProfile, error) {
	args := m.Called(ctx, day, from, to)
	p, _ := args.Get(0).([]entity.UserProfile)
	return p, args.Error(1)
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *entity.UserProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockDigestRepository struct {
	mock.Mock
}

func (m *mockDigestRepository) Create(ctx context.Context, digest *entity.Digest) error {
	return m.Called(ctx, digest).Error(0)
}

func (m *mockDigestRepository) LastSentAt(ctx context.Context, userID string) (*time.Time, error) {
	args := m.Called(ctx, userID)
	t, _ := args.Get(0).(*time.Time)
	return t, args.Error(1)
}

func (m *mockDigestRepository) FindRecent(ctx context.Context, userID string, limit int) ([]entity.Digest, error) {
	args := m.Called(ctx, userID, limit)
	d, _ := args.Get(0).([]entity.Digest)
	return d, args.Error(1)
}

type mockResearchRepository struct {
	mock.Mock
}

func (m *mockResearchRepository) Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error) {
	args := m.Called(ctx, ticker, since)
	r, _ := args.Get(0).(*dto.StockResearchResult)
	return r, args.Error(1)
}

type mockResearchService struct {
	mock.Mock
}

func (m *mockResearchService) Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error) {
	args := m.Called(ctx, ticker, since)
	r, _ := args.Get(0).(*dto.StockResearchResult)
	return r, args.Error(1)
}

func (m *mockResearchService) ResearchMultiple(ctx context.Context, tickers []string, since *time.Time) ([]*dto.StockResearchResult, error) {
	args := m.Called(ctx, tickers, since)
	r, _ := args.Get(0).([]*dto.StockResearchResult)
	return r, args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to string, results []*dto.StockResearchResult) (string, error) {
	args := m.Called(ctx, to, results)
	return args.String(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendMessage(text string) error {
	return m.Called(text).Error(0)
}

type mockSlotGuard struct {
	mock.Mock
}

func (m *mockSlotGuard) Claim(ctx context.Context, userID string, slot Slot) (bool, error) {
	args := m.Called(ctx, userID, slot)
	return args.Bool(0), args.Error(1)
}

func (m *mockSlotGuard) Release(ctx context.Context, userID string, slot Slot) error {
	return m.Called(ctx, userID, slot).Error(0)
}

func result(ticker string) *dto.StockResearchResult {
	r := dto.FallbackResearchResult(ticker)
	r.Summary = ticker + " summary"
	return r
}

func profile(id string, tickers ...string) entity.UserProfile {
	return entity.UserProfile{
		ID:                id,
		Email:             id + "@example.com",
		Tickers:           tickers,
		ScheduleFrequency: entity.FrequencyDaily,
		ScheduleTime:      "08:00",
		ScheduleDays:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		Timezone:          "UTC",
	}
}
