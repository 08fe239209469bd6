package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang-stock-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResearchMultiple_KeepsOrder(t *testing.T) {
	repo := new(mockResearchRepository)
	since := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	repo.On("Research", mock.Anything, "AAPL", &since).
		After(20*time.Millisecond).Return(result("AAPL"), nil)
	repo.On("Research", mock.Anything, "MSFT", &since).Return(result("MSFT"), nil)
	repo.On("Research", mock.Anything, "NVDA", &since).Return(result("NVDA"), nil)

	svc := NewResearchService(repo, logger.NewNop())
	results, err := svc.ResearchMultiple(context.Background(), []string{"AAPL", "MSFT", "NVDA"}, &since)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "AAPL", results[0].Ticker)
	assert.Equal(t, "MSFT", results[1].Ticker)
	assert.Equal(t, "NVDA", results[2].Ticker)
	repo.AssertExpectations(t)
}

func TestResearchMultiple_AllOrNothing(t *testing.T) {
	repo := new(mockResearchRepository)
	upstream := errors.New("provider unavailable")

	repo.On("Research", mock.Anything, "AAPL", (*time.Time)(nil)).Return(result("AAPL"), nil)
	repo.On("Research", mock.Anything, "MSFT", (*time.Time)(nil)).Return(nil, upstream)

	svc := NewResearchService(repo, logger.NewNop())
	results, err := svc.ResearchMultiple(context.Background(), []string{"AAPL", "MSFT"}, nil)
	assert.ErrorIs(t, err, upstream)
	assert.Nil(t, results)
}

func TestResearchMultiple_Empty(t *testing.T) {
	svc := NewResearchService(new(mockResearchRepository), logger.NewNop())
	results, err := svc.ResearchMultiple(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
