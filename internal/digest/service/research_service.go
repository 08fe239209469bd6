package service

import (
	"context"
	"fmt"
	"time"

	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/internal/digest/repository"
	"golang-stock-digest/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// ResearchService researches tickers through the configured provider.
type ResearchService interface {
	Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error)
	ResearchMultiple(ctx context.Context, tickers []string, since *time.Time) ([]*dto.StockResearchResult, error)
}

// NewResearchService creates a new research service.
func NewResearchService(researchRepo repository.ResearchRepository, logger *logger.Logger) ResearchService {
	return &researchService{
		researchRepo: researchRepo,
		logger:       logger,
	}
}

type researchService struct {
	researchRepo repository.ResearchRepository
	logger       *logger.Logger
}

func (s *researchService) Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error) {
	result, err := s.researchRepo.Research(ctx, ticker, since)
	if err != nil {
		return nil, fmt.Errorf("failed to research %s: %w", ticker, err)
	}
	return result, nil
}

// ResearchMultiple researches every ticker concurrently. The first failure
// cancels the rest and fails the batch. Results keep the order of tickers.
func (s *researchService) ResearchMultiple(ctx context.Context, tickers []string, since *time.Time) ([]*dto.StockResearchResult, error) {
	results := make([]*dto.StockResearchResult, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			result, err := s.Research(gctx, ticker, since)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("Researched tickers", logger.IntField("count", len(tickers)))
	return results, nil
}
