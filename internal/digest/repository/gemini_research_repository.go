package repository

import (
	"context"
	"fmt"
	"time"

	"golang-stock-digest/internal/digest/config"
	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/pkg/logger"

	"google.golang.org/genai"
)

// geminiResearchRepository is a ResearchRepository that uses the Google Gemini API.
type geminiResearchRepository struct {
	genAiClient *genai.Client
	cfg         config.Gemini
	headlines   HeadlineRepository
	logger      *logger.Logger
}

// NewGeminiResearchRepository creates a ResearchRepository backed by Gemini.
func NewGeminiResearchRepository(cfg config.Gemini, genAiClient *genai.Client, headlines HeadlineRepository, log *logger.Logger) ResearchRepository {
	return &geminiResearchRepository{
		genAiClient: genAiClient,
		cfg:         cfg,
		headlines:   headlines,
		logger:      log,
	}
}

func (r *geminiResearchRepository) Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error) {
	prompt := BuildResearchPrompt(ticker, since, fetchHeadlines(ctx, r.headlines, r.logger, ticker, since))

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	generateConfig := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(r.cfg.Temperature)),
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	r.logger.Debug("Sending request to Gemini API", logger.StringField("model", r.cfg.Model), logger.StringField("ticker", ticker))

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Model, contents, generateConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	result, ok := ParseResearchContent(ticker, resp.Text())
	if !ok {
		r.logger.Warn("Unparseable research response, using fallback", logger.StringField("ticker", ticker))
	}
	return result, nil
}
