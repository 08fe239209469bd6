package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/config"
	"golang-stock-digest/internal/digest/dto"
	"golang-stock-digest/pkg/logger"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// grokResearchRepository talks to the OpenAI-compatible x.ai chat API.
type grokResearchRepository struct {
	client    *http.Client
	cfg       config.Grok
	headlines HeadlineRepository
	logger    *logger.Logger
}

// NewGrokResearchRepository creates a ResearchRepository backed by Grok.
// headlines may be nil.
func NewGrokResearchRepository(cfg config.Grok, headlines HeadlineRepository, log *logger.Logger, client *http.Client) ResearchRepository {
	if client == nil {
		client = &http.Client{Timeout: 90 * time.Second}
	}
	return &grokResearchRepository{
		client:    client,
		cfg:       cfg,
		headlines: headlines,
		logger:    log,
	}
}

func (r *grokResearchRepository) Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error) {
	prompt := BuildResearchPrompt(ticker, since, fetchHeadlines(ctx, r.headlines, r.logger, ticker, since))

	content, err := r.sendRequest(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result, ok := ParseResearchContent(ticker, content)
	if !ok {
		r.logger.Warn("Unparseable research response, using fallback", logger.StringField("ticker", ticker))
	}
	return result, nil
}

func (r *grokResearchRepository) sendRequest(ctx context.Context, prompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: r.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: r.cfg.Temperature,
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	endpoint := strings.TrimRight(r.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return "", fmt.Errorf("failed to create new http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.APIKey))

	r.logger.Debug("Sending request to Grok API", logger.StringField("url", endpoint), logger.StringField("model", r.cfg.Model))

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request to Grok API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.Error("Grok API returned non-200 status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("response_body", string(body)))
		return "", fmt.Errorf("grok API returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to unmarshal Grok response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// fetchHeadlines returns nil when headlines are disabled or the feed fails.
func fetchHeadlines(ctx context.Context, repo HeadlineRepository, log *logger.Logger, ticker string, since *time.Time) []Headline {
	if repo == nil {
		return nil
	}
	headlines, err := repo.Recent(ctx, ticker, since)
	if err != nil {
		log.Warn("Failed to fetch headlines", logger.StringField("ticker", ticker), logger.ErrorField(err))
		return nil
	}
	return headlines
}
