package repository

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/dto"
)

// ResearchRepository produces a research summary for one ticker.
type ResearchRepository interface {
	Research(ctx context.Context, ticker string, since *time.Time) (*dto.StockResearchResult, error)
}

var codeFencePattern = regexp.MustCompile("```json\\n?|\\n?```")

// StripCodeFences removes markdown json fences the model sometimes adds.
func StripCodeFences(content string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(content, ""))
}

// ParseResearchContent turns raw model output into a result. Content that is
// empty, not valid JSON, or carries neither a company name nor a summary
// yields the fallback result for ticker.
func ParseResearchContent(ticker, content string) (*dto.StockResearchResult, bool) {
	cleaned := StripCodeFences(content)
	if cleaned == "" {
		return dto.FallbackResearchResult(ticker), false
	}

	var result dto.StockResearchResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return dto.FallbackResearchResult(ticker), false
	}
	if strings.TrimSpace(result.Summary) == "" && strings.TrimSpace(result.CompanyName) == "" {
		return dto.FallbackResearchResult(ticker), false
	}
	if result.Ticker == "" {
		result.Ticker = ticker
	}
	return &result, true
}
