package dto

import "regexp"

// Sentiment values the research model is asked to return.
const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

// Placeholder values used by the fallback result and by the model itself
// when a section has nothing to report.
const (
	NotAvailable          = "N/A"
	UnableToFetchData     = "Unable to fetch data"
	UnableToSummarize     = "Unable to generate summary. Please try again later."
	NoSignificantActivity = "No significant activity"
	NoSignificantActions  = "No significant actions"
	NoSignificantChanges  = "No significant changes"
	NoneImminent          = "None imminent"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// IsValidTicker reports whether s is 1-5 uppercase ASCII letters.
func IsValidTicker(s string) bool {
	return tickerPattern.MatchString(s)
}

// PriceChange holds percent-change strings such as "+1.2%".
type PriceChange struct {
	Day   string `json:"day"`
	Week  string `json:"week"`
	Month string `json:"month"`
}

// StockResearchResult is the per-ticker answer produced by the research model.
type StockResearchResult struct {
	Ticker              string      `json:"ticker"`
	CompanyName         string      `json:"companyName"`
	CurrentPrice        string      `json:"currentPrice"`
	PriceChange         PriceChange `json:"priceChange"`
	Sentiment           string      `json:"sentiment"`
	KeyEvents           []string    `json:"keyEvents"`
	CompetitiveDynamics string      `json:"competitiveDynamics"`
	InsiderActivity     string      `json:"insiderActivity"`
	AnalystActions      string      `json:"analystActions"`
	UpcomingCatalysts   string      `json:"upcomingCatalysts"`
	Summary             string      `json:"summary"`
}

// FallbackResearchResult is returned when the model answer cannot be parsed.
func FallbackResearchResult(ticker string) *StockResearchResult {
	return &StockResearchResult{
		Ticker:       ticker,
		CompanyName:  ticker,
		CurrentPrice: NotAvailable,
		PriceChange: PriceChange{
			Day:   NotAvailable,
			Week:  NotAvailable,
			Month: NotAvailable,
		},
		Sentiment:           SentimentNeutral,
		KeyEvents:           []string{UnableToFetchData},
		CompetitiveDynamics: NotAvailable,
		InsiderActivity:     NotAvailable,
		AnalystActions:      NotAvailable,
		UpcomingCatalysts:   NotAvailable,
		Summary:             UnableToSummarize,
	}
}

// ResearchTestRequest is the body of the single-ticker research endpoint.
type ResearchTestRequest struct {
	Ticker string `json:"ticker"`
}
