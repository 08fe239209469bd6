package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidTicker(t *testing.T) {
	valid := []string{"A", "AAPL", "GOOGL", "BRK"}
	for _, s := range valid {
		assert.True(t, IsValidTicker(s), s)
	}

	invalid := []string{"", "aapl", "TOOLONG", "BRK.B", "AB1", " AAPL", "AAPL\n", "ÄPL"}
	for _, s := range invalid {
		assert.False(t, IsValidTicker(s), s)
	}
}

func TestFallbackResearchResult(t *testing.T) {
	r := FallbackResearchResult("TSLA")

	assert.Equal(t, "TSLA", r.Ticker)
	assert.Equal(t, "TSLA", r.CompanyName)
	assert.Equal(t, "N/A", r.CurrentPrice)
	assert.Equal(t, PriceChange{Day: "N/A", Week: "N/A", Month: "N/A"}, r.PriceChange)
	assert.Equal(t, SentimentNeutral, r.Sentiment)
	assert.Equal(t, []string{"Unable to fetch data"}, r.KeyEvents)
	assert.Equal(t, "N/A", r.CompetitiveDynamics)
	assert.Equal(t, "N/A", r.InsiderActivity)
	assert.Equal(t, "N/A", r.AnalystActions)
	assert.Equal(t, "N/A", r.UpcomingCatalysts)
	assert.Equal(t, "Unable to generate summary. Please try again later.", r.Summary)
}
