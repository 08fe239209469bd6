package mail

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang-stock-digest/internal/digest/dto"
)

func sampleStock(ticker string) *dto.StockResearchResult {
	return &dto.StockResearchResult{
		Ticker:       ticker,
		CompanyName:  ticker + " Inc.",
		CurrentPrice: "$187.20",
		PriceChange: dto.PriceChange{
			Day:   "+1.2%",
			Week:  "-3.4%",
			Month: "0.0%",
		},
		Sentiment:           dto.SentimentBullish,
		KeyEvents:           []string{"Beat earnings", "Raised guidance"},
		CompetitiveDynamics: "Gaining share in cloud",
		InsiderActivity:     "No significant activity",
		AnalystActions:      "Two upgrades",
		UpcomingCatalysts:   "N/A",
		Summary:             "Strong quarter.",
	}
}

func render(t *testing.T, stocks ...*dto.StockResearchResult) *goquery.Document {
	t.Helper()
	html, err := RenderDigest(DigestData{
		Email:  "jane.doe@example.com",
		AppURL: "https://stocksummaries.app/",
		Stocks: stocks,
		Now:    time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestRenderDigest_Layout(t *testing.T) {
	doc := render(t, sampleStock("AAPL"), sampleStock("MSFT"))

	assert.Equal(t, "Hey jane.doe 👋", strings.TrimSpace(doc.Find(".greeting").Text()))
	assert.Equal(t, "Your stock digest: AAPL, MSFT", doc.Find(".preview").Text())
	assert.Equal(t, 2, doc.Find(".stock").Length())
	assert.Equal(t, 1, doc.Find(".stock-divider").Length())

	href, ok := doc.Find("a.manage").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "https://stocksummaries.app/dashboard", href)
	assert.Contains(t, doc.Find(".copyright").Text(), "© 2026 Stock Summaries")
}

func TestRenderDigest_StockSection(t *testing.T) {
	doc := render(t, sampleStock("AAPL"))
	stock := doc.Find(`.stock[data-ticker="AAPL"]`)
	require.Equal(t, 1, stock.Length())

	assert.Equal(t, "AAPL Inc.", stock.Find(".company").Text())
	assert.Equal(t, "$187.20", stock.Find(".price").Text())
	assert.Equal(t, "+1.2% today", stock.Find(".change-day").Text())
	assert.Contains(t, stock.Find(".sentiment").Text(), "📈 bullish")

	badgeStyle, _ := stock.Find(".sentiment").Attr("style")
	assert.Contains(t, badgeStyle, "background-color:#10B981")
	dayStyle, _ := stock.Find(".change-day").Attr("style")
	assert.Contains(t, dayStyle, "color:#10B981")
	weekStyle, _ := stock.Find(".change-week").Attr("style")
	assert.Contains(t, weekStyle, "color:#EF4444")
	monthStyle, _ := stock.Find(".change-month").Attr("style")
	assert.Contains(t, monthStyle, "color:#6B7280")

	assert.Equal(t, 2, stock.Find(".bullet").Length())
	assert.Equal(t, 1, stock.Find(`[data-section="key-events"]`).Length())
	assert.Equal(t, 1, stock.Find(`[data-section="analyst-actions"]`).Length())
	assert.Equal(t, 1, stock.Find(`[data-section="competitive-dynamics"]`).Length())
	assert.Equal(t, 0, stock.Find(`[data-section="insider-activity"]`).Length())
	assert.Equal(t, 0, stock.Find(`[data-section="upcoming-catalysts"]`).Length())
}

func TestRenderDigest_FallbackHidesDetails(t *testing.T) {
	doc := render(t, dto.FallbackResearchResult("TSLA"))

	assert.Equal(t, 0, doc.Find(".detail").Length())
	assert.Contains(t, doc.Find(".sentiment").Text(), "neutral")
	assert.Equal(t, "N/A today", doc.Find(".change-day").Text())
}

func TestRenderDigest_EscapesContent(t *testing.T) {
	s := sampleStock("AAPL")
	s.Summary = `<script>alert("x")</script>`

	html, err := RenderDigest(DigestData{Email: "a@b.c", AppURL: "https://x.test", Stocks: []*dto.StockResearchResult{s}})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "Your Stock Digest: AAPL, MSFT", Subject([]*dto.StockResearchResult{sampleStock("AAPL"), sampleStock("MSFT")}))
	assert.Equal(t, "Hey there", Greeting(""))
	assert.Equal(t, "Hey bob", Greeting("bob@example.com"))

	assert.EqualValues(t, "#EF4444", SentimentColor(dto.SentimentBearish))
	assert.EqualValues(t, "#6B7280", SentimentColor("mixed"))
	assert.Equal(t, "📉", SentimentEmoji(dto.SentimentBearish))
	assert.Equal(t, "➡️", SentimentEmoji(dto.SentimentNeutral))

	assert.False(t, ShowKeyEvents(nil))
	assert.False(t, ShowKeyEvents([]string{"Unable to fetch data", "other"}))
	assert.True(t, ShowKeyEvents([]string{"Earnings"}))
	assert.False(t, ShowDetail("N/A", "None imminent"))
	assert.False(t, ShowDetail("None imminent", "None imminent"))
	assert.True(t, ShowDetail("FDA decision Friday", "None imminent"))
}
