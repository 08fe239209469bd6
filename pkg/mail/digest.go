package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang-stock-digest/internal/digest/dto"
)

//go:embed templates/digest.html
var templateFS embed.FS

const (
	colorPositive = "#10B981"
	colorNegative = "#EF4444"
	colorNeutral  = "#6B7280"
)

var digestTemplate = template.Must(template.New("digest.html").Funcs(template.FuncMap{
	"sentimentColor": SentimentColor,
	"sentimentEmoji": SentimentEmoji,
	"changeColor":    ChangeColor,
	"showKeyEvents":  ShowKeyEvents,
	"show":           ShowDetail,
	"notLast": func(i, n int) bool {
		return i < n-1
	},
}).ParseFS(templateFS, "templates/digest.html"))

// DigestData is the input to RenderDigest.
type DigestData struct {
	Email  string
	AppURL string
	Stocks []*dto.StockResearchResult
	Now    time.Time
}

type digestView struct {
	Preview      string
	Greeting     string
	Stocks       []*dto.StockResearchResult
	DashboardURL string
	Year         int
}

// RenderDigest renders the HTML body of a digest email.
func RenderDigest(data DigestData) (string, error) {
	now := data.Now
	if now.IsZero() {
		now = time.Now()
	}

	view := digestView{
		Preview:      "Your stock digest: " + strings.Join(Tickers(data.Stocks), ", "),
		Greeting:     Greeting(data.Email),
		Stocks:       data.Stocks,
		DashboardURL: strings.TrimRight(data.AppURL, "/") + "/dashboard",
		Year:         now.Year(),
	}

	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render digest template: %w", err)
	}
	return buf.String(), nil
}

// Subject returns the email subject for the given results.
func Subject(stocks []*dto.StockResearchResult) string {
	return "Your Stock Digest: " + strings.Join(Tickers(stocks), ", ")
}

// Tickers lists the tickers of stocks in order.
func Tickers(stocks []*dto.StockResearchResult) []string {
	out := make([]string, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, s.Ticker)
	}
	return out
}

// Greeting addresses the recipient by the local part of their email.
func Greeting(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Hey there"
	}
	return "Hey " + local
}

// SentimentColor maps a sentiment to its badge color.
func SentimentColor(sentiment string) template.CSS {
	switch sentiment {
	case dto.SentimentBullish:
		return colorPositive
	case dto.SentimentBearish:
		return colorNegative
	default:
		return colorNeutral
	}
}

// SentimentEmoji maps a sentiment to its badge emoji.
func SentimentEmoji(sentiment string) string {
	switch sentiment {
	case dto.SentimentBullish:
		return "📈"
	case dto.SentimentBearish:
		return "📉"
	default:
		return "➡️"
	}
}

// ChangeColor colors a percent-change string by its sign.
func ChangeColor(change string) template.CSS {
	switch {
	case strings.HasPrefix(change, "+"):
		return colorPositive
	case strings.HasPrefix(change, "-"):
		return colorNegative
	default:
		return colorNeutral
	}
}

// ShowKeyEvents reports whether the key events section has real content.
func ShowKeyEvents(events []string) bool {
	return len(events) > 0 && events[0] != dto.UnableToFetchData
}

// ShowDetail reports whether a detail section should be rendered. Sections
// equal to "N/A" or to their own "nothing to report" sentinel are hidden.
func ShowDetail(value, sentinel string) bool {
	return value != sentinel && value != dto.NotAvailable
}
