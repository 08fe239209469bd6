package repository

import (
	"fmt"
	"strings"
	"time"
)

// SystemPrompt is sent as the system message with every research request.
const SystemPrompt = "You are a financial research assistant that provides concise, factual stock analysis. Always respond with valid JSON only, no markdown code blocks."

// ResearchPeriod describes the window the research should cover.
func ResearchPeriod(since *time.Time) string {
	if since == nil {
		return "in the past week"
	}
	return "since " + since.UTC().Format("2006-01-02")
}

// BuildResearchPrompt renders the research instructions for one ticker.
// Headlines, when present, are appended as extra context.
func BuildResearchPrompt(ticker string, since *time.Time, headlines []Headline) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf(`You are a no-BS financial analyst. Research %s and provide a concise, actionable summary of everything important that happened %s.

Cut through the noise. I don't want fluff or speculation - just facts and significant developments.

Cover these areas if there's anything noteworthy:

1. **Price Action**: Current share price, %% change today, week-to-date, and month-to-date
2. **Key Events**: Earnings, guidance changes, product launches, partnerships, regulatory news
3. **Insider Activity**: Any significant insider buys or sells (include names and amounts if material)
4. **Analyst Actions**: Upgrades, downgrades, price target changes (only significant ones)
5. **Competitive Dynamics**: Market share shifts, competitor moves affecting this company
6. **Upcoming Catalysts**: Earnings dates, FDA decisions, product releases, etc.
`, ticker, ResearchPeriod(since)))

	if len(headlines) > 0 {
		b.WriteString("\nRecent headlines for reference (verify before relying on them):\n")
		for _, h := range headlines {
			if h.PublishedAt != nil {
				b.WriteString(fmt.Sprintf("- [%s] %s\n", h.PublishedAt.UTC().Format("2006-01-02"), h.Title))
			} else {
				b.WriteString(fmt.Sprintf("- %s\n", h.Title))
			}
		}
	}

	b.WriteString(fmt.Sprintf(`
Format your response as JSON with this structure:
{
  "ticker": "%s",
  "companyName": "Full company name",
  "currentPrice": "$XXX.XX",
  "priceChange": {
    "day": "+X.X%%",
    "week": "+X.X%%",
    "month": "+X.X%%"
  },
  "sentiment": "bullish" | "bearish" | "neutral",
  "keyEvents": ["Event 1", "Event 2"],
  "competitiveDynamics": "Brief summary or 'No significant changes'",
  "insiderActivity": "Brief summary or 'No significant activity'",
  "analystActions": "Brief summary or 'No significant actions'",
  "upcomingCatalysts": "Brief summary or 'None imminent'",
  "summary": "2-3 sentence bottom line summary"
}

Be direct. Be useful. Skip anything that doesn't matter.`, ticker))

	return b.String()
}
