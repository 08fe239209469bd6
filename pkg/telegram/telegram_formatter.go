package telegram

import (
	"fmt"
	"strings"

	"golang-stock-digest/internal/digest/dto"
)

const maxMessageLen = 4090

// FormatCycleReportForTelegram renders an operator summary of a digest cycle.
// It returns an empty string when every user succeeded.
func FormatCycleReportForTelegram(report *dto.CycleReport) string {
	if report == nil {
		return ""
	}

	var failed []string
	succeeded := 0
	for _, r := range report.Results {
		switch r.Status {
		case dto.StatusError:
			failed = append(failed, r.UserID)
		case dto.StatusSuccess:
			succeeded++
		}
	}
	if len(failed) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("⚠️ *Digest cycle finished with errors*\n\n")
	b.WriteString(fmt.Sprintf("🕒 *Slot:* %s %s UTC\n", report.Day, report.Time))
	b.WriteString(fmt.Sprintf("👥 *Processed:* %d\n", report.UsersProcessed))
	b.WriteString(fmt.Sprintf("🟢 *Sent:* %d\n", succeeded))
	b.WriteString(fmt.Sprintf("🔴 *Failed:* %d\n\n", len(failed)))

	for _, id := range failed {
		line := fmt.Sprintf("• `%s`\n", id)
		if b.Len()+len(line) > maxMessageLen {
			b.WriteString("…")
			break
		}
		b.WriteString(line)
	}

	return b.String()
}
