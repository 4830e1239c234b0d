package output

import (
	"fmt"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
)

// MarkdownFormatter renders a diagnosis as markdown tables.
type MarkdownFormatter struct{}

// FormatDiagnosis renders the record as Markdown.
func (f *MarkdownFormatter) FormatDiagnosis(rec *core.DiagnosisRecord) (string, error) {
	if rec == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## %s brand visibility (%s tier)\n\n",
		escapeMarkdownCell(rec.Profile.Name), tierLabel(rec.Pro)))

	sb.WriteString("| Dimension | Score |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Visibility | %d |\n", rec.Score.Visibility))
	sb.WriteString(fmt.Sprintf("| Representation | %d |\n", rec.Score.Representation))
	sb.WriteString(fmt.Sprintf("| Intent coverage | %d |\n", rec.Score.Intent))
	sb.WriteString(fmt.Sprintf("| Citation | %d |\n", rec.Score.Citation))
	sb.WriteString(fmt.Sprintf("\n**Composite**: %d\n\n", rec.Score.Composite))

	sb.WriteString("| Prompt | Kind | Provider | Mentioned | Rank | Sentiment |\n")
	sb.WriteString("|--------|------|----------|-----------|------|-----------|\n")
	for _, r := range rec.Results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
			escapeMarkdownCell(truncatePrompt(r.Prompt)),
			escapeMarkdownCell(string(r.Kind)),
			escapeMarkdownCell(r.Provider),
			mentionLabel(r.Mentioned),
			rankLabel(r.Rank),
			escapeMarkdownCell(string(r.Sentiment)),
		))
	}

	if len(rec.Competitors) > 0 {
		sb.WriteString("\n### Competitors\n\n")
		sb.WriteString("| Name | Mentions | Avg Rank | Sentiment |\n")
		sb.WriteString("|------|----------|----------|-----------|\n")
		for _, c := range rec.Competitors {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s |\n",
				escapeMarkdownCell(c.Name),
				c.MentionCount,
				avgRankLabel(c.AvgRank),
				escapeMarkdownCell(string(c.Sentiment)),
			))
		}
	}

	if len(rec.Insights) > 0 {
		sb.WriteString("\n### Insights\n\n")
		for _, line := range rec.Insights {
			sb.WriteString("- " + escapeMarkdownCell(line) + "\n")
		}
	}

	if len(rec.Recommendations) > 0 {
		sb.WriteString("\n### Recommendations\n\n")
		for _, line := range rec.Recommendations {
			sb.WriteString("- " + escapeMarkdownCell(line) + "\n")
		}
	}

	return sb.String(), nil
}

func escapeMarkdownCell(value string) string {
	return strings.ReplaceAll(value, "|", "\\|")
}
