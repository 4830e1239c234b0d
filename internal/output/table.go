package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/luminoshq/luminos/internal/core"
	"github.com/luminoshq/luminos/internal/core/store"
)

// TableFormatter renders a diagnosis as ASCII tables.
type TableFormatter struct{}

// FormatDiagnosis renders the scorecard, per-prompt results, competitors,
// and the narrative sections.
func (f *TableFormatter) FormatDiagnosis(rec *core.DiagnosisRecord) (string, error) {
	if rec == nil {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Brand: %s (%s, %s tier)\n",
		rec.Profile.Name, rec.Profile.Category, tierLabel(rec.Pro)))
	if rec.Profile.Domain != "" {
		sb.WriteString(fmt.Sprintf("Domain: %s\n", rec.Profile.Domain))
	}
	sb.WriteString("\n")

	sb.WriteString(scorecardTable(rec.Score))
	sb.WriteString("\n")
	sb.WriteString(resultsTable(rec.Results))

	if len(rec.Competitors) > 0 {
		sb.WriteString("\n")
		sb.WriteString(competitorsTable(rec.Competitors))
	}

	sb.WriteString(bulletList("Insights:", rec.Insights))
	sb.WriteString(bulletList("Recommendations:", rec.Recommendations))

	return sb.String(), nil
}

func scorecardTable(score core.DiagnosisScore) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Dimension", "Score"})
	t.AppendRow(table.Row{"Visibility", score.Visibility})
	t.AppendRow(table.Row{"Representation", score.Representation})
	t.AppendRow(table.Row{"Intent coverage", score.Intent})
	t.AppendRow(table.Row{"Citation", score.Citation})
	t.AppendFooter(table.Row{"Composite", score.Composite})

	rendered := t.Render()

	if len(score.PerProviderScores) > 0 {
		rendered += "\n\nPer provider:\n"
		for _, provider := range score.ProvidersUsed {
			ps, ok := score.PerProviderScores[provider]
			if !ok {
				continue
			}
			rendered += fmt.Sprintf("  %-8s %3d%% mention rate (%d/%d)\n",
				provider, ps.MentionRate*100, ps.MentionedCount, ps.ResultCount)
		}
	}

	return rendered
}

func resultsTable(results []core.PromptResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Prompt", "Kind", "Provider", "Mentioned", "Rank", "Sentiment", "Citation"})

	for _, r := range results {
		t.AppendRow(table.Row{
			truncatePrompt(r.Prompt),
			string(r.Kind),
			r.Provider,
			mentionLabel(r.Mentioned),
			rankLabel(r.Rank),
			string(r.Sentiment),
			citationLabel(r),
		})
	}

	return t.Render()
}

func competitorsTable(competitors []core.CompetitorInfo) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Competitor", "Mentions", "Avg Rank", "Sentiment", "Why"})

	for _, c := range competitors {
		t.AppendRow(table.Row{
			c.Name,
			c.MentionCount,
			avgRankLabel(c.AvgRank),
			string(c.Sentiment),
			c.WhyMentioned,
		})
	}

	return t.Render()
}

// FormatSummaries renders stored diagnosis summaries as a table.
func FormatSummaries(summaries []store.DiagnosisSummary) string {
	if len(summaries) == 0 {
		return "No diagnoses recorded."
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "Brand", "Domain", "Tier", "Composite", "Created"})

	for _, s := range summaries {
		t.AppendRow(table.Row{
			s.ID,
			s.BrandName,
			s.Domain,
			tierLabel(s.Pro),
			s.Composite,
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return t.Render()
}
