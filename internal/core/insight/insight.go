// Package insight turns scores and competitors into deterministic
// natural-language findings.
package insight

import (
	"fmt"

	"github.com/luminoshq/luminos/internal/core"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 5

// Generate applies the rule table. Output is stable given identical input:
// rules fire in fixed order.
func Generate(score core.DiagnosisScore, competitors []core.CompetitorInfo, results []core.PromptResult) (insights, recommendations []string) {
	switch {
	case score.Visibility >= 70:
		insights = append(insights, fmt.Sprintf("Strong organic visibility: the brand appears in %d%% of generic consumer queries.", score.Visibility))
	case score.Visibility >= 40:
		insights = append(insights, fmt.Sprintf("Moderate organic visibility: the brand appears in %d%% of generic consumer queries.", score.Visibility))
	default:
		insights = append(insights, fmt.Sprintf("Low organic visibility: the brand appears in only %d%% of generic consumer queries.", score.Visibility))
	}

	if pct, ok := positiveShare(results); ok {
		insights = append(insights, fmt.Sprintf("%d%% of brand mentions carry positive framing.", pct))
	}

	if score.Citation == 0 {
		insights = append(insights, "AI answers never cite the brand's own website as a source.")
	}

	if score.Intent < 50 && score.TotalPrompts > 0 {
		insights = append(insights, fmt.Sprintf("The brand surfaces in only %d%% of consumer query intents.", score.Intent))
	}

	if len(competitors) > 0 {
		top := competitors[0]
		insights = append(insights, fmt.Sprintf("Most-mentioned competitor: %s (%d mentions).", top.Name, top.MentionCount))
	}

	if score.Citation == 0 {
		recommendations = append(recommendations, "Publish authoritative, linkable content and structured data so AI assistants can cite your site.")
	}
	if score.Visibility < 40 {
		recommendations = append(recommendations, "Build category-level content that answers generic consumer questions, not just branded ones.")
	}
	if len(competitors) > 0 && score.Visibility < 70 {
		recommendations = append(recommendations, fmt.Sprintf("Study %s's content strategy: it dominates the generic queries where you are absent.", competitors[0].Name))
	}
	if score.Representation < 60 && score.MentionedCount > 0 {
		recommendations = append(recommendations, "Address negative or lukewarm framing: strengthen reviews, case studies, and third-party validation.")
	}
	if score.Intent < 50 {
		recommendations = append(recommendations, "Broaden content across consumer intents (discovery, comparison, purchase) to widen intent coverage.")
	}
	if score.Visibility >= 70 && score.Citation > 0 {
		recommendations = append(recommendations, "Maintain momentum: keep category content fresh so assistants keep surfacing the brand.")
	}

	if len(recommendations) > MaxRecommendations {
		recommendations = recommendations[:MaxRecommendations]
	}
	return insights, recommendations
}

// positiveShare returns the percentage of mentioned results with positive
// sentiment, and false when nothing was mentioned.
func positiveShare(results []core.PromptResult) (int, bool) {
	mentioned, positive := 0, 0
	for _, r := range results {
		if !r.Mentioned {
			continue
		}
		mentioned++
		if r.Sentiment == core.SentimentPositive {
			positive++
		}
	}
	if mentioned == 0 {
		return 0, false
	}
	return 100 * positive / mentioned, true
}
