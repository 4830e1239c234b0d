// Package evaluate runs the prompt battery across providers and analyzes
// the raw answers.
package evaluate

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
)

const snippetCap = 200

// Fixed vocabulary for the heuristic classifiers. Matching is
// case-insensitive substring containment.
var (
	positiveWords = []string{
		"best", "top", "excellent", "quality", "premium",
		"trusted", "popular", "recommended", "great", "love",
	}
	negativeWords = []string{
		"cheap", "poor", "bad", "worst", "avoid",
		"overpriced", "disappointing",
	}
	disclaimerPhrases = []string{
		"i don't have", "i do not have", "not familiar with",
		"insufficient information", "i'm not aware", "i am not aware",
		"no information", "couldn't find", "could not find",
	}
	substantivePhrases = []string{
		"known for", "specializes in", "founded", "offers",
		"based in", "flagship",
	}
)

var (
	rankRe = regexp.MustCompile(`^\s*(?:#+\s*)?(\d+)[.)]\s`)
	urlRe  = regexp.MustCompile(`https?://[^\s<>)\]}"']+`)
)

// Analyze derives a PromptResult from one raw answer. It is pure and never
// fails: malformed input degrades to "not mentioned".
func Analyze(brandName, domain string, spec core.PromptSpec, providerID, answer string) core.PromptResult {
	result := core.PromptResult{
		Prompt:    spec.Text,
		Intent:    spec.Intent,
		Kind:      spec.Kind,
		Provider:  providerID,
		Sentiment: core.SentimentAbsent,
	}
	if answer == "" {
		return result
	}

	lower := strings.ToLower(answer)
	mentioned := containsBrand(lower, brandName)

	// A brand-specific prompt already contains the name, so an echo is
	// only a genuine mention when the answer shows actual knowledge.
	if mentioned && spec.Kind == core.KindBrandSpecific && disclaimedWithoutKnowledge(lower) {
		mentioned = false
	}

	result.Mentioned = mentioned
	result.HasCitation = hasCitation(lower, brandName, domain)
	if !mentioned {
		return result
	}

	line := mentionLine(answer, brandName)
	result.Rank = extractRank(line)
	result.Sentiment = classifySentiment(line, answer)
	result.Snippet = truncate(strings.TrimSpace(line), snippetCap)
	return result
}

// FailureResult is the degraded result for a task whose provider call
// failed.
func FailureResult(spec core.PromptSpec, providerID string, err error) core.PromptResult {
	msg := "error"
	if err != nil {
		msg = err.Error()
	}
	return core.PromptResult{
		Prompt:    spec.Text,
		Intent:    spec.Intent,
		Kind:      spec.Kind,
		Provider:  providerID,
		Sentiment: core.SentimentAbsent,
		Snippet:   truncate("error: "+msg, 120),
	}
}

// NormalizeBrand lowercases and strips separators, so "Open AI" also
// matches "OpenAI".
func NormalizeBrand(name string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		switch r {
		case ' ', '-', '_', '.', ',', '\'':
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func containsBrand(lowerAnswer, brandName string) bool {
	name := strings.ToLower(strings.TrimSpace(brandName))
	if name == "" {
		return false
	}
	if strings.Contains(lowerAnswer, name) {
		return true
	}
	normalized := NormalizeBrand(brandName)
	return normalized != "" && strings.Contains(NormalizeBrand(lowerAnswer), normalized)
}

func disclaimedWithoutKnowledge(lowerAnswer string) bool {
	disclaimed := false
	for _, phrase := range disclaimerPhrases {
		if strings.Contains(lowerAnswer, phrase) {
			disclaimed = true
			break
		}
	}
	if !disclaimed {
		return false
	}
	for _, phrase := range substantivePhrases {
		if strings.Contains(lowerAnswer, phrase) {
			return false
		}
	}
	return true
}

// mentionLine returns the first line containing the brand mention, or the
// whole answer when no single line isolates it.
func mentionLine(answer, brandName string) string {
	for _, line := range strings.Split(answer, "\n") {
		if containsBrand(strings.ToLower(line), brandName) {
			return line
		}
	}
	return answer
}

func extractRank(line string) *int {
	m := rankRe.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	rank := 0
	for _, c := range m[1] {
		rank = rank*10 + int(c-'0')
	}
	if rank == 0 {
		return nil
	}
	return &rank
}

func classifySentiment(line, answer string) core.Sentiment {
	pos, neg := countWords(strings.ToLower(line))
	if pos == 0 && neg == 0 {
		pos, neg = countWords(strings.ToLower(answer))
	}
	switch {
	case pos > neg:
		return core.SentimentPositive
	case neg > pos:
		return core.SentimentNegative
	default:
		return core.SentimentNeutral
	}
}

func countWords(lower string) (pos, neg int) {
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	return pos, neg
}

func hasCitation(lowerAnswer, brandName, domain string) bool {
	fragments := citationFragments(brandName, domain)
	if len(fragments) == 0 {
		return false
	}
	for _, match := range urlRe.FindAllString(lowerAnswer, -1) {
		host := match
		if u, err := url.Parse(match); err == nil && u.Host != "" {
			host = u.Host
		}
		for _, frag := range fragments {
			if strings.Contains(host, frag) {
				return true
			}
		}
	}
	return false
}

func citationFragments(brandName, domain string) []string {
	var frags []string
	if d := strings.ToLower(strings.TrimSpace(domain)); d != "" {
		if idx := strings.Index(d, "://"); idx >= 0 {
			d = d[idx+3:]
		}
		d = strings.TrimPrefix(d, "www.")
		if idx := strings.IndexAny(d, "/:"); idx >= 0 {
			d = d[:idx]
		}
		if d != "" {
			frags = append(frags, d)
		}
	}
	if n := NormalizeBrand(brandName); n != "" {
		frags = append(frags, n)
	}
	return frags
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
