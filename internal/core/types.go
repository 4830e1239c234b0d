// Package core defines the domain types shared by the diagnosis pipeline.
package core

import "time"

// Intent tags the consumer motivation a prompt simulates.
type Intent string

const (
	IntentDiscovery      Intent = "discovery"
	IntentComparison     Intent = "comparison"
	IntentPurchaseIntent Intent = "purchase_intent"
	IntentTrend          Intent = "trend"
	IntentProblemSolving Intent = "problem_solving"
	IntentContextual     Intent = "contextual"
	IntentReputation     Intent = "reputation"
	IntentProduct        Intent = "product"
	IntentSentiment      Intent = "sentiment"
	IntentAuthority      Intent = "authority"
	IntentCustom         Intent = "custom"
)

// Intents is the closed tag set, in stable order.
var Intents = []Intent{
	IntentDiscovery,
	IntentComparison,
	IntentPurchaseIntent,
	IntentTrend,
	IntentProblemSolving,
	IntentContextual,
	IntentReputation,
	IntentProduct,
	IntentSentiment,
	IntentAuthority,
	IntentCustom,
}

// ValidIntent reports whether s is a member of the intent tag set.
func ValidIntent(s string) bool {
	for _, in := range Intents {
		if Intent(s) == in {
			return true
		}
	}
	return false
}

// PromptKind partitions prompts by whether they name the subject brand.
type PromptKind string

const (
	// KindGeneric prompts never contain the brand name; they measure
	// unprompted discovery.
	KindGeneric PromptKind = "generic"
	// KindBrandSpecific prompts contain the brand name; they measure
	// framing and sentiment.
	KindBrandSpecific PromptKind = "brand_specific"
	// KindCustom prompts are caller-supplied verbatim.
	KindCustom PromptKind = "custom"
)

// Sentiment classifies the tone of a mention.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	// SentimentAbsent marks results where the brand was not mentioned.
	SentimentAbsent Sentiment = "absent"
)

// BrandProfile is the structured description of the audited brand,
// produced once per diagnosis and immutable afterward.
type BrandProfile struct {
	Name           string   `json:"name"`
	Domain         string   `json:"domain,omitempty"`
	Category       string   `json:"category"`
	Positioning    string   `json:"positioning"`
	TargetAudience string   `json:"target_audience"`
	KeyProducts    []string `json:"key_products"`
}

// PromptSpec is one synthesized evaluation prompt.
type PromptSpec struct {
	Text   string     `json:"text"`
	Intent Intent     `json:"intent"`
	Kind   PromptKind `json:"kind"`
}

// PromptResult is the analyzed outcome of one (prompt, provider) evaluation.
// Rank is nil when the mention line carries no ordinal marker.
type PromptResult struct {
	Prompt      string     `json:"prompt"`
	Intent      Intent     `json:"intent"`
	Kind        PromptKind `json:"kind"`
	Provider    string     `json:"provider"`
	Mentioned   bool       `json:"mentioned"`
	Rank        *int       `json:"rank,omitempty"`
	Sentiment   Sentiment  `json:"sentiment"`
	HasCitation bool       `json:"has_citation"`
	Snippet     string     `json:"snippet,omitempty"`
}

// CompetitorInfo is one rival brand mined from generic-prompt answers.
type CompetitorInfo struct {
	Name         string    `json:"name"`
	MentionCount int       `json:"mention_count"`
	AvgRank      *float64  `json:"avg_rank,omitempty"`
	Sentiment    Sentiment `json:"sentiment"`
	WhyMentioned string    `json:"why_mentioned,omitempty"`
}

// ProviderScore is the per-provider slice of the scorecard.
type ProviderScore struct {
	MentionRate    int `json:"mention_rate"`
	MentionedCount int `json:"mentioned_count"`
	ResultCount    int `json:"result_count"`
}

// DiagnosisScore is the weighted 0-100 scorecard for one run. All dimension
// scores and the composite are integers in [0,100].
type DiagnosisScore struct {
	Visibility        int                      `json:"visibility"`
	Citation          int                      `json:"citation"`
	Representation    int                      `json:"representation"`
	Intent            int                      `json:"intent"`
	Composite         int                      `json:"composite"`
	TotalPrompts      int                      `json:"total_prompts"`
	MentionedCount    int                      `json:"mentioned_count"`
	ProvidersUsed     []string                 `json:"providers_used"`
	PerProviderScores map[string]ProviderScore `json:"per_provider_scores"`
}

// DiagnosisRecord is the immutable aggregate handed to the sink when a run
// finishes.
type DiagnosisRecord struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	Pro             bool             `json:"pro"`
	Profile         BrandProfile     `json:"profile"`
	Score           DiagnosisScore   `json:"score"`
	Results         []PromptResult   `json:"results"`
	Competitors     []CompetitorInfo `json:"competitors"`
	Insights        []string         `json:"insights"`
	Recommendations []string         `json:"recommendations"`
	PromptCount     int              `json:"prompt_count"`
	ElapsedSeconds  float64          `json:"elapsed_seconds"`
}
