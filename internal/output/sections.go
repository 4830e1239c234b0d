package output

import (
	"fmt"
	"strings"

	"github.com/luminoshq/luminos/internal/core"
)

const maxPromptDisplay = 60

func tierLabel(pro bool) string {
	if pro {
		return "pro"
	}
	return "free"
}

func mentionLabel(mentioned bool) string {
	if mentioned {
		return "yes"
	}
	return "no"
}

func rankLabel(rank *int) string {
	if rank == nil {
		return "-"
	}
	return fmt.Sprintf("#%d", *rank)
}

func avgRankLabel(rank *float64) string {
	if rank == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *rank)
}

func citationLabel(r core.PromptResult) string {
	if r.HasCitation {
		return "cited"
	}
	return "-"
}

func truncatePrompt(text string) string {
	text = strings.TrimSpace(text)
	if len(text) <= maxPromptDisplay {
		return text
	}
	return text[:maxPromptDisplay-3] + "..."
}

// bulletList renders insights or recommendations as a dashed list.
func bulletList(title string, lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	for _, line := range lines {
		sb.WriteString("  - ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
