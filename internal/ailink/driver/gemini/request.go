package gemini

import (
	"fmt"

	"github.com/luminoshq/luminos/internal/ailink/driver"
)

type generateContentRequest struct {
	Contents          []geminiContent   `json:"contents"`
	SystemInstruction *geminiContent    `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens *int     `json:"maxOutputTokens,omitempty"`
}

// buildGenerateRequest maps the provider-agnostic request onto Gemini's
// contents/parts shape. System messages become a systemInstruction block.
func buildGenerateRequest(req *driver.Request) (*generateContentRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	out := &generateContentRequest{}
	for _, msg := range req.Messages {
		part := geminiPart{Text: msg.Content}
		if msg.Role == driver.RoleSystem {
			if out.SystemInstruction == nil {
				out.SystemInstruction = &geminiContent{}
			}
			out.SystemInstruction.Parts = append(out.SystemInstruction.Parts, part)
			continue
		}
		out.Contents = append(out.Contents, geminiContent{Role: "user", Parts: []geminiPart{part}})
	}
	if len(out.Contents) == 0 {
		return nil, fmt.Errorf("at least one user message is required")
	}

	if req.Temperature != nil || req.MaxTokens != nil {
		out.GenerationConfig = &generationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	return out, nil
}
