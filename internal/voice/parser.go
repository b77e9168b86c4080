package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"comanda/internal/models"
)

// ParsedItem is the language model's best-effort guess for one spoken
// order item. Names and variant labels are contractually exact catalog
// matches; the model omits an item entirely when a required variant group
// cannot be determined, and returns an empty list on ambiguous input.
type ParsedItem struct {
	Qty      int      `json:"qty"`
	Name     string   `json:"name"`
	Variants []string `json:"variants"`
}

// ParsedOrder is the model's structured output for one transcript.
type ParsedOrder struct {
	Items []ParsedItem `json:"items"`
}

// Parser turns a transcript into a structured order via the language
// model.
type Parser struct {
	model llms.Model
}

// NewParser creates a voice-order parser over the given model.
func NewParser(model llms.Model) *Parser {
	return &Parser{model: model}
}

// Parse sends the transcript plus the serialized menu to the model and
// decodes its strict-JSON answer.
func (p *Parser) Parse(ctx context.Context, transcript string, menu models.Menu) (*ParsedOrder, error) {
	menuJSON, err := json.Marshal(menu)
	if err != nil {
		return nil, err
	}

	completion, err := llms.GenerateFromSinglePrompt(ctx, p.model,
		BuildVoiceOrderPrompt(transcript, string(menuJSON)),
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("voice: model call failed: %w", err)
	}

	var parsed ParsedOrder
	if err := json.Unmarshal([]byte(extractJSON(completion)), &parsed); err != nil {
		return nil, errors.New("voice: invalid model JSON output")
	}
	for i := range parsed.Items {
		if parsed.Items[i].Qty < 1 {
			parsed.Items[i].Qty = 1
		}
	}
	return &parsed, nil
}

// extractJSON trims anything around the outermost JSON object. Some models
// still wrap output in markdown fences despite the prompt.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}
