package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// Generator produces the display-only marketing texts: dish descriptions
// and the daily special. Outputs are opaque to the rest of the system.
type Generator struct {
	model llms.Model
}

// NewGenerator creates a text generator over the given model.
func NewGenerator(model llms.Model) *Generator {
	return &Generator{model: model}
}

// DishDescription returns a short menu description for a dish.
func (g *Generator) DishDescription(ctx context.Context, dishName, ingredients string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model,
		BuildDishDescriptionPrompt(dishName, ingredients),
		llms.WithTemperature(0.7),
	)
	if err != nil {
		return "", fmt.Errorf("voice: description call failed: %w", err)
	}
	return strings.TrimSpace(completion), nil
}

// DailySpecial is the generated suggestion of the day.
type DailySpecial struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// DailySpecialFromStock builds a daily special from overstocked
// ingredients.
func (g *Generator) DailySpecialFromStock(ctx context.Context, ingredients []string) (*DailySpecial, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.model,
		BuildDailySpecialPrompt(strings.Join(ingredients, ", ")),
		llms.WithTemperature(0.9),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("voice: daily special call failed: %w", err)
	}
	var special DailySpecial
	if err := json.Unmarshal([]byte(extractJSON(completion)), &special); err != nil {
		return nil, errors.New("voice: invalid daily special JSON")
	}
	return &special, nil
}
