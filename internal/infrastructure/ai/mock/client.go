// Package mock provides a deterministic AI client used when no API key
// is configured. It answers every purpose with a fixed, well-formed
// payload so the whole pipeline stays exercisable in development.
package mock

import (
	"context"
	"encoding/json"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/culina/v2/internal/ports/outbound"
)

// Client replays canned responses keyed by request purpose.
type Client struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewClient creates the mock client.
func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger, now: time.Now}
}

const mockRecipe = `{
  "titre": "Salade composée du placard",
  "description": "Une salade simple assemblée avec ce qui reste sous la main.",
  "type_plat": "entrée",
  "difficulte": "facile",
  "temps_preparation_minutes": 15,
  "portions": 2,
  "ingredients_utilises": ["Salade verte", "Tomates", "Huile d'olive"],
  "ingredients_manquants": [],
  "instructions": ["Laver la salade et les tomates.", "Couper les tomates.", "Assaisonner et mélanger."],
  "valeurs_nutritionnelles": {"calories": "180 kcal", "proteines": "4 g", "glucides": "12 g", "lipides": "13 g"}
}`

const mockCategory = `{"category": "other"}`

// Generate returns a canned payload for the request purpose.
func (c *Client) Generate(ctx context.Context, req outbound.AIRequest) (*outbound.AIEnvelope, error) {
	c.logger.Debug("mock AI response served", zap.String("purpose", req.Purpose))

	var text string
	switch req.Purpose {
	case "weekly_plan":
		text = c.mockPlan(req.Prompt)
	case "categorize_ingredient":
		text = mockCategory
	default:
		text = mockRecipe
	}

	return &outbound.AIEnvelope{
		Candidates: []outbound.AICandidate{
			{Content: &outbound.AIContent{Parts: []outbound.AIPart{{Text: text}}}},
		},
	}, nil
}

var catalogArray = regexp.MustCompile(`\[.*\]`)

// mockPlan builds a week of lunches and dinners over the recipe list
// embedded in the prompt, so the generated plan reconciles cleanly
// against the caller's catalog. Without a usable list it returns an
// empty object, which reconciliation rejects the same way it would a
// real degenerate answer.
func (c *Client) mockPlan(prompt string) string {
	var catalog []struct {
		ID    string `json:"id"`
		Title string `json:"titre"`
	}
	if match := catalogArray.FindString(prompt); match != "" {
		_ = json.Unmarshal([]byte(match), &catalog)
	}
	if len(catalog) == 0 {
		return "{}"
	}

	payload := make(map[string]any, 7)
	start := c.now()
	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		lunch := catalog[(2*i)%len(catalog)]
		dinner := catalog[(2*i+1)%len(catalog)]
		payload[date] = map[string]any{
			"dejeuner": map[string]any{"id": lunch.ID, "titre": lunch.Title},
			"diner":    map[string]any{"id": dinner.ID, "titre": dinner.Title},
		}
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "{}"
	}
	return string(data)
}

var _ outbound.AIClient = (*Client)(nil)
