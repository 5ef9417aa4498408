// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/culina/v2/internal/domain/category"
	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/domain/recipe"
)

// AssistantService is the primary port for the AI reconciliation engine.
// Every operation is stateless and independent; results come back as a
// validated domain object plus a possibly empty warning list, or a typed
// failure. The engine never persists anything itself.
type AssistantService interface {
	GenerateRecipe(ctx context.Context, req GenerateRecipeCommand) (*recipe.Recipe, []plan.Warning, error)
	CategorizeIngredient(ctx context.Context, req CategorizeCommand) (category.Category, error)
	ImportRecipe(ctx context.Context, req ImportRecipeCommand) (*recipe.Recipe, []plan.Warning, error)
	GenerateWeeklyPlan(ctx context.Context, req GeneratePlanCommand) (plan.WeeklyPlan, []plan.Warning, error)
}

// IngredientMode selects how the prompt treats the caller's stock.
type IngredientMode string

// Ingredient usage policies.
const (
	ModeUseAll      IngredientMode = "use_all"
	ModeUseSelected IngredientMode = "use_selected"
	ModeIgnoreStock IngredientMode = "ignore"
)

// StockItem is one pantry or equipment entry forwarded to the prompt.
type StockItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Category string `json:"category,omitempty"`
}

// GenerateRecipeCommand carries the constraints for recipe generation.
// Zero-valued constraint fields are omitted from the rendered prompt.
type GenerateRecipeCommand struct {
	Language       string
	Ingredients    []StockItem
	Equipment      []StockItem
	Servings       int
	Diet           string
	TimeMinutes    int
	Difficulty     string
	CustomQuery    string
	IngredientMode IngredientMode
}

// CategorizeCommand asks for the taxonomy category of one ingredient.
type CategorizeCommand struct {
	Language   string
	Ingredient string
}

// ImportRecipeCommand asks for raw recipe text to be structured.
type ImportRecipeCommand struct {
	Language string
	RawText  string
}

// GeneratePlanCommand carries the catalog snapshot the reconciler treats
// as ground truth, plus optional free-text planning notes.
type GeneratePlanCommand struct {
	Language string
	Catalog  []plan.CatalogEntry
	Notes    string
}
