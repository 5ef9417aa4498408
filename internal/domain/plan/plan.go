// Package plan contains the weekly meal plan and the reconciler that
// cross-checks an AI-suggested plan against the caller's recipe catalog.
// A plan slot only ever references a recipe the catalog can vouch for;
// everything unverifiable is dropped with a warning.
package plan

import "fmt"

// Slot references a catalog recipe by identifier and carries a
// denormalized title snapshot.
type Slot struct {
	RecipeID string `json:"id"`
	Title    string `json:"titre"`
}

// Day holds up to three meal slots. Absent slots are omitted from the
// JSON representation; a reconciled Day always has at least one slot.
type Day struct {
	Breakfast *Slot `json:"petit-dejeuner,omitempty"`
	Lunch     *Slot `json:"dejeuner,omitempty"`
	Dinner    *Slot `json:"diner,omitempty"`
}

// WeeklyPlan maps ISO dates (YYYY-MM-DD) to day plans. Plans are replaced
// wholesale on each generation or edit; slots are never mutated in place
// beyond whole-day replacement.
type WeeklyPlan map[string]Day

// CatalogEntry is one known recipe in the caller-supplied catalog.
type CatalogEntry struct {
	ID         string `json:"id"`
	Title      string `json:"titre"`
	Difficulty string `json:"difficulte,omitempty"`
}

// WarningCode classifies a non-fatal reconciliation diagnostic.
type WarningCode string

// Reconciliation warning codes.
const (
	WarnInvalidDate     WarningCode = "invalid_date"
	WarnMatchedByTitle  WarningCode = "matched_by_title"
	WarnUnknownRecipeID WarningCode = "unknown_recipe_id"
	WarnMissingRecipe   WarningCode = "missing_recipe"
)

// Warning describes a degraded-but-accepted (or dropped) resolution.
type Warning struct {
	Code   WarningCode `json:"code"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s:%s", w.Code, w.Detail)
}
