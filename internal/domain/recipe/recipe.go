// Package recipe contains the recipe record and the shape validator that
// turns an untrusted AI candidate into a well-formed Recipe. The JSON
// contract keeps the original application's snake_case French field names
// so records written by earlier versions stay readable.
package recipe

// Nutrition holds the four optional nutrition facts. Values are display
// strings ("450kcal", "15g"), not numbers: the model is asked for
// human-readable amounts and the application never computes on them.
type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"proteines"`
	Carbs    string `json:"glucides"`
	Fat      string `json:"lipides"`
}

// Recipe is a validated recipe record. Title and difficulty are the
// minimal fields that make a recipe usable; list fields are always
// non-nil, never absent.
type Recipe struct {
	ID                 string    `json:"id,omitempty"`
	Title              string    `json:"titre"`
	Description        string    `json:"description"`
	DishType           string    `json:"type_plat"`
	Difficulty         string    `json:"difficulte"`
	PrepTimeMinutes    int       `json:"temps_preparation_minutes"`
	Servings           int       `json:"portions"`
	UsedIngredients    []string  `json:"ingredients_utilises"`
	MissingIngredients []string  `json:"ingredients_manquants"`
	Instructions       []string  `json:"instructions"`
	Nutrition          Nutrition `json:"valeurs_nutritionnelles"`
	Rating             *float64  `json:"rating,omitempty"`
	Note               string    `json:"note,omitempty"`
}

// HasTitle reports whether the recipe carries a usable title. Title
// presence is a caller-level requirement, not enforced by FromCandidate.
func (r *Recipe) HasTitle() bool {
	return r.Title != ""
}

// Rate sets the user rating, clamped to the 0-5 scale.
func (r *Recipe) Rate(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 5 {
		value = 5
	}
	r.Rating = &value
}
