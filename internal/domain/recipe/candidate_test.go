package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCandidateFullRecipe(t *testing.T) {
	candidate := map[string]any{
		"titre":                     "Soupe Tomate",
		"description":               "Une soupe maison onctueuse",
		"type_plat":                 "Entrée",
		"difficulte":                "Facile",
		"temps_preparation_minutes": float64(20),
		"portions":                  float64(2),
		"ingredients_utilises":      []any{"Tomates", "Basilic"},
		"ingredients_manquants":     []any{"Crème"},
		"instructions":              []any{"Mixer les ingrédients", "Servir chaud"},
		"valeurs_nutritionnelles": map[string]any{
			"calories":  "180kcal",
			"proteines": "4g",
			"glucides":  "12g",
			"lipides":   "9g",
		},
	}

	r := FromCandidate(candidate)
	require.NotNil(t, r)

	assert.Equal(t, "Soupe Tomate", r.Title)
	assert.Equal(t, "Facile", r.Difficulty)
	assert.Equal(t, 20, r.PrepTimeMinutes)
	assert.Equal(t, 2, r.Servings)
	assert.Equal(t, []string{"Tomates", "Basilic"}, r.UsedIngredients)
	assert.Equal(t, []string{"Crème"}, r.MissingIngredients)
	assert.Len(t, r.Instructions, 2)
	assert.Equal(t, "180kcal", r.Nutrition.Calories)
	assert.Equal(t, "9g", r.Nutrition.Fat)
	assert.True(t, r.HasTitle())
}

func TestFromCandidateCoercesBadShapes(t *testing.T) {
	t.Run("list field of the wrong type becomes empty", func(t *testing.T) {
		r := FromCandidate(map[string]any{
			"titre":        "Tarte",
			"instructions": "not-an-array",
		})
		require.NotNil(t, r)

		assert.Equal(t, "Tarte", r.Title)
		assert.Equal(t, []string{}, r.Instructions)
		assert.Equal(t, []string{}, r.UsedIngredients)
		assert.Equal(t, []string{}, r.MissingIngredients)
	})

	t.Run("missing nutrition becomes empty strings", func(t *testing.T) {
		r := FromCandidate(map[string]any{"titre": "Tarte"})
		require.NotNil(t, r)

		assert.Equal(t, Nutrition{}, r.Nutrition)
	})

	t.Run("non-string list elements are skipped", func(t *testing.T) {
		r := FromCandidate(map[string]any{
			"instructions": []any{"Préchauffer le four", float64(42), "Enfourner"},
		})
		require.NotNil(t, r)

		assert.Equal(t, []string{"Préchauffer le four", "Enfourner"}, r.Instructions)
	})

	t.Run("negative durations are clamped", func(t *testing.T) {
		r := FromCandidate(map[string]any{
			"temps_preparation_minutes": float64(-10),
			"portions":                  float64(-1),
		})
		require.NotNil(t, r)

		assert.Zero(t, r.PrepTimeMinutes)
		assert.Zero(t, r.Servings)
	})

	t.Run("nil candidate yields nil", func(t *testing.T) {
		assert.Nil(t, FromCandidate(nil))
	})
}

func TestRate(t *testing.T) {
	var r Recipe
	r.Rate(4.5)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4.5, *r.Rating)

	r.Rate(12)
	assert.Equal(t, 5.0, *r.Rating)

	r.Rate(-3)
	assert.Equal(t, 0.0, *r.Rating)
}
