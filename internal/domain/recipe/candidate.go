package recipe

// FromCandidate normalizes a decoded AI candidate into a Recipe. Its job
// is shape coercion, not business rejection: absent or wrongly typed list
// fields become empty slices, absent nutrition sub-fields become empty
// strings, and scalar fields keep their zero value when missing. Whether
// the result is acceptable (e.g. has a title) is the caller's decision.
func FromCandidate(candidate map[string]any) *Recipe {
	if candidate == nil {
		return nil
	}

	r := &Recipe{
		Title:              asString(candidate["titre"]),
		Description:        asString(candidate["description"]),
		DishType:           asString(candidate["type_plat"]),
		Difficulty:         asString(candidate["difficulte"]),
		PrepTimeMinutes:    asNonNegativeInt(candidate["temps_preparation_minutes"]),
		Servings:           asNonNegativeInt(candidate["portions"]),
		UsedIngredients:    asStringSlice(candidate["ingredients_utilises"]),
		MissingIngredients: asStringSlice(candidate["ingredients_manquants"]),
		Instructions:       asStringSlice(candidate["instructions"]),
	}

	if nutrition, ok := candidate["valeurs_nutritionnelles"].(map[string]any); ok {
		r.Nutrition = Nutrition{
			Calories: asString(nutrition["calories"]),
			Protein:  asString(nutrition["proteines"]),
			Carbs:    asString(nutrition["glucides"]),
			Fat:      asString(nutrition["lipides"]),
		}
	}

	return r
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}

// asNonNegativeInt accepts the JSON number shapes a decoded candidate can
// carry. Negative values are clamped to zero per the record invariants.
func asNonNegativeInt(value any) int {
	var n int
	switch v := value.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	}
	if n < 0 {
		return 0
	}
	return n
}

// asStringSlice coerces a candidate list field. Anything that is not an
// array yields an empty slice; non-string elements inside an array are
// skipped rather than failing the whole field.
func asStringSlice(value any) []string {
	items, ok := value.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
