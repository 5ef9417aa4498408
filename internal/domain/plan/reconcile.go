package plan

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// slotKeys in meal order; these are the only slot names read from a raw
// day, anything else the model invents is ignored.
var slotKeys = []string{"petit-dejeuner", "dejeuner", "diner"}

// catalogIndex resolves raw slot references against the caller's catalog.
type catalogIndex struct {
	byID    map[string]CatalogEntry
	byTitle map[string]CatalogEntry
}

func indexCatalog(catalog []CatalogEntry) catalogIndex {
	idx := catalogIndex{
		byID:    make(map[string]CatalogEntry, len(catalog)),
		byTitle: make(map[string]CatalogEntry, len(catalog)),
	}
	for _, entry := range catalog {
		if entry.ID != "" {
			idx.byID[entry.ID] = entry
		}
		if entry.Title != "" {
			idx.byTitle[strings.ToLower(entry.Title)] = entry
		}
	}
	return idx
}

// Reconcile validates a decoded AI plan suggestion against the catalog of
// known recipes. Identifier resolution is the primary path: identifiers
// are deterministic and survive recipes sharing a title. Exact
// case-insensitive title matching is the safety net for the common case
// where the model paraphrased or invented an identifier but kept the
// title, and is recorded as a matched_by_title warning. Unresolvable
// slots are dropped with a warning; a day with no resolved slot is
// dropped entirely; a plan with no surviving day is nil. The catalog is
// only read, never modified.
func Reconcile(raw map[string]any, catalog []CatalogEntry) (WeeklyPlan, []Warning) {
	if len(raw) == 0 {
		return nil, nil
	}

	idx := indexCatalog(catalog)
	warnings := []Warning{}
	result := WeeklyPlan{}

	// Deterministic traversal so warning order is stable across runs.
	dates := make([]string, 0, len(raw))
	for date := range raw {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		if !ValidDate(date) {
			warnings = append(warnings, Warning{Code: WarnInvalidDate, Detail: date})
			continue
		}

		rawDay, ok := raw[date].(map[string]any)
		if !ok {
			continue
		}

		day := Day{}
		resolvedCount := 0
		for _, key := range slotKeys {
			rawSlot, ok := rawDay[key].(map[string]any)
			if !ok {
				continue
			}

			slot, slotWarnings := resolveSlot(rawSlot, key, idx)
			warnings = append(warnings, slotWarnings...)
			if slot == nil {
				continue
			}

			switch key {
			case "petit-dejeuner":
				day.Breakfast = slot
			case "dejeuner":
				day.Lunch = slot
			case "diner":
				day.Dinner = slot
			}
			resolvedCount++
		}

		if resolvedCount > 0 {
			result[date] = day
		}
	}

	if len(result) == 0 {
		return nil, warnings
	}
	return result, warnings
}

// resolveSlot applies the two-tier resolution: identifier first, then
// exact case-insensitive title. The returned slot always snapshots the
// catalog's own title, never the model's.
func resolveSlot(rawSlot map[string]any, slotKey string, idx catalogIndex) (*Slot, []Warning) {
	id, _ := rawSlot["id"].(string)
	title, _ := rawSlot["titre"].(string)

	if entry, ok := idx.byID[id]; ok && id != "" {
		return &Slot{RecipeID: entry.ID, Title: entry.Title}, nil
	}

	if title != "" {
		if entry, ok := idx.byTitle[strings.ToLower(title)]; ok {
			return &Slot{RecipeID: entry.ID, Title: entry.Title},
				[]Warning{{Code: WarnMatchedByTitle, Detail: title}}
		}
	}

	if id != "" {
		return nil, []Warning{{Code: WarnUnknownRecipeID, Detail: id}}
	}

	detail := title
	if detail == "" {
		detail = slotKey
	}
	return nil, []Warning{{Code: WarnMissingRecipe, Detail: detail}}
}

// ValidDate reports whether a day key is a real ISO calendar date.
// Pattern matching alone would accept dates like 2024-13-45.
func ValidDate(date string) bool {
	if !isoDate.MatchString(date) {
		return false
	}
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
