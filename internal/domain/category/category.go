// Package category contains the closed ingredient-category taxonomy and
// the resolver that maps free-form input onto it. Input arrives from AI
// responses, user edits and records written by earlier versions of the
// application, so resolution is total: anything unrecognized degrades to
// the default category instead of failing.
package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is one member of the closed ingredient-category enumeration.
type Category string

// Canonical category keys. These are the only values a Category may hold.
const (
	Fruits     Category = "fruits"
	Vegetables Category = "vegetables"
	Meats      Category = "meats"
	Fish       Category = "fish"
	Dairy      Category = "dairy"
	Bakery     Category = "bakery"
	Grocery    Category = "grocery"
	Beverages  Category = "beverages"
	Frozen     Category = "frozen"
	Other      Category = "other"
)

// Default is the category unresolvable input degrades to.
const Default = Other

// Keys lists every canonical key in display order.
var Keys = []Category{
	Fruits, Vegetables, Meats, Fish, Dairy,
	Bakery, Grocery, Beverages, Frozen, Other,
}

var canonical = func() map[string]Category {
	m := make(map[string]Category, len(Keys))
	for _, k := range Keys {
		m[string(k)] = k
	}
	return m
}()

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "Légumes" and "Legumes" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize reduces raw input to lower-case ASCII letters and single
// spaces: trim, lower-case, strip diacritics, drop every non-letter
// character, collapse whitespace.
func normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || r == ' ' || r == '\t' || r == '\n' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Resolve maps raw free-text input to a canonical Category. It accepts
// canonical keys, display labels in any supported language and legacy
// spellings accumulated from earlier category vocabularies. Unrecognized
// input resolves to Default; Resolve never fails.
func Resolve(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Default
	}
	if c, ok := canonical[trimmed]; ok {
		return c
	}

	normalized := normalize(trimmed)
	if c, ok := canonical[normalized]; ok {
		return c
	}
	if c, ok := aliases[normalized]; ok {
		return c
	}
	return Default
}

// Valid reports whether c is a canonical key.
func (c Category) Valid() bool {
	_, ok := canonical[string(c)]
	return ok
}

// Label returns the display string for c in the given language. Unknown
// languages fall back to French; unknown keys fall back to the default
// category's label.
func Label(c Category, language string) string {
	labels, ok := labelTables[language]
	if !ok {
		labels = labelTables[DefaultLanguage]
	}
	if label, ok := labels[c]; ok {
		return label
	}
	return labelTables[DefaultLanguage][Default]
}
