package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCanonicalKeysAreIdempotent(t *testing.T) {
	for _, key := range Keys {
		assert.Equal(t, key, Resolve(string(key)), "Resolve(%q)", key)
	}
}

func TestResolveLegacySpellings(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"Légumes", Vegetables},
		{"legumes", Vegetables},
		{"LÉGUMES", Vegetables},
		{"Viande", Meats},
		{"carnes", Meats},
		{"Produits Laitiers", Dairy},
		{"  produits   laitiers  ", Dairy},
		{"lácteos", Dairy},
		{"Épicerie", Grocery},
		{"epicerie", Grocery},
		{"Pantry", Grocery},
		{"Surgelés", Frozen},
		{"congelado", Frozen},
		{"Boisson", Beverages},
		{"drinks", Beverages},
		{"Panadería", Bakery},
		{"poisson", Fish},
		{"Fruta", Fruits},
		{"autre", Other},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.input), "Resolve(%q)", tt.input)
	}
}

func TestResolveEveryAliasRoundTrips(t *testing.T) {
	for spelling, want := range legacyAliases {
		assert.Equal(t, want, Resolve(spelling), "Resolve(%q)", spelling)
	}
}

func TestResolveDisplayLabels(t *testing.T) {
	for lang, labels := range labelTables {
		for want, label := range labels {
			assert.Equal(t, want, Resolve(label), "Resolve(%q) [%s]", label, lang)
		}
	}
}

func TestResolveUnrecognizedDegradesToDefault(t *testing.T) {
	inputs := []string{"", "   ", "plutonium", "12345", "catégorie inconnue", "🥦"}
	for _, input := range inputs {
		assert.Equal(t, Default, Resolve(input), "Resolve(%q)", input)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Légumes", Label(Vegetables, "fr"))
	assert.Equal(t, "Vegetables", Label(Vegetables, "en"))
	assert.Equal(t, "Verduras", Label(Vegetables, "es"))

	// Unknown language falls back to French.
	assert.Equal(t, "Légumes", Label(Vegetables, "de"))

	// Unknown key falls back to the default category's label.
	assert.Equal(t, "Autre", Label(Category("unobtainium"), "fr"))
	assert.Equal(t, "Autre", Label(Category("unobtainium"), "xx"))
}

func TestValid(t *testing.T) {
	assert.True(t, Fruits.Valid())
	assert.False(t, Category("Fruits").Valid())
	assert.False(t, Category("").Valid())
}
