package category

// Supported display languages. French is the application's primary
// language and the fallback for unrecognized language tags.
const (
	DefaultLanguage = "fr"
)

// labelTables maps language tag -> canonical key -> display label.
var labelTables = map[string]map[Category]string{
	"fr": {
		Fruits:     "Fruits",
		Vegetables: "Légumes",
		Meats:      "Viandes",
		Fish:       "Poissons",
		Dairy:      "Produits laitiers",
		Bakery:     "Boulangerie",
		Grocery:    "Épicerie",
		Beverages:  "Boissons",
		Frozen:     "Surgelés",
		Other:      "Autre",
	},
	"en": {
		Fruits:     "Fruits",
		Vegetables: "Vegetables",
		Meats:      "Meats",
		Fish:       "Fish",
		Dairy:      "Dairy",
		Bakery:     "Bakery",
		Grocery:    "Pantry",
		Beverages:  "Beverages",
		Frozen:     "Frozen",
		Other:      "Other",
	},
	"es": {
		Fruits:     "Frutas",
		Vegetables: "Verduras",
		Meats:      "Carnes",
		Fish:       "Pescados",
		Dairy:      "Lácteos",
		Bakery:     "Panadería",
		Grocery:    "Despensa",
		Beverages:  "Bebidas",
		Frozen:     "Congelados",
		Other:      "Otro",
	},
}

// legacyAliases maps every known legacy and multilingual spelling to its
// canonical key. The table is append-only data: adding a newly observed
// spelling is a one-line change here, never new resolution code. Entries
// are normalized at init, so accented and plain spellings may both be
// listed for readability.
var legacyAliases = map[string]Category{
	"fruits": Fruits,
	"fruit":  Fruits,
	"frutas": Fruits,
	"fruta":  Fruits,

	"légumes":    Vegetables,
	"legumes":    Vegetables,
	"legume":     Vegetables,
	"vegetables": Vegetables,
	"vegetable":  Vegetables,
	"verduras":   Vegetables,
	"vegetales":  Vegetables,

	"viandes": Meats,
	"viande":  Meats,
	"meats":   Meats,
	"meat":    Meats,
	"carnes":  Meats,
	"carne":   Meats,

	"poisson":  Fish,
	"poissons": Fish,
	"fish":     Fish,
	"pescados": Fish,
	"pescado":  Fish,

	"produits laitiers": Dairy,
	"laitier":           Dairy,
	"laitiers":          Dairy,
	"dairy":             Dairy,
	"lacteos":           Dairy,
	"lácteos":           Dairy,

	"boulangerie": Bakery,
	"bakery":      Bakery,
	"panaderia":   Bakery,
	"panadería":   Bakery,

	"epicerie": Grocery,
	"épicerie": Grocery,
	"pantry":   Grocery,
	"grocery":  Grocery,
	"despensa": Grocery,

	"boissons":  Beverages,
	"boisson":   Beverages,
	"beverages": Beverages,
	"beverage":  Beverages,
	"drinks":    Beverages,
	"drink":     Beverages,
	"bebidas":   Beverages,
	"bebida":    Beverages,

	"surgelés":   Frozen,
	"surgeles":   Frozen,
	"frozen":     Frozen,
	"freezer":    Frozen,
	"congelados": Frozen,
	"congelado":  Frozen,

	"autre":  Other,
	"autres": Other,
	"otros":  Other,
	"otro":   Other,
	"other":  Other,
}

// aliases is the lookup actually consulted by Resolve: legacyAliases plus
// every display label, all keyed by their normalized form.
var aliases = func() map[string]Category {
	m := make(map[string]Category, len(legacyAliases)+len(labelTables)*len(Keys))
	for spelling, c := range legacyAliases {
		m[normalize(spelling)] = c
	}
	for _, labels := range labelTables {
		for c, label := range labels {
			m[normalize(label)] = c
		}
	}
	return m
}()
