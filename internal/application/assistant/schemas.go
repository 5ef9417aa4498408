package assistant

// Response schemas forwarded to the provider verbatim. They are kept as
// raw JSON documents rather than built structs so the bytes embedded in
// the system instruction never vary between runs.

const (
	recipeSchemaName   = "recette"
	categorySchemaName = "categorie"
)

var recipeSchema = []byte(`{
  "type": "object",
  "properties": {
    "titre": {"type": "string"},
    "description": {"type": "string"},
    "type_plat": {"type": "string"},
    "difficulte": {"type": "string", "enum": ["facile", "moyen", "difficile"]},
    "temps_preparation_minutes": {"type": "integer"},
    "portions": {"type": "integer"},
    "ingredients_utilises": {"type": "array", "items": {"type": "string"}},
    "ingredients_manquants": {"type": "array", "items": {"type": "string"}},
    "instructions": {"type": "array", "items": {"type": "string"}},
    "valeurs_nutritionnelles": {
      "type": "object",
      "properties": {
        "calories": {"type": "string"},
        "proteines": {"type": "string"},
        "glucides": {"type": "string"},
        "lipides": {"type": "string"}
      }
    }
  },
  "required": ["titre", "ingredients_utilises", "instructions"]
}`)

var categorySchema = []byte(`{
  "type": "object",
  "properties": {
    "category": {
      "type": "string",
      "enum": ["fruits", "vegetables", "meats", "fish", "dairy", "bakery", "grocery", "beverages", "frozen", "other"]
    }
  },
  "required": ["category"]
}`)
