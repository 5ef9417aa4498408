// Package assistant implements the AI response reconciliation engine:
// prompt construction, response extraction, tolerant parsing, shape
// validation and plan reconciliation behind a single pipeline. The
// remote model is treated as an unreliable collaborator; nothing it
// returns reaches a caller without passing validation here.
package assistant

import (
	"fmt"
	"strings"

	"github.com/culina/v2/internal/ports/inbound"
)

// promptTable is the localized string table for one supported language.
// Prompts are pure text templating: identical input renders identical
// output, byte for byte.
type promptTable struct {
	roleChef          string
	constraintsHeader string
	noConstraints     string
	policies          map[inbound.IngredientMode]string
	labelDiet         string
	labelServings     string
	labelTime         string
	labelDifficulty   string
	labelCustom       string
	headerIngredients string
	headerEquipment   string
	emptyList         string
	strictReply       string
	strictSchema      string
	categorizeGoal    string
	importGoal        string
	planGoal          string
	planRecipes       string
	planNotes         string
	planShape         string
	systemContract    string
}

var promptTables = map[string]promptTable{
	"fr": {
		roleChef:          "Tu es un chef gastronomique. Propose une recette originale, précise et immédiatement exploitable.",
		constraintsHeader: "Contraintes culinaires:",
		noConstraints:     "Aucune contrainte.",
		policies: map[inbound.IngredientMode]string{
			inbound.ModeUseAll:      "Tu dois utiliser tous les ingrédients listés ci-dessous. Tu peux aussi utiliser les ingrédients de base (sel, poivre, huile, beurre, sucre, farine, eau, lait, œufs, levure, herbes, épices).",
			inbound.ModeUseSelected: "Utilise principalement les ingrédients listés ci-dessous, mais tu peux ajouter d'autres ingrédients complémentaires si nécessaire. Les ingrédients de base sont toujours disponibles (sel, poivre, huile, beurre, sucre, farine, eau, lait, œufs, levure, herbes, épices).",
			inbound.ModeIgnoreStock: "Ignore les ingrédients du stock et crée librement une recette cohérente, en supposant que les ingrédients de base sont disponibles.",
		},
		labelDiet:         "Régime",
		labelServings:     "Portions",
		labelTime:         "Temps max",
		labelDifficulty:   "Difficulté",
		labelCustom:       "Demande spécifique",
		headerIngredients: "Ingrédients disponibles:",
		headerEquipment:   "Équipements de cuisine disponibles:",
		emptyList:         "Aucun élément.",
		strictReply:       "Réponds uniquement au format JSON strict, sans texte avant ni après.",
		strictSchema:      "Utilise toujours des guillemets doubles et respecte le schéma « %s » (clés en snake_case).",
		categorizeGoal:    "Classe l'ingrédient suivant dans une seule catégorie : « %s ».",
		importGoal:        "Transforme la recette suivante en JSON structuré selon le schéma fourni.",
		planGoal:          "Crée un planning de repas équilibré sur 7 jours (petit-déjeuner, déjeuner et dîner).",
		planRecipes:       "Recettes disponibles: %s",
		planNotes:         "Contraintes: %s",
		planShape:         `Retourne un JSON de la forme {"YYYY-MM-DD": {"petit-dejeuner": {"id": "...", "titre": "..."}, "dejeuner": {...}, "diner": {...}}}. Utilise uniquement les recettes listées, avec leur id exact.`,
		systemContract:    "Réponds uniquement en JSON pur valide (sans texte). Respecte ce schéma : %s",
	},
	"en": {
		roleChef:          "You are a gourmet chef. Propose an original, precise and immediately usable recipe.",
		constraintsHeader: "Cooking constraints:",
		noConstraints:     "No constraints.",
		policies: map[inbound.IngredientMode]string{
			inbound.ModeUseAll:      "You must use every ingredient listed below. You may also use staple ingredients (salt, pepper, oil, butter, sugar, flour, water, milk, eggs, yeast, herbs, spices).",
			inbound.ModeUseSelected: "Mainly use the ingredients listed below, but you may add complementary ingredients when needed. Staple ingredients are always available (salt, pepper, oil, butter, sugar, flour, water, milk, eggs, yeast, herbs, spices).",
			inbound.ModeIgnoreStock: "Ignore the stock below and freely create a coherent recipe, assuming staple ingredients are available.",
		},
		labelDiet:         "Diet",
		labelServings:     "Servings",
		labelTime:         "Max time",
		labelDifficulty:   "Difficulty",
		labelCustom:       "Specific request",
		headerIngredients: "Available ingredients:",
		headerEquipment:   "Available kitchen equipment:",
		emptyList:         "No items.",
		strictReply:       "Reply only in strict JSON format, with no text before or after.",
		strictSchema:      `Always use double quotes and follow the "%s" schema (snake_case keys).`,
		categorizeGoal:    `Classify the following ingredient into exactly one category: "%s".`,
		importGoal:        "Convert the following recipe into structured JSON matching the provided schema.",
		planGoal:          "Create a balanced 7-day meal plan (breakfast, lunch and dinner).",
		planRecipes:       "Available recipes: %s",
		planNotes:         "Constraints: %s",
		planShape:         `Return JSON of the form {"YYYY-MM-DD": {"petit-dejeuner": {"id": "...", "titre": "..."}, "dejeuner": {...}, "diner": {...}}}. Use only the recipes listed, with their exact id.`,
		systemContract:    "Reply only with pure, valid JSON (no prose). Follow this schema: %s",
	},
	"es": {
		roleChef:          "Eres un chef gastronómico. Propón una receta original, precisa e inmediatamente utilizable.",
		constraintsHeader: "Restricciones culinarias:",
		noConstraints:     "Sin restricciones.",
		policies: map[inbound.IngredientMode]string{
			inbound.ModeUseAll:      "Debes usar todos los ingredientes listados a continuación. También puedes usar ingredientes básicos (sal, pimienta, aceite, mantequilla, azúcar, harina, agua, leche, huevos, levadura, hierbas, especias).",
			inbound.ModeUseSelected: "Usa principalmente los ingredientes listados a continuación, pero puedes añadir otros complementarios si es necesario. Los ingredientes básicos siempre están disponibles (sal, pimienta, aceite, mantequilla, azúcar, harina, agua, leche, huevos, levadura, hierbas, especias).",
			inbound.ModeIgnoreStock: "Ignora el stock y crea libremente una receta coherente, asumiendo que los ingredientes básicos están disponibles.",
		},
		labelDiet:         "Dieta",
		labelServings:     "Raciones",
		labelTime:         "Tiempo máximo",
		labelDifficulty:   "Dificultad",
		labelCustom:       "Petición específica",
		headerIngredients: "Ingredientes disponibles:",
		headerEquipment:   "Equipamiento de cocina disponible:",
		emptyList:         "Ningún elemento.",
		strictReply:       "Responde únicamente en formato JSON estricto, sin texto antes ni después.",
		strictSchema:      `Usa siempre comillas dobles y respeta el esquema "%s" (claves en snake_case).`,
		categorizeGoal:    `Clasifica el siguiente ingrediente en una sola categoría: "%s".`,
		importGoal:        "Transforma la siguiente receta en JSON estructurado según el esquema proporcionado.",
		planGoal:          "Crea una planificación de comidas equilibrada para 7 días (desayuno, comida y cena).",
		planRecipes:       "Recetas disponibles: %s",
		planNotes:         "Restricciones: %s",
		planShape:         `Devuelve un JSON con la forma {"YYYY-MM-DD": {"petit-dejeuner": {"id": "...", "titre": "..."}, "dejeuner": {...}, "diner": {...}}}. Usa únicamente las recetas listadas, con su id exacto.`,
		systemContract:    "Responde únicamente con JSON puro y válido (sin prosa). Respeta este esquema: %s",
	},
}

// tableFor returns the string table for a language tag, falling back to
// the primary language for anything unsupported.
func tableFor(language string) promptTable {
	if t, ok := promptTables[language]; ok {
		return t
	}
	return promptTables["fr"]
}

// formatStockList renders pantry/equipment items as prompt bullet lines.
func formatStockList(table promptTable, items []inbound.StockItem) string {
	if len(items) == 0 {
		return table.emptyList
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		line := "- " + item.Name
		qty := strings.TrimSpace(strings.TrimSpace(item.Quantity) + " " + strings.TrimSpace(item.Unit))
		if qty != "" {
			line += " (" + qty + ")"
		}
		if item.Category != "" {
			line += " | " + item.Category
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// buildGeneratePrompt renders the recipe-generation prompt. Zero-valued
// constraint fields are omitted entirely, never rendered empty.
func buildGeneratePrompt(table promptTable, cmd inbound.GenerateRecipeCommand) string {
	constraints := make([]string, 0, 5)
	if cmd.Diet != "" {
		constraints = append(constraints, fmt.Sprintf("%s: %s", table.labelDiet, cmd.Diet))
	}
	if cmd.Servings > 0 {
		constraints = append(constraints, fmt.Sprintf("%s: %d", table.labelServings, cmd.Servings))
	}
	if cmd.TimeMinutes > 0 {
		constraints = append(constraints, fmt.Sprintf("%s: %d minutes", table.labelTime, cmd.TimeMinutes))
	}
	if cmd.Difficulty != "" {
		constraints = append(constraints, fmt.Sprintf("%s: %s", table.labelDifficulty, cmd.Difficulty))
	}
	if cmd.CustomQuery != "" {
		constraints = append(constraints, fmt.Sprintf("%s: %s", table.labelCustom, cmd.CustomQuery))
	}

	constraintBlock := table.noConstraints
	if len(constraints) > 0 {
		constraintBlock = strings.Join(constraints, "\n")
	}

	mode := cmd.IngredientMode
	if _, ok := table.policies[mode]; !ok {
		mode = inbound.ModeUseAll
	}

	sections := []string{
		table.roleChef,
		table.constraintsHeader + "\n" + constraintBlock,
		table.policies[mode],
		table.headerIngredients + "\n" + formatStockList(table, cmd.Ingredients),
		table.headerEquipment + "\n" + formatStockList(table, cmd.Equipment),
		table.strictReply,
		fmt.Sprintf(table.strictSchema, recipeSchemaName),
	}
	return strings.Join(sections, "\n\n")
}

func buildCategorizePrompt(table promptTable, cmd inbound.CategorizeCommand) string {
	return strings.Join([]string{
		fmt.Sprintf(table.categorizeGoal, cmd.Ingredient),
		table.strictReply,
		fmt.Sprintf(table.strictSchema, categorySchemaName),
	}, "\n\n")
}

func buildImportPrompt(table promptTable, cmd inbound.ImportRecipeCommand) string {
	return strings.Join([]string{
		table.importGoal + "\n" + cmd.RawText,
		table.strictReply,
		fmt.Sprintf(table.strictSchema, recipeSchemaName),
	}, "\n\n")
}

// buildPlanPrompt renders the weekly-plan prompt with the serialized
// catalog snapshot. Notes are omitted when empty.
func buildPlanPrompt(table promptTable, cmd inbound.GeneratePlanCommand, serializedCatalog string) string {
	sections := []string{
		table.planGoal,
		fmt.Sprintf(table.planRecipes, serializedCatalog),
	}
	if cmd.Notes != "" {
		sections = append(sections, fmt.Sprintf(table.planNotes, cmd.Notes))
	}
	sections = append(sections, table.planShape, table.strictReply)
	return strings.Join(sections, "\n")
}

// systemInstruction restates the output contract with the full
// machine-checkable schema embedded.
func systemInstruction(table promptTable, schema []byte) string {
	return fmt.Sprintf(table.systemContract, string(schema))
}
