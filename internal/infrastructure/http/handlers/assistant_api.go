package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/application/assistant"
	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/ports/inbound"
	"github.com/culina/v2/internal/ports/outbound"
	apperrors "github.com/culina/v2/pkg/errors"
)

// AssistantHandlers handles the AI assistant endpoints. In demo mode
// (no API key configured) responses are flagged so clients can tell
// canned output from real generations. When the provider fails or its
// answer is unusable, the request is replayed against the fallback
// service and the response carries the same flag instead of an error.
type AssistantHandlers struct {
	assistant       inbound.AssistantService
	fallback        inbound.AssistantService
	recipes         outbound.RecipeRepository
	plans           outbound.PlanRepository
	validate        *validator.Validate
	defaultLanguage string
	demoMode        bool
	logger          *zap.Logger
}

// NewAssistantHandlers creates the assistant handlers.
func NewAssistantHandlers(
	assistantService inbound.AssistantService,
	fallbackService inbound.AssistantService,
	recipes outbound.RecipeRepository,
	plans outbound.PlanRepository,
	defaultLanguage string,
	demoMode bool,
	logger *zap.Logger,
) *AssistantHandlers {
	return &AssistantHandlers{
		assistant:       assistantService,
		fallback:        fallbackService,
		recipes:         recipes,
		plans:           plans,
		validate:        validator.New(),
		defaultLanguage: defaultLanguage,
		demoMode:        demoMode,
		logger:          logger,
	}
}

type stockItemRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

type generateRecipeRequest struct {
	Language       string             `json:"language" validate:"omitempty,oneof=fr en es"`
	Ingredients    []stockItemRequest `json:"ingredients" validate:"dive"`
	Equipment      []stockItemRequest `json:"equipment" validate:"dive"`
	Servings       int                `json:"servings" validate:"gte=0,lte=50"`
	Diet           string             `json:"diet"`
	TimeMinutes    int                `json:"time_minutes" validate:"gte=0"`
	Difficulty     string             `json:"difficulty" validate:"omitempty,oneof=facile moyen difficile"`
	CustomQuery    string             `json:"custom_query"`
	IngredientMode string             `json:"ingredient_mode" validate:"omitempty,oneof=use_all use_selected ignore"`
}

type categorizeRequest struct {
	Language   string `json:"language" validate:"omitempty,oneof=fr en es"`
	Ingredient string `json:"ingredient" validate:"required"`
}

type importRecipeRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=fr en es"`
	Text     string `json:"text" validate:"required"`
}

type generatePlanRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=fr en es"`
	Notes    string `json:"notes"`
}

// degradable reports whether a pipeline failure should be answered
// with canned fallback content instead of an error. Upstream outages
// and garbled answers degrade; everything else surfaces.
func (h *AssistantHandlers) degradable(err error) bool {
	return errors.Is(err, assistant.ErrGenerationFailed) ||
		errors.Is(err, assistant.ErrUnparseableResponse)
}

func (h *AssistantHandlers) language(requested string) string {
	if requested == "" {
		return h.defaultLanguage
	}
	return requested
}

func toStockItems(items []stockItemRequest) []inbound.StockItem {
	if len(items) == 0 {
		return nil
	}
	converted := make([]inbound.StockItem, 0, len(items))
	for _, item := range items {
		converted = append(converted, inbound.StockItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Category: item.Category,
		})
	}
	return converted
}

func warningStrings(warnings []plan.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, w.String())
	}
	return out
}

// GenerateRecipe handles POST /api/v2/assistant/recipes
func (h *AssistantHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	mode := inbound.IngredientMode(req.IngredientMode)
	if mode == "" {
		mode = inbound.ModeUseAll
	}

	cmd := inbound.GenerateRecipeCommand{
		Language:       h.language(req.Language),
		Ingredients:    toStockItems(req.Ingredients),
		Equipment:      toStockItems(req.Equipment),
		Servings:       req.Servings,
		Diet:           req.Diet,
		TimeMinutes:    req.TimeMinutes,
		Difficulty:     req.Difficulty,
		CustomQuery:    req.CustomQuery,
		IngredientMode: mode,
	}

	served := h.demoMode
	recipe, warnings, err := h.assistant.GenerateRecipe(r.Context(), cmd)
	if err != nil && h.degradable(err) {
		h.logger.Warn("serving fallback recipe", zap.Error(err))
		recipe, warnings, err = h.fallback.GenerateRecipe(r.Context(), cmd)
		served = true
	}
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}

	if !recipe.HasTitle() {
		writeJSON(w, h.logger, http.StatusBadGateway, APIResponse{
			Success: false,
			Error:   "Generated recipe has no title",
		})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success:  true,
		Data:     recipe,
		Warnings: warningStrings(warnings),
		Fallback: served,
	})
}

// CategorizeIngredient handles POST /api/v2/assistant/categorize
func (h *AssistantHandlers) CategorizeIngredient(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	cmd := inbound.CategorizeCommand{
		Language:   h.language(req.Language),
		Ingredient: req.Ingredient,
	}

	served := h.demoMode
	result, err := h.assistant.CategorizeIngredient(r.Context(), cmd)
	if err != nil && h.degradable(err) {
		h.logger.Warn("serving fallback category", zap.Error(err))
		result, err = h.fallback.CategorizeIngredient(r.Context(), cmd)
		served = true
	}
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success:  true,
		Data:     map[string]interface{}{"ingredient": req.Ingredient, "category": result},
		Fallback: served,
	})
}

// ImportRecipe handles POST /api/v2/assistant/import
func (h *AssistantHandlers) ImportRecipe(w http.ResponseWriter, r *http.Request) {
	var req importRecipeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	cmd := inbound.ImportRecipeCommand{
		Language: h.language(req.Language),
		RawText:  req.Text,
	}

	served := h.demoMode
	recipe, warnings, err := h.assistant.ImportRecipe(r.Context(), cmd)
	if err != nil && h.degradable(err) {
		h.logger.Warn("serving fallback import", zap.Error(err))
		recipe, warnings, err = h.fallback.ImportRecipe(r.Context(), cmd)
		served = true
	}
	if err != nil {
		h.writeAssistantError(w, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success:  true,
		Data:     recipe,
		Warnings: warningStrings(warnings),
		Fallback: served,
	})
}

// GenerateWeeklyPlan handles POST /api/v2/assistant/plan
func (h *AssistantHandlers) GenerateWeeklyPlan(w http.ResponseWriter, r *http.Request) {
	var req generatePlanRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	catalog, err := h.recipes.Catalog(r.Context())
	if err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to load recipe catalog"})
		return
	}
	if len(catalog) == 0 {
		writeJSON(w, h.logger, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   "No recipes available to plan with",
		})
		return
	}

	cmd := inbound.GeneratePlanCommand{
		Language: h.language(req.Language),
		Catalog:  catalog,
		Notes:    req.Notes,
	}

	served := h.demoMode
	result, warnings, err := h.assistant.GenerateWeeklyPlan(r.Context(), cmd)
	if err != nil && h.degradable(err) {
		h.logger.Warn("serving fallback plan", zap.Error(err))
		result, warnings, err = h.fallback.GenerateWeeklyPlan(r.Context(), cmd)
		served = true
	}
	if err != nil {
		if errors.Is(err, assistant.ErrEmptyPlan) {
			writeJSON(w, h.logger, http.StatusUnprocessableEntity, APIResponse{
				Success:  false,
				Error:    "No usable day in the generated plan",
				Warnings: warningStrings(warnings),
			})
			return
		}
		h.writeAssistantError(w, err)
		return
	}

	if err := h.plans.Replace(r.Context(), result); err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to store plan"})
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success:  true,
		Data:     result,
		Warnings: warningStrings(warnings),
		Fallback: served,
	})
}

// writeAssistantError maps pipeline failures that survived the
// fallback to HTTP statuses. Provider failures and unusable answers
// are upstream problems, never client errors.
func (h *AssistantHandlers) writeAssistantError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, assistant.ErrGenerationFailed):
		writeError(w, h.logger, apperrors.NewExternalServiceError(err.Error()).WithCause(err))
	case errors.Is(err, assistant.ErrUnparseableResponse):
		writeError(w, h.logger, apperrors.NewExternalServiceError("AI response could not be interpreted").WithCause(err))
	default:
		writeError(w, h.logger, apperrors.NewInternalError("Internal server error").WithCause(err))
	}
}
