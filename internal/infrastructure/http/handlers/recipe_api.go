package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/domain/recipe"
	"github.com/culina/v2/internal/ports/outbound"
	apperrors "github.com/culina/v2/pkg/errors"
)

// RecipeHandlers handles recipe collection endpoints.
type RecipeHandlers struct {
	recipes  outbound.RecipeRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipeHandlers creates the recipe handlers.
func NewRecipeHandlers(recipes outbound.RecipeRepository, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipes:  recipes,
		validate: validator.New(),
		logger:   logger,
	}
}

type saveRecipeRequest struct {
	Title              string           `json:"titre" validate:"required"`
	Description        string           `json:"description"`
	DishType           string           `json:"type_plat"`
	Difficulty         string           `json:"difficulte" validate:"omitempty,oneof=facile moyen difficile"`
	PrepTimeMinutes    int              `json:"temps_preparation_minutes" validate:"gte=0"`
	Servings           int              `json:"portions" validate:"gte=0"`
	UsedIngredients    []string         `json:"ingredients_utilises"`
	MissingIngredients []string         `json:"ingredients_manquants"`
	Instructions       []string         `json:"instructions"`
	Nutrition          recipe.Nutrition `json:"valeurs_nutritionnelles"`
	Note               string           `json:"note"`
}

type rateRecipeRequest struct {
	Value float64 `json:"value" validate:"gte=0,lte=5"`
}

func (req saveRecipeRequest) toRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Title:              req.Title,
		Description:        req.Description,
		DishType:           req.DishType,
		Difficulty:         req.Difficulty,
		PrepTimeMinutes:    req.PrepTimeMinutes,
		Servings:           req.Servings,
		UsedIngredients:    req.UsedIngredients,
		MissingIngredients: req.MissingIngredients,
		Instructions:       req.Instructions,
		Nutrition:          req.Nutrition,
		Note:               req.Note,
	}
}

// ListRecipes handles GET /api/v2/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.List(r.Context())
	if err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to list recipes"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: recipes})
}

// CreateRecipe handles POST /api/v2/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	var req saveRecipeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	rec := req.toRecipe()
	if err := h.recipes.Save(r.Context(), rec); err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to save recipe"})
		return
	}
	writeJSON(w, h.logger, http.StatusCreated, APIResponse{Success: true, Data: rec})
}

// GetRecipe handles GET /api/v2/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.recipes.FindByID(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, id, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// UpdateRecipe handles PUT /api/v2/recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.recipes.FindByID(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, id, err)
		return
	}

	var req saveRecipeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	rec := req.toRecipe()
	rec.ID = id
	rec.Rating = existing.Rating
	if err := h.recipes.Save(r.Context(), rec); err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to save recipe"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: rec})
}

// DeleteRecipe handles DELETE /api/v2/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.recipes.Delete(r.Context(), id); err != nil {
		h.writeRepoError(w, id, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Message: "Recipe deleted"})
}

// RateRecipe handles POST /api/v2/recipes/{id}/rating
func (h *RecipeHandlers) RateRecipe(w http.ResponseWriter, r *http.Request) {
	var req rateRecipeRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	id := chi.URLParam(r, "id")
	rec, err := h.recipes.FindByID(r.Context(), id)
	if err != nil {
		h.writeRepoError(w, id, err)
		return
	}

	rec.Rate(req.Value)
	if err := h.recipes.Save(r.Context(), rec); err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to save recipe"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: rec})
}

func (h *RecipeHandlers) writeRepoError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, outbound.ErrRecipeNotFound) {
		writeError(w, h.logger, apperrors.NewRecipeNotFoundError(id))
		return
	}
	writeError(w, h.logger, apperrors.NewInternalError("Internal server error").WithCause(err))
}
