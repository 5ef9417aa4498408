package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/application/assistant"
	"github.com/culina/v2/internal/domain/category"
	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/domain/recipe"
	"github.com/culina/v2/internal/infrastructure/persistence/memory"
	"github.com/culina/v2/internal/ports/inbound"
)

// stubAssistant answers with canned results so handler behavior can be
// tested without a provider round trip.
type stubAssistant struct {
	recipe   *recipe.Recipe
	category category.Category
	plan     plan.WeeklyPlan
	warnings []plan.Warning
	err      error
}

func (s *stubAssistant) GenerateRecipe(_ context.Context, _ inbound.GenerateRecipeCommand) (*recipe.Recipe, []plan.Warning, error) {
	return s.recipe, s.warnings, s.err
}

func (s *stubAssistant) CategorizeIngredient(_ context.Context, _ inbound.CategorizeCommand) (category.Category, error) {
	return s.category, s.err
}

func (s *stubAssistant) ImportRecipe(_ context.Context, _ inbound.ImportRecipeCommand) (*recipe.Recipe, []plan.Warning, error) {
	return s.recipe, s.warnings, s.err
}

func (s *stubAssistant) GenerateWeeklyPlan(_ context.Context, _ inbound.GeneratePlanCommand) (plan.WeeklyPlan, []plan.Warning, error) {
	return s.plan, s.warnings, s.err
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGenerateRecipeHandler(t *testing.T) {
	stub := &stubAssistant{recipe: &recipe.Recipe{Title: "Tarte"}}
	h := NewAssistantHandlers(stub, stub, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", true, zap.NewNop())

	t.Run("happy path flags demo mode", func(t *testing.T) {
		rec := postJSON(t, h.GenerateRecipe, `{"ingredients": [{"name": "Pomme"}]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.True(t, resp.Fallback)
	})

	t.Run("invalid ingredient mode is rejected", func(t *testing.T) {
		rec := postJSON(t, h.GenerateRecipe, `{"ingredient_mode": "use_some"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body is rejected", func(t *testing.T) {
		rec := postJSON(t, h.GenerateRecipe, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("untitled recipe is a gateway error", func(t *testing.T) {
		untitled := &stubAssistant{recipe: &recipe.Recipe{}}
		h := NewAssistantHandlers(untitled, untitled, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateRecipe, `{}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestCategorizeHandler(t *testing.T) {
	stub := &stubAssistant{category: category.Fruits}
	h := NewAssistantHandlers(stub, stub, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

	rec := postJSON(t, h.CategorizeIngredient, `{"ingredient": "Pomme"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "fruits", data["category"])

	rec = postJSON(t, h.CategorizeIngredient, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateWeeklyPlanHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("empty catalog cannot be planned", func(t *testing.T) {
		h := NewAssistantHandlers(&stubAssistant{}, &stubAssistant{}, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateWeeklyPlan, `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("generated plan is persisted with warnings", func(t *testing.T) {
		recipes := memory.NewRecipeRepository()
		require.NoError(t, recipes.Save(ctx, &recipe.Recipe{Title: "Salade"}))
		plans := memory.NewPlanRepository()

		generated := plan.WeeklyPlan{
			"2024-01-01": {Lunch: &plan.Slot{RecipeID: "r1", Title: "Salade"}},
		}
		stub := &stubAssistant{
			plan:     generated,
			warnings: []plan.Warning{{Code: plan.WarnMatchedByTitle, Detail: "Salade"}},
		}
		h := NewAssistantHandlers(stub, stub, recipes, plans, "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateWeeklyPlan, `{"notes": "pas de poisson"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.Equal(t, []string{"matched_by_title:Salade"}, resp.Warnings)

		stored, err := plans.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored["2024-01-01"].Lunch)
	})
}

func TestAssistantHandlersDegradeToFallback(t *testing.T) {
	ctx := context.Background()

	t.Run("generation failure serves the fallback recipe", func(t *testing.T) {
		broken := &stubAssistant{err: assistant.ErrGenerationFailed}
		canned := &stubAssistant{recipe: &recipe.Recipe{Title: "Salade composée du placard"}}
		h := NewAssistantHandlers(broken, canned, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateRecipe, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Success)
		assert.True(t, resp.Fallback)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "Salade composée du placard", data["titre"])
	})

	t.Run("unparseable answer serves the fallback category", func(t *testing.T) {
		broken := &stubAssistant{err: assistant.ErrUnparseableResponse}
		canned := &stubAssistant{category: category.Default}
		h := NewAssistantHandlers(broken, canned, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.CategorizeIngredient, `{"ingredient": "Pomme"}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Fallback)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "other", data["category"])
	})

	t.Run("failed plan generation falls back and persists", func(t *testing.T) {
		recipes := memory.NewRecipeRepository()
		require.NoError(t, recipes.Save(ctx, &recipe.Recipe{Title: "Salade"}))
		plans := memory.NewPlanRepository()

		broken := &stubAssistant{err: assistant.ErrGenerationFailed}
		canned := &stubAssistant{plan: plan.WeeklyPlan{
			"2024-01-01": {Lunch: &plan.Slot{RecipeID: "r1", Title: "Salade"}},
		}}
		h := NewAssistantHandlers(broken, canned, recipes, plans, "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateWeeklyPlan, `{}`)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse(t, rec)
		assert.True(t, resp.Fallback)

		stored, err := plans.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, stored["2024-01-01"].Lunch)
	})

	t.Run("unexpected errors do not degrade", func(t *testing.T) {
		broken := &stubAssistant{err: errors.New("catalog exploded")}
		canned := &stubAssistant{recipe: &recipe.Recipe{Title: "Tarte"}}
		h := NewAssistantHandlers(broken, canned, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.ImportRecipe, `{"text": "Tarte aux pommes"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("a broken fallback still surfaces the failure", func(t *testing.T) {
		broken := &stubAssistant{err: assistant.ErrGenerationFailed}
		h := NewAssistantHandlers(broken, broken, memory.NewRecipeRepository(), memory.NewPlanRepository(), "fr", false, zap.NewNop())

		rec := postJSON(t, h.GenerateRecipe, `{}`)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func newRecipeRouter(h *RecipeHandlers) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/recipes", h.ListRecipes)
	r.Post("/recipes", h.CreateRecipe)
	r.Get("/recipes/{id}", h.GetRecipe)
	r.Delete("/recipes/{id}", h.DeleteRecipe)
	r.Post("/recipes/{id}/rating", h.RateRecipe)
	return r
}

func TestRecipeHandlersLifecycle(t *testing.T) {
	h := NewRecipeHandlers(memory.NewRecipeRepository(), zap.NewNop())
	router := newRecipeRouter(h)

	// Create
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(`{"titre": "Tarte", "difficulte": "facile"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Data recipe.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	// Rate
	req = httptest.NewRequest(http.MethodPost, "/recipes/"+created.Data.ID+"/rating", bytes.NewBufferString(`{"value": 4.5}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Get
	req = httptest.NewRequest(http.MethodGet, "/recipes/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched struct {
		Data recipe.Recipe `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	require.NotNil(t, fetched.Data.Rating)
	assert.Equal(t, 4.5, *fetched.Data.Rating)

	// Delete, then the recipe is gone
	req = httptest.NewRequest(http.MethodDelete, "/recipes/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/recipes/"+created.Data.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecipeHandlersValidation(t *testing.T) {
	h := NewRecipeHandlers(memory.NewRecipeRepository(), zap.NewNop())
	router := newRecipeRouter(h)

	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewBufferString(`{"description": "sans titre"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanHandlersReplaceDay(t *testing.T) {
	ctx := context.Background()
	recipes := memory.NewRecipeRepository()
	salade := &recipe.Recipe{Title: "Salade"}
	require.NoError(t, recipes.Save(ctx, salade))

	plans := memory.NewPlanRepository()
	h := NewPlanHandlers(plans, recipes, zap.NewNop())

	router := chi.NewRouter()
	router.Get("/plan", h.GetPlan)
	router.Put("/plan/{date}", h.ReplaceDay)

	t.Run("invalid date is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/plan/01-01-2024", bytes.NewBufferString(`{"dejeuner": {"id": "x"}}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown recipe id is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/plan/2024-01-01", bytes.NewBufferString(`{"dejeuner": {"id": "ghost"}}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("empty day is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/plan/2024-01-01", bytes.NewBufferString(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("valid day is stored with the catalog title", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/plan/2024-01-01", bytes.NewBufferString(`{"diner": {"id": "`+salade.ID+`"}}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := plans.Current(ctx)
		require.NoError(t, err)
		day, ok := stored["2024-01-01"]
		require.True(t, ok)
		require.NotNil(t, day.Dinner)
		assert.Equal(t, "Salade", day.Dinner.Title)
	})
}
