package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/culina/v2/internal/domain/plan"
	"github.com/culina/v2/internal/ports/outbound"
)

// PlanHandlers handles the stored weekly plan endpoints.
type PlanHandlers struct {
	plans    outbound.PlanRepository
	recipes  outbound.RecipeRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPlanHandlers creates the plan handlers.
func NewPlanHandlers(plans outbound.PlanRepository, recipes outbound.RecipeRepository, logger *zap.Logger) *PlanHandlers {
	return &PlanHandlers{
		plans:    plans,
		recipes:  recipes,
		validate: validator.New(),
		logger:   logger,
	}
}

type slotRequest struct {
	RecipeID string `json:"id" validate:"required"`
}

type replaceDayRequest struct {
	Breakfast *slotRequest `json:"petit-dejeuner"`
	Lunch     *slotRequest `json:"dejeuner"`
	Dinner    *slotRequest `json:"diner"`
}

// GetPlan handles GET /api/v2/plan
func (h *PlanHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	current, err := h.plans.Current(r.Context())
	if err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to load plan"})
		return
	}
	if current == nil {
		current = plan.WeeklyPlan{}
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: current})
}

// ReplaceDay handles PUT /api/v2/plan/{date}. Manual edits go through
// the same catalog resolution as generated plans: every referenced
// recipe id must exist.
func (h *PlanHandlers) ReplaceDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !plan.ValidDate(date) {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var req replaceDayRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
		return
	}

	day := plan.Day{}
	for _, binding := range []struct {
		slot   *slotRequest
		target **plan.Slot
	}{
		{req.Breakfast, &day.Breakfast},
		{req.Lunch, &day.Lunch},
		{req.Dinner, &day.Dinner},
	} {
		if binding.slot == nil {
			continue
		}
		rec, err := h.recipes.FindByID(r.Context(), binding.slot.RecipeID)
		if err != nil {
			writeJSON(w, h.logger, http.StatusUnprocessableEntity, APIResponse{
				Success: false,
				Error:   "Unknown recipe id: " + binding.slot.RecipeID,
			})
			return
		}
		*binding.target = &plan.Slot{RecipeID: rec.ID, Title: rec.Title}
	}

	if day.Breakfast == nil && day.Lunch == nil && day.Dinner == nil {
		writeJSON(w, h.logger, http.StatusBadRequest, APIResponse{Success: false, Error: "Day must contain at least one meal"})
		return
	}

	if err := h.plans.ReplaceDay(r.Context(), date, day); err != nil {
		writeJSON(w, h.logger, http.StatusInternalServerError, APIResponse{Success: false, Error: "Failed to store day"})
		return
	}
	writeJSON(w, h.logger, http.StatusOK, APIResponse{Success: true, Data: map[string]plan.Day{date: day}})
}
