package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ValidateCompliance handles POST /api/v1/compliance/validate
func (h *APIHandlers) ValidateCompliance(w http.ResponseWriter, r *http.Request) {
	var req ValidateComplianceRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.compliance.ValidateCompliance(r.Context(), req.ToCommand())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, result, "")
}

// ScoreFood handles POST /api/v1/foods/score
func (h *APIHandlers) ScoreFood(w http.ResponseWriter, r *http.Request) {
	var req ScoreFoodRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	score, err := h.compliance.ScoreFood(r.Context(), req.ToCommand())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, score, "")
}

// Guidelines handles GET /api/v1/doshas/{doshaType}/guidelines
func (h *APIHandlers) Guidelines(w http.ResponseWriter, r *http.Request) {
	guideline, err := h.compliance.Guidelines(r.Context(), chi.URLParam(r, "doshaType"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, guideline, "")
}

// SuggestMeal handles POST /api/v1/meal-suggestions
func (h *APIHandlers) SuggestMeal(w http.ResponseWriter, r *http.Request) {
	var req SuggestMealRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	suggestion, err := h.meals.SuggestMeal(r.Context(), req.ToCommand())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, suggestion, "Meal suggestion generated")
}

// NutritionTotals handles POST /api/v1/nutrition/totals
func (h *APIHandlers) NutritionTotals(w http.ResponseWriter, r *http.Request) {
	var req NutritionTotalsRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	totals, err := h.nutrition.CalculateTotals(r.Context(), toItems(req.Items))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, totals, "")
}
