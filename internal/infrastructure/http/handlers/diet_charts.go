package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/pkg/errors"
)

// CreateDietChart handles POST /api/v1/diet-charts
func (h *APIHandlers) CreateDietChart(w http.ResponseWriter, r *http.Request) {
	var req CreateDietChartRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.charts.CreateChart(r.Context(), req.ToCommand(time.Now().UTC()))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/diet-charts/"+dto.Chart.ID)
	h.ok(w, http.StatusCreated, dto, "Diet chart created")
}

// GetDietChart handles GET /api/v1/diet-charts/{id}
func (h *APIHandlers) GetDietChart(w http.ResponseWriter, r *http.Request) {
	dto, err := h.charts.GetChart(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "")
}

// ListPatientDietCharts handles GET /api/v1/patients/{id}/diet-charts
func (h *APIHandlers) ListPatientDietCharts(w http.ResponseWriter, r *http.Request) {
	params, err := paginationParams(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	list, err := h.charts.ListPatientCharts(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, list, "")
}

// UpdateDietChartStatus handles PATCH /api/v1/diet-charts/{id}/status
func (h *APIHandlers) UpdateDietChartStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	dto, err := h.charts.UpdateStatus(r.Context(), chi.URLParam(r, "id"), dietchart.Status(req.Status))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, dto, "Diet chart status updated")
}

// DeleteDietChart handles DELETE /api/v1/diet-charts/{id}
func (h *APIHandlers) DeleteDietChart(w http.ResponseWriter, r *http.Request) {
	if err := h.charts.DeleteChart(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func paginationParams(r *http.Request) (inbound.PaginationParams, error) {
	var params inbound.PaginationParams
	q := r.URL.Query()
	for name, dst := range map[string]*int{"page": &params.Page, "page_size": &params.PageSize} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return params, errors.NewBadRequestError(name + " must be a positive integer")
		}
		*dst = n
	}
	return params, nil
}
