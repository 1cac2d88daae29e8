package handlers

import (
	"net/http"
	"strconv"

	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// WardHandler serves the ward risk map, dashboard and ward detail data.
type WardHandler struct {
	svc    *services.WardService
	logger *zap.SugaredLogger
}

// NewWardHandler creates a new ward handler
func NewWardHandler(svc *services.WardService, logger *zap.SugaredLogger) *WardHandler {
	return &WardHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/wards?band=critical|high|all
// Wards come back ranked by risk score, highest first.
func (h *WardHandler) List(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Band(r.URL.Query().Get("band")))
}

// Summary handles GET /api/v1/wards/summary
func (h *WardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.Summary())
}

// Detail handles GET /api/v1/wards/{id}
func (h *WardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ward id")
		return
	}
	ward, ok := h.svc.ByID(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Ward not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ward":            ward,
		"prediction":      services.Predict(ward.Ward),
		"recommendations": services.Recommendations(ward.RiskScore),
		"rainActions":     services.RainActions(ward.RiskScore),
	})
}

// AutoSeverity handles GET /api/v1/wards/auto-severity?ward=&rainfall=
func (h *WardHandler) AutoSeverity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var rainfall float64
	if v := q.Get("rainfall"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid rainfall", "field": "rainfall"})
			return
		}
		rainfall = f
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"severity": h.svc.AutoSeverity(q.Get("ward"), rainfall),
	})
}
