package handlers

import (
	"net/http"
	"strconv"

	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// ActivityHandler handles activity log endpoints
type ActivityHandler struct {
	svc    *services.ActivityLogService
	logger *zap.SugaredLogger
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(svc *services.ActivityLogService, logger *zap.SugaredLogger) *ActivityHandler {
	return &ActivityHandler{svc: svc, logger: logger}
}

// ByComplaint handles GET /api/v1/admin/activity/complaint/{id}
func (h *ActivityHandler) ByComplaint(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Complaint id required")
		return
	}
	respondJSON(w, http.StatusOK, h.svc.FetchByComplaint(r.Context(), id, limitParam(r)))
}

// Recent handles GET /api/v1/admin/activity/recent
func (h *ActivityHandler) Recent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.svc.FetchRecent(r.Context(), limitParam(r)))
}

func limitParam(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return defaultActivityLimit
	}
	if n > maxActivityLimit {
		return maxActivityLimit
	}
	return n
}
