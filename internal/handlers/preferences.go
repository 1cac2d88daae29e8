package handlers

import (
	"net/http"

	"github.com/aawaaz/waterlogging-server/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PreferenceHandler serves the theme and language preferences.
type PreferenceHandler struct {
	store  *storage.Store
	logger *zap.SugaredLogger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(store *storage.Store, logger *zap.SugaredLogger) *PreferenceHandler {
	return &PreferenceHandler{store: store, logger: logger}
}

// Get handles GET /api/v1/preferences/{name}
func (h *PreferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name != storage.KeyTheme && name != storage.KeyLanguage {
		respondError(w, http.StatusNotFound, "Unknown preference")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": name, "value": h.store.GetPreference(r.Context(), name)})
}

// Set handles PUT /api/v1/preferences/{name}
func (h *PreferenceHandler) Set(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var req struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.store.SetPreference(r.Context(), name, req.Value); err != nil {
		respondServiceError(w, h.logger, err, "Failed to save preference")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"name": name, "value": req.Value})
}
