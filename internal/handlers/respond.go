// Package handlers contains HTTP request handlers for the water-logging API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/middleware"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; complaint photos travel inline.
const maxBodyBytes = 8 << 20

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps a service error onto a status code. Unknown
// errors are logged and reported generically.
func respondServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, err error, fallback string) {
	var v *errs.ValidationError
	switch {
	case errors.As(err, &v):
		body := map[string]string{"error": v.Message}
		if v.Field != "" {
			body["field"] = v.Field
		}
		respondJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, errs.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		logger.Errorw(fallback, "error", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// actor names the signed-in user for activity records.
func actor(r *http.Request) string {
	sess := middleware.SessionFromContext(r.Context())
	switch {
	case sess == nil:
		return "SYSTEM"
	case sess.Username != "":
		return sess.Username
	case sess.Name != "":
		return sess.Name
	default:
		return sess.Phone
	}
}

func currentSession(r *http.Request) *models.Session {
	return middleware.SessionFromContext(r.Context())
}
