package handlers

import (
	"net/http"
	"strconv"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ComplaintHandler handles complaint-related HTTP endpoints
type ComplaintHandler struct {
	complaintSvc *services.ComplaintService
	logger       *zap.SugaredLogger
}

// NewComplaintHandler creates a new complaint handler
func NewComplaintHandler(cs *services.ComplaintService, logger *zap.SugaredLogger) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: cs, logger: logger}
}

// Catalog handles GET /api/v1/catalog
// Returns the option lists the complaint and admin forms are built from.
func (h *ComplaintHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories":  models.Categories,
		"severities":  models.Severities,
		"statuses":    models.Statuses,
		"departments": models.Departments,
		"zones":       models.DelhiZones,
	})
}

// Submit handles POST /api/v1/complaints
func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ComplaintSubmission
	if !decodeJSON(w, r, &req) {
		return
	}

	// Signed-in citizens file under their own identity.
	if sess := currentSession(r); sess != nil && sess.Role == models.RoleCitizen {
		if req.CitizenName == "" {
			req.CitizenName = sess.Name
		}
		req.CitizenPhone = sess.Phone
		if req.CitizenEmail == "" && sess.Email != nil {
			req.CitizenEmail = *sess.Email
		}
	}

	complaint, err := h.complaintSvc.Submit(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to submit complaint")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":        complaint.ID,
		"createdAt": complaint.CreatedAt,
		"complaint": complaint,
		"message":   "Complaint registered successfully",
	})
}

// Get handles GET /api/v1/complaints/{id}
func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	c := h.complaintSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"complaint":   c,
		"canEscalate": h.complaintSvc.CanEscalate(c),
	})
}

// Search handles GET /api/v1/complaints/search?q=
func (h *ComplaintHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		respondError(w, http.StatusBadRequest, "Search term required")
		return
	}
	respondJSON(w, http.StatusOK, h.complaintSvc.Search(r.Context(), q))
}

// Mine handles GET /api/v1/complaints/mine
func (h *ComplaintHandler) Mine(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "Authorization required")
		return
	}
	respondJSON(w, http.StatusOK, h.complaintSvc.ByPhone(r.Context(), sess.Phone))
}

// CanEscalate handles GET /api/v1/complaints/{id}/can-escalate
func (h *ComplaintHandler) CanEscalate(w http.ResponseWriter, r *http.Request) {
	c := h.complaintSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"canEscalate": h.complaintSvc.CanEscalate(c)})
}

// Escalate handles POST /api/v1/complaints/{id}/escalate
// Only complaints that pass the escalation rule are flagged.
func (h *ComplaintHandler) Escalate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c := h.complaintSvc.Get(r.Context(), id)
	if c == nil {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	if !h.complaintSvc.CanEscalate(c) {
		respondError(w, http.StatusConflict, "Complaint is not eligible for escalation")
		return
	}

	found, err := h.complaintSvc.Escalate(r.Context(), id, actor(r))
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to escalate complaint")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        id,
		"escalated": true,
		"message":   "Complaint escalated to higher authority",
	})
}

// List handles GET /api/v1/admin/complaints
// Query params: category, status, severity, ward, zone, escalated, sort, order.
func (h *ComplaintHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.ComplaintFilters{
		Category: models.Category(q.Get("category")),
		Status:   models.Status(q.Get("status")),
		Severity: models.Severity(q.Get("severity")),
		Ward:     q.Get("ward"),
		Zone:     q.Get("zone"),
	}
	if v := q.Get("escalated"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid escalated flag", "field": "escalated"})
			return
		}
		f.Escalated = &b
	}

	complaints := h.complaintSvc.Query(r.Context(), f, q.Get("sort"), q.Get("order"))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"complaints": complaints,
		"count":      len(complaints),
	})
}

// Stats handles GET /api/v1/admin/complaints/stats
func (h *ComplaintHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.complaintSvc.Stats(r.Context()))
}

// Count handles GET /api/v1/admin/complaints/count
func (h *ComplaintHandler) Count(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]int{"count": h.complaintSvc.Count(r.Context())})
}

// UpdateStatus handles PATCH /api/v1/admin/complaints/{id}/status
func (h *ComplaintHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.StatusUpdate
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.complaintSvc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req, actor(r))
	h.respondUpdated(w, c, err)
}

// Verify handles POST /api/v1/admin/complaints/{id}/verify
func (h *ComplaintHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Department models.Department `json:"department"`
		ETA        string            `json:"eta"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Department == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Department is required", "field": "department"})
		return
	}
	c, err := h.complaintSvc.Verify(r.Context(), chi.URLParam(r, "id"), req.Department, req.ETA, actor(r))
	h.respondUpdated(w, c, err)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// MarkInProgress handles POST /api/v1/admin/complaints/{id}/in-progress
func (h *ComplaintHandler) MarkInProgress(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.complaintSvc.MarkInProgress(r.Context(), chi.URLParam(r, "id"), req.Comment, actor(r))
	h.respondUpdated(w, c, err)
}

// Resolve handles POST /api/v1/admin/complaints/{id}/resolve
func (h *ComplaintHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.complaintSvc.Resolve(r.Context(), chi.URLParam(r, "id"), req.Comment, actor(r))
	h.respondUpdated(w, c, err)
}

// Reject handles POST /api/v1/admin/complaints/{id}/reject
func (h *ComplaintHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Reason == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Rejection reason is required", "field": "reason"})
		return
	}
	c, err := h.complaintSvc.Reject(r.Context(), chi.URLParam(r, "id"), req.Reason, actor(r))
	h.respondUpdated(w, c, err)
}

func (h *ComplaintHandler) respondUpdated(w http.ResponseWriter, c *models.Complaint, err error) {
	if err != nil {
		respondServiceError(w, h.logger, err, "Failed to update complaint")
		return
	}
	if c == nil {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	respondJSON(w, http.StatusOK, c)
}
