package handlers

import (
	"net/http"
	"strconv"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// IntegrityHandler handles Merkle tree verification endpoints
type IntegrityHandler struct {
	svc          *services.MerkleService
	complaintSvc *services.ComplaintService
	logger       *zap.SugaredLogger
}

// NewIntegrityHandler creates a new integrity handler
func NewIntegrityHandler(svc *services.MerkleService, cs *services.ComplaintService, logger *zap.SugaredLogger) *IntegrityHandler {
	return &IntegrityHandler{svc: svc, complaintSvc: cs, logger: logger}
}

// GetRoot handles GET /api/v1/admin/integrity/root
func (h *IntegrityHandler) GetRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"root":       h.svc.GetRoot(),
		"leaf_count": h.svc.GetLeafCount(),
		"timestamp":  h.svc.GetLastBuildTime(),
	})
}

// GetProof handles GET /api/v1/admin/integrity/proof/{index}
func (h *IntegrityHandler) GetProof(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid index")
		return
	}

	proof, err := h.svc.GetProof(index)
	if err != nil {
		respondError(w, http.StatusNotFound, "Proof not available for index")
		return
	}
	respondJSON(w, http.StatusOK, proof)
}

// ComplaintProof handles GET /api/v1/admin/integrity/complaints/{id}
// The complaint is hashed as currently stored; a record changed since the
// last rebuild has no proof until the next one.
func (h *IntegrityHandler) ComplaintProof(w http.ResponseWriter, r *http.Request) {
	c := h.complaintSvc.Get(r.Context(), chi.URLParam(r, "id"))
	if c == nil {
		respondError(w, http.StatusNotFound, "Complaint not found")
		return
	}
	hash, err := services.HashComplaint(c)
	if err != nil {
		h.logger.Errorw("Failed to hash complaint", "id", c.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to hash complaint")
		return
	}
	proof, ok := h.svc.ProofForLeaf(hash)
	if !ok {
		respondError(w, http.StatusNotFound, "Complaint not anchored in current tree")
		return
	}
	respondJSON(w, http.StatusOK, proof)
}

// Verify handles POST /api/v1/admin/integrity/verify
func (h *IntegrityHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var proof models.MerkleProof
	if !decodeJSON(w, r, &proof) {
		return
	}
	valid := services.VerifyProof(&proof)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"valid":   valid,
		"current": valid && proof.Root == h.svc.GetRoot(),
	})
}
