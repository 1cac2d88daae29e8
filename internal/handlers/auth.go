package handlers

import (
	"net/http"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"go.uber.org/zap"
)

// AuthHandler handles sign-in, session and access-check endpoints
type AuthHandler struct {
	auth     *services.AuthService
	sessions *services.SessionManager
	access   *services.AccessControl
	tokens   *services.TokenService
	store    *storage.Store
	logger   *zap.SugaredLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, sessions *services.SessionManager, access *services.AccessControl,
	tokens *services.TokenService, store *storage.Store, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions, access: access, tokens: tokens, store: store, logger: logger}
}

type sessionResponse struct {
	Session   *models.Session `json:"session"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	HomePage  string          `json:"homePage"`
}

func (h *AuthHandler) respondSession(w http.ResponseWriter, status int, sess *models.Session) {
	token, exp, err := h.tokens.Issue(sess)
	if err != nil {
		h.logger.Errorw("Failed to issue token", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to start session")
		return
	}
	respondJSON(w, status, sessionResponse{
		Session:   sess,
		Token:     token,
		ExpiresAt: exp,
		HomePage:  services.HomePage(sess.Role),
	})
}

// CitizenSignup handles POST /api/v1/auth/citizen/signup
func (h *AuthHandler) CitizenSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		PIN   string `json:"pin"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.auth.CitizenSignup(r.Context(), req.Name, req.Phone, req.PIN, req.Email)
	if err != nil {
		respondServiceError(w, h.logger, err, "Signup failed")
		return
	}
	h.respondSession(w, http.StatusCreated, sess)
}

// CitizenLogin handles POST /api/v1/auth/citizen/login
func (h *AuthHandler) CitizenLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		PIN   string `json:"pin"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.auth.CitizenLogin(r.Context(), req.Phone, req.PIN)
	if err != nil {
		respondServiceError(w, h.logger, err, "Login failed")
		return
	}
	h.respondSession(w, http.StatusOK, sess)
}

// VerifyOTP handles POST /api/v1/auth/citizen/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.VerifyOTP(req.Phone, req.OTP); err != nil {
		respondServiceError(w, h.logger, err, "OTP verification failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// AdminSignup handles POST /api/v1/auth/admin/signup
func (h *AuthHandler) AdminSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.auth.AdminSignup(r.Context(), req.Username, req.Phone, req.Password)
	if err != nil {
		respondServiceError(w, h.logger, err, "Signup failed")
		return
	}
	h.respondSession(w, http.StatusCreated, sess)
}

// AdminLogin handles POST /api/v1/auth/admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	sess, err := h.auth.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(w, h.logger, err, "Login failed")
		return
	}
	h.respondSession(w, http.StatusOK, sess)
}

// ResetPassword handles POST /api/v1/auth/admin/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username    string `json:"username"`
		Phone       string `json:"phone"`
		NewPassword string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.ResetPassword(r.Context(), req.Username, req.Phone, req.NewPassword); err != nil {
		respondServiceError(w, h.logger, err, "Password reset failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		respondServiceError(w, h.logger, err, "Logout failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"redirect": services.PagePortal})
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Get(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": sess != nil,
		"session":       sess,
	})
}

// Access handles GET /api/v1/auth/access?page=
func (h *AuthHandler) Access(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.access.CheckAccess(r.Context(), r.URL.Query().Get("page")))
}

// GetRole handles GET /api/v1/auth/role
func (h *AuthHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]models.Role{"role": h.store.GetSelectedRole(r.Context())})
}

// SetRole handles PUT /api/v1/auth/role
func (h *AuthHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Unknown role", "field": "role"})
		return
	}
	if err := h.store.SetSelectedRole(r.Context(), req.Role); err != nil {
		respondServiceError(w, h.logger, err, "Failed to save role")
		return
	}
	respondJSON(w, http.StatusOK, map[string]models.Role{"role": req.Role})
}
