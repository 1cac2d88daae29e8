package handlers

import (
	"github.com/aawaaz/waterlogging-server/internal/middleware"
	"github.com/aawaaz/waterlogging-server/internal/services"
	"github.com/go-chi/chi/v5"
)

// API bundles the handlers mounted under /api/v1.
type API struct {
	Auth        *AuthHandler
	Preferences *PreferenceHandler
	Complaints  *ComplaintHandler
	Wards       *WardHandler
	Activity    *ActivityHandler
	Integrity   *IntegrityHandler
	Health      *HealthHandler

	Tokens   *services.TokenService
	Sessions *services.SessionManager
}

// Routes registers the API. Protected endpoints are gated by the page
// whose data they serve, so the page rules apply to the API as well.
func (a *API) Routes(r chi.Router) {
	page := middleware.RequirePage

	// Public endpoints
	r.Get("/health", a.Health.Check)
	r.Get("/health/ready", a.Health.Ready)
	r.Get("/catalog", a.Complaints.Catalog)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/citizen/signup", a.Auth.CitizenSignup)
		r.Post("/citizen/login", a.Auth.CitizenLogin)
		r.Post("/citizen/verify-otp", a.Auth.VerifyOTP)
		r.Post("/admin/signup", a.Auth.AdminSignup)
		r.Post("/admin/login", a.Auth.AdminLogin)
		r.Post("/admin/reset-password", a.Auth.ResetPassword)
		r.Post("/logout", a.Auth.Logout)
		r.Get("/session", a.Auth.Session)
		r.Get("/access", a.Auth.Access)
		r.Get("/role", a.Auth.GetRole)
		r.Put("/role", a.Auth.SetRole)
	})

	r.Get("/preferences/{name}", a.Preferences.Get)
	r.Put("/preferences/{name}", a.Preferences.Set)

	// Signed-in endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(a.Tokens, a.Sessions))

		r.With(page("complaint.html")).Post("/complaints", a.Complaints.Submit)
		r.With(page("my-complaints.html")).Get("/complaints/mine", a.Complaints.Mine)
		r.With(page("track.html")).Get("/complaints/search", a.Complaints.Search)
		r.With(page("track.html")).Get("/complaints/{id}", a.Complaints.Get)
		r.With(page("track.html")).Get("/complaints/{id}/can-escalate", a.Complaints.CanEscalate)
		r.With(page("track.html")).Post("/complaints/{id}/escalate", a.Complaints.Escalate)

		r.With(page("map.html")).Get("/wards", a.Wards.List)
		r.With(page("authority.html")).Get("/wards/summary", a.Wards.Summary)
		r.With(page("complaint.html")).Get("/wards/auto-severity", a.Wards.AutoSeverity)
		r.With(page("ward.html")).Get("/wards/{id}", a.Wards.Detail)

		r.Route("/admin", func(r chi.Router) {
			r.Use(page("admin-complaints.html"))

			r.Get("/complaints", a.Complaints.List)
			r.Get("/complaints/stats", a.Complaints.Stats)
			r.Get("/complaints/count", a.Complaints.Count)
			r.Patch("/complaints/{id}/status", a.Complaints.UpdateStatus)
			r.Post("/complaints/{id}/verify", a.Complaints.Verify)
			r.Post("/complaints/{id}/in-progress", a.Complaints.MarkInProgress)
			r.Post("/complaints/{id}/resolve", a.Complaints.Resolve)
			r.Post("/complaints/{id}/reject", a.Complaints.Reject)

			r.Get("/activity/recent", a.Activity.Recent)
			r.Get("/activity/complaint/{id}", a.Activity.ByComplaint)

			r.Get("/integrity/root", a.Integrity.GetRoot)
			r.Get("/integrity/proof/{index}", a.Integrity.GetProof)
			r.Get("/integrity/complaints/{id}", a.Integrity.ComplaintProof)
			r.Post("/integrity/verify", a.Integrity.Verify)
		})
	})
}
