package services

import (
	"context"
	"strings"

	"github.com/aawaaz/waterlogging-server/internal/models"
)

// Page names used by the access rules.
const (
	PagePortal      = "portal.html"
	PageAdminHome   = "admin-home.html"
	PageCitizenHome = "citizen-home.html"
	PageIndex       = "index.html"
)

var citizenPages = []string{
	"portal.html",
	"auth.html",
	"citizen-home.html",
	"map.html",
	"complaint.html",
	"track.html",
	"my-complaints.html",
	"ward.html",
	"index.html",
}

var publicPages = []string{"portal.html", "auth.html", "index.html"}

// AccessDecision is the outcome of a page-load access check.
type AccessDecision struct {
	Allowed  bool   `json:"allowed"`
	Redirect string `json:"redirect,omitempty"`
	Denied   bool   `json:"denied"`
	HomePage string `json:"homePage,omitempty"`
}

// AccessControl gates pages by session role.
type AccessControl struct {
	sessions *SessionManager
}

// NewAccessControl creates an access checker over sessions.
func NewAccessControl(sessions *SessionManager) *AccessControl {
	return &AccessControl{sessions: sessions}
}

// IsPageAllowed reports whether role may open page. Admins may open every
// page; citizens only those on the allow-list.
func IsPageAllowed(page string, role models.Role) bool {
	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleCitizen:
		return containsAny(page, citizenPages)
	default:
		return false
	}
}

// IsPublicPage reports whether page needs no session at all.
func IsPublicPage(page string) bool {
	return containsAny(page, publicPages)
}

// HomePage is the landing page for role.
func HomePage(role models.Role) string {
	if role == models.RoleAdmin {
		return PageAdminHome
	}
	return PageCitizenHome
}

// CheckAccess evaluates a page load. An empty page is the index page.
func (a *AccessControl) CheckAccess(ctx context.Context, page string) AccessDecision {
	if page == "" {
		page = PageIndex
	}
	if IsPublicPage(page) {
		return AccessDecision{Allowed: true}
	}

	sess := a.sessions.Get(ctx)
	if sess == nil {
		return AccessDecision{Redirect: PagePortal}
	}
	if !IsPageAllowed(page, sess.Role) {
		return AccessDecision{Denied: true, HomePage: HomePage(sess.Role)}
	}
	return AccessDecision{Allowed: true}
}

func containsAny(page string, names []string) bool {
	for _, n := range names {
		if strings.Contains(page, n) {
			return true
		}
	}
	return false
}
