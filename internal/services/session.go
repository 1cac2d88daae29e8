package services

import (
	"context"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"go.uber.org/zap"
)

// DefaultSessionTimeout is how long a session stays valid after login.
const DefaultSessionTimeout = 24 * time.Hour

// SessionManager owns the single current-user session. Expiry is checked
// lazily on every read; there is no background timer.
type SessionManager struct {
	store   *storage.Store
	timeout time.Duration
	now     func() time.Time
	logger  *zap.SugaredLogger
}

// NewSessionManager creates a session manager. A zero timeout uses
// DefaultSessionTimeout and a nil clock uses time.Now.
func NewSessionManager(store *storage.Store, timeout time.Duration, now func() time.Time, logger *zap.SugaredLogger) *SessionManager {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &SessionManager{store: store, timeout: timeout, now: now, logger: logger}
}

// Timeout returns the configured session lifetime.
func (m *SessionManager) Timeout() time.Duration { return m.timeout }

// Create persists sess as the current session, replacing any other.
func (m *SessionManager) Create(ctx context.Context, sess *models.Session) error {
	if err := m.store.SetSession(ctx, sess); err != nil {
		return err
	}
	if sess.Role != "" {
		if err := m.store.SetSelectedRole(ctx, sess.Role); err != nil {
			return err
		}
	}
	m.logger.Infow("Session created", "role", sess.Role, "phone", sess.Phone)
	return nil
}

// Get returns the current session, or nil when absent or expired. An
// expired session is cleared from the store as a side effect.
func (m *SessionManager) Get(ctx context.Context) *models.Session {
	sess := m.store.GetSession(ctx)
	if sess == nil {
		return nil
	}
	if m.now().Sub(sess.LoginTime) > m.timeout {
		m.logger.Infow("Session expired", "role", sess.Role, "login_time", sess.LoginTime)
		if err := m.Destroy(ctx); err != nil {
			m.logger.Warnw("Failed to clear expired session", "error", err)
		}
		return nil
	}
	return sess
}

// Destroy logs the current user out.
func (m *SessionManager) Destroy(ctx context.Context) error {
	return m.store.ClearSession(ctx)
}

// IsAuthenticated reports whether a live session exists.
func (m *SessionManager) IsAuthenticated(ctx context.Context) bool {
	return m.Get(ctx) != nil
}

// Role returns the live session's role, or "".
func (m *SessionManager) Role(ctx context.Context) models.Role {
	if sess := m.Get(ctx); sess != nil {
		return sess.Role
	}
	return ""
}
