package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"go.uber.org/zap"
)

// Logical keys of the persisted layout.
const (
	KeySession         = "session"
	KeySelectedRole    = "selectedRole"
	KeyAdminUsers      = "adminUsers"
	KeyComplaints      = "delhiComplaints"
	KeyLegacyComplaint = "complaints"
	KeyActivityLog     = "activityLog"
	KeyTheme           = "theme"
	KeyLanguage        = "language"
)

// Store maps the application's collections onto a KV backend.
//
// Reads never fail: absent, unreadable or corrupt values are logged and
// reported as empty. Writes return backend errors. Every mutation is a
// whole-collection read-modify-write with no versioning.
type Store struct {
	kv     KV
	logger *zap.SugaredLogger
}

// Open wraps kv and runs the one-time legacy key migration.
func Open(ctx context.Context, kv KV, logger *zap.SugaredLogger) (*Store, error) {
	s := New(kv, logger)
	migrated, err := s.MigrateLegacyComplaints(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrate legacy complaints: %w", err)
	}
	if migrated {
		logger.Infow("Migrated legacy complaints key",
			"from", KeyLegacyComplaint,
			"to", KeyComplaints,
		)
	}
	return s, nil
}

// New wraps kv without running migrations.
func New(kv KV, logger *zap.SugaredLogger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Ping checks the backend.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// MigrateLegacyComplaints copies the legacy complaints key to the canonical
// key when the canonical one is empty, then clears the legacy key. A second
// run finds the legacy key empty and does nothing.
func (s *Store) MigrateLegacyComplaints(ctx context.Context) (bool, error) {
	current, ok, err := s.kv.Get(ctx, KeyComplaints)
	if err != nil {
		return false, err
	}
	if ok && current != "" {
		return false, nil
	}

	legacy, ok, err := s.kv.Get(ctx, KeyLegacyComplaint)
	if err != nil {
		return false, err
	}
	if !ok || legacy == "" {
		return false, nil
	}

	if err := s.kv.Set(ctx, KeyComplaints, legacy); err != nil {
		return false, err
	}
	if err := s.kv.Delete(ctx, KeyLegacyComplaint); err != nil {
		return false, err
	}
	return true, nil
}

// GetSession returns the stored session or nil.
func (s *Store) GetSession(ctx context.Context) *models.Session {
	var sess models.Session
	if !s.readJSON(ctx, KeySession, &sess) {
		return nil
	}
	return &sess
}

// SetSession persists sess as the current session.
func (s *Store) SetSession(ctx context.Context, sess *models.Session) error {
	return s.writeJSON(ctx, KeySession, sess)
}

// ClearSession removes the session and the selected role.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, KeySession, KeySelectedRole)
}

// GetAdminAccounts returns the registered admin accounts in insertion order.
func (s *Store) GetAdminAccounts(ctx context.Context) []models.AdminAccount {
	var accounts []models.AdminAccount
	if !s.readJSON(ctx, KeyAdminUsers, &accounts) || accounts == nil {
		return []models.AdminAccount{}
	}
	return accounts
}

// SaveAdminAccounts replaces the admin account collection.
func (s *Store) SaveAdminAccounts(ctx context.Context, accounts []models.AdminAccount) error {
	return s.writeJSON(ctx, KeyAdminUsers, accounts)
}

// GetComplaints returns every stored complaint.
func (s *Store) GetComplaints(ctx context.Context) []models.Complaint {
	var complaints []models.Complaint
	if !s.readJSON(ctx, KeyComplaints, &complaints) || complaints == nil {
		return []models.Complaint{}
	}
	return complaints
}

// SaveComplaints replaces the complaint collection.
func (s *Store) SaveComplaints(ctx context.Context, complaints []models.Complaint) error {
	return s.writeJSON(ctx, KeyComplaints, complaints)
}

// GetActivityLogs returns the stored activity records, oldest first.
func (s *Store) GetActivityLogs(ctx context.Context) []models.ActivityLog {
	var logs []models.ActivityLog
	if !s.readJSON(ctx, KeyActivityLog, &logs) || logs == nil {
		return []models.ActivityLog{}
	}
	return logs
}

// SaveActivityLogs replaces the activity log.
func (s *Store) SaveActivityLogs(ctx context.Context, logs []models.ActivityLog) error {
	return s.writeJSON(ctx, KeyActivityLog, logs)
}

// GetSelectedRole returns the role picked on the portal page, or "".
func (s *Store) GetSelectedRole(ctx context.Context) models.Role {
	return models.Role(s.readRaw(ctx, KeySelectedRole))
}

// SetSelectedRole stores the role picked on the portal page.
func (s *Store) SetSelectedRole(ctx context.Context, role models.Role) error {
	return s.kv.Set(ctx, KeySelectedRole, string(role))
}

// GetPreference returns a UI preference ("theme" or "language"), or "".
func (s *Store) GetPreference(ctx context.Context, name string) string {
	if !isPreference(name) {
		return ""
	}
	return s.readRaw(ctx, name)
}

// SetPreference stores a UI preference.
func (s *Store) SetPreference(ctx context.Context, name, value string) error {
	if !isPreference(name) {
		return errs.Validation("name", fmt.Sprintf("Unknown preference %q", name))
	}
	return s.kv.Set(ctx, name, value)
}

func isPreference(name string) bool {
	return name == KeyTheme || name == KeyLanguage
}

func (s *Store) readRaw(ctx context.Context, key string) string {
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warnw("Storage read failed", "key", key, "error", err)
		return ""
	}
	if !ok {
		return ""
	}
	return v
}

// readJSON decodes key into dst and reports whether a value was found.
func (s *Store) readJSON(ctx context.Context, key string, dst any) bool {
	raw := s.readRaw(ctx, key)
	if raw == "" || raw == "null" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warnw("Discarding unreadable stored value",
			"key", key,
			"error", fmt.Errorf("%w: %v", errs.ErrStorageRead, err),
		)
		return false
	}
	return true
}

func (s *Store) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
