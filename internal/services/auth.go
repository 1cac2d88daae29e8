package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"go.uber.org/zap"
)

// Demo-grade credentials. These mirror the public demo of the dashboard and
// are not a security feature.
const (
	DemoCitizenPIN    = "1234"
	DemoOTP           = "1234"
	DemoAdminUsername = "admin"
	DemoAdminPassword = "admin123"
	DemoAdminPhone    = "9999999999"
)

const (
	minPINLength      = 4
	minPasswordLength = 6
	citizenUserName   = "Citizen User"
	adminDisplayName  = "Administrator"
)

// AuthService runs the citizen and admin sign-in flows. Successful flows
// start a session through the SessionManager.
type AuthService struct {
	store     *storage.Store
	sessions  *SessionManager
	passwords PasswordChecker
	now       func() time.Time
	logger    *zap.SugaredLogger

	// serializes admin account read-modify-write
	mu sync.Mutex
}

// NewAuthService creates an auth service.
func NewAuthService(store *storage.Store, sessions *SessionManager, passwords PasswordChecker, now func() time.Time, logger *zap.SugaredLogger) *AuthService {
	if passwords == nil {
		passwords = PlaintextPasswords{}
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		store:     store,
		sessions:  sessions,
		passwords: passwords,
		now:       now,
		logger:    logger,
	}
}

// CitizenSignup validates the form and starts a citizen session. Citizens
// are not stored as accounts.
func (s *AuthService) CitizenSignup(ctx context.Context, name, phone, pin, email string) (*models.Session, error) {
	if name == "" || phone == "" || pin == "" {
		return nil, errs.Validation(firstEmpty(
			field{"name", name}, field{"phone", phone}, field{"pin", pin},
		), "Name, phone, and PIN are required")
	}
	if !isPhone(phone) {
		return nil, errs.Validation("phone", "Phone must be 10 digits")
	}
	if len(pin) < minPINLength {
		return nil, errs.Validation("pin", "PIN must be at least 4 characters")
	}

	sess := &models.Session{
		Role:      models.RoleCitizen,
		Name:      name,
		Phone:     phone,
		LoginTime: s.now(),
	}
	if email != "" {
		sess.Email = &email
	}
	return s.start(ctx, sess)
}

// CitizenLogin signs a citizen in. The check is demo-grade: the phone is
// accepted if it has filed a complaint before, or the PIN is the demo PIN.
func (s *AuthService) CitizenLogin(ctx context.Context, phone, pin string) (*models.Session, error) {
	if phone == "" || pin == "" {
		return nil, errs.Validation(firstEmpty(field{"phone", phone}, field{"pin", pin}),
			"Phone and PIN are required")
	}
	if !isPhone(phone) {
		return nil, errs.Validation("phone", "Invalid phone number")
	}

	if !s.hasComplaints(ctx, phone) && pin != DemoCitizenPIN {
		s.logger.Infow("Citizen login rejected", "phone", phone)
		return nil, errs.Auth("Invalid phone or PIN. Use PIN: 1234 for demo or register first.")
	}

	return s.start(ctx, &models.Session{
		Role:      models.RoleCitizen,
		Name:      citizenUserName,
		Phone:     phone,
		LoginTime: s.now(),
	})
}

// VerifyOTP checks a one-time code. Only the demo code is accepted.
func (s *AuthService) VerifyOTP(phone, otp string) error {
	if otp == DemoOTP {
		return nil
	}
	s.logger.Infow("OTP rejected", "phone", phone)
	return errs.Auth("Invalid OTP. Use 1234 for demo.")
}

// AdminSignup registers an admin account and starts an admin session.
func (s *AuthService) AdminSignup(ctx context.Context, username, phone, password string) (*models.Session, error) {
	if username == "" || phone == "" || password == "" {
		return nil, errs.Validation(firstEmpty(
			field{"username", username}, field{"phone", phone}, field{"password", password},
		), "All fields are required")
	}
	if !isPhone(phone) {
		return nil, errs.Validation("phone", "Phone must be 10 digits")
	}
	if len(password) < minPasswordLength {
		return nil, errs.Validation("password", "Password must be at least 6 characters")
	}

	s.mu.Lock()
	accounts := s.store.GetAdminAccounts(ctx)
	for _, a := range accounts {
		if a.Username == username {
			s.mu.Unlock()
			return nil, errs.Conflict("Username already exists")
		}
	}

	stored, err := s.passwords.Prepare(password)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	accounts = append(accounts, models.AdminAccount{
		Username:  username,
		Phone:     phone,
		Password:  stored,
		CreatedAt: s.now(),
	})
	err = s.store.SaveAdminAccounts(ctx, accounts)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save admin accounts: %w", err)
	}

	s.logger.Infow("Admin account registered", "username", username)

	return s.start(ctx, &models.Session{
		Role:      models.RoleAdmin,
		Name:      adminDisplayName,
		Username:  username,
		Phone:     phone,
		LoginTime: s.now(),
	})
}

// AdminLogin signs an admin in with the demo pair or a registered account.
func (s *AuthService) AdminLogin(ctx context.Context, username, password string) (*models.Session, error) {
	if username == "" || password == "" {
		return nil, errs.Validation(firstEmpty(field{"username", username}, field{"password", password}),
			"Username and password are required")
	}

	if username == DemoAdminUsername && password == DemoAdminPassword {
		return s.start(ctx, &models.Session{
			Role:      models.RoleAdmin,
			Name:      adminDisplayName,
			Username:  username,
			Phone:     DemoAdminPhone,
			LoginTime: s.now(),
		})
	}

	for _, a := range s.store.GetAdminAccounts(ctx) {
		if a.Username == username && s.passwords.Matches(a.Password, password) {
			return s.start(ctx, &models.Session{
				Role:      models.RoleAdmin,
				Name:      adminDisplayName,
				Username:  username,
				Phone:     a.Phone,
				LoginTime: s.now(),
			})
		}
	}

	s.logger.Infow("Admin login rejected", "username", username)
	return nil, errs.Auth("Invalid username or password")
}

// ResetPassword replaces the password of the account matching both
// username and phone.
func (s *AuthService) ResetPassword(ctx context.Context, username, phone, newPassword string) error {
	if username == "" || phone == "" || newPassword == "" {
		return errs.Validation(firstEmpty(
			field{"username", username}, field{"phone", phone}, field{"password", newPassword},
		), "All fields are required")
	}
	if len(newPassword) < minPasswordLength {
		return errs.Validation("password", "Password must be at least 6 characters")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.store.GetAdminAccounts(ctx)
	idx := -1
	for i, a := range accounts {
		if a.Username == username && a.Phone == phone {
			idx = i
			break
		}
	}
	if idx == -1 {
		return errs.Auth("No admin account found with this username and phone")
	}

	stored, err := s.passwords.Prepare(newPassword)
	if err != nil {
		return err
	}
	accounts[idx].Password = stored
	if err := s.store.SaveAdminAccounts(ctx, accounts); err != nil {
		return fmt.Errorf("save admin accounts: %w", err)
	}

	s.logger.Infow("Admin password reset", "username", username)
	return nil
}

// Logout ends the current session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.sessions.Destroy(ctx)
}

func (s *AuthService) start(ctx context.Context, sess *models.Session) (*models.Session, error) {
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) hasComplaints(ctx context.Context, phone string) bool {
	for _, c := range s.store.GetComplaints(ctx) {
		if c.Citizen.Phone == phone {
			return true
		}
	}
	return false
}

type field struct {
	name, value string
}

func firstEmpty(fields ...field) string {
	for _, f := range fields {
		if f.value == "" {
			return f.name
		}
	}
	return ""
}

// isPhone reports whether s is exactly ten ASCII digits.
func isPhone(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
