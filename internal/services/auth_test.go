package services

import (
	"context"
	"testing"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	store    *storage.Store
	sessions *SessionManager
	auth     *AuthService
	clock    *fakeClock
}

func newAuthFixture(t *testing.T, passwords PasswordChecker) *authFixture {
	t.Helper()
	clock := newClock(time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC))
	store := newTestStore(t)
	sessions := NewSessionManager(store, 0, clock.Now, nopLogger)
	return &authFixture{
		store:    store,
		sessions: sessions,
		auth:     NewAuthService(store, sessions, passwords, clock.Now, nopLogger),
		clock:    clock,
	}
}

func requireValidation(t *testing.T, err error, field, msg string) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValidation)
	var v *errs.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Equal(t, field, v.Field)
	assert.Equal(t, msg, v.Message)
}

func TestCitizenSignup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	_, err := f.auth.CitizenSignup(ctx, "", "9876543210", "1234", "")
	requireValidation(t, err, "name", "Name, phone, and PIN are required")
	_, err = f.auth.CitizenSignup(ctx, "Asha", "98765", "1234", "")
	requireValidation(t, err, "phone", "Phone must be 10 digits")
	_, err = f.auth.CitizenSignup(ctx, "Asha", "98765abcde", "1234", "")
	requireValidation(t, err, "phone", "Phone must be 10 digits")
	_, err = f.auth.CitizenSignup(ctx, "Asha", "9876543210", "123", "")
	requireValidation(t, err, "pin", "PIN must be at least 4 characters")

	sess, err := f.auth.CitizenSignup(ctx, "Asha", "9876543210", "4321", "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCitizen, sess.Role)
	require.NotNil(t, sess.Email)
	assert.Equal(t, "asha@example.com", *sess.Email)

	current := f.sessions.Get(ctx)
	require.NotNil(t, current)
	assert.Equal(t, "Asha", current.Name)
	assert.Empty(t, f.store.GetAdminAccounts(ctx))
}

func TestCitizenLogin_DemoGrade(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	_, err := f.auth.CitizenLogin(ctx, "9876543210", "")
	requireValidation(t, err, "pin", "Phone and PIN are required")
	_, err = f.auth.CitizenLogin(ctx, "12345", "1234")
	requireValidation(t, err, "phone", "Invalid phone number")

	_, err = f.auth.CitizenLogin(ctx, "9876543210", "0000")
	require.ErrorIs(t, err, errs.ErrUnauthorized)

	sess, err := f.auth.CitizenLogin(ctx, "9876543210", DemoCitizenPIN)
	require.NoError(t, err)
	assert.Equal(t, "Citizen User", sess.Name)

	// any PIN works once the phone has filed a complaint
	require.NoError(t, f.store.SaveComplaints(ctx, []models.Complaint{
		{ID: "DLG-2026-00001", Citizen: models.Citizen{Phone: "9123456780"}},
	}))
	sess, err = f.auth.CitizenLogin(ctx, "9123456780", "0000")
	require.NoError(t, err)
	assert.Equal(t, "9123456780", sess.Phone)
}

func TestVerifyOTP(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, nil)
	require.NoError(t, f.auth.VerifyOTP("9876543210", "1234"))
	err := f.auth.VerifyOTP("9876543210", "9999")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, "Invalid OTP. Use 1234 for demo.", err.Error())
}

func TestAdminSignupConflictAndLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	for name, checker := range map[string]PasswordChecker{
		"plaintext": PlaintextPasswords{},
		"bcrypt":    BcryptPasswords{Cost: 4},
	} {
		name, checker := name, checker
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f := newAuthFixture(t, checker)

			sess, err := f.auth.AdminSignup(ctx, "ward_officer", "9876543210", "secret1")
			require.NoError(t, err)
			assert.Equal(t, models.RoleAdmin, sess.Role)
			assert.Equal(t, "Administrator", sess.Name)

			_, err = f.auth.AdminSignup(ctx, "ward_officer", "9876500000", "another1")
			require.ErrorIs(t, err, errs.ErrConflict)
			assert.True(t, errs.IsConflict(err))
			assert.Equal(t, "Username already exists", err.Error())
			assert.Len(t, f.store.GetAdminAccounts(ctx), 1)

			require.NoError(t, f.auth.Logout(ctx))
			assert.Nil(t, f.sessions.Get(ctx))

			sess, err = f.auth.AdminLogin(ctx, "ward_officer", "secret1")
			require.NoError(t, err)
			assert.Equal(t, models.RoleAdmin, sess.Role)
			assert.Equal(t, "9876543210", sess.Phone)

			_, err = f.auth.AdminLogin(ctx, "ward_officer", "wrong-pass")
			require.ErrorIs(t, err, errs.ErrUnauthorized)
			assert.Equal(t, "Invalid username or password", err.Error())
		})
	}
}

func TestAdminSignupValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	_, err := f.auth.AdminSignup(ctx, "ward_officer", "", "secret1")
	requireValidation(t, err, "phone", "All fields are required")
	_, err = f.auth.AdminSignup(ctx, "ward_officer", "987654321", "secret1")
	requireValidation(t, err, "phone", "Phone must be 10 digits")
	_, err = f.auth.AdminSignup(ctx, "ward_officer", "9876543210", "short")
	requireValidation(t, err, "password", "Password must be at least 6 characters")
	_, err = f.auth.AdminLogin(ctx, "", "secret1")
	requireValidation(t, err, "username", "Username and password are required")
}

func TestAdminLogin_DemoCredentials(t *testing.T) {
	t.Parallel()
	f := newAuthFixture(t, BcryptPasswords{Cost: 4})

	sess, err := f.auth.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "9999999999", sess.Phone)
	assert.Equal(t, "admin", sess.Username)
}

func TestResetPassword(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newAuthFixture(t, nil)

	_, err := f.auth.AdminSignup(ctx, "ward_officer", "9876543210", "secret1")
	require.NoError(t, err)

	err = f.auth.ResetPassword(ctx, "ward_officer", "9876543210", "tiny")
	requireValidation(t, err, "password", "Password must be at least 6 characters")

	err = f.auth.ResetPassword(ctx, "ward_officer", "9000000000", "newsecret")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Equal(t, "No admin account found with this username and phone", err.Error())

	require.NoError(t, f.auth.ResetPassword(ctx, "ward_officer", "9876543210", "newsecret"))

	_, err = f.auth.AdminLogin(ctx, "ward_officer", "secret1")
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	_, err = f.auth.AdminLogin(ctx, "ward_officer", "newsecret")
	require.NoError(t, err)

	accounts := f.store.GetAdminAccounts(ctx)
	require.Len(t, accounts, 1)
	assert.Equal(t, "9876543210", accounts[0].Phone)
}
