package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// failingKV fails every operation.
type failingKV struct{}

var errBackend = errors.New("backend down")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBackend }
func (failingKV) Set(context.Context, string, string) error         { return errBackend }
func (failingKV) Delete(context.Context, ...string) error           { return errBackend }
func (failingKV) Ping(context.Context) error                        { return errBackend }

func newStore(t *testing.T) (*Store, *MemoryKV) {
	t.Helper()
	kv := NewMemoryKV()
	return New(kv, zap.NewNop().Sugar()), kv
}

func TestStore_SessionRoundTripAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, kv := newStore(t)

	require.Nil(t, s.GetSession(ctx))

	login := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SetSession(ctx, &models.Session{
		Role: models.RoleCitizen, Name: "Asha", Phone: "9876543210", LoginTime: login,
	}))
	require.NoError(t, s.SetSelectedRole(ctx, models.RoleCitizen))

	got := s.GetSession(ctx)
	require.NotNil(t, got)
	assert.Equal(t, models.RoleCitizen, got.Role)
	assert.True(t, got.LoginTime.Equal(login))
	assert.Equal(t, models.RoleCitizen, s.GetSelectedRole(ctx))

	require.NoError(t, s.ClearSession(ctx))
	assert.Nil(t, s.GetSession(ctx))
	assert.Equal(t, models.Role(""), s.GetSelectedRole(ctx))
	_, ok, _ := kv.Get(ctx, KeySession)
	assert.False(t, ok)
}

func TestStore_CorruptValuesReadAsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, kv := newStore(t)

	require.NoError(t, kv.Set(ctx, KeySession, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyAdminUsers, "[{"))
	require.NoError(t, kv.Set(ctx, KeyComplaints, "42"))
	require.NoError(t, kv.Set(ctx, KeyActivityLog, "null"))

	assert.Nil(t, s.GetSession(ctx))
	assert.Empty(t, s.GetAdminAccounts(ctx))
	assert.NotNil(t, s.GetAdminAccounts(ctx))
	assert.Empty(t, s.GetComplaints(ctx))
	assert.Empty(t, s.GetActivityLogs(ctx))
}

func TestStore_BackendFailureReadsAsEmptyWritesFail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := New(failingKV{}, zap.NewNop().Sugar())

	assert.Nil(t, s.GetSession(ctx))
	assert.Empty(t, s.GetComplaints(ctx))
	assert.Equal(t, "", s.GetPreference(ctx, KeyTheme))

	err := s.SaveComplaints(ctx, nil)
	require.ErrorIs(t, err, errBackend)
	require.Error(t, s.Ping(ctx))
}

func TestStore_AdminAccountsAndComplaints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newStore(t)

	accounts := []models.AdminAccount{
		{Username: "ward_officer", Phone: "9876543210", Password: "secret1"},
		{Username: "zone_head", Phone: "9876500000", Password: "secret2"},
	}
	require.NoError(t, s.SaveAdminAccounts(ctx, accounts))
	got := s.GetAdminAccounts(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "ward_officer", got[0].Username)
	assert.Equal(t, "zone_head", got[1].Username)

	require.NoError(t, s.SaveComplaints(ctx, []models.Complaint{{ID: "DLG-2026-00001", Status: models.StatusVerified}}))
	cs := s.GetComplaints(ctx)
	require.Len(t, cs, 1)
	assert.Equal(t, models.StatusVerified, cs[0].Status)
}

func TestStore_Preferences(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s, _ := newStore(t)

	require.NoError(t, s.SetPreference(ctx, KeyTheme, "dark"))
	require.NoError(t, s.SetPreference(ctx, KeyLanguage, "hi"))
	assert.Equal(t, "dark", s.GetPreference(ctx, KeyTheme))
	assert.Equal(t, "hi", s.GetPreference(ctx, KeyLanguage))

	err := s.SetPreference(ctx, KeySession, "x")
	require.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "", s.GetPreference(ctx, KeySession))
}

func TestStore_MigrateLegacyComplaints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("copies legacy key once", func(t *testing.T) {
		t.Parallel()
		kv := NewMemoryKV()
		legacy := `[{"id":"DLG-2025-00001","status":"Verified","citizen":{"name":"A","phone":"9876543210"}}]`
		require.NoError(t, kv.Set(ctx, KeyLegacyComplaint, legacy))

		s, err := Open(ctx, kv, zap.NewNop().Sugar())
		require.NoError(t, err)

		cs := s.GetComplaints(ctx)
		require.Len(t, cs, 1)
		assert.Equal(t, "DLG-2025-00001", cs[0].ID)
		_, ok, _ := kv.Get(ctx, KeyLegacyComplaint)
		assert.False(t, ok)

		migrated, err := s.MigrateLegacyComplaints(ctx)
		require.NoError(t, err)
		assert.False(t, migrated)
		assert.Len(t, s.GetComplaints(ctx), 1)
	})

	t.Run("canonical key wins", func(t *testing.T) {
		t.Parallel()
		kv := NewMemoryKV()
		require.NoError(t, kv.Set(ctx, KeyComplaints, `[{"id":"DLG-2026-00001"}]`))
		require.NoError(t, kv.Set(ctx, KeyLegacyComplaint, `[{"id":"OLD"}]`))

		s := New(kv, zap.NewNop().Sugar())
		migrated, err := s.MigrateLegacyComplaints(ctx)
		require.NoError(t, err)
		assert.False(t, migrated)

		cs := s.GetComplaints(ctx)
		require.Len(t, cs, 1)
		assert.Equal(t, "DLG-2026-00001", cs[0].ID)
		v, ok, _ := kv.Get(ctx, KeyLegacyComplaint)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":"OLD"}]`, v)
	})

	t.Run("nothing to migrate", func(t *testing.T) {
		t.Parallel()
		s := New(NewMemoryKV(), zap.NewNop().Sugar())
		migrated, err := s.MigrateLegacyComplaints(ctx)
		require.NoError(t, err)
		assert.False(t, migrated)
	})

	t.Run("backend failure surfaces from Open", func(t *testing.T) {
		t.Parallel()
		_, err := Open(ctx, failingKV{}, zap.NewNop().Sugar())
		require.ErrorIs(t, err, errBackend)
	})
}
