package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLogService(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newClock(july2026)
	svc := NewActivityLogService(newTestStore(t), clock.Now, nopLogger)

	for i := 0; i < 3; i++ {
		_, err := svc.Log(ctx, "DLG-2026-00001", ActivityStatusChanged, fmt.Sprintf("step %d", i), "admin")
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	entry, err := svc.Log(ctx, "DLG-2026-00002", ActivityEscalated, "escalated", "citizen")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)

	recent := svc.FetchRecent(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "DLG-2026-00002", recent[0].ComplaintID)
	assert.Equal(t, "step 2", recent[1].ActionDescription)

	byComplaint := svc.FetchByComplaint(ctx, "DLG-2026-00001", 0)
	require.Len(t, byComplaint, 3)
	assert.Equal(t, "step 2", byComplaint[0].ActionDescription)
	assert.Len(t, svc.FetchByComplaint(ctx, "DLG-2026-00001", 1), 1)
	assert.Empty(t, svc.FetchByComplaint(ctx, "nope", 10))
}

func TestActivityLogService_Capped(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewActivityLogService(newTestStore(t), nil, nopLogger)

	for i := 0; i < MaxActivityLogs+5; i++ {
		_, err := svc.Log(ctx, "DLG-2026-00001", ActivitySubmitted, fmt.Sprintf("n%d", i), "x")
		require.NoError(t, err)
	}
	all := svc.FetchRecent(ctx, 0)
	require.Len(t, all, MaxActivityLogs)
	assert.Equal(t, fmt.Sprintf("n%d", MaxActivityLogs+4), all[0].ActionDescription)
	assert.Equal(t, "n5", all[len(all)-1].ActionDescription)
}
