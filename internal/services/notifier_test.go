package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Parallel()
	c := &models.Complaint{ID: "DLG-2026-00001", Status: models.StatusVerified, Citizen: models.Citizen{Phone: "9876543210"}}

	n := NewNotification(NotifyNewComplaint, c, july2026)
	assert.Equal(t, "SMS/WhatsApp: Complaint DLG-2026-00001 registered successfully", n.Message)
	assert.Equal(t, "9876543210", n.Phone)

	n = NewNotification(NotifyStatusUpdate, c, july2026)
	assert.Equal(t, `SMS/WhatsApp: Your complaint DLG-2026-00001 status updated to "Verified"`, n.Message)

	n = NewNotification(NotifyEscalated, c, july2026)
	assert.Contains(t, n.Message, "escalated to higher authority")

	n = NewNotification("unknown", c, july2026)
	assert.Equal(t, NotifyStatusUpdate, n.Type)
}

func TestRedisNotifier_AppendsToStream(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := NewRedisNotifier(client, "complaint-notifications")
	c := &models.Complaint{ID: "DLG-2026-00007", Citizen: models.Citizen{Phone: "9876543210"}}
	require.NoError(t, n.Notify(ctx, NewNotification(NotifyNewComplaint, c, july2026)))
	require.NoError(t, n.Notify(ctx, NewNotification(NotifyEscalated, c, july2026)))

	rows, err := client.XRange(ctx, "complaint-notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, NotifyNewComplaint, rows[0].Values["type"])

	payload, ok := rows[1].Values["payload"].(string)
	require.True(t, ok)
	var got Notification
	require.NoError(t, json.Unmarshal([]byte(payload), &got))
	assert.Equal(t, "DLG-2026-00007", got.ComplaintID)
	assert.Equal(t, NotifyEscalated, got.Type)
}

func TestRedisNotifier_ErrorWhenDown(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	err := NewRedisNotifier(client, "s").Notify(context.Background(), Notification{Type: NotifyStatusUpdate})
	require.Error(t, err)

	require.NoError(t, NoopNotifier{}.Notify(context.Background(), Notification{}))
	require.NoError(t, NewLogNotifier(nopLogger).Notify(context.Background(), Notification{}))
}
