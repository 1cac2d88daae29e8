package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Notification kinds sent to the citizen who filed a complaint.
const (
	NotifyNewComplaint = "new_complaint"
	NotifyStatusUpdate = "status_update"
	NotifyEscalated    = "escalated"
)

// Notification is a simulated SMS/WhatsApp message.
type Notification struct {
	Type        string    `json:"type"`
	ComplaintID string    `json:"complaintId"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	SentAt      time.Time `json:"sentAt"`
}

// NewNotification renders the citizen message of kind for c.
func NewNotification(kind string, c *models.Complaint, now time.Time) Notification {
	var msg string
	switch kind {
	case NotifyNewComplaint:
		msg = fmt.Sprintf("SMS/WhatsApp: Complaint %s registered successfully", c.ID)
	case NotifyEscalated:
		msg = fmt.Sprintf("SMS/WhatsApp: Your complaint %s has been escalated to higher authority", c.ID)
	default:
		kind = NotifyStatusUpdate
		msg = fmt.Sprintf("SMS/WhatsApp: Your complaint %s status updated to %q", c.ID, c.Status)
	}
	return Notification{
		Type:        kind,
		ComplaintID: c.ID,
		Phone:       c.Citizen.Phone,
		Message:     msg,
		SentAt:      now,
	}
}

// Notifier delivers citizen notifications. Delivery failures are reported
// to the caller, which logs them; they never fail the lifecycle operation.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NoopNotifier drops every notification.
type NoopNotifier struct{}

func (NoopNotifier) Notify(context.Context, Notification) error { return nil }

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	logger *zap.SugaredLogger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(_ context.Context, msg Notification) error {
	n.logger.Infow("Citizen notification",
		"type", msg.Type,
		"complaint_id", msg.ComplaintID,
		"phone", msg.Phone,
		"message", msg.Message,
	)
	return nil
}

// RedisNotifier appends notifications as JSON payloads to a redis stream
// for a delivery worker to pick up.
type RedisNotifier struct {
	client *redis.Client
	stream string
}

// NewRedisNotifier creates a stream-backed notifier.
func NewRedisNotifier(client *redis.Client, stream string) *RedisNotifier {
	return &RedisNotifier{client: client, stream: stream}
}

func (n *RedisNotifier) Notify(ctx context.Context, msg Notification) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{"type": msg.Type, "payload": string(payload)},
	}).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", n.stream, err)
	}
	return nil
}
