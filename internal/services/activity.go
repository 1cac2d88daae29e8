package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Activity types recorded against complaints.
const (
	ActivitySubmitted     = "submitted"
	ActivityStatusChanged = "status_changed"
	ActivityEscalated     = "escalated"
)

// MaxActivityLogs bounds the stored activity log; the oldest entries are
// dropped first.
const MaxActivityLogs = 500

// ActivityLogService records lifecycle actions for accountability.
type ActivityLogService struct {
	store  *storage.Store
	now    func() time.Time
	logger *zap.SugaredLogger
	mu     sync.Mutex
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(store *storage.Store, now func() time.Time, logger *zap.SugaredLogger) *ActivityLogService {
	if now == nil {
		now = time.Now
	}
	return &ActivityLogService{store: store, now: now, logger: logger}
}

// Log records an action against a complaint.
func (s *ActivityLogService) Log(ctx context.Context, complaintID, activityType, description, authority string) (*models.ActivityLog, error) {
	entry := models.ActivityLog{
		ID:                uuid.New(),
		ComplaintID:       complaintID,
		ActivityType:      activityType,
		ActionDescription: description,
		Authority:         authority,
		CreatedAt:         s.now(),
	}

	s.mu.Lock()
	logs := append(s.store.GetActivityLogs(ctx), entry)
	if len(logs) > MaxActivityLogs {
		logs = logs[len(logs)-MaxActivityLogs:]
	}
	err := s.store.SaveActivityLogs(ctx, logs)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save activity log: %w", err)
	}

	s.logger.Infow("Activity logged",
		"complaint_id", complaintID,
		"authority", authority,
		"type", activityType,
		"action", description,
	)
	return &entry, nil
}

// FetchByComplaint returns the newest entries for one complaint first.
func (s *ActivityLogService) FetchByComplaint(ctx context.Context, complaintID string, limit int) []models.ActivityLog {
	logs := s.store.GetActivityLogs(ctx)
	out := make([]models.ActivityLog, 0)
	for i := len(logs) - 1; i >= 0; i-- {
		if logs[i].ComplaintID != complaintID {
			continue
		}
		out = append(out, logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// FetchRecent returns the newest entries across all complaints.
func (s *ActivityLogService) FetchRecent(ctx context.Context, limit int) []models.ActivityLog {
	logs := s.store.GetActivityLogs(ctx)
	out := make([]models.ActivityLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		out = append(out, logs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
