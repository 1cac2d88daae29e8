// Package services contains business logic layers.
// Services are called by handlers and persist through the storage.Store.
package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/errs"
	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/aawaaz/waterlogging-server/internal/storage"
	"go.uber.org/zap"
)

// MaxPhotoBytes is the largest decoded photo accepted with a complaint.
const MaxPhotoBytes = 5 * 1024 * 1024

// Officer comment recorded by Verify.
const verifiedComment = "Complaint verified and assigned"

// ComplaintService handles complaint business logic
type ComplaintService struct {
	store         *storage.Store
	activity      *ActivityLogService
	notifier      Notifier
	now           func() time.Time
	escalationAge time.Duration
	logger        *zap.SugaredLogger

	// serializes read-modify-write of the complaint collection
	mu sync.Mutex
}

// ComplaintOption configures a ComplaintService.
type ComplaintOption func(*ComplaintService)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ComplaintOption {
	return func(s *ComplaintService) { s.now = now }
}

// WithEscalationAge overrides DefaultEscalationAge.
func WithEscalationAge(d time.Duration) ComplaintOption {
	return func(s *ComplaintService) {
		if d > 0 {
			s.escalationAge = d
		}
	}
}

// WithNotifier sets the citizen notifier.
func WithNotifier(n Notifier) ComplaintOption {
	return func(s *ComplaintService) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithActivityLog records lifecycle actions to a.
func WithActivityLog(a *ActivityLogService) ComplaintOption {
	return func(s *ComplaintService) { s.activity = a }
}

// NewComplaintService creates a new complaint service
func NewComplaintService(store *storage.Store, logger *zap.SugaredLogger, opts ...ComplaintOption) *ComplaintService {
	s := &ComplaintService{
		store:         store,
		notifier:      NoopNotifier{},
		now:           time.Now,
		escalationAge: DefaultEscalationAge,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates and files a new complaint.
func (s *ComplaintService) Submit(ctx context.Context, sub *models.ComplaintSubmission) (*models.Complaint, error) {
	if err := validateSubmission(sub); err != nil {
		return nil, err
	}

	s.mu.Lock()
	now := s.now()
	complaints := s.store.GetComplaints(ctx)
	c := models.Complaint{
		ID:          GenerateComplaintID(complaints, now),
		Category:    sub.Category,
		Ward:        sub.Ward,
		Zone:        sub.Zone,
		Address:     sub.Address,
		Lat:         sub.Lat,
		Lng:         sub.Lng,
		Description: sub.Description,
		Severity:    sub.Severity,
		PhotoBase64: optional(sub.PhotoBase64),
		Citizen: models.Citizen{
			Name:  sub.CitizenName,
			Phone: sub.CitizenPhone,
			Email: optional(sub.CitizenEmail),
		},
		CreatedAt: now,
		Status:    models.StatusPendingVerification,
		Escalated: false,
		Timeline:  CreateInitialTimeline(now),
	}
	complaints = append(complaints, c)
	err := s.store.SaveComplaints(ctx, complaints)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save complaints: %w", err)
	}

	s.logger.Infow("Complaint submitted",
		"id", c.ID,
		"category", c.Category,
		"ward", c.Ward,
		"severity", c.Severity,
	)
	s.record(ctx, c.ID, ActivitySubmitted, "Complaint submitted", c.Citizen.Name)
	s.notify(ctx, NotifyNewComplaint, &c)
	return &c, nil
}

// Get returns the complaint with id, or nil.
func (s *ComplaintService) Get(ctx context.Context, id string) *models.Complaint {
	for _, c := range s.store.GetComplaints(ctx) {
		if c.ID == id {
			return &c
		}
	}
	return nil
}

// List returns every complaint in filing order.
func (s *ComplaintService) List(ctx context.Context) []models.Complaint {
	return s.store.GetComplaints(ctx)
}

// Count returns the number of stored complaints.
func (s *ComplaintService) Count(ctx context.Context) int {
	return len(s.store.GetComplaints(ctx))
}

// Query filters then sorts the stored complaints.
func (s *ComplaintService) Query(ctx context.Context, f models.ComplaintFilters, sortBy, order string) []models.Complaint {
	return SortComplaints(FilterComplaints(s.store.GetComplaints(ctx), f), sortBy, order)
}

// Stats aggregates the stored complaints.
func (s *ComplaintService) Stats(ctx context.Context) models.ComplaintStats {
	return ComplaintStats(s.store.GetComplaints(ctx))
}

// Search matches term against ids and citizen phones.
func (s *ComplaintService) Search(ctx context.Context, term string) []models.Complaint {
	return SearchComplaints(s.store.GetComplaints(ctx), term)
}

// ByPhone returns a citizen's complaints, newest first.
func (s *ComplaintService) ByPhone(ctx context.Context, phone string) []models.Complaint {
	mine := make([]models.Complaint, 0)
	for _, c := range s.store.GetComplaints(ctx) {
		if c.Citizen.Phone == phone {
			mine = append(mine, c)
		}
	}
	return SortComplaints(mine, SortByDate, OrderDesc)
}

// UpdateStatus moves a complaint to upd.Status and merges the optional
// fields that are set. It returns nil, nil when no complaint has id.
// Transitions out of Resolved or Rejected, and backwards moves along the
// status flow, fail with errs.ErrInvalidTransition.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, upd models.StatusUpdate, authority string) (*models.Complaint, error) {
	if !upd.Status.Valid() {
		return nil, errs.Validation("status", fmt.Sprintf("Unknown status %q", upd.Status))
	}
	if upd.Department != "" && !upd.Department.Valid() {
		return nil, errs.Validation("department", fmt.Sprintf("Unknown department %q", upd.Department))
	}

	s.mu.Lock()
	complaints := s.store.GetComplaints(ctx)
	idx := indexOf(complaints, id)
	if idx == -1 {
		s.mu.Unlock()
		return nil, nil
	}

	c := complaints[idx]
	if err := checkTransition(c.Status, upd.Status); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	from := c.Status
	c.Status = upd.Status
	c.Timeline = UpdateTimeline(c.Timeline, upd.Status, s.now())
	if upd.Comment != "" {
		c.OfficerComment = optional(upd.Comment)
	}
	if upd.ETA != "" {
		c.ETA = optional(upd.ETA)
	}
	if upd.Department != "" {
		d := upd.Department
		c.Department = &d
	}
	complaints[idx] = c
	err := s.store.SaveComplaints(ctx, complaints)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("save complaints: %w", err)
	}

	s.logger.Infow("Complaint status updated",
		"id", id,
		"from", from,
		"to", c.Status,
		"authority", authority,
	)
	s.record(ctx, id, ActivityStatusChanged, fmt.Sprintf("Status changed from %s to %s", from, c.Status), authority)
	s.notify(ctx, NotifyStatusUpdate, &c)
	return &c, nil
}

// Verify marks a complaint verified and assigns it to a department.
func (s *ComplaintService) Verify(ctx context.Context, id string, department models.Department, eta, authority string) (*models.Complaint, error) {
	return s.UpdateStatus(ctx, id, models.StatusUpdate{
		Status:     models.StatusVerified,
		Comment:    verifiedComment,
		ETA:        eta,
		Department: department,
	}, authority)
}

// MarkInProgress moves a complaint to In Progress.
func (s *ComplaintService) MarkInProgress(ctx context.Context, id, comment, authority string) (*models.Complaint, error) {
	return s.UpdateStatus(ctx, id, models.StatusUpdate{Status: models.StatusInProgress, Comment: comment}, authority)
}

// Resolve closes a complaint as resolved.
func (s *ComplaintService) Resolve(ctx context.Context, id, comment, authority string) (*models.Complaint, error) {
	return s.UpdateStatus(ctx, id, models.StatusUpdate{Status: models.StatusResolved, Comment: comment}, authority)
}

// Reject closes a complaint as rejected with a reason.
func (s *ComplaintService) Reject(ctx context.Context, id, reason, authority string) (*models.Complaint, error) {
	return s.UpdateStatus(ctx, id, models.StatusUpdate{Status: models.StatusRejected, Comment: reason}, authority)
}

// CanEscalate applies the escalation rule with the service clock.
func (s *ComplaintService) CanEscalate(c *models.Complaint) bool {
	return CanEscalate(c, s.now(), s.escalationAge)
}

// Escalate flags a complaint as escalated and reports whether it exists.
// It does not check CanEscalate; callers check eligibility first.
func (s *ComplaintService) Escalate(ctx context.Context, id, authority string) (bool, error) {
	s.mu.Lock()
	complaints := s.store.GetComplaints(ctx)
	idx := indexOf(complaints, id)
	if idx == -1 {
		s.mu.Unlock()
		return false, nil
	}
	complaints[idx].Escalated = true
	c := complaints[idx]
	err := s.store.SaveComplaints(ctx, complaints)
	s.mu.Unlock()
	if err != nil {
		return false, fmt.Errorf("save complaints: %w", err)
	}

	s.logger.Infow("Complaint escalated", "id", id, "by", authority)
	s.record(ctx, id, ActivityEscalated, "Complaint escalated to higher authority", authority)
	s.notify(ctx, NotifyEscalated, &c)
	return true, nil
}

func (s *ComplaintService) record(ctx context.Context, id, kind, description, authority string) {
	if s.activity == nil {
		return
	}
	if _, err := s.activity.Log(ctx, id, kind, description, authority); err != nil {
		s.logger.Warnw("Failed to record activity", "id", id, "type", kind, "error", err)
	}
}

func (s *ComplaintService) notify(ctx context.Context, kind string, c *models.Complaint) {
	if err := s.notifier.Notify(ctx, NewNotification(kind, c, s.now())); err != nil {
		s.logger.Warnw("Failed to send notification", "id", c.ID, "type", kind, "error", err)
	}
}

// checkTransition enforces the forward-only lifecycle. Re-applying the
// current status is allowed so optional fields can be amended.
func checkTransition(from, to models.Status) error {
	if from.Terminal() {
		return errs.Transition(string(from), string(to))
	}
	if to == models.StatusRejected {
		return nil
	}
	if from.FlowIndex() > to.FlowIndex() {
		return errs.Transition(string(from), string(to))
	}
	return nil
}

func validateSubmission(sub *models.ComplaintSubmission) error {
	if sub == nil {
		return errs.Validation("", "Complaint details are required")
	}
	switch {
	case sub.Category == "":
		return errs.Validation("category", "Category is required")
	case !sub.Category.Valid():
		return errs.Validation("category", fmt.Sprintf("Unknown category %q", sub.Category))
	case sub.Ward == "":
		return errs.Validation("ward", "Ward is required")
	case sub.Address == "":
		return errs.Validation("address", "Address is required")
	case sub.Description == "":
		return errs.Validation("description", "Description is required")
	case sub.Severity == "":
		return errs.Validation("severity", "Severity is required")
	case !sub.Severity.Valid():
		return errs.Validation("severity", fmt.Sprintf("Unknown severity %q", sub.Severity))
	case sub.CitizenName == "":
		return errs.Validation("citizenName", "Name is required")
	case !isPhone(sub.CitizenPhone):
		return errs.Validation("citizenPhone", "Phone must be 10 digits")
	}
	if sub.PhotoBase64 != "" && photoSize(sub.PhotoBase64) > MaxPhotoBytes {
		return errs.Validation("photoBase64", "Image size must be less than 5MB")
	}
	return nil
}

// photoSize estimates the decoded size of a base64 payload or data URL.
func photoSize(payload string) int {
	if strings.HasPrefix(payload, "data:") {
		if i := strings.IndexByte(payload, ','); i >= 0 {
			payload = payload[i+1:]
		}
	}
	return base64.RawStdEncoding.DecodedLen(len(strings.TrimRight(payload, "=")))
}

func indexOf(complaints []models.Complaint, id string) int {
	for i := range complaints {
		if complaints[i].ID == id {
			return i
		}
	}
	return -1
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
