package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
)

// DefaultEscalationAge is how long a complaint must wait before it can be
// escalated.
const DefaultEscalationAge = 48 * time.Hour

// StepSubmitted is the first timeline step, completed at submission.
const StepSubmitted = "Submitted"

// GenerateComplaintID returns the next DLG-<year>-<seq> id. The sequence is
// one more than the number of existing ids that contain the year anywhere,
// so an id carrying the year digits in its sequence part is counted too.
func GenerateComplaintID(existing []models.Complaint, now time.Time) string {
	year := strconv.Itoa(now.Year())
	n := 0
	for _, c := range existing {
		if strings.Contains(c.ID, year) {
			n++
		}
	}
	return fmt.Sprintf("DLG-%s-%05d", year, n+1)
}

// CreateInitialTimeline returns the five-step timeline of a new complaint.
func CreateInitialTimeline(now time.Time) []models.TimelineEntry {
	submitted := now
	return []models.TimelineEntry{
		{Step: StepSubmitted, Status: models.StepCompleted, Date: &submitted},
		{Step: string(models.StatusPendingVerification), Status: models.StepCurrent},
		{Step: string(models.StatusVerified), Status: models.StepPending},
		{Step: string(models.StatusInProgress), Status: models.StepPending},
		{Step: string(models.StatusResolved), Status: models.StepPending},
	}
}

// UpdateTimeline returns a copy of timeline advanced to status. The matching
// step and every step before it become completed, keeping dates already
// set; the step after it becomes current. A status with no step (Rejected)
// leaves the timeline unchanged. A nil timeline starts from the initial one.
func UpdateTimeline(timeline []models.TimelineEntry, status models.Status, now time.Time) []models.TimelineEntry {
	if timeline == nil {
		timeline = CreateInitialTimeline(now)
	}
	out := make([]models.TimelineEntry, len(timeline))
	copy(out, timeline)
	if status == "" {
		return out
	}

	idx := -1
	for i, t := range out {
		if t.Step == string(status) || strings.Contains(t.Step, string(status)) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return out
	}

	for i := 0; i <= idx; i++ {
		out[i].Status = models.StepCompleted
		if out[i].Date == nil {
			d := now
			out[i].Date = &d
		}
	}
	if idx < len(out)-1 {
		out[idx+1].Status = models.StepCurrent
	}
	return out
}

// CanEscalate reports whether c is old enough, unresolved and not yet
// escalated.
func CanEscalate(c *models.Complaint, now time.Time, minAge time.Duration) bool {
	if c == nil {
		return false
	}
	return now.Sub(c.CreatedAt) >= minAge &&
		c.Status != models.StatusResolved &&
		!c.Escalated
}

// FilterComplaints keeps the complaints matching every set filter field.
func FilterComplaints(complaints []models.Complaint, f models.ComplaintFilters) []models.Complaint {
	out := make([]models.Complaint, 0, len(complaints))
	for _, c := range complaints {
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Severity != "" && c.Severity != f.Severity {
			continue
		}
		if f.Ward != "" && c.Ward != f.Ward {
			continue
		}
		if f.Zone != "" && c.Zone != f.Zone {
			continue
		}
		if f.Escalated != nil && c.Escalated != *f.Escalated {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort keys and orders accepted by SortComplaints.
const (
	SortByDate     = "date"
	SortBySeverity = "severity"
	SortByStatus   = "status"
	OrderAsc       = "asc"
	OrderDesc      = "desc"
)

// SortComplaints returns a sorted copy. sortBy defaults to date and order
// to desc; an unknown key keeps the input order. Equal keys keep their
// relative order.
func SortComplaints(complaints []models.Complaint, sortBy, order string) []models.Complaint {
	if sortBy == "" {
		sortBy = SortByDate
	}
	if order == "" {
		order = OrderDesc
	}

	out := make([]models.Complaint, len(complaints))
	copy(out, complaints)

	cmp := func(a, b *models.Complaint) int {
		switch sortBy {
		case SortByDate:
			return a.CreatedAt.Compare(b.CreatedAt)
		case SortBySeverity:
			return a.Severity.Rank() - b.Severity.Rank()
		case SortByStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		}
		return 0
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(&out[i], &out[j])
		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// ComplaintStats aggregates complaints. Every category appears in
// ByCategory, zero or not.
func ComplaintStats(complaints []models.Complaint) models.ComplaintStats {
	stats := models.ComplaintStats{
		Total:      len(complaints),
		ByCategory: make(map[models.Category]int, len(models.Categories)),
	}
	for _, cat := range models.Categories {
		stats.ByCategory[cat] = 0
	}

	for _, c := range complaints {
		switch c.Status {
		case models.StatusPendingVerification:
			stats.Pending++
		case models.StatusVerified:
			stats.Verified++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		case models.StatusRejected:
			stats.Rejected++
		}
		if c.Escalated {
			stats.Escalated++
		}
		if _, ok := stats.ByCategory[c.Category]; ok {
			stats.ByCategory[c.Category]++
		}
		switch c.Severity {
		case models.SeverityLow:
			stats.BySeverity.Low++
		case models.SeverityMedium:
			stats.BySeverity.Medium++
		case models.SeverityHigh:
			stats.BySeverity.High++
		}
	}
	return stats
}

// SearchComplaints matches term against ids (case-insensitive) and citizen
// phone numbers.
func SearchComplaints(complaints []models.Complaint, term string) []models.Complaint {
	lower := strings.ToLower(term)
	out := make([]models.Complaint, 0)
	for _, c := range complaints {
		if strings.Contains(strings.ToLower(c.ID), lower) || strings.Contains(c.Citizen.Phone, term) {
			out = append(out, c)
		}
	}
	return out
}
