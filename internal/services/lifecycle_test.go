package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var july2026 = time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC)

func TestGenerateComplaintID_Sequence(t *testing.T) {
	t.Parallel()

	var existing []models.Complaint
	assert.Equal(t, "DLG-2026-00001", GenerateComplaintID(existing, july2026))

	seen := map[string]bool{}
	for i := 1; i <= 12; i++ {
		id := GenerateComplaintID(existing, july2026)
		assert.Equal(t, fmt.Sprintf("DLG-2026-%05d", i), id)
		assert.False(t, seen[id])
		seen[id] = true
		existing = append(existing, models.Complaint{ID: id})
	}

	// a new year restarts the sequence
	assert.Equal(t, "DLG-2027-00001", GenerateComplaintID(existing, july2026.AddDate(1, 0, 0)))
}

func TestGenerateComplaintID_CountsYearSubstring(t *testing.T) {
	t.Parallel()

	// A 2025 id whose sequence part contains "2026" is counted as a 2026
	// complaint, so the next 2026 id skips a number.
	existing := []models.Complaint{
		{ID: "DLG-2025-02026"},
		{ID: "DLG-2025-00001"},
	}
	assert.Equal(t, "DLG-2026-00002", GenerateComplaintID(existing, july2026))
}

func TestCreateInitialTimeline(t *testing.T) {
	t.Parallel()

	tl := CreateInitialTimeline(july2026)
	require.Len(t, tl, 5)
	assert.Equal(t, "Submitted", tl[0].Step)
	assert.Equal(t, models.StepCompleted, tl[0].Status)
	require.NotNil(t, tl[0].Date)
	assert.True(t, tl[0].Date.Equal(july2026))

	assert.Equal(t, "Pending Verification", tl[1].Step)
	assert.Equal(t, models.StepCurrent, tl[1].Status)
	for _, e := range tl[1:] {
		assert.Nil(t, e.Date)
	}
	for _, e := range tl[2:] {
		assert.Equal(t, models.StepPending, e.Status)
	}
}

func stepStatuses(tl []models.TimelineEntry) []models.StepStatus {
	out := make([]models.StepStatus, len(tl))
	for i, e := range tl {
		out[i] = e.Status
	}
	return out
}

func TestUpdateTimeline(t *testing.T) {
	t.Parallel()

	initial := CreateInitialTimeline(july2026)
	later := july2026.Add(3 * time.Hour)

	verified := UpdateTimeline(initial, models.StatusVerified, later)
	assert.Equal(t, []models.StepStatus{
		models.StepCompleted, models.StepCompleted, models.StepCompleted, models.StepCurrent, models.StepPending,
	}, stepStatuses(verified))
	assert.True(t, verified[0].Date.Equal(july2026), "existing dates are kept")
	assert.True(t, verified[2].Date.Equal(later))

	// input untouched
	assert.Equal(t, models.StepCurrent, initial[1].Status)

	t.Run("idempotent", func(t *testing.T) {
		again := UpdateTimeline(verified, models.StatusVerified, later.Add(time.Hour))
		assert.Equal(t, stepStatuses(verified), stepStatuses(again))
		for i := range again {
			if verified[i].Date == nil {
				assert.Nil(t, again[i].Date)
				continue
			}
			assert.True(t, again[i].Date.Equal(*verified[i].Date))
		}
	})

	t.Run("resolved completes everything", func(t *testing.T) {
		resolved := UpdateTimeline(initial, models.StatusResolved, later)
		for _, e := range resolved {
			assert.Equal(t, models.StepCompleted, e.Status)
			assert.NotNil(t, e.Date)
		}
	})

	t.Run("rejected has no step", func(t *testing.T) {
		assert.Equal(t, initial, UpdateTimeline(initial, models.StatusRejected, later))
	})

	t.Run("nil timeline starts fresh", func(t *testing.T) {
		tl := UpdateTimeline(nil, models.StatusInProgress, later)
		require.Len(t, tl, 5)
		assert.Equal(t, models.StepCurrent, tl[4].Status)
	})
}

func TestCanEscalate(t *testing.T) {
	t.Parallel()

	now := july2026
	old := now.Add(-48 * time.Hour)

	tests := []struct {
		name string
		c    *models.Complaint
		want bool
	}{
		{"nil", nil, false},
		{"too young", &models.Complaint{CreatedAt: now.Add(-47*time.Hour - 59*time.Minute), Status: models.StatusVerified}, false},
		{"exactly 48h", &models.Complaint{CreatedAt: old, Status: models.StatusPendingVerification}, true},
		{"resolved", &models.Complaint{CreatedAt: old, Status: models.StatusResolved}, false},
		{"already escalated", &models.Complaint{CreatedAt: old, Status: models.StatusInProgress, Escalated: true}, false},
		{"rejected still eligible", &models.Complaint{CreatedAt: old, Status: models.StatusRejected}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEscalate(tt.c, now, DefaultEscalationAge))
		})
	}
}

func sampleComplaints() []models.Complaint {
	return []models.Complaint{
		{ID: "DLG-2026-00001", Category: models.CategoryWaterLogging, Ward: "Dwarka", Zone: "South West Delhi",
			Severity: models.SeverityMedium, Status: models.StatusResolved, CreatedAt: july2026,
			Citizen: models.Citizen{Phone: "9876543210"}},
		{ID: "DLG-2026-00002", Category: models.CategoryDrainBlockage, Ward: "Rohini", Zone: "North West Delhi",
			Severity: models.SeverityHigh, Status: models.StatusPendingVerification, CreatedAt: july2026.Add(time.Hour),
			Escalated: true, Citizen: models.Citizen{Phone: "9123456780"}},
		{ID: "DLG-2026-00003", Category: models.CategoryWaterLogging, Ward: "Dwarka", Zone: "South West Delhi",
			Severity: models.SeverityLow, Status: models.StatusInProgress, CreatedAt: july2026.Add(2 * time.Hour),
			Citizen: models.Citizen{Phone: "9876543210"}},
		{ID: "DLG-2026-00004", Category: models.CategoryRoadDamage, Ward: "Palam", Zone: "South West Delhi",
			Severity: models.SeverityMedium, Status: models.StatusRejected, CreatedAt: july2026.Add(-time.Hour),
			Citizen: models.Citizen{Phone: "9000000001"}},
	}
}

func ids(cs []models.Complaint) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestFilterComplaints(t *testing.T) {
	t.Parallel()
	all := sampleComplaints()

	assert.Equal(t, ids(all), ids(FilterComplaints(all, models.ComplaintFilters{})))
	assert.Equal(t, []string{"DLG-2026-00001"},
		ids(FilterComplaints(all, models.ComplaintFilters{Status: models.StatusResolved})))
	assert.Equal(t, []string{"DLG-2026-00001", "DLG-2026-00003"},
		ids(FilterComplaints(all, models.ComplaintFilters{Ward: "Dwarka", Category: models.CategoryWaterLogging})))

	yes, no := true, false
	assert.Equal(t, []string{"DLG-2026-00002"}, ids(FilterComplaints(all, models.ComplaintFilters{Escalated: &yes})))
	assert.Len(t, FilterComplaints(all, models.ComplaintFilters{Escalated: &no}), 3)
	assert.Empty(t, FilterComplaints(all, models.ComplaintFilters{Zone: "South West Delhi", Severity: models.SeverityHigh}))
}

func TestSortComplaints(t *testing.T) {
	t.Parallel()
	all := sampleComplaints()
	before := ids(all)

	assert.Equal(t, []string{"DLG-2026-00003", "DLG-2026-00002", "DLG-2026-00001", "DLG-2026-00004"},
		ids(SortComplaints(all, "", "")), "default is date desc")
	assert.Equal(t, []string{"DLG-2026-00004", "DLG-2026-00001", "DLG-2026-00002", "DLG-2026-00003"},
		ids(SortComplaints(all, SortByDate, OrderAsc)))

	// Medium ties keep input order in both directions
	assert.Equal(t, []string{"DLG-2026-00003", "DLG-2026-00001", "DLG-2026-00004", "DLG-2026-00002"},
		ids(SortComplaints(all, SortBySeverity, OrderAsc)))
	assert.Equal(t, []string{"DLG-2026-00002", "DLG-2026-00001", "DLG-2026-00004", "DLG-2026-00003"},
		ids(SortComplaints(all, SortBySeverity, OrderDesc)))

	assert.Equal(t, []string{"DLG-2026-00003", "DLG-2026-00002", "DLG-2026-00004", "DLG-2026-00001"},
		ids(SortComplaints(all, SortByStatus, OrderAsc)))

	assert.Equal(t, before, ids(SortComplaints(all, "ward", OrderDesc)), "unknown key keeps order")
	assert.Equal(t, before, ids(all), "input is not mutated")
}

func TestComplaintStats(t *testing.T) {
	t.Parallel()

	stats := ComplaintStats(sampleComplaints())
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 0, stats.Verified)
	assert.Equal(t, 1, stats.InProgress)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 1, stats.Rejected)
	assert.Equal(t, 1, stats.Escalated)
	assert.Equal(t, models.SeverityCounts{Low: 1, Medium: 2, High: 1}, stats.BySeverity)

	require.Len(t, stats.ByCategory, len(models.Categories))
	assert.Equal(t, 2, stats.ByCategory[models.CategoryWaterLogging])
	assert.Equal(t, 0, stats.ByCategory[models.CategoryEncroachment])

	empty := ComplaintStats(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Len(t, empty.ByCategory, len(models.Categories))
}

func TestSearchComplaints(t *testing.T) {
	t.Parallel()
	all := sampleComplaints()

	assert.Equal(t, []string{"DLG-2026-00002"}, ids(SearchComplaints(all, "dlg-2026-00002")))
	assert.Equal(t, []string{"DLG-2026-00001", "DLG-2026-00003"}, ids(SearchComplaints(all, "98765")))
	assert.Empty(t, SearchComplaints(all, "DLG-2030"))
}
