package services

import (
	"math/rand"
	"time"

	"github.com/aawaaz/waterlogging-server/internal/models"
	"go.uber.org/zap"
)

// WardService serves the ranked ward dataset. Risk fields and incident
// history are computed once at construction; the dataset is static.
type WardService struct {
	ranked []models.WardRisk
	byID   map[int]int
	byName map[string]int
	logger *zap.SugaredLogger
}

// NewWardService ranks wards using an RNG seeded with seed. Incident dates
// are stamped with year.
func NewWardService(wards []models.Ward, seed int64, year int, logger *zap.SugaredLogger) *WardService {
	rng := rand.New(rand.NewSource(seed))
	ranked := RankWards(wards, rng, year)

	s := &WardService{
		ranked: ranked,
		byID:   make(map[int]int, len(ranked)),
		byName: make(map[string]int, len(ranked)),
		logger: logger,
	}
	for i, w := range ranked {
		s.byID[w.ID] = i
		s.byName[w.Name] = i
	}

	summary := DashboardSummary(ranked)
	logger.Infow("Ward risk model loaded",
		"wards", summary.Total,
		"critical", summary.Critical,
		"seed", seed,
	)
	return s
}

// SeedFromConfig turns a configured seed into an RNG seed; zero means
// time-based.
func SeedFromConfig(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	return now.UnixNano()
}

// Ranked returns a copy of the wards in descending risk order.
func (s *WardService) Ranked() []models.WardRisk {
	out := make([]models.WardRisk, len(s.ranked))
	copy(out, s.ranked)
	return out
}

// Band filters the ranked list the way the authority table does: "critical"
// is High risk, "high" is Medium or High, anything else is everything.
func (s *WardService) Band(band string) []models.WardRisk {
	out := make([]models.WardRisk, 0, len(s.ranked))
	for _, w := range s.ranked {
		switch band {
		case "critical":
			if w.RiskLevel != models.RiskHigh {
				continue
			}
		case "high":
			if w.RiskLevel == models.RiskLow {
				continue
			}
		}
		out = append(out, w)
	}
	return out
}

// ByID looks a ward up by id.
func (s *WardService) ByID(id int) (models.WardRisk, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.WardRisk{}, false
	}
	return s.ranked[i], true
}

// ByName looks a ward up by exact name.
func (s *WardService) ByName(name string) (models.WardRisk, bool) {
	i, ok := s.byName[name]
	if !ok {
		return models.WardRisk{}, false
	}
	return s.ranked[i], true
}

// Summary buckets the dataset for the dashboard.
func (s *WardService) Summary() models.DashboardSummary {
	return DashboardSummary(s.ranked)
}

// AutoSeverity suggests a complaint severity. A known ward uses its risk
// score; otherwise the rainfall reading decides.
func (s *WardService) AutoSeverity(wardName string, rainfall float64) models.Severity {
	if w, ok := s.ByName(wardName); ok {
		switch {
		case w.RiskScore >= 70:
			return models.SeverityHigh
		case w.RiskScore >= 40:
			return models.SeverityMedium
		default:
			return models.SeverityLow
		}
	}
	switch {
	case rainfall > 70:
		return models.SeverityHigh
	case rainfall > 40:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
