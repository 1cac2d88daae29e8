package services

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/aawaaz/waterlogging-server/internal/models"
)

// Risk formula weights. Rainfall contributes up to 50 points, drainage
// deficiency up to 30 and incident history up to 20 (10 incidents).
const (
	rainfallWeight     = 0.5
	drainageWeight     = 0.3
	incidentWeight     = 2
	incidentCreditCap  = 20
	maxIncidentHistory = 5
)

// Risk band thresholds, inclusive on the high side.
const (
	highRiskThreshold   = 71
	mediumRiskThreshold = 41
)

var riskColors = map[models.RiskLevel]string{
	models.RiskHigh:   "#dc2626",
	models.RiskMedium: "#f59e0b",
	models.RiskLow:    "#16a34a",
}

var incidentMonths = []string{"January", "February", "March", "June", "July", "August", "September"}

// RiskScore computes the 0-100 flood risk score of a ward.
func RiskScore(w models.Ward) int {
	incidents := math.Min(float64(w.PastIncidents*incidentWeight), incidentCreditCap)
	total := w.Rainfall*rainfallWeight + (100-w.DrainageScore)*drainageWeight + incidents
	score := int(math.Round(total))
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// RiskLevel bands a risk score.
func RiskLevel(score int) models.RiskLevel {
	switch {
	case score >= highRiskThreshold:
		return models.RiskHigh
	case score >= mediumRiskThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// RiskColor is the map color for a risk score.
func RiskColor(score int) string {
	return riskColors[RiskLevel(score)]
}

// RainfallLevel classifies rainfall in mm.
func RainfallLevel(mm float64) string {
	switch {
	case mm >= 70:
		return "Heavy"
	case mm >= 40:
		return "Medium"
	default:
		return "Light"
	}
}

// DrainageStatus classifies a drainage score.
func DrainageStatus(score float64) string {
	switch {
	case score >= 70:
		return "Good"
	case score >= 40:
		return "Moderate"
	default:
		return "Poor"
	}
}

// IncidentHistory synthesizes up to five past incidents for a ward. The
// entries are demo data: dates and durations come from rng, so a fixed seed
// reproduces the same history.
func IncidentHistory(w models.Ward, rng *rand.Rand, year int) []models.Incident {
	n := w.PastIncidents
	if n > maxIncidentHistory {
		n = maxIncidentHistory
	}
	if n <= 0 {
		return []models.Incident{}
	}

	severity := "Minor"
	switch {
	case w.PastIncidents > 10:
		severity = "Severe"
	case w.PastIncidents > 5:
		severity = "Moderate"
	}

	incidents := make([]models.Incident, 0, n)
	for i := 0; i < n; i++ {
		day := rng.Intn(28) + 1
		month := incidentMonths[rng.Intn(len(incidentMonths))]
		hours := rng.Intn(6) + 2
		incidents = append(incidents, models.Incident{
			Date:        fmt.Sprintf("%d %s %d", day, month, year),
			Severity:    severity,
			Duration:    fmt.Sprintf("%d hours", hours),
			Description: "Water-logging on main road affecting traffic flow",
		})
	}
	return incidents
}

// AssessWard derives every risk field of w.
func AssessWard(w models.Ward, rng *rand.Rand, year int) models.WardRisk {
	score := RiskScore(w)
	return models.WardRisk{
		Ward:            w,
		RiskScore:       score,
		RiskLevel:       RiskLevel(score),
		RiskColor:       RiskColor(score),
		RainfallLevel:   RainfallLevel(w.Rainfall),
		DrainageStatus:  DrainageStatus(w.DrainageScore),
		IncidentHistory: IncidentHistory(w, rng, year),
	}
}

// RankWards assesses wards and orders them by descending risk score. Equal
// scores keep their input order.
func RankWards(wards []models.Ward, rng *rand.Rand, year int) []models.WardRisk {
	ranked := make([]models.WardRisk, 0, len(wards))
	for _, w := range wards {
		ranked = append(ranked, AssessWard(w, rng, year))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RiskScore > ranked[j].RiskScore
	})
	return ranked
}

// Dashboard bands used by the authority view.
const (
	criticalAbove    = 80
	highPriorityFrom = 50
)

// DashboardSummary buckets ranked wards: critical above 80, high priority 50-80,
// monitoring below 50.
func DashboardSummary(wards []models.WardRisk) models.DashboardSummary {
	sum := models.DashboardSummary{Total: len(wards)}
	for _, w := range wards {
		switch {
		case w.RiskScore > criticalAbove:
			sum.Critical++
		case w.RiskScore >= highPriorityFrom:
			sum.HighPriority++
		default:
			sum.Monitoring++
		}
	}
	return sum
}

// Predict gives the flood-risk call for a ward from its raw attributes.
func Predict(w models.Ward) models.Prediction {
	switch {
	case w.Rainfall >= 70 && w.DrainageScore < 40:
		return models.Prediction{
			Level:    models.RiskHigh,
			Headline: "High Flood Risk Predicted",
			Reasoning: fmt.Sprintf("Heavy rainfall (%gmm) combined with poor drainage capacity (%g/100) "+
				"indicates high probability of severe water-logging.", w.Rainfall, w.DrainageScore),
		}
	case w.Rainfall >= 40 && w.DrainageScore < 60:
		return models.Prediction{
			Level:    models.RiskMedium,
			Headline: "Medium Flood Risk Predicted",
			Reasoning: fmt.Sprintf("Moderate rainfall (%gmm) with average drainage (%g/100) "+
				"suggests potential for localized water-logging.", w.Rainfall, w.DrainageScore),
		}
	default:
		return models.Prediction{
			Level:    models.RiskLow,
			Headline: "Low Flood Risk",
			Reasoning: fmt.Sprintf("Current rainfall levels (%gmm) and drainage capacity (%g/100) "+
				"indicate minimal risk of water-logging.", w.Rainfall, w.DrainageScore),
		}
	}
}

// Recommendations lists authority actions for a risk score.
func Recommendations(score int) []models.Recommendation {
	switch RiskLevel(score) {
	case models.RiskHigh:
		return []models.Recommendation{
			{Title: "Deploy Water Pumps", Description: "Immediate deployment of high-capacity pumps required", Priority: "Critical"},
			{Title: "Traffic Diversion", Description: "Activate alternate traffic routes and warning signage", Priority: "Critical"},
			{Title: "Emergency Alerts", Description: "Send SMS alerts to residents and commuters", Priority: "Critical"},
			{Title: "Deploy Response Teams", Description: "Position emergency response personnel in the area", Priority: "High"},
		}
	case models.RiskMedium:
		return []models.Recommendation{
			{Title: "Drain Inspection", Description: "Schedule comprehensive drainage system inspection", Priority: "High"},
			{Title: "Clear Blockages", Description: "Remove debris and blockages from drainage channels", Priority: "Medium"},
			{Title: "Monitor Conditions", Description: "Increase monitoring frequency for this ward", Priority: "Medium"},
		}
	default:
		return []models.Recommendation{
			{Title: "Routine Maintenance", Description: "Continue regular maintenance schedule", Priority: "Low"},
			{Title: "Data Collection", Description: "Maintain data collection and monitoring", Priority: "Low"},
		}
	}
}

// RainActions returns the before/during/after rain checklists.
func RainActions(score int) models.RainActions {
	actions := models.RainActions{
		AfterRain: []string{
			"Assess damage and document incidents",
			"Clear remaining water and debris",
			"Repair damaged infrastructure",
			"Update risk assessment data",
		},
	}
	if score >= highRiskThreshold {
		actions.BeforeRain = []string{
			"Inspect and clear all drainage systems",
			"Deploy water pumps to critical locations",
			"Issue advance warning to residents",
			"Pre-position emergency response teams",
		}
		actions.DuringRain = []string{
			"Activate water pumps immediately",
			"Implement traffic diversions",
			"Monitor water levels in real-time",
			"Deploy emergency response teams",
		}
		return actions
	}
	actions.BeforeRain = []string{
		"Monitor weather forecasts",
		"Routine drainage maintenance",
		"Check pump availability",
	}
	actions.DuringRain = []string{
		"Monitor situation continuously",
		"Be ready to deploy resources if needed",
		"Keep communication channels open",
	}
	return actions
}
