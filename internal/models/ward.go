package models

// Ward is static reference data for one administrative sub-area.
// Rainfall is in mm, DrainageScore in 0-100. X/Y place the ward on the
// schematic city map.
type Ward struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	District      string  `json:"district"`
	Rainfall      float64 `json:"rainfall"`
	DrainageScore float64 `json:"drainageScore"`
	PastIncidents int     `json:"pastIncidents"`
	X             int     `json:"x"`
	Y             int     `json:"y"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
}

// WardRisk is a ward enriched with the derived risk fields.
type WardRisk struct {
	Ward
	RiskScore       int        `json:"riskScore"`
	RiskLevel       RiskLevel  `json:"riskLevel"`
	RiskColor       string     `json:"riskColor"`
	RainfallLevel   string     `json:"rainfallLevel"`
	DrainageStatus  string     `json:"drainageStatus"`
	IncidentHistory []Incident `json:"incidentHistory"`
}

// RiskLevel is the banded flood risk of a ward.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Incident is a synthetic past water-logging event shown on the ward page.
type Incident struct {
	Date        string `json:"date"`
	Severity    string `json:"severity"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Prediction is the flood-risk call for a ward with its reasoning.
type Prediction struct {
	Level     RiskLevel `json:"level"`
	Headline  string    `json:"headline"`
	Reasoning string    `json:"reasoning"`
}

// Recommendation is one suggested authority action.
type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// RainActions are checklists for the phases of a rain event.
type RainActions struct {
	BeforeRain []string `json:"beforeRain"`
	DuringRain []string `json:"duringRain"`
	AfterRain  []string `json:"afterRain"`
}

// DashboardSummary buckets ranked wards for the authority dashboard.
type DashboardSummary struct {
	Critical     int `json:"critical"`
	HighPriority int `json:"highPriority"`
	Monitoring   int `json:"monitoring"`
	Total        int `json:"total"`
}
