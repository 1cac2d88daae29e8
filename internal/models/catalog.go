package models

// Category is the kind of civic problem reported.
type Category string

const (
	CategoryWaterLogging     Category = "Water Logging"
	CategoryDrainBlockage    Category = "Drain Blockage"
	CategorySewerOverflow    Category = "Sewer Overflow"
	CategoryGarbageOverflow  Category = "Garbage Overflow"
	CategoryRoadDamage       Category = "Road Damage"
	CategoryStreetlightIssue Category = "Streetlight Issue"
	CategoryEncroachment     Category = "Encroachment"
)

// Categories lists every complaint category in display order.
var Categories = []Category{
	CategoryWaterLogging,
	CategoryDrainBlockage,
	CategorySewerOverflow,
	CategoryGarbageOverflow,
	CategoryRoadDamage,
	CategoryStreetlightIssue,
	CategoryEncroachment,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Severity is the citizen-assessed impact of a complaint.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Severities lists severities from least to most severe.
var Severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh}

// Rank orders severities Low < Medium < High. Unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	}
	return 0
}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool { return s.Rank() > 0 }

// Status is a complaint lifecycle status.
type Status string

const (
	StatusPendingVerification Status = "Pending Verification"
	StatusVerified            Status = "Verified"
	StatusInProgress          Status = "In Progress"
	StatusResolved            Status = "Resolved"
	StatusRejected            Status = "Rejected"
)

// StatusFlow is the forward lifecycle. Rejected sits outside it and can be
// reached from any non-terminal status.
var StatusFlow = []Status{
	StatusPendingVerification,
	StatusVerified,
	StatusInProgress,
	StatusResolved,
}

// Statuses lists every status, Rejected last.
var Statuses = append(append([]Status{}, StatusFlow...), StatusRejected)

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return s == StatusRejected || s.FlowIndex() >= 0 }

// FlowIndex is the position of s in StatusFlow, or -1.
func (s Status) FlowIndex() int {
	for i, f := range StatusFlow {
		if s == f {
			return i
		}
	}
	return -1
}

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool { return s == StatusResolved || s == StatusRejected }

// Department is the agency a verified complaint is assigned to.
type Department string

const (
	DepartmentMCD Department = "MCD"
	DepartmentPWD Department = "PWD"
	DepartmentDJB Department = "DJB"
)

// Departments lists the assignable departments.
var Departments = []Department{DepartmentMCD, DepartmentPWD, DepartmentDJB}

// Valid reports whether d is a known department.
func (d Department) Valid() bool {
	return d == DepartmentMCD || d == DepartmentPWD || d == DepartmentDJB
}

// Zone groups the wards a complaint may be filed against.
type Zone struct {
	Zone  string   `json:"zone"`
	Wards []string `json:"wards"`
}

// DelhiZones is the zone to ward directory offered on the complaint form.
// Some wards appear under more than one zone.
var DelhiZones = []Zone{
	{Zone: "North Delhi", Wards: []string{"Model Town", "Civil Lines", "Sadar Paharganj", "Chandni Chowk", "Karol Bagh"}},
	{Zone: "South Delhi", Wards: []string{"Mehrauli", "Vasant Vihar", "Defence Colony", "Greater Kailash", "Kalkaji", "Ambedkar Nagar"}},
	{Zone: "East Delhi", Wards: []string{"Shahdara", "Gandhi Nagar", "Laxmi Nagar", "Mayur Vihar", "Patparganj"}},
	{Zone: "West Delhi", Wards: []string{"Moti Nagar", "Rajouri Garden", "Punjabi Bagh", "Janakpuri", "Hari Nagar"}},
	{Zone: "Central Delhi", Wards: []string{"Connaught Place", "Daryaganj", "Jama Masjid", "Kotwali", "Karol Bagh"}},
	{Zone: "North East Delhi", Wards: []string{"Shahdara", "Seelampur", "Karawal Nagar", "Yamuna Vihar", "Mustafabad"}},
	{Zone: "North West Delhi", Wards: []string{"Rohini", "Pitampura", "Narela", "Kanjhawala", "Bawana"}},
	{Zone: "South West Delhi", Wards: []string{"Dwarka", "Najafgarh", "Palam", "Vasant Kunj", "Kapashera"}},
	{Zone: "South East Delhi", Wards: []string{"Kalkaji", "Sarita Vihar", "Badarpur", "Tughlakabad", "Sangam Vihar"}},
	{Zone: "New Delhi", Wards: []string{"Parliament Street", "Barakhamba Road", "Mandir Marg", "Gole Market"}},
	{Zone: "Shahdara", Wards: []string{"Vivek Vihar", "Jhilmil", "Dilshad Garden", "Seemapuri", "Nand Nagri"}},
}
