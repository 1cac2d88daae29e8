// Package models defines the data structures used across the application.
// JSON field names follow the persisted document layout, so records written
// by earlier versions of the dashboard decode unchanged.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the role carried by a session.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool { return r == RoleCitizen || r == RoleAdmin }

// Session is the single current-user proof of identity.
type Session struct {
	Role      Role      `json:"role"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Username  string    `json:"username,omitempty"`
	LoginTime time.Time `json:"loginTime"`
}

// AdminAccount is a registered authority account. Username is unique.
type AdminAccount struct {
	Username  string    `json:"username"`
	Phone     string    `json:"phone"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}

// Citizen is the reporter's contact details, copied into the complaint at
// submission time.
type Citizen struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email"`
}

// Complaint is a citizen water-logging report tracked through the status
// lifecycle.
type Complaint struct {
	ID             string          `json:"id"`
	Category       Category        `json:"category"`
	Ward           string          `json:"ward"`
	Zone           string          `json:"zone"`
	Address        string          `json:"address"`
	Lat            *float64        `json:"lat"`
	Lng            *float64        `json:"lng"`
	Description    string          `json:"description"`
	Severity       Severity        `json:"severity"`
	PhotoBase64    *string         `json:"photoBase64"`
	Citizen        Citizen         `json:"citizen"`
	CreatedAt      time.Time       `json:"createdAt"`
	Status         Status          `json:"status"`
	Department     *Department     `json:"department"`
	OfficerComment *string         `json:"officerComment"`
	ETA            *string         `json:"eta"`
	Escalated      bool            `json:"escalated"`
	Timeline       []TimelineEntry `json:"timeline"`
}

// StepStatus marks a timeline entry.
type StepStatus string

const (
	StepPending   StepStatus = "pending"
	StepCurrent   StepStatus = "current"
	StepCompleted StepStatus = "completed"
)

// TimelineEntry is one lifecycle step attached to a complaint.
type TimelineEntry struct {
	Step   string     `json:"step"`
	Status StepStatus `json:"status"`
	Date   *time.Time `json:"date"`
}

// ComplaintSubmission is the request body for filing a new complaint.
type ComplaintSubmission struct {
	Category     Category `json:"category"`
	Ward         string   `json:"ward"`
	Zone         string   `json:"zone"`
	Address      string   `json:"address"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Description  string   `json:"description"`
	Severity     Severity `json:"severity"`
	PhotoBase64  string   `json:"photoBase64,omitempty"`
	CitizenName  string   `json:"citizenName"`
	CitizenPhone string   `json:"citizenPhone"`
	CitizenEmail string   `json:"citizenEmail,omitempty"`
}

// StatusUpdate carries an admin status change. Empty optional fields keep
// the complaint's existing values.
type StatusUpdate struct {
	Status     Status     `json:"status"`
	Comment    string     `json:"comment,omitempty"`
	ETA        string     `json:"eta,omitempty"`
	Department Department `json:"department,omitempty"`
}

// ComplaintFilters is a conjunctive filter. Zero-valued fields are ignored.
type ComplaintFilters struct {
	Category  Category `json:"category,omitempty"`
	Status    Status   `json:"status,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
	Ward      string   `json:"ward,omitempty"`
	Zone      string   `json:"zone,omitempty"`
	Escalated *bool    `json:"escalated,omitempty"`
}

// SeverityCounts is the per-severity breakdown in ComplaintStats.
type SeverityCounts struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// ComplaintStats aggregates a complaint collection for dashboards.
type ComplaintStats struct {
	Total      int              `json:"total"`
	Pending    int              `json:"pending"`
	Verified   int              `json:"verified"`
	InProgress int              `json:"inProgress"`
	Resolved   int              `json:"resolved"`
	Rejected   int              `json:"rejected"`
	Escalated  int              `json:"escalated"`
	ByCategory map[Category]int `json:"byCategory"`
	BySeverity SeverityCounts   `json:"bySeverity"`
}

// ActivityLog is an accountability record of one lifecycle action.
type ActivityLog struct {
	ID                uuid.UUID `json:"id"`
	ComplaintID       string    `json:"complaint_id"`
	ActivityType      string    `json:"activity_type"`
	ActionDescription string    `json:"action_description"`
	Authority         string    `json:"authority"`
	CreatedAt         time.Time `json:"created_at"`
}

// MerkleProof contains the Merkle proof for a specific complaint record
type MerkleProof struct {
	LeafHash string      `json:"leaf_hash"`
	Root     string      `json:"root"`
	Proof    []ProofStep `json:"proof"`
	Index    int         `json:"index"`
}

// ProofStep is a single step in a Merkle proof path
type ProofStep struct {
	Hash     string `json:"hash"`
	Position string `json:"position"` // "left" | "right"
}

// HealthStatus represents the server health check response
type HealthStatus struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Store      string `json:"store,omitempty"`
	MerkleRoot string `json:"merkle_root,omitempty"`
}
