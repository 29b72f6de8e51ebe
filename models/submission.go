package models

import "time"

// Submission statuses. A submission is created pending and moves exactly once
// to approved or rejected.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission is a citizen's tree-planting evidence record. The photo itself
// lives in the asset store; EvidenceRef is the opaque handle to it.
type Submission struct {
	SubmissionID     int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string     `gorm:"column:submission_number" json:"submission_number"`
	SubmitterID      int        `gorm:"column:submitter_id" json:"submitter_id"`
	BarangayID       int        `gorm:"column:barangay_id" json:"barangay_id"`
	SiteID           *int       `gorm:"column:site_id" json:"site_id,omitempty"`
	TreesPlanted     int        `gorm:"column:trees_planted" json:"trees_planted"`
	EvidenceRef      string     `gorm:"column:evidence_ref" json:"evidence_ref"`
	Latitude         *float64   `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude        *float64   `gorm:"column:longitude" json:"longitude,omitempty"`
	Notes            *string    `gorm:"column:notes" json:"notes,omitempty"`
	Flagged          bool       `gorm:"column:flagged" json:"flagged"`
	Status           string     `gorm:"column:status" json:"status"`
	RejectionReason  *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	EcoPoints        *int       `gorm:"column:eco_points" json:"eco_points,omitempty"`
	DecidedBy        *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	DecidedAt        *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	SubmittedAt      time.Time  `gorm:"column:submitted_at" json:"submitted_at"`
	UpdateAt         *time.Time `gorm:"column:update_at" json:"update_at,omitempty"`
	DeleteAt         *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Submitter *User         `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	Barangay  *Barangay     `gorm:"foreignKey:BarangayID" json:"barangay,omitempty"`
	Site      *PlantingSite `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Decider   *User         `gorm:"foreignKey:DecidedBy" json:"decider,omitempty"`
}

// IsDecided reports whether the submission has reached a terminal status.
func (s *Submission) IsDecided() bool {
	return s.Status != StatusPending
}

func (Submission) TableName() string {
	return "submissions"
}
