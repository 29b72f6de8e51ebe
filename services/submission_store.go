package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/wyndale/Green-Roots-sub001/models"

	"gorm.io/gorm"
)

// DecisionFields carries the columns written when a submission leaves the
// pending status. EcoPoints is set for approvals, RejectionReason for
// rejections; the rest are always set.
type DecisionFields struct {
	Status          string
	EcoPoints       *int
	RejectionReason *string
	DecidedBy       int
	DecidedAt       time.Time
}

// SubmissionPage is one page of submissions plus the unpaginated total.
type SubmissionPage struct {
	Submissions []models.Submission
	Total       int64
}

// SubmissionStore is the persistence boundary of the review workflow.
type SubmissionStore interface {
	// Get loads a submission by id. Returns ErrNotFound for unknown ids.
	Get(id int) (*models.Submission, error)

	// CompareAndSetDecision writes the decision fields if and only if the
	// stored status is still pending at write time. Returns ErrConflict when
	// another decision already landed. This single conditional write is what
	// keeps concurrent validators from both deciding the same submission.
	CompareAndSetDecision(id int, fields DecisionFields) error

	// ListByBarangayAndStatus returns submissions for one barangay whose
	// status is in statuses, newest submitted first, optionally filtered by a
	// search term over submission number and notes.
	ListByBarangayAndStatus(barangayID int, statuses []string, search string, page, pageSize int) (*SubmissionPage, error)
}

type gormSubmissionStore struct {
	db *gorm.DB
}

// NewSubmissionStore returns the MySQL-backed SubmissionStore.
func NewSubmissionStore(db *gorm.DB) SubmissionStore {
	return &gormSubmissionStore{db: db}
}

func (s *gormSubmissionStore) Get(id int) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("submission_id = ? AND delete_at IS NULL", id).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return &submission, nil
}

func (s *gormSubmissionStore) CompareAndSetDecision(id int, fields DecisionFields) error {
	// Single conditional UPDATE keyed on the current status. A plain
	// read-then-write pair would let two callers both win and double-award
	// points.
	res := s.db.Model(&models.Submission{}).
		Where("submission_id = ? AND status = ? AND delete_at IS NULL", id, models.StatusPending).
		Updates(map[string]interface{}{
			"status":           fields.Status,
			"eco_points":       fields.EcoPoints,
			"rejection_reason": fields.RejectionReason,
			"decided_by":       fields.DecidedBy,
			"decided_at":       fields.DecidedAt,
			"update_at":        fields.DecidedAt,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *gormSubmissionStore) ListByBarangayAndStatus(barangayID int, statuses []string, search string, page, pageSize int) (*SubmissionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := s.db.Model(&models.Submission{}).
		Where("barangay_id = ? AND delete_at IS NULL", barangayID).
		Where("status IN ?", statuses)

	if search != "" {
		term := "%" + search + "%"
		query = query.Where("submission_number LIKE ? OR notes LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var submissions []models.Submission
	if err := query.Order("submitted_at DESC").Offset(offset).Limit(pageSize).Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &SubmissionPage{Submissions: submissions, Total: total}, nil
}
