package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/wyndale/Green-Roots-sub001/models"
)

// Validator identifies the acting eco-validator and the single barangay they
// are authorized to review. The boundary layer (auth middleware) resolves it
// from the session before calling in.
type Validator struct {
	ID         int
	BarangayID int
}

// ReviewService decides the fate of pending submissions. Each submission is
// decided at most once; the store's conditional write enforces that under
// concurrent requests.
type ReviewService struct {
	store SubmissionStore
	now   func() time.Time
}

func NewReviewService(store SubmissionStore) *ReviewService {
	return &ReviewService{store: store, now: time.Now}
}

// Approve moves a pending submission to approved and awards eco points
// computed from its tree count. Returns the updated submission.
func (s *ReviewService) Approve(submissionID int, validator Validator) (*models.Submission, error) {
	submission, err := s.loadForDecision(submissionID, validator)
	if err != nil {
		return nil, err
	}

	points, err := ComputePoints(submission.TreesPlanted)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := DecisionFields{
		Status:    models.StatusApproved,
		EcoPoints: &points,
		DecidedBy: validator.ID,
		DecidedAt: now,
	}

	return s.commit(submission, fields)
}

// Reject moves a pending submission to rejected. A non-blank reason is
// required; no points are awarded.
func (s *ReviewService) Reject(submissionID int, validator Validator, reason string) (*models.Submission, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidArgument)
	}

	submission, err := s.loadForDecision(submissionID, validator)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := DecisionFields{
		Status:          models.StatusRejected,
		RejectionReason: &reason,
		DecidedBy:       validator.ID,
		DecidedAt:       now,
	}

	return s.commit(submission, fields)
}

// loadForDecision loads the submission and runs the checks shared by both
// transitions: existence, barangay authorization, pending status.
func (s *ReviewService) loadForDecision(submissionID int, validator Validator) (*models.Submission, error) {
	submission, err := s.store.Get(submissionID)
	if err != nil {
		return nil, err
	}

	if submission.BarangayID != validator.BarangayID {
		// A validator reaching for another barangay's submission never comes
		// from the normal UI, so keep a trace of it.
		log.Printf("authorization anomaly: validator %d (barangay %d) attempted decision on submission %d (barangay %d)",
			validator.ID, validator.BarangayID, submission.SubmissionID, submission.BarangayID)
		return nil, ErrForbidden
	}

	if submission.IsDecided() {
		return nil, ErrAlreadyDecided
	}

	return submission, nil
}

// commit performs the conditional write and returns the submission with the
// decision fields applied. A conflict means another decision won the race;
// decisions are never retried because the other actor's decision stands.
func (s *ReviewService) commit(submission *models.Submission, fields DecisionFields) (*models.Submission, error) {
	if err := s.store.CompareAndSetDecision(submission.SubmissionID, fields); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrAlreadyDecided
		}
		return nil, err
	}

	decidedBy := fields.DecidedBy
	decidedAt := fields.DecidedAt
	submission.Status = fields.Status
	submission.EcoPoints = fields.EcoPoints
	submission.RejectionReason = fields.RejectionReason
	submission.DecidedBy = &decidedBy
	submission.DecidedAt = &decidedAt
	submission.UpdateAt = &decidedAt

	return submission, nil
}
