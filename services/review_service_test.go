package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/wyndale/Green-Roots-sub001/models"
)

// fakeSubmissionStore keeps submissions in memory with the same conditional
// write semantics as the MySQL store: the decision only lands if the stored
// status is still pending under the lock.
type fakeSubmissionStore struct {
	mu          sync.Mutex
	submissions map[int]*models.Submission
	casCalls    int
	getErr      error
	casErr      error
}

func newFakeStore(submissions ...*models.Submission) *fakeSubmissionStore {
	store := &fakeSubmissionStore{submissions: make(map[int]*models.Submission)}
	for _, s := range submissions {
		store.submissions[s.SubmissionID] = s
	}
	return store
}

func (f *fakeSubmissionStore) Get(id int) (*models.Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubmissionStore) CompareAndSetDecision(id int, fields DecisionFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.casCalls++
	if f.casErr != nil {
		return f.casErr
	}
	s, ok := f.submissions[id]
	if !ok || s.Status != models.StatusPending {
		return ErrConflict
	}
	decidedBy := fields.DecidedBy
	decidedAt := fields.DecidedAt
	s.Status = fields.Status
	s.EcoPoints = fields.EcoPoints
	s.RejectionReason = fields.RejectionReason
	s.DecidedBy = &decidedBy
	s.DecidedAt = &decidedAt
	return nil
}

func (f *fakeSubmissionStore) ListByBarangayAndStatus(barangayID int, statuses []string, search string, page, pageSize int) (*SubmissionPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.Submission
	for _, s := range f.submissions {
		if s.BarangayID != barangayID {
			continue
		}
		for _, status := range statuses {
			if s.Status == status {
				matched = append(matched, *s)
				break
			}
		}
	}
	return &SubmissionPage{Submissions: matched, Total: int64(len(matched))}, nil
}

func (f *fakeSubmissionStore) stored(id int) models.Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.submissions[id]
}

func pendingSubmission(id, barangayID, trees int) *models.Submission {
	return &models.Submission{
		SubmissionID:     id,
		SubmissionNumber: "GRS-20250801-TEST0001",
		SubmitterID:      12,
		BarangayID:       barangayID,
		TreesPlanted:     trees,
		EvidenceRef:      "7d71e2f0-assets",
		Status:           models.StatusPending,
		SubmittedAt:      time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestApproveAwardsComputedPoints(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)
	decidedAt := time.Date(2025, 8, 2, 10, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return decidedAt }

	submission, err := svc.Approve(42, Validator{ID: 9, BarangayID: 7})
	if err != nil {
		t.Fatalf("Approve returned error: %v", err)
	}

	if submission.Status != models.StatusApproved {
		t.Fatalf("expected status approved, got %s", submission.Status)
	}
	if submission.EcoPoints == nil || *submission.EcoPoints != 330 {
		t.Fatalf("expected 330 eco points, got %v", submission.EcoPoints)
	}
	if submission.RejectionReason != nil {
		t.Fatalf("expected no rejection reason, got %q", *submission.RejectionReason)
	}
	if submission.DecidedBy == nil || *submission.DecidedBy != 9 {
		t.Fatalf("expected decided_by 9, got %v", submission.DecidedBy)
	}
	if submission.DecidedAt == nil || !submission.DecidedAt.Equal(decidedAt) {
		t.Fatalf("expected decided_at %v, got %v", decidedAt, submission.DecidedAt)
	}

	stored := store.stored(42)
	if stored.Status != models.StatusApproved || stored.EcoPoints == nil || *stored.EcoPoints != 330 {
		t.Fatalf("stored record not updated: %+v", stored)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(42, Validator{ID: 9, BarangayID: 7}, reason)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Reject with blank reason %q: expected ErrInvalidArgument, got %v", reason, err)
		}
	}

	stored := store.stored(42)
	if stored.Status != models.StatusPending {
		t.Fatalf("blank reason must not mutate the submission, got status %s", stored.Status)
	}
	if store.casCalls != 0 {
		t.Fatalf("blank reason must not reach the store, got %d CAS calls", store.casCalls)
	}
}

func TestRejectStoresReasonWithoutPoints(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)

	submission, err := svc.Reject(42, Validator{ID: 9, BarangayID: 7}, "  photo does not show planted trees  ")
	if err != nil {
		t.Fatalf("Reject returned error: %v", err)
	}

	if submission.Status != models.StatusRejected {
		t.Fatalf("expected status rejected, got %s", submission.Status)
	}
	if submission.RejectionReason == nil || *submission.RejectionReason != "photo does not show planted trees" {
		t.Fatalf("expected trimmed reason, got %v", submission.RejectionReason)
	}
	if submission.EcoPoints != nil {
		t.Fatalf("rejected submission must not carry points, got %d", *submission.EcoPoints)
	}
}

func TestDecisionOnUnknownSubmission(t *testing.T) {
	svc := NewReviewService(newFakeStore())

	_, err := svc.Approve(404, Validator{ID: 9, BarangayID: 7})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecisionForbiddenAcrossBarangays(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)

	_, err := svc.Approve(42, Validator{ID: 9, BarangayID: 8})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	stored := store.stored(42)
	if stored.Status != models.StatusPending || store.casCalls != 0 {
		t.Fatalf("forbidden decision must not mutate the submission: %+v", stored)
	}
}

func TestSecondDecisionReportsAlreadyDecided(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)
	validator := Validator{ID: 9, BarangayID: 7}

	if _, err := svc.Approve(42, validator); err != nil {
		t.Fatalf("first approve returned error: %v", err)
	}
	first := store.stored(42)

	_, err := svc.Approve(42, validator)
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second approve: expected ErrAlreadyDecided, got %v", err)
	}
	_, err = svc.Reject(42, validator, "changed my mind")
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("reject after approve: expected ErrAlreadyDecided, got %v", err)
	}

	second := store.stored(42)
	if second.Status != first.Status || *second.EcoPoints != *first.EcoPoints ||
		!second.DecidedAt.Equal(*first.DecidedAt) {
		t.Fatalf("repeat decision mutated the record: first %+v second %+v", first, second)
	}
	if store.casCalls != 1 {
		t.Fatalf("expected exactly one CAS call, got %d", store.casCalls)
	}
}

func TestConflictFromStoreSurfacesAsAlreadyDecided(t *testing.T) {
	// The submission reads as pending but another decision lands before the
	// conditional write, the race the CAS contract exists for.
	store := newFakeStore(pendingSubmission(42, 7, 5))
	store.casErr = ErrConflict
	svc := NewReviewService(store)

	_, err := svc.Approve(42, Validator{ID: 9, BarangayID: 7})
	if !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided on store conflict, got %v", err)
	}
}

func TestStoreFailuresPropagate(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	store.getErr = ErrStoreUnavailable
	svc := NewReviewService(store)

	_, err := svc.Approve(42, Validator{ID: 9, BarangayID: 7})
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestConcurrentApprovalsDecideExactlyOnce(t *testing.T) {
	store := newFakeStore(pendingSubmission(42, 7, 5))
	svc := NewReviewService(store)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, results[slot] = svc.Approve(42, Validator{ID: 100 + slot, BarangayID: 7})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrAlreadyDecided):
		default:
			t.Fatalf("unexpected error from concurrent approve: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winning approval, got %d", wins)
	}

	stored := store.stored(42)
	if stored.EcoPoints == nil || *stored.EcoPoints != 330 {
		t.Fatalf("final record must reflect exactly one computation, got %v", stored.EcoPoints)
	}
}
