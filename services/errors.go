package services

import "errors"

// Outcome errors for the review workflow. Controllers match these with
// errors.Is and map them to HTTP statuses; nothing here is retried
// automatically.
var (
	// ErrNotFound means the submission id is unknown.
	ErrNotFound = errors.New("submission not found")

	// ErrForbidden means the validator does not cover the submission's barangay.
	ErrForbidden = errors.New("validator not authorized for this barangay")

	// ErrAlreadyDecided means the submission already reached a terminal status.
	// Duplicate clicks and lost races both surface as this.
	ErrAlreadyDecided = errors.New("submission already decided")

	// ErrInvalidArgument covers bad caller input such as a blank rejection
	// reason or a non-positive tree count.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStoreUnavailable wraps connectivity or other backing-store failures.
	ErrStoreUnavailable = errors.New("submission store unavailable")

	// ErrConflict is returned by SubmissionStore.CompareAndSetDecision when the
	// stored status is no longer pending. The workflow maps it to
	// ErrAlreadyDecided; callers never see it.
	ErrConflict = errors.New("submission status changed concurrently")

	// ErrInsufficientPoints means a redemption would overdraw the citizen's
	// eco point balance.
	ErrInsufficientPoints = errors.New("insufficient eco points")

	// ErrOutOfStock means the reward has no remaining stock.
	ErrOutOfStock = errors.New("reward out of stock")
)
