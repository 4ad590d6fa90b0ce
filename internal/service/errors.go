package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors, for use with errors.Is().
var (
	// ErrValidation is returned when an ingested leave violates one of its
	// own invariants. Rejected before anything is persisted.
	ErrValidation = errors.New("leave validation failed")

	// ErrConflict is returned when a leave would overlap another persisted
	// leave for the same person.
	ErrConflict = errors.New("leave dates conflict with an existing leave")

	// ErrDataInconsistency is returned when stored data contradicts itself,
	// e.g. an origin reference pointing at a leave that no longer exists.
	// Not retryable.
	ErrDataInconsistency = errors.New("inconsistent stored data")
)

// ValidationError carries the reason an ingested leave was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid leave: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError names the persisted leave the candidate range collides with.
type ConflictError struct {
	PersonID  string
	LeaveID   uint
	StartDate time.Time
	EndDate   time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps existing leave %d (%s to %s) for person %s",
		e.LeaveID, e.StartDate.Format("2006-01-02"), e.EndDate.Format("2006-01-02"), e.PersonID)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// DanglingOriginError reports an origin reference whose owning leave is gone.
type DanglingOriginError struct {
	Kind    string
	LocalID string
	LeaveID uint
}

func (e *DanglingOriginError) Error() string {
	return fmt.Sprintf("origin reference (%s, %s) points at missing leave %d",
		e.Kind, e.LocalID, e.LeaveID)
}

func (e *DanglingOriginError) Unwrap() error {
	return ErrDataInconsistency
}

// IsClientError reports whether the error is the caller's fault and safe to
// surface as a 4xx.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict)
}
