package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownVoter is returned when a vote references a voter that does not exist.
	ErrUnknownVoter = errors.New("unknown voter")

	// ErrUnknownVendor is returned when a vote references a vendor that does not exist.
	ErrUnknownVendor = errors.New("unknown vendor")

	// ErrVendorInactive is returned when the vendor exists but is not accepting votes.
	ErrVendorInactive = errors.New("vendor inactive")

	// ErrVoteNotFound is returned when a vote lookup finds nothing.
	ErrVoteNotFound = errors.New("vote not found")

	// ErrDistributionNotFound is returned when no distribution record exists for a vote.
	ErrDistributionNotFound = errors.New("distribution not found")

	// ErrStreakNotFound is returned when a voter has no streak row yet.
	ErrStreakNotFound = errors.New("streak not found")

	// ErrDistributionNotClaimable is returned when a distribution is no longer
	// in a state that allows submission.
	ErrDistributionNotClaimable = errors.New("distribution not claimable")
)

// RateLimitError is returned when a voter exceeds the per-vendor daily vote cap.
// It carries the observed count and the time the cap resets.
type RateLimitError struct {
	VoterID  int64
	VendorID int64
	Count    int
	Limit    int
	ResetAt  time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("daily vote limit reached for vendor %d: %d/%d, resets at %s",
		e.VendorID, e.Count, e.Limit, e.ResetAt.Format(time.RFC3339))
}
