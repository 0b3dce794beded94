package domain

import (
	"fmt"
	"time"
)

// DayFormat is the canonical layout for calendar days in the reference timezone.
const DayFormat = "2006-01-02"

// DefaultTimezone is the reference timezone used to derive calendar days.
// Day boundaries are fixed per this zone, not per-user-local time.
const DefaultTimezone = "America/Mexico_City"

// VoteDay is a calendar day in the reference timezone, formatted as YYYY-MM-DD.
type VoteDay string

// DayOf derives the calendar day for a submission time in the given location.
func DayOf(t time.Time, loc *time.Location) VoteDay {
	return VoteDay(t.In(loc).Format(DayFormat))
}

// Time returns the start of the day in the given location.
func (d VoteDay) Time(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid vote day %q: %w", d, err)
	}
	return t, nil
}

// Next returns the following calendar day.
func (d VoteDay) Next(loc *time.Location) (VoteDay, error) {
	t, err := d.Time(loc)
	if err != nil {
		return "", err
	}
	return VoteDay(t.AddDate(0, 0, 1).Format(DayFormat)), nil
}

// DaysBetween returns the number of calendar days from a to b (b - a).
// A positive result means b is after a. The difference is taken between UTC
// midnights: days are plain dates, and wall-clock subtraction in a zone that
// observes DST would miscount across transitions.
func DaysBetween(a, b VoteDay) (int, error) {
	ta, err := a.Time(time.UTC)
	if err != nil {
		return 0, err
	}
	tb, err := b.Time(time.UTC)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta) / (24 * time.Hour)), nil
}

// DistributionState is the lifecycle state of an on-chain reward distribution.
type DistributionState string

const (
	// DistributionStatePending means the distribution is recorded but not yet submitted on-chain.
	DistributionStatePending DistributionState = "pending"
	// DistributionStateSubmitted means a transaction was broadcast and is awaiting finality.
	DistributionStateSubmitted DistributionState = "submitted"
	// DistributionStateConfirmed means the transfer reached on-chain finality.
	DistributionStateConfirmed DistributionState = "confirmed"
	// DistributionStateFailed means the distribution was abandoned after exhausting
	// retries or hit a permanent error. Terminal and operator-visible.
	DistributionStateFailed DistributionState = "failed"
)

// Terminal reports whether the state accepts no further transitions.
func (s DistributionState) Terminal() bool {
	return s == DistributionStateConfirmed || s == DistributionStateFailed
}

// RewardEvent is published when a vote is accepted and a reward needs
// on-chain distribution. The vote ID doubles as the idempotency key.
type RewardEvent struct {
	EventID     string    `json:"event_id"`
	VoteID      string    `json:"vote_id"`
	VoterID     int64     `json:"voter_id"`
	VendorID    int64     `json:"vendor_id"`
	Amount      int64     `json:"amount"`
	Destination string    `json:"destination"`
	AcceptedAt  time.Time `json:"accepted_at"`
}

// VoteReceipt is returned to the caller after a vote is accepted.
type VoteReceipt struct {
	VoteID                string
	TokensEarned          int64
	NewBalance            int64
	Streak                int
	StreakBonusApplied    bool
	TerritoryBonusApplied bool
}
