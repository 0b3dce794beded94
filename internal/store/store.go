package store

import (
	"context"
	"time"

	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/store/schema"
)

// RewardFunc computes the reward for a vote given facts only known inside the
// accept transaction: the vote's 1-based ordinal among the voter's same-vendor
// votes that day and the voter's streak length after this vote. territoryShift
// is resolved by the caller before the transaction starts.
type RewardFunc func(ordinal int, streakLength int) (base int64, multiplierBps int64, total int64)

// CreateVoteParams carries everything CreateVote needs to accept a vote atomically.
type CreateVoteParams struct {
	VoteID         string
	VoterID        int64
	VendorID       int64
	ZoneID         int64
	VoteDate       domain.VoteDay
	SubmittedAt    time.Time
	DailyVoteLimit int
	// CapResetAt is when the daily cap resets, reported in RateLimitError.
	CapResetAt time.Time
	// TerritoryBonus is the flat bonus to credit when the vote shifts zone control.
	TerritoryBonus int64
	Reward         RewardFunc
}

// CreateVoteResult reports what the accept transaction recorded.
type CreateVoteResult struct {
	Vote       *schema.Vote
	Streak     *schema.StreakState
	NewBalance int64
}

// ZoneStanding is a vendor's vote total within a zone.
type ZoneStanding struct {
	VendorID  int64
	VoteCount int64
}

// VendorVoteTotals aggregates a vendor's received votes.
type VendorVoteTotals struct {
	VendorID    int64
	TotalVotes  int64
	TotalTokens int64
	VotesToday  int64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id int64) (*schema.User, error)
	// GetVendor retrieves a vendor by ID
	GetVendor(ctx context.Context, id int64) (*schema.Vendor, error)

	// CreateVote atomically validates the daily cap, records the vote,
	// advances the streak, credits the balance and opens a pending
	// distribution record. Returns *domain.RateLimitError when the voter
	// already cast the daily limit of votes for this vendor.
	CreateVote(ctx context.Context, params CreateVoteParams) (*CreateVoteResult, error)
	// GetVote retrieves a vote by UUID
	GetVote(ctx context.Context, id string) (*schema.Vote, error)
	// CountVotesForVendorOnDay counts a voter's votes for one vendor on one day
	CountVotesForVendorOnDay(ctx context.Context, voterID, vendorID int64, day domain.VoteDay) (int, error)
	// GetVendorVoteTotals aggregates vote counts and token totals for a vendor
	GetVendorVoteTotals(ctx context.Context, vendorID int64, today domain.VoteDay) (*VendorVoteTotals, error)
	// GetZoneStandings returns per-vendor vote counts in a zone, highest first
	GetZoneStandings(ctx context.Context, zoneID int64) ([]ZoneStanding, error)

	// GetStreakState retrieves the authoritative streak row for a voter
	GetStreakState(ctx context.Context, voterID int64) (*schema.StreakState, error)
	// GetVoteDays returns the voter's distinct voting days, most recent first
	GetVoteDays(ctx context.Context, voterID int64, limit int) ([]domain.VoteDay, error)
	// ResetStreak zeroes the displayed streak when the voter's gap exceeds one day
	ResetStreak(ctx context.Context, voterID int64) error

	// GetDistributionByVoteID retrieves the distribution record for a vote
	GetDistributionByVoteID(ctx context.Context, voteID string) (*schema.DistributionRecord, error)
	// ListPendingDistributions returns pending records oldest first
	ListPendingDistributions(ctx context.Context, limit int) ([]schema.DistributionRecord, error)
	// ListStuckSubmissions returns submitted records whose last attempt is older than cutoff
	ListStuckSubmissions(ctx context.Context, cutoff time.Time, limit int) ([]schema.DistributionRecord, error)
	// ClaimDistribution flips a pending record to submitted-in-progress for the
	// caller. Returns domain.ErrDistributionNotClaimable when the record is no
	// longer pending, making duplicate queue deliveries harmless.
	ClaimDistribution(ctx context.Context, voteID string, attemptAt time.Time) (*schema.DistributionRecord, error)
	// IncrementDistributionAttempts persists one broadcast attempt against the
	// record and returns the updated count, so the attempt budget holds across
	// restarts
	IncrementDistributionAttempts(ctx context.Context, voteID string, at time.Time) (int, error)
	// MarkDistributionSubmitted records the broadcast transaction hash
	MarkDistributionSubmitted(ctx context.Context, voteID string, txHash string) error
	// MarkDistributionConfirmed finalizes a distribution at a block number
	MarkDistributionConfirmed(ctx context.Context, voteID string, txHash string, block uint64) error
	// MarkDistributionFailed terminally fails a distribution with a reason
	MarkDistributionFailed(ctx context.Context, voteID string, reason string) error
	// ReleaseDistribution returns a claimed record to pending for a later retry
	ReleaseDistribution(ctx context.Context, voteID string) error
}
