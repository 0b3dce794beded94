// Package voting implements the vote accept path: validation, calendar-day
// derivation, territory scoring, the atomic ledger write and the reward event
// publish that hands the on-chain leg to the distributor.
package voting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/messaging"
	"github.com/Disidente87/vendor-wars-sub003/internal/reward"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
	"github.com/Disidente87/vendor-wars-sub003/internal/streak"
)

// ZoneScorer decides whether a vote for a vendor shifts control of its zone.
//
//go:generate mockgen -source=service.go -destination=../mocks/voting.go -package=mocks -mock_names=ZoneScorer=MockZoneScorer
type ZoneScorer interface {
	ShiftsControl(ctx context.Context, zoneID, vendorID int64) (bool, error)
}

// Config holds voting service configuration.
type Config struct {
	Schedule       reward.Schedule
	DailyVoteLimit int
	Location       *time.Location
}

// Service accepts votes.
type Service struct {
	store     store.Store
	streaks   *streak.Store
	scorer    ZoneScorer
	publisher messaging.Publisher
	clock     adapter.Clock
	cfg       Config
}

// NewService creates a voting service.
func NewService(
	st store.Store,
	streaks *streak.Store,
	scorer ZoneScorer,
	publisher messaging.Publisher,
	clock adapter.Clock,
	cfg Config,
) *Service {
	if cfg.DailyVoteLimit <= 0 {
		cfg.DailyVoteLimit = 3
	}
	return &Service{
		store:     st,
		streaks:   streaks,
		scorer:    scorer,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg,
	}
}

// Submit accepts a vote from voterID for vendorID. It returns
// domain.ErrUnknownVoter / domain.ErrUnknownVendor / domain.ErrVendorInactive
// for validation failures and *domain.RateLimitError when the voter already
// cast the daily limit for this vendor.
func (s *Service) Submit(ctx context.Context, voterID, vendorID int64) (*domain.VoteReceipt, error) {
	now := s.clock.Now()
	day := domain.DayOf(now, s.cfg.Location)

	user, err := s.store.GetUser(ctx, voterID)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrUnknownVoter
	}

	vendor, err := s.store.GetVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.Active {
		return nil, domain.ErrVendorInactive
	}

	// Territory scoring reads committed standings, outside the accept
	// transaction. A concurrent vote can stale this answer; the bonus is an
	// incentive, not a ledger invariant.
	territoryShift, err := s.scorer.ShiftsControl(ctx, vendor.ZoneID, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to score territory: %w", err)
	}

	resetAt, err := capResetTime(day, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	territoryBonus := int64(0)
	if territoryShift {
		territoryBonus = s.cfg.Schedule.TerritoryBonus
	}

	params := store.CreateVoteParams{
		VoteID:         uuid.NewString(),
		VoterID:        voterID,
		VendorID:       vendorID,
		ZoneID:         vendor.ZoneID,
		VoteDate:       day,
		SubmittedAt:    now,
		DailyVoteLimit: s.cfg.DailyVoteLimit,
		CapResetAt:     resetAt,
		TerritoryBonus: territoryBonus,
		Reward: func(ordinal int, streakLength int) (int64, int64, int64) {
			r := s.cfg.Schedule.Compute(ordinal, streakLength, territoryShift)
			return r.Base, r.MultiplierBps, r.Total
		},
	}

	result, err := s.store.CreateVote(ctx, params)
	if err != nil {
		return nil, err
	}

	// Mirror the committed streak into the cache.
	s.streaks.Advance(ctx, voterID, result.Streak.CurrentStreak, day)

	// A publish failure is not a vote failure: the distributor's pending
	// sweep picks the record up regardless.
	event := &domain.RewardEvent{
		EventID:     ulid.Make().String(),
		VoteID:      result.Vote.ID,
		VoterID:     voterID,
		VendorID:    vendorID,
		Amount:      result.Vote.TotalAmount,
		Destination: user.WalletAddress,
		AcceptedAt:  now,
	}
	if err := s.publisher.PublishVoteAccepted(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish reward event, sweep will reconcile",
			zap.String("vote_id", result.Vote.ID), zap.Error(err))
	}

	return &domain.VoteReceipt{
		VoteID:                result.Vote.ID,
		TokensEarned:          result.Vote.TotalAmount,
		NewBalance:            result.NewBalance,
		Streak:                result.Streak.CurrentStreak,
		StreakBonusApplied:    result.Vote.MultiplierBps > reward.BpsOne,
		TerritoryBonusApplied: result.Vote.TerritoryBonus > 0,
	}, nil
}

// capResetTime is the start of the next calendar day, when the daily cap resets.
func capResetTime(day domain.VoteDay, loc *time.Location) (time.Time, error) {
	next, err := day.Next(loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to compute cap reset: %w", err)
	}
	return next.Time(loc)
}
