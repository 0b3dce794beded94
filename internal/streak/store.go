// Package streak maintains per-voter consecutive-day voting streaks. The
// database row written by the vote transaction is authoritative; Redis holds
// a rebuildable projection keyed streak:{voterID}. A cache miss falls back to
// recomputing from the vote ledger, never to a default of zero.
package streak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
)

// maxRecomputeDays bounds the ledger scan when rebuilding a streak.
const maxRecomputeDays = 400

type cacheEntry struct {
	Count   int    `json:"count"`
	LastDay string `json:"last_day"`
}

// Store reads and maintains voter streaks.
type Store struct {
	redis adapter.RedisClient
	db    store.Store
	clock adapter.Clock
	loc   *time.Location
	ttl   time.Duration
}

// NewStore creates a streak store backed by Redis with a ledger fallback.
func NewStore(redis adapter.RedisClient, db store.Store, clock adapter.Clock, loc *time.Location, ttl time.Duration) *Store {
	return &Store{
		redis: redis,
		db:    db,
		clock: clock,
		loc:   loc,
		ttl:   ttl,
	}
}

// Current returns the voter's displayed streak as of now. A voter whose last
// vote was before yesterday shows 0 even though the stored row still carries
// the old count; the row itself is reset lazily so the next vote starts at 1.
func (s *Store) Current(ctx context.Context, voterID int64) (int, error) {
	count, lastDay, err := s.lookup(ctx, voterID)
	if err != nil {
		return 0, err
	}
	if count == 0 || lastDay == "" {
		return 0, nil
	}

	today := domain.DayOf(s.clock.Now(), s.loc)
	gap, err := domain.DaysBetween(lastDay, today)
	if err != nil {
		return 0, fmt.Errorf("failed to compute streak gap: %w", err)
	}

	if gap > 1 {
		// The streak is broken. Collapse the stored row and cache so
		// subsequent reads agree.
		if err := s.db.ResetStreak(ctx, voterID); err != nil {
			logger.WarnCtx(ctx, "failed to reset stale streak",
				zap.Int64("voter_id", voterID), zap.Error(err))
		}
		s.prime(ctx, voterID, 0, lastDay)
		return 0, nil
	}

	return count, nil
}

// Advance records a vote on day in the cache, mirroring the transition the
// vote transaction applied to the database row.
func (s *Store) Advance(ctx context.Context, voterID int64, count int, day domain.VoteDay) {
	s.prime(ctx, voterID, count, day)
}

// Invalidate drops the cached streak so the next read rebuilds it.
func (s *Store) Invalidate(ctx context.Context, voterID int64) {
	if err := s.redis.Del(ctx, cacheKey(voterID)); err != nil {
		logger.WarnCtx(ctx, "failed to invalidate streak cache",
			zap.Int64("voter_id", voterID), zap.Error(err))
	}
}

// lookup resolves the raw streak count and last vote day: cache first, then
// the authoritative row, then a full ledger recompute.
func (s *Store) lookup(ctx context.Context, voterID int64) (int, domain.VoteDay, error) {
	raw, err := s.redis.Get(ctx, cacheKey(voterID))
	if err == nil {
		var entry cacheEntry
		if jsonErr := json.Unmarshal([]byte(raw), &entry); jsonErr == nil {
			return entry.Count, domain.VoteDay(entry.LastDay), nil
		}
		logger.WarnCtx(ctx, "corrupt streak cache entry, recomputing",
			zap.Int64("voter_id", voterID))
	} else if !adapter.IsNil(err) {
		logger.WarnCtx(ctx, "streak cache unavailable, falling back to ledger",
			zap.Int64("voter_id", voterID), zap.Error(err))
	}

	row, err := s.db.GetStreakState(ctx, voterID)
	if err == nil {
		s.prime(ctx, voterID, row.CurrentStreak, domain.VoteDay(row.LastVoteDay))
		return row.CurrentStreak, domain.VoteDay(row.LastVoteDay), nil
	}
	if !errors.Is(err, domain.ErrStreakNotFound) {
		return 0, "", fmt.Errorf("failed to load streak row: %w", err)
	}

	// No row yet: rebuild from the vote ledger. A voter with votes but no
	// streak row still gets an accurate answer.
	count, lastDay, err := s.recompute(ctx, voterID)
	if err != nil {
		return 0, "", err
	}
	if count > 0 {
		s.prime(ctx, voterID, count, lastDay)
	}
	return count, lastDay, nil
}

// recompute rebuilds the streak by walking the voter's distinct voting days
// backwards from the most recent one.
func (s *Store) recompute(ctx context.Context, voterID int64) (int, domain.VoteDay, error) {
	days, err := s.db.GetVoteDays(ctx, voterID, maxRecomputeDays)
	if err != nil {
		return 0, "", fmt.Errorf("failed to recompute streak: %w", err)
	}
	if len(days) == 0 {
		return 0, "", nil
	}

	count := 1
	for i := 0; i < len(days)-1; i++ {
		gap, err := domain.DaysBetween(days[i+1], days[i])
		if err != nil {
			return 0, "", fmt.Errorf("failed to recompute streak: %w", err)
		}
		if gap != 1 {
			break
		}
		count++
	}

	return count, days[0], nil
}

func (s *Store) prime(ctx context.Context, voterID int64, count int, day domain.VoteDay) {
	entry, err := json.Marshal(cacheEntry{Count: count, LastDay: string(day)})
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKey(voterID), string(entry), s.ttl); err != nil {
		logger.WarnCtx(ctx, "failed to prime streak cache",
			zap.Int64("voter_id", voterID), zap.Error(err))
	}
}

func cacheKey(voterID int64) string {
	return fmt.Sprintf("streak:%d", voterID)
}
