package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/mocks"
	"github.com/Disidente87/vendor-wars-sub003/internal/store/schema"
)

const testTTL = time.Hour

func fixedNow() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

type storeMocks struct {
	redis *mocks.MockRedisClient
	db    *mocks.MockStore
	clock *mocks.MockClock
}

func newTestStore(t *testing.T) (*Store, storeMocks) {
	ctrl := gomock.NewController(t)
	m := storeMocks{
		redis: mocks.NewMockRedisClient(ctrl),
		db:    mocks.NewMockStore(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	return NewStore(m.redis, m.db, m.clock, time.UTC, testTTL), m
}

func TestCurrentCacheHit(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").
		Return(`{"count":4,"last_day":"2026-08-28"}`, nil)
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestCurrentSameDayCacheHit(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").
		Return(`{"count":2,"last_day":"2026-08-29"}`, nil)
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCurrentBrokenStreakResetsRow(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").
		Return(`{"count":9,"last_day":"2026-08-25"}`, nil)
	m.clock.EXPECT().Now().Return(fixedNow())
	m.db.EXPECT().ResetStreak(gomock.Any(), int64(1)).Return(nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:1", gomock.Any(), testTTL).Return(nil)

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCurrentBrokenStreakAcrossSpringForward(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := storeMocks{
		redis: mocks.NewMockRedisClient(ctrl),
		db:    mocks.NewMockStore(ctrl),
		clock: mocks.NewMockClock(ctrl),
	}
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	s := NewStore(m.redis, m.db, m.clock, ny, testTTL)

	// Last vote Saturday, now Monday noon: a 2-day gap that spans the US
	// spring-forward and is only 47 wall-clock hours. The streak is still
	// broken and must reset.
	m.redis.EXPECT().Get(gomock.Any(), "streak:1").
		Return(`{"count":5,"last_day":"2026-03-07"}`, nil)
	m.clock.EXPECT().Now().Return(time.Date(2026, 3, 9, 12, 0, 0, 0, ny))
	m.db.EXPECT().ResetStreak(gomock.Any(), int64(1)).Return(nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:1", gomock.Any(), testTTL).Return(nil)

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCurrentCacheMissFallsBackToRow(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").Return("", redis.Nil)
	m.db.EXPECT().GetStreakState(gomock.Any(), int64(1)).Return(&schema.StreakState{
		VoterID:       1,
		CurrentStreak: 3,
		LastVoteDay:   "2026-08-29",
	}, nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:1", gomock.Any(), testTTL).Return(nil)
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCurrentCorruptCacheFallsBackToRow(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").Return("not json", nil)
	m.db.EXPECT().GetStreakState(gomock.Any(), int64(1)).Return(&schema.StreakState{
		VoterID:       1,
		CurrentStreak: 3,
		LastVoteDay:   "2026-08-29",
	}, nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:1", gomock.Any(), testTTL).Return(nil)
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCurrentRedisDownFallsBackToRow(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:1").
		Return("", errors.New("connection refused"))
	m.db.EXPECT().GetStreakState(gomock.Any(), int64(1)).Return(&schema.StreakState{
		VoterID:       1,
		CurrentStreak: 5,
		LastVoteDay:   "2026-08-28",
	}, nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:1", gomock.Any(), testTTL).
		Return(errors.New("connection refused"))
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestCurrentRecomputesFromLedger(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:7").Return("", redis.Nil)
	m.db.EXPECT().GetStreakState(gomock.Any(), int64(7)).
		Return(nil, domain.ErrStreakNotFound)
	// Two consecutive days, then a gap.
	m.db.EXPECT().GetVoteDays(gomock.Any(), int64(7), maxRecomputeDays).
		Return([]domain.VoteDay{"2026-08-29", "2026-08-28", "2026-08-26"}, nil)
	m.redis.EXPECT().Set(gomock.Any(), "streak:7", gomock.Any(), testTTL).Return(nil)
	m.clock.EXPECT().Now().Return(fixedNow())

	count, err := s.Current(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCurrentNoVotes(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Get(gomock.Any(), "streak:9").Return("", redis.Nil)
	m.db.EXPECT().GetStreakState(gomock.Any(), int64(9)).
		Return(nil, domain.ErrStreakNotFound)
	m.db.EXPECT().GetVoteDays(gomock.Any(), int64(9), maxRecomputeDays).
		Return(nil, nil)

	count, err := s.Current(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAdvancePrimesCache(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Set(gomock.Any(), "streak:1",
		`{"count":4,"last_day":"2026-08-29"}`, testTTL).Return(nil)

	s.Advance(context.Background(), 1, 4, "2026-08-29")
}

func TestInvalidate(t *testing.T) {
	s, m := newTestStore(t)

	m.redis.EXPECT().Del(gomock.Any(), "streak:1").Return(nil)

	s.Invalidate(context.Background(), 1)
}
