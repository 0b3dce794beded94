package voting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/mocks"
	"github.com/Disidente87/vendor-wars-sub003/internal/reward"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
	"github.com/Disidente87/vendor-wars-sub003/internal/store/schema"
	"github.com/Disidente87/vendor-wars-sub003/internal/streak"
)

type serviceMocks struct {
	store     *mocks.MockStore
	scorer    *mocks.MockZoneScorer
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	redis     *mocks.MockRedisClient
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)
	m := serviceMocks{
		store:     mocks.NewMockStore(ctrl),
		scorer:    mocks.NewMockZoneScorer(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		redis:     mocks.NewMockRedisClient(ctrl),
	}
	streaks := streak.NewStore(m.redis, m.store, m.clock, time.UTC, time.Hour)
	svc := NewService(m.store, streaks, m.scorer, m.publisher, m.clock, Config{
		Schedule:       reward.DefaultSchedule(),
		DailyVoteLimit: 3,
		Location:       time.UTC,
	})
	return svc, m
}

func submitTime() time.Time {
	return time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
}

func activeUser() *schema.User {
	return &schema.User{
		ID:            1,
		Username:      "ana",
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Active:        true,
	}
}

func activeVendor() *schema.Vendor {
	return &schema.Vendor{ID: 2, Name: "Tacos El Rey", ZoneID: 5, Active: true}
}

func TestSubmitFirstVote(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(activeVendor(), nil)
	m.scorer.EXPECT().ShiftsControl(ctx, int64(5), int64(2)).Return(true, nil)

	m.store.EXPECT().CreateVote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params store.CreateVoteParams) (*store.CreateVoteResult, error) {
			assert.NotEmpty(t, params.VoteID)
			assert.Equal(t, int64(1), params.VoterID)
			assert.Equal(t, int64(2), params.VendorID)
			assert.Equal(t, int64(5), params.ZoneID)
			assert.Equal(t, domain.VoteDay("2026-08-29"), params.VoteDate)
			assert.Equal(t, 3, params.DailyVoteLimit)
			assert.Equal(t, int64(50), params.TerritoryBonus)
			assert.Equal(t,
				time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), params.CapResetAt)

			base, bps, total := params.Reward(1, 1)
			assert.Equal(t, int64(10), base)
			assert.Equal(t, int64(10000), bps)
			assert.Equal(t, int64(60), total)

			return &store.CreateVoteResult{
				Vote: &schema.Vote{
					ID:             params.VoteID,
					TotalAmount:    total,
					MultiplierBps:  bps,
					TerritoryBonus: 50,
				},
				Streak:     &schema.StreakState{VoterID: 1, CurrentStreak: 1, LastVoteDay: "2026-08-29"},
				NewBalance: 60,
			}, nil
		})

	m.redis.EXPECT().Set(ctx, "streak:1", gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishVoteAccepted(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event *domain.RewardEvent) error {
			assert.NotEmpty(t, event.EventID)
			assert.Equal(t, int64(60), event.Amount)
			assert.Equal(t, "0x1111111111111111111111111111111111111111", event.Destination)
			return nil
		})

	receipt, err := svc.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(60), receipt.TokensEarned)
	assert.Equal(t, int64(60), receipt.NewBalance)
	assert.Equal(t, 1, receipt.Streak)
	assert.False(t, receipt.StreakBonusApplied)
	assert.True(t, receipt.TerritoryBonusApplied)
}

func TestSubmitStreakBonus(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(activeVendor(), nil)
	m.scorer.EXPECT().ShiftsControl(ctx, int64(5), int64(2)).Return(false, nil)

	m.store.EXPECT().CreateVote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params store.CreateVoteParams) (*store.CreateVoteResult, error) {
			assert.Equal(t, int64(0), params.TerritoryBonus)

			// Third vote of the day on a 7-day streak: 20 * 1.5 = 30.
			base, bps, total := params.Reward(3, 7)
			assert.Equal(t, int64(20), base)
			assert.Equal(t, int64(15000), bps)
			assert.Equal(t, int64(30), total)

			return &store.CreateVoteResult{
				Vote:       &schema.Vote{ID: params.VoteID, TotalAmount: total, MultiplierBps: bps},
				Streak:     &schema.StreakState{VoterID: 1, CurrentStreak: 7, LastVoteDay: "2026-08-29"},
				NewBalance: 500,
			}, nil
		})

	m.redis.EXPECT().Set(ctx, "streak:1", gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishVoteAccepted(ctx, gomock.Any()).Return(nil)

	receipt, err := svc.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, receipt.Streak)
	assert.True(t, receipt.StreakBonusApplied)
	assert.False(t, receipt.TerritoryBonusApplied)
}

func TestSubmitUnknownVoter(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(99)).Return(nil, domain.ErrUnknownVoter)

	_, err := svc.Submit(ctx, 99, 2)
	assert.ErrorIs(t, err, domain.ErrUnknownVoter)
}

func TestSubmitInactiveVoter(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	user := activeUser()
	user.Active = false

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(user, nil)

	_, err := svc.Submit(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrUnknownVoter)
}

func TestSubmitInactiveVendor(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	vendor := activeVendor()
	vendor.Active = false

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(vendor, nil)

	_, err := svc.Submit(ctx, 1, 2)
	assert.ErrorIs(t, err, domain.ErrVendorInactive)
}

func TestSubmitRateLimited(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(activeVendor(), nil)
	m.scorer.EXPECT().ShiftsControl(ctx, int64(5), int64(2)).Return(false, nil)
	m.store.EXPECT().CreateVote(ctx, gomock.Any()).Return(nil, &domain.RateLimitError{
		VoterID:  1,
		VendorID: 2,
		Count:    3,
		Limit:    3,
		ResetAt:  time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
	})

	_, err := svc.Submit(ctx, 1, 2)

	var rateLimited *domain.RateLimitError
	require.ErrorAs(t, err, &rateLimited)
	assert.Equal(t, 3, rateLimited.Count)
}

func TestSubmitPublishFailureStillAccepts(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(activeVendor(), nil)
	m.scorer.EXPECT().ShiftsControl(ctx, int64(5), int64(2)).Return(false, nil)
	m.store.EXPECT().CreateVote(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, params store.CreateVoteParams) (*store.CreateVoteResult, error) {
			return &store.CreateVoteResult{
				Vote:       &schema.Vote{ID: params.VoteID, TotalAmount: 10, MultiplierBps: 10000},
				Streak:     &schema.StreakState{VoterID: 1, CurrentStreak: 1, LastVoteDay: "2026-08-29"},
				NewBalance: 10,
			}, nil
		})
	m.redis.EXPECT().Set(ctx, "streak:1", gomock.Any(), gomock.Any()).Return(nil)
	m.publisher.EXPECT().PublishVoteAccepted(ctx, gomock.Any()).
		Return(errors.New("nats unavailable"))

	receipt, err := svc.Submit(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(10), receipt.TokensEarned)
}

func TestSubmitScorerError(t *testing.T) {
	svc, m := newTestService(t)
	ctx := context.Background()

	m.clock.EXPECT().Now().Return(submitTime())
	m.store.EXPECT().GetUser(ctx, int64(1)).Return(activeUser(), nil)
	m.store.EXPECT().GetVendor(ctx, int64(2)).Return(activeVendor(), nil)
	m.scorer.EXPECT().ShiftsControl(ctx, int64(5), int64(2)).
		Return(false, errors.New("db down"))

	_, err := svc.Submit(ctx, 1, 2)
	assert.Error(t, err)
}
