package voting

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disidente87/vendor-wars-sub003/internal/mocks"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
)

func TestShiftsControl(t *testing.T) {
	testCases := []struct {
		name      string
		standings []store.ZoneStanding
		vendorID  int64
		expected  bool
	}{
		{
			name:      "empty zone establishes control",
			standings: nil,
			vendorID:  1,
			expected:  true,
		},
		{
			name: "leader consolidating is not a shift",
			standings: []store.ZoneStanding{
				{VendorID: 1, VoteCount: 10},
				{VendorID: 2, VoteCount: 8},
			},
			vendorID: 1,
			expected: false,
		},
		{
			name: "challenger overtaking the leader",
			standings: []store.ZoneStanding{
				{VendorID: 1, VoteCount: 10},
				{VendorID: 2, VoteCount: 10},
			},
			vendorID: 2,
			expected: true,
		},
		{
			name: "challenger still behind",
			standings: []store.ZoneStanding{
				{VendorID: 1, VoteCount: 10},
				{VendorID: 2, VoteCount: 5},
			},
			vendorID: 2,
			expected: false,
		},
		{
			name: "first vote for a new vendor in a contested zone",
			standings: []store.ZoneStanding{
				{VendorID: 1, VoteCount: 0},
			},
			vendorID: 3,
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockStore := mocks.NewMockStore(ctrl)
			mockStore.EXPECT().GetZoneStandings(gomock.Any(), int64(5)).
				Return(tc.standings, nil)

			scorer := NewZoneScorer(mockStore)
			shifts, err := scorer.ShiftsControl(context.Background(), 5, tc.vendorID)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, shifts)
		})
	}
}

func TestShiftsControlStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().GetZoneStandings(gomock.Any(), int64(5)).
		Return(nil, errors.New("db down"))

	scorer := NewZoneScorer(mockStore)
	_, err := scorer.ShiftsControl(context.Background(), 5, 1)
	assert.Error(t, err)
}
