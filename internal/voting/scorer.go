package voting

import (
	"context"
	"fmt"

	"github.com/Disidente87/vendor-wars-sub003/internal/store"
)

// storeScorer scores territory control from committed zone standings.
type storeScorer struct {
	store store.Store
}

// NewZoneScorer creates a store-backed zone scorer.
func NewZoneScorer(st store.Store) ZoneScorer {
	return &storeScorer{store: st}
}

// ShiftsControl reports whether one more vote for vendorID would take the
// zone lead from another vendor. The current leader consolidating its lead
// is not a shift.
func (s *storeScorer) ShiftsControl(ctx context.Context, zoneID, vendorID int64) (bool, error) {
	standings, err := s.store.GetZoneStandings(ctx, zoneID)
	if err != nil {
		return false, fmt.Errorf("failed to get zone standings: %w", err)
	}
	if len(standings) == 0 {
		// First vote in the zone establishes control.
		return true, nil
	}

	leader := standings[0]
	if leader.VendorID == vendorID {
		return false, nil
	}

	var current int64
	for _, standing := range standings {
		if standing.VendorID == vendorID {
			current = standing.VoteCount
			break
		}
	}

	return current+1 > leader.VoteCount, nil
}
