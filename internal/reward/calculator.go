// Package reward computes vote rewards. Everything here is pure: amounts are
// integer token units in the smallest denomination, and streak multipliers
// are fixed-point basis points so no float arithmetic is involved.
package reward

import (
	"errors"
	"fmt"
)

// BpsOne is the basis-point representation of a 1x multiplier.
const BpsOne int64 = 10000

// StreakTier maps a minimum streak length to a multiplier in basis points.
type StreakTier struct {
	MinDays       int
	MultiplierBps int64
}

// Schedule is the reward configuration: per-ordinal base amounts, streak
// multiplier tiers and the territory-shift bonus.
type Schedule struct {
	// BaseTiers are token amounts for the voter's 1st, 2nd, ... same-vendor
	// vote of the day. Ordinals past the last tier pay the last tier.
	BaseTiers []int64
	// StreakTiers must be sorted by MinDays ascending with non-decreasing
	// multipliers. The highest matching tier applies; the last tier is the cap.
	StreakTiers []StreakTier
	// TerritoryBonus is the flat amount added when a vote shifts zone control.
	TerritoryBonus int64
}

// Reward is the full breakdown of a computed vote reward.
type Reward struct {
	Base           int64
	MultiplierBps  int64
	TerritoryBonus int64
	Total          int64
}

// DefaultSchedule returns the standard production schedule.
func DefaultSchedule() Schedule {
	return Schedule{
		BaseTiers: []int64{10, 15, 20},
		StreakTiers: []StreakTier{
			{MinDays: 3, MultiplierBps: 12000},
			{MinDays: 7, MultiplierBps: 15000},
			{MinDays: 14, MultiplierBps: 20000},
		},
		TerritoryBonus: 50,
	}
}

// Validate checks the schedule is internally consistent.
func (s Schedule) Validate() error {
	if len(s.BaseTiers) == 0 {
		return errors.New("base tiers must not be empty")
	}
	for i, amount := range s.BaseTiers {
		if amount <= 0 {
			return fmt.Errorf("base tier %d must be positive, got %d", i+1, amount)
		}
	}

	prevMin := 0
	prevBps := BpsOne
	for i, tier := range s.StreakTiers {
		if tier.MinDays <= prevMin {
			return fmt.Errorf("streak tier %d: min days must increase, got %d", i, tier.MinDays)
		}
		if tier.MultiplierBps < prevBps {
			return fmt.Errorf("streak tier %d: multiplier must not decrease, got %d", i, tier.MultiplierBps)
		}
		prevMin = tier.MinDays
		prevBps = tier.MultiplierBps
	}

	if s.TerritoryBonus < 0 {
		return fmt.Errorf("territory bonus must not be negative, got %d", s.TerritoryBonus)
	}

	return nil
}

// Compute calculates the reward for a vote. ordinal is the 1-based position
// of this vote among the voter's same-vendor votes that day, streakLength is
// the voter's streak including this vote, and territoryShift reports whether
// this vote flipped control of the vendor's zone.
func (s Schedule) Compute(ordinal int, streakLength int, territoryShift bool) Reward {
	base := s.baseFor(ordinal)
	multiplier := s.multiplierFor(streakLength)

	r := Reward{
		Base:          base,
		MultiplierBps: multiplier,
	}
	if territoryShift {
		r.TerritoryBonus = s.TerritoryBonus
	}
	r.Total = base*multiplier/BpsOne + r.TerritoryBonus

	return r
}

func (s Schedule) baseFor(ordinal int) int64 {
	if len(s.BaseTiers) == 0 {
		return 0
	}
	if ordinal < 1 {
		ordinal = 1
	}
	if ordinal > len(s.BaseTiers) {
		ordinal = len(s.BaseTiers)
	}
	return s.BaseTiers[ordinal-1]
}

func (s Schedule) multiplierFor(streakLength int) int64 {
	multiplier := BpsOne
	for _, tier := range s.StreakTiers {
		if streakLength >= tier.MinDays {
			multiplier = tier.MultiplierBps
		}
	}
	return multiplier
}
