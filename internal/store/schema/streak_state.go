package schema

import (
	"time"
)

// StreakState represents the streak_states table - the authoritative per-voter
// streak row. The Redis entry is a rebuildable projection of this row.
type StreakState struct {
	// VoterID is the owning user, one row per voter
	VoterID int64 `gorm:"column:voter_id;primaryKey"`
	// CurrentStreak is the count of consecutive voting days ending at LastVoteDay
	CurrentStreak int `gorm:"column:current_streak;not null;default:0"`
	// LongestStreak is the historical maximum of CurrentStreak
	LongestStreak int `gorm:"column:longest_streak;not null;default:0"`
	// LastVoteDay is the most recent calendar day the voter voted on (YYYY-MM-DD)
	LastVoteDay string `gorm:"column:last_vote_day;not null;default:'';type:varchar(10)"`
	// UpdatedAt is the timestamp when this row was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Voter User `gorm:"foreignKey:VoterID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the StreakState model
func (StreakState) TableName() string {
	return "streak_states"
}
