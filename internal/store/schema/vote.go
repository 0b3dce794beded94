package schema

import (
	"time"
)

// Vote represents the votes table - the append-only vote ledger.
// VoteDate is the calendar day in the reference timezone, stored as
// YYYY-MM-DD text so day equality and ordering are plain string operations.
type Vote struct {
	// ID is the vote UUID, generated at accept time
	ID string `gorm:"column:id;primaryKey;type:varchar(36)"`
	// VoterID references the voting user
	VoterID int64 `gorm:"column:voter_id;not null;index:idx_votes_voter_vendor_day,priority:1;index:idx_votes_voter_day"`
	// VendorID references the vendor voted for
	VendorID int64 `gorm:"column:vendor_id;not null;index:idx_votes_voter_vendor_day,priority:2;index:idx_votes_vendor"`
	// ZoneID is the vendor's zone at vote time
	ZoneID int64 `gorm:"column:zone_id;not null;index:idx_votes_zone_day,priority:1"`
	// VoteDate is the calendar day of the vote in the reference timezone
	VoteDate string `gorm:"column:vote_date;not null;type:varchar(10);index:idx_votes_voter_vendor_day,priority:3;index:idx_votes_zone_day,priority:2"`
	// Ordinal is the 1-based position of this vote among the voter's same-vendor votes that day
	Ordinal int `gorm:"column:ordinal;not null"`
	// BaseAmount is the tier amount before multipliers, in smallest token units
	BaseAmount int64 `gorm:"column:base_amount;not null"`
	// MultiplierBps is the streak multiplier applied, in basis points (10000 = 1x)
	MultiplierBps int64 `gorm:"column:multiplier_bps;not null;default:10000"`
	// TerritoryBonus is the flat bonus added because this vote shifted zone control
	TerritoryBonus int64 `gorm:"column:territory_bonus;not null;default:0"`
	// TotalAmount is the final reward credited for this vote
	TotalAmount int64 `gorm:"column:total_amount;not null"`
	// CreatedAt is the submission timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Voter  User   `gorm:"foreignKey:VoterID;constraint:OnDelete:CASCADE"`
	Vendor Vendor `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Vote model
func (Vote) TableName() string {
	return "votes"
}
