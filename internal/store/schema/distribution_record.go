package schema

import (
	"time"

	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
)

// DistributionRecord represents the distribution_records table - the on-chain
// distribution ledger. The unique index on VoteID makes requesting a
// distribution idempotent per vote.
type DistributionRecord struct {
	// ID is an auto-incrementing sequence number
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// VoteID is the vote this distribution pays out; doubles as the idempotency key
	VoteID string `gorm:"column:vote_id;not null;type:varchar(36);uniqueIndex:idx_distribution_records_vote"`
	// VoterID references the recipient user
	VoterID int64 `gorm:"column:voter_id;not null;index:idx_distribution_records_voter"`
	// Destination is the recipient wallet address captured at vote time
	Destination string `gorm:"column:destination;not null;type:text"`
	// Amount is the token amount to transfer, in smallest units
	Amount int64 `gorm:"column:amount;not null"`
	// State is the lifecycle state: pending, submitted, confirmed, failed
	State domain.DistributionState `gorm:"column:state;not null;default:pending;index:idx_distribution_records_state"`
	// TxHash is the hash of the broadcast transaction, once submitted
	TxHash string `gorm:"column:tx_hash;type:text"`
	// Attempts counts transfer broadcasts made for this record
	Attempts int `gorm:"column:attempts;not null;default:0"`
	// LastAttemptAt is the timestamp of the most recent submission attempt
	LastAttemptAt *time.Time `gorm:"column:last_attempt_at;type:timestamptz"`
	// ConfirmedBlock is the block number the transfer was confirmed in
	ConfirmedBlock *uint64 `gorm:"column:confirmed_block"`
	// FailureReason contains error details if the distribution failed
	FailureReason string `gorm:"column:failure_reason;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DistributionRecord model
func (DistributionRecord) TableName() string {
	return "distribution_records"
}
