package schema

import (
	"time"
)

// User represents the users table - registered voters with an off-chain token balance
type User struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is the display handle
	Username string `gorm:"column:username;not null;type:varchar(64)"`
	// WalletAddress is the on-chain destination for reward distributions
	WalletAddress string `gorm:"column:wallet_address;not null;type:text"`
	// TokenBalance is the off-chain ledger balance, credited at vote time
	TokenBalance int64 `gorm:"column:token_balance;not null;default:0"`
	// Active indicates whether the user may vote
	Active bool `gorm:"column:active;not null;default:true"`
	// LastVoteAt is the timestamp of the user's most recent accepted vote
	LastVoteAt *time.Time `gorm:"column:last_vote_at;type:timestamptz"`
	// CreatedAt is the timestamp when this user was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this user was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
