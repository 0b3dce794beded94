package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// GetUser retrieves a user by ID
func (s *pgStore) GetUser(ctx context.Context, id int64) (*schema.User, error) {
	var user schema.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownVoter
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetVendor retrieves a vendor by ID
func (s *pgStore) GetVendor(ctx context.Context, id int64) (*schema.Vendor, error) {
	var vendor schema.Vendor
	if err := s.db.WithContext(ctx).First(&vendor, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownVendor
		}
		return nil, fmt.Errorf("failed to get vendor: %w", err)
	}
	return &vendor, nil
}

// CreateVote accepts a vote in a single transaction. The voter's user row is
// locked FOR UPDATE first, which serializes concurrent submissions from the
// same voter and makes the in-transaction daily-cap count race-free.
func (s *pgStore) CreateVote(ctx context.Context, params CreateVoteParams) (*CreateVoteResult, error) {
	var result CreateVoteResult

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user schema.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&user, params.VoterID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnknownVoter
			}
			return fmt.Errorf("failed to lock user row: %w", err)
		}

		var count int64
		if err := tx.Model(&schema.Vote{}).
			Where("voter_id = ? AND vendor_id = ? AND vote_date = ?",
				params.VoterID, params.VendorID, string(params.VoteDate)).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count same-day votes: %w", err)
		}

		if int(count) >= params.DailyVoteLimit {
			return &domain.RateLimitError{
				VoterID:  params.VoterID,
				VendorID: params.VendorID,
				Count:    int(count),
				Limit:    params.DailyVoteLimit,
				ResetAt:  params.CapResetAt,
			}
		}

		streak, err := advanceStreak(tx, params.VoterID, params.VoteDate)
		if err != nil {
			return err
		}

		ordinal := int(count) + 1
		base, multiplierBps, total := params.Reward(ordinal, streak.CurrentStreak)

		vote := schema.Vote{
			ID:             params.VoteID,
			VoterID:        params.VoterID,
			VendorID:       params.VendorID,
			ZoneID:         params.ZoneID,
			VoteDate:       string(params.VoteDate),
			Ordinal:        ordinal,
			BaseAmount:     base,
			MultiplierBps:  multiplierBps,
			TerritoryBonus: params.TerritoryBonus,
			TotalAmount:    total,
			CreatedAt:      params.SubmittedAt,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}

		submittedAt := params.SubmittedAt
		user.TokenBalance += total
		user.LastVoteAt = &submittedAt
		if err := tx.Model(&schema.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"token_balance": user.TokenBalance,
				"last_vote_at":  user.LastVoteAt,
				"updated_at":    submittedAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		record := schema.DistributionRecord{
			VoteID:      params.VoteID,
			VoterID:     params.VoterID,
			Destination: user.WalletAddress,
			Amount:      total,
			State:       domain.DistributionStatePending,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "vote_id"}},
			DoNothing: true,
		}).Create(&record).Error; err != nil {
			return fmt.Errorf("failed to open distribution record: %w", err)
		}

		result = CreateVoteResult{
			Vote:       &vote,
			Streak:     streak,
			NewBalance: user.TokenBalance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// advanceStreak applies the streak transition for a vote on day: a repeat day
// leaves the streak untouched, the day after the last vote extends it, and
// anything else starts over at 1.
func advanceStreak(tx *gorm.DB, voterID int64, day domain.VoteDay) (*schema.StreakState, error) {
	var streak schema.StreakState
	newRow := false
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&streak, "voter_id = ?", voterID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock streak row: %w", err)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		streak = schema.StreakState{VoterID: voterID}
		newRow = true
	}

	switch {
	case streak.LastVoteDay == string(day):
		// Same-day repeat vote, streak unchanged.
	case streak.LastVoteDay != "" && isNextDay(streak.LastVoteDay, string(day)):
		streak.CurrentStreak++
	default:
		streak.CurrentStreak = 1
	}
	if streak.CurrentStreak > streak.LongestStreak {
		streak.LongestStreak = streak.CurrentStreak
	}
	streak.LastVoteDay = string(day)
	streak.UpdatedAt = time.Now()

	if newRow {
		err = tx.Create(&streak).Error
	} else {
		err = tx.Save(&streak).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save streak: %w", err)
	}

	return &streak, nil
}

// isNextDay reports whether b is exactly the calendar day after a.
// Both are YYYY-MM-DD strings; the zone does not matter for day arithmetic.
func isNextDay(a, b string) bool {
	diff, err := domain.DaysBetween(domain.VoteDay(a), domain.VoteDay(b))
	if err != nil {
		return false
	}
	return diff == 1
}

// GetVote retrieves a vote by UUID
func (s *pgStore) GetVote(ctx context.Context, id string) (*schema.Vote, error) {
	var vote schema.Vote
	if err := s.db.WithContext(ctx).First(&vote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return &vote, nil
}

// CountVotesForVendorOnDay counts a voter's votes for one vendor on one day
func (s *pgStore) CountVotesForVendorOnDay(ctx context.Context, voterID, vendorID int64, day domain.VoteDay) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&schema.Vote{}).
		Where("voter_id = ? AND vendor_id = ? AND vote_date = ?", voterID, vendorID, string(day)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return int(count), nil
}

// GetVendorVoteTotals aggregates vote counts and token totals for a vendor
func (s *pgStore) GetVendorVoteTotals(ctx context.Context, vendorID int64, today domain.VoteDay) (*VendorVoteTotals, error) {
	totals := VendorVoteTotals{VendorID: vendorID}

	row := s.db.WithContext(ctx).Model(&schema.Vote{}).
		Select("COUNT(*), COALESCE(SUM(total_amount), 0)").
		Where("vendor_id = ?", vendorID).
		Row()
	if err := row.Scan(&totals.TotalVotes, &totals.TotalTokens); err != nil {
		return nil, fmt.Errorf("failed to aggregate vendor votes: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&schema.Vote{}).
		Where("vendor_id = ? AND vote_date = ?", vendorID, string(today)).
		Count(&totals.VotesToday).Error; err != nil {
		return nil, fmt.Errorf("failed to count today's votes: %w", err)
	}

	return &totals, nil
}

// GetZoneStandings returns per-vendor vote counts in a zone, highest first
func (s *pgStore) GetZoneStandings(ctx context.Context, zoneID int64) ([]ZoneStanding, error) {
	var standings []ZoneStanding
	if err := s.db.WithContext(ctx).Model(&schema.Vote{}).
		Select("vendor_id, COUNT(*) AS vote_count").
		Where("zone_id = ?", zoneID).
		Group("vendor_id").
		Order("vote_count DESC, vendor_id ASC").
		Scan(&standings).Error; err != nil {
		return nil, fmt.Errorf("failed to get zone standings: %w", err)
	}
	return standings, nil
}

// GetStreakState retrieves the authoritative streak row for a voter
func (s *pgStore) GetStreakState(ctx context.Context, voterID int64) (*schema.StreakState, error) {
	var streak schema.StreakState
	if err := s.db.WithContext(ctx).First(&streak, "voter_id = ?", voterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStreakNotFound
		}
		return nil, fmt.Errorf("failed to get streak state: %w", err)
	}
	return &streak, nil
}

// GetVoteDays returns the voter's distinct voting days, most recent first
func (s *pgStore) GetVoteDays(ctx context.Context, voterID int64, limit int) ([]domain.VoteDay, error) {
	var days []string
	if err := s.db.WithContext(ctx).Model(&schema.Vote{}).
		Distinct("vote_date").
		Where("voter_id = ?", voterID).
		Order("vote_date DESC").
		Limit(limit).
		Pluck("vote_date", &days).Error; err != nil {
		return nil, fmt.Errorf("failed to get vote days: %w", err)
	}

	voteDays := make([]domain.VoteDay, 0, len(days))
	for _, d := range days {
		voteDays = append(voteDays, domain.VoteDay(d))
	}
	return voteDays, nil
}

// ResetStreak zeroes the displayed streak when the voter's gap exceeds one day
func (s *pgStore) ResetStreak(ctx context.Context, voterID int64) error {
	if err := s.db.WithContext(ctx).Model(&schema.StreakState{}).
		Where("voter_id = ?", voterID).
		Updates(map[string]interface{}{
			"current_streak": 0,
			"updated_at":     time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to reset streak: %w", err)
	}
	return nil
}

// GetDistributionByVoteID retrieves the distribution record for a vote
func (s *pgStore) GetDistributionByVoteID(ctx context.Context, voteID string) (*schema.DistributionRecord, error) {
	var record schema.DistributionRecord
	if err := s.db.WithContext(ctx).First(&record, "vote_id = ?", voteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDistributionNotFound
		}
		return nil, fmt.Errorf("failed to get distribution: %w", err)
	}
	return &record, nil
}

// ListPendingDistributions returns pending records oldest first
func (s *pgStore) ListPendingDistributions(ctx context.Context, limit int) ([]schema.DistributionRecord, error) {
	var records []schema.DistributionRecord
	if err := s.db.WithContext(ctx).
		Where("state = ?", domain.DistributionStatePending).
		Order("created_at ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending distributions: %w", err)
	}
	return records, nil
}

// ListStuckSubmissions returns submitted records whose last attempt is older than cutoff
func (s *pgStore) ListStuckSubmissions(ctx context.Context, cutoff time.Time, limit int) ([]schema.DistributionRecord, error) {
	var records []schema.DistributionRecord
	if err := s.db.WithContext(ctx).
		Where("state = ? AND last_attempt_at < ?", domain.DistributionStateSubmitted, cutoff).
		Order("last_attempt_at ASC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list stuck submissions: %w", err)
	}
	return records, nil
}

// ClaimDistribution flips a pending record to submitted for the caller. The
// guarded UPDATE means a duplicate queue delivery observes zero affected rows
// and backs off instead of double-submitting.
func (s *pgStore) ClaimDistribution(ctx context.Context, voteID string, attemptAt time.Time) (*schema.DistributionRecord, error) {
	res := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ? AND state = ?", voteID, domain.DistributionStatePending).
		Updates(map[string]interface{}{
			"state":           domain.DistributionStateSubmitted,
			"last_attempt_at": attemptAt,
			"updated_at":      attemptAt,
		})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to claim distribution: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrDistributionNotClaimable
	}

	return s.GetDistributionByVoteID(ctx, voteID)
}

// IncrementDistributionAttempts persists one broadcast attempt and returns
// the updated count. The counter tracks broadcasts, not claims: a claim that
// retries in place increments once per transfer it sends.
func (s *pgStore) IncrementDistributionAttempts(ctx context.Context, voteID string, at time.Time) (int, error) {
	if err := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"attempts":        gorm.Expr("attempts + 1"),
			"last_attempt_at": at,
			"updated_at":      at,
		}).Error; err != nil {
		return 0, fmt.Errorf("failed to increment distribution attempts: %w", err)
	}

	record, err := s.GetDistributionByVoteID(ctx, voteID)
	if err != nil {
		return 0, err
	}
	return record.Attempts, nil
}

// MarkDistributionSubmitted records the broadcast transaction hash
func (s *pgStore) MarkDistributionSubmitted(ctx context.Context, voteID string, txHash string) error {
	if err := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"tx_hash":    txHash,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to mark distribution submitted: %w", err)
	}
	return nil
}

// MarkDistributionConfirmed finalizes a distribution at a block number
func (s *pgStore) MarkDistributionConfirmed(ctx context.Context, voteID string, txHash string, block uint64) error {
	if err := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"state":           domain.DistributionStateConfirmed,
			"tx_hash":         txHash,
			"confirmed_block": block,
			"updated_at":      time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to mark distribution confirmed: %w", err)
	}
	return nil
}

// MarkDistributionFailed terminally fails a distribution with a reason
func (s *pgStore) MarkDistributionFailed(ctx context.Context, voteID string, reason string) error {
	if err := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ?", voteID).
		Updates(map[string]interface{}{
			"state":          domain.DistributionStateFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to mark distribution failed: %w", err)
	}
	return nil
}

// ReleaseDistribution returns a claimed record to pending for a later retry
func (s *pgStore) ReleaseDistribution(ctx context.Context, voteID string) error {
	if err := s.db.WithContext(ctx).Model(&schema.DistributionRecord{}).
		Where("vote_id = ? AND state = ?", voteID, domain.DistributionStateSubmitted).
		Updates(map[string]interface{}{
			"state":      domain.DistributionStatePending,
			"updated_at": time.Now(),
		}).Error; err != nil {
		return fmt.Errorf("failed to release distribution: %w", err)
	}
	return nil
}
