// Package distributor runs the reward distribution worker: it turns pending
// distribution records into on-chain ERC20 transfers. All submissions go
// through one loop goroutine so the wallet nonce stays strictly monotonic;
// only confirmation polling fans out to a pool.
package distributor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/chain"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/messaging"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
	"github.com/Disidente87/vendor-wars-sub003/internal/store/schema"
)

// Config holds configuration for the distributor worker
type Config struct {
	SweepInterval        time.Duration // Time between pending/stuck reconciliation sweeps
	StuckAfter           time.Duration // Age after which a submitted record is re-checked
	MaxAttempts          int           // Transfer broadcasts before a record fails terminally
	BatchSize            int           // Records per sweep batch
	WorkerPoolSize       int           // Concurrent confirmation polls
	WorkerQueueSize      int
	ConfirmationWait     time.Duration // Delay between confirmation polls
	ConfirmationPolls    int           // Polls before giving up and leaving the record to the sweep
	RetryInitialInterval time.Duration // First in-claim retry delay
	RetryMaxInterval     time.Duration // Cap on in-claim retry delays
}

// errAttemptsExhausted aborts a retry loop whose record ran out of broadcast budget.
var errAttemptsExhausted = errors.New("broadcast attempt budget exhausted")

// Distributor is the reward distribution worker
type Distributor struct {
	config     Config
	store      store.Store
	wallet     chain.TokenTransferor
	subscriber messaging.Subscriber
	clock      adapter.Clock
	pool       pond.Pool

	submitCh  chan string
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// New creates a new distributor worker
func New(
	cfg Config,
	st store.Store,
	wallet chain.TokenTransferor,
	subscriber messaging.Subscriber,
	clock adapter.Clock,
) *Distributor {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.ConfirmationPolls <= 0 {
		cfg.ConfirmationPolls = 24
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = 2 * time.Second
	}
	if cfg.RetryMaxInterval <= 0 {
		cfg.RetryMaxInterval = 30 * time.Second
	}
	return &Distributor{
		config:     cfg,
		store:      st,
		wallet:     wallet,
		subscriber: subscriber,
		clock:      clock,
		submitCh:   make(chan string, cfg.BatchSize),
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Start begins the worker's main loop. Work arrives from the reward event
// queue and from the periodic database sweep; the sweep makes queue delivery
// loss harmless.
func (d *Distributor) Start(ctx context.Context) error {
	if !d.running.CompareAndSwap(false, true) {
		return fmt.Errorf("distributor already running")
	}
	defer func() {
		d.running.Store(false)
		close(d.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting reward distributor",
		zap.Duration("sweep_interval", d.config.SweepInterval),
		zap.Int("max_attempts", d.config.MaxAttempts),
		zap.Int("batch_size", d.config.BatchSize),
	)

	d.pool = pond.NewPool(
		d.config.WorkerPoolSize,
		pond.WithQueueSize(d.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)

	if d.subscriber != nil {
		go d.consumeEvents(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Distributor stopping due to context cancellation", zap.Error(ctx.Err()))
			d.cleanup()
			return nil
		case <-d.stopChan:
			logger.InfoCtx(ctx, "Distributor stop requested")
			d.cleanup()
			return nil
		case voteID := <-d.submitCh:
			d.process(ctx, voteID)
		case <-d.clock.After(d.config.SweepInterval):
			if err := d.runSweep(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// Stop gracefully stops the worker with timeout support
func (d *Distributor) Stop(ctx context.Context) error {
	if !d.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping reward distributor")
	close(d.stopChan)

	select {
	case <-d.stoppedCh:
		logger.InfoCtx(ctx, "Reward distributor stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Reward distributor stop interrupted by context timeout")
		return ctx.Err()
	}
}

// cleanup stops the confirmation pool and waits for in-flight polls
func (d *Distributor) cleanup() {
	if d.pool != nil {
		d.pool.StopAndWait()
	}
}

// consumeEvents funnels reward events into the submission channel. The event
// is acked on enqueue: if the worker dies before submitting, the pending
// sweep picks the record up from the database.
func (d *Distributor) consumeEvents(ctx context.Context) {
	err := d.subscriber.SubscribeVoteAccepted(ctx, func(ctx context.Context, event *domain.RewardEvent) error {
		select {
		case d.submitCh <- event.VoteID:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.ErrorCtx(ctx, fmt.Errorf("reward event subscription ended: %w", err))
	}
}

// process claims and submits a single distribution. Runs on the main loop
// goroutine only.
func (d *Distributor) process(ctx context.Context, voteID string) {
	record, err := d.store.ClaimDistribution(ctx, voteID, d.clock.Now())
	if err != nil {
		if errors.Is(err, domain.ErrDistributionNotClaimable) {
			// Duplicate delivery or already handled by a sweep.
			logger.DebugCtx(ctx, "Distribution not claimable, skipping",
				zap.String("vote_id", voteID))
			return
		}
		logger.ErrorCtx(ctx, err, zap.String("vote_id", voteID))
		return
	}

	if record.Attempts >= d.config.MaxAttempts {
		reason := fmt.Sprintf("gave up after %d attempts", record.Attempts)
		logger.WarnCtx(ctx, "Distribution failed terminally",
			zap.String("vote_id", voteID), zap.String("reason", reason))
		if err := d.store.MarkDistributionFailed(ctx, voteID, reason); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("vote_id", voteID))
		}
		return
	}

	txHash, attempts, err := d.submitWithRetry(ctx, record)
	if err != nil {
		if errors.Is(err, errAttemptsExhausted) {
			reason := fmt.Sprintf("gave up after %d attempts", attempts)
			logger.WarnCtx(ctx, "Distribution failed terminally",
				zap.String("vote_id", voteID), zap.String("reason", reason))
			if markErr := d.store.MarkDistributionFailed(ctx, voteID, reason); markErr != nil {
				logger.ErrorCtx(ctx, markErr, zap.String("vote_id", voteID))
			}
			return
		}
		if chain.IsPermanent(err) {
			logger.WarnCtx(ctx, "Distribution failed permanently",
				zap.String("vote_id", voteID), zap.Error(err))
			if markErr := d.store.MarkDistributionFailed(ctx, voteID, err.Error()); markErr != nil {
				logger.ErrorCtx(ctx, markErr, zap.String("vote_id", voteID))
			}
			return
		}

		// Transient: return the record to pending so a later sweep retries.
		logger.WarnCtx(ctx, "Distribution submission failed, releasing for retry",
			zap.String("vote_id", voteID),
			zap.Int("attempts", attempts),
			zap.Error(err))
		if relErr := d.store.ReleaseDistribution(ctx, voteID); relErr != nil {
			logger.ErrorCtx(ctx, relErr, zap.String("vote_id", voteID))
		}
		return
	}

	if err := d.store.MarkDistributionSubmitted(ctx, voteID, txHash); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("vote_id", voteID), zap.String("tx_hash", txHash))
	}

	d.pool.Submit(func() {
		d.awaitConfirmation(ctx, voteID, txHash)
	})
}

// submitWithRetry broadcasts the transfer with bounded exponential backoff.
// Every broadcast is counted on the record before it goes out, so MaxAttempts
// bounds actual transfers even across claim/release cycles and restarts.
// Permanent errors abort the retry loop immediately. Returns the attempt
// count alongside the tx hash.
func (d *Distributor) submitWithRetry(ctx context.Context, record *schema.DistributionRecord) (string, int, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = d.config.RetryInitialInterval
	b.MaxInterval = d.config.RetryMaxInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithContext(backoff.WithMaxRetries(b, 3), ctx)

	var txHash string
	attempts := record.Attempts
	operation := func() error {
		if attempts >= d.config.MaxAttempts {
			return backoff.Permanent(errAttemptsExhausted)
		}
		n, err := d.store.IncrementDistributionAttempts(ctx, record.VoteID, d.clock.Now())
		if err != nil {
			return err
		}
		attempts = n

		hash, err := d.wallet.TransferTokens(ctx, record.Destination, big.NewInt(record.Amount))
		if err != nil {
			if chain.IsPermanent(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		txHash = hash
		return nil
	}

	notify := func(err error, duration time.Duration) {
		logger.WarnCtx(ctx, "Transfer broadcast failed, retrying",
			zap.String("vote_id", record.VoteID),
			zap.Int("attempts", attempts),
			zap.Duration("next_retry_in", duration),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return "", attempts, err
	}
	return txHash, attempts, nil
}

// awaitConfirmation polls the transfer until it confirms, reverts, or the
// poll budget runs out. A timeout leaves the record submitted; the stuck
// sweep re-checks it later rather than failing a possibly-mined transfer.
func (d *Distributor) awaitConfirmation(ctx context.Context, voteID, txHash string) {
	for i := 0; i < d.config.ConfirmationPolls; i++ {
		select {
		case <-ctx.Done():
			return
		case <-d.clock.After(d.config.ConfirmationWait):
		}

		if done := d.checkStatus(ctx, voteID, txHash); done {
			return
		}
	}

	logger.WarnCtx(ctx, "Confirmation poll budget exhausted, leaving to sweep",
		zap.String("vote_id", voteID), zap.String("tx_hash", txHash))
}

// checkStatus resolves one status poll. Returns true when the record reached
// a terminal state.
func (d *Distributor) checkStatus(ctx context.Context, voteID, txHash string) bool {
	status, err := d.wallet.TransferStatus(ctx, txHash)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to check transfer status",
			zap.String("vote_id", voteID), zap.Error(err))
		return false
	}

	switch status.State {
	case chain.TxConfirmed:
		if err := d.store.MarkDistributionConfirmed(ctx, voteID, txHash, status.Block); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("vote_id", voteID))
			return false
		}
		logger.InfoCtx(ctx, "Distribution confirmed",
			zap.String("vote_id", voteID),
			zap.String("tx_hash", txHash),
			zap.Uint64("block", status.Block))
		return true
	case chain.TxReverted:
		if err := d.store.MarkDistributionFailed(ctx, voteID, chain.ErrTransactionReverted.Error()); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("vote_id", voteID))
			return false
		}
		logger.WarnCtx(ctx, "Distribution reverted on-chain",
			zap.String("vote_id", voteID), zap.String("tx_hash", txHash))
		return true
	default:
		return false
	}
}

// runSweep reconciles the distribution ledger: pending records are
// (re)submitted and aged submitted records are re-checked against the chain.
func (d *Distributor) runSweep(ctx context.Context) error {
	startTime := d.clock.Now()

	pending, err := d.store.ListPendingDistributions(ctx, d.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list pending distributions: %w", err)
	}
	for _, record := range pending {
		d.process(ctx, record.VoteID)
	}

	cutoff := d.clock.Now().Add(-d.config.StuckAfter)
	stuck, err := d.store.ListStuckSubmissions(ctx, cutoff, d.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list stuck submissions: %w", err)
	}
	for _, record := range stuck {
		d.reconcileStuck(ctx, record)
	}

	if len(pending) > 0 || len(stuck) > 0 {
		logger.InfoCtx(ctx, "Sweep cycle completed",
			zap.Duration("duration", d.clock.Since(startTime)),
			zap.Int("pending", len(pending)),
			zap.Int("stuck", len(stuck)))
	}

	return nil
}

// reconcileStuck resolves a submitted record whose confirmation poll never
// finished. A record with no recorded tx hash was claimed but never
// broadcast, so it goes back to pending.
func (d *Distributor) reconcileStuck(ctx context.Context, record schema.DistributionRecord) {
	if record.TxHash == "" {
		logger.WarnCtx(ctx, "Submitted record has no tx hash, releasing",
			zap.String("vote_id", record.VoteID))
		if err := d.store.ReleaseDistribution(ctx, record.VoteID); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("vote_id", record.VoteID))
		}
		return
	}

	d.checkStatus(ctx, record.VoteID, record.TxHash)
}
