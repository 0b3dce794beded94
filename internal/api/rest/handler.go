package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/domain"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
	"github.com/Disidente87/vendor-wars-sub003/internal/store"
	"github.com/Disidente87/vendor-wars-sub003/internal/streak"
	"github.com/Disidente87/vendor-wars-sub003/internal/voting"
)

// Handler holds the dependencies for REST API handlers
type Handler struct {
	votes    *voting.Service
	streaks  *streak.Store
	store    store.Store
	clock    adapter.Clock
	location *time.Location
}

// NewHandler creates a REST handler
func NewHandler(votes *voting.Service, streaks *streak.Store, st store.Store, clock adapter.Clock, loc *time.Location) *Handler {
	return &Handler{
		votes:    votes,
		streaks:  streaks,
		store:    st,
		clock:    clock,
		location: loc,
	}
}

type submitVoteRequest struct {
	VoterID  int64 `json:"voter_id" binding:"required"`
	VendorID int64 `json:"vendor_id" binding:"required"`
}

type submitVoteResponse struct {
	VoteID                string `json:"vote_id"`
	TokensEarned          int64  `json:"tokens_earned"`
	NewBalance            int64  `json:"new_balance"`
	Streak                int    `json:"streak"`
	StreakBonusApplied    bool   `json:"streak_bonus_applied"`
	TerritoryBonusApplied bool   `json:"territory_bonus_applied"`
}

// SubmitVote handles POST /api/v1/votes
func (h *Handler) SubmitVote(c *gin.Context) {
	var req submitVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	receipt, err := h.votes.Submit(c.Request.Context(), req.VoterID, req.VendorID)
	if err != nil {
		var rateLimited *domain.RateLimitError
		switch {
		case errors.As(err, &rateLimited):
			respondRateLimited(c, err.Error(), rateLimited.ResetAt)
		case errors.Is(err, domain.ErrUnknownVoter):
			respondWithError(c, http.StatusNotFound, codeUnknownVoter, "Voter not found or inactive", "")
		case errors.Is(err, domain.ErrUnknownVendor):
			respondWithError(c, http.StatusNotFound, codeUnknownVendor, "Vendor not found", "")
		case errors.Is(err, domain.ErrVendorInactive):
			respondWithError(c, http.StatusConflict, codeVendorInactive, "Vendor is not accepting votes", "")
		default:
			logger.ErrorCtx(c.Request.Context(), err,
				zap.Int64("voter_id", req.VoterID),
				zap.Int64("vendor_id", req.VendorID))
			respondInternalError(c)
		}
		return
	}

	c.JSON(http.StatusCreated, submitVoteResponse{
		VoteID:                receipt.VoteID,
		TokensEarned:          receipt.TokensEarned,
		NewBalance:            receipt.NewBalance,
		Streak:                receipt.Streak,
		StreakBonusApplied:    receipt.StreakBonusApplied,
		TerritoryBonusApplied: receipt.TerritoryBonusApplied,
	})
}

// GetVoterStreak handles GET /api/v1/voters/:voter_id/streak
func (h *Handler) GetVoterStreak(c *gin.Context) {
	voterID, err := strconv.ParseInt(c.Param("voter_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "voter_id must be an integer")
		return
	}

	count, err := h.streaks.Current(c.Request.Context(), voterID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.Int64("voter_id", voterID))
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"voter_id": voterID,
		"streak":   count,
	})
}

type distributionResponse struct {
	VoteID         string  `json:"vote_id"`
	State          string  `json:"state"`
	Amount         int64   `json:"amount"`
	Destination    string  `json:"destination"`
	TxHash         string  `json:"tx_hash,omitempty"`
	Attempts       int     `json:"attempts"`
	ConfirmedBlock *uint64 `json:"confirmed_block,omitempty"`
	FailureReason  string  `json:"failure_reason,omitempty"`
}

// GetDistribution handles GET /api/v1/votes/:vote_id/distribution
func (h *Handler) GetDistribution(c *gin.Context) {
	voteID := c.Param("vote_id")
	if voteID == "" {
		respondBadRequest(c, "vote_id is required")
		return
	}

	record, err := h.store.GetDistributionByVoteID(c.Request.Context(), voteID)
	if err != nil {
		if errors.Is(err, domain.ErrDistributionNotFound) {
			respondNotFound(c, "Distribution not found")
			return
		}
		logger.ErrorCtx(c.Request.Context(), err, zap.String("vote_id", voteID))
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, distributionResponse{
		VoteID:         record.VoteID,
		State:          string(record.State),
		Amount:         record.Amount,
		Destination:    record.Destination,
		TxHash:         record.TxHash,
		Attempts:       record.Attempts,
		ConfirmedBlock: record.ConfirmedBlock,
		FailureReason:  record.FailureReason,
	})
}

// GetVendorVotes handles GET /api/v1/vendors/:vendor_id/votes
func (h *Handler) GetVendorVotes(c *gin.Context) {
	vendorID, err := strconv.ParseInt(c.Param("vendor_id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "vendor_id must be an integer")
		return
	}

	if _, err := h.store.GetVendor(c.Request.Context(), vendorID); err != nil {
		if errors.Is(err, domain.ErrUnknownVendor) {
			respondWithError(c, http.StatusNotFound, codeUnknownVendor, "Vendor not found", "")
			return
		}
		logger.ErrorCtx(c.Request.Context(), err, zap.Int64("vendor_id", vendorID))
		respondInternalError(c)
		return
	}

	today := domain.DayOf(h.clock.Now(), h.location)
	totals, err := h.store.GetVendorVoteTotals(c.Request.Context(), vendorID, today)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), err, zap.Int64("vendor_id", vendorID))
		respondInternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor_id":    totals.VendorID,
		"total_votes":  totals.TotalVotes,
		"total_tokens": totals.TotalTokens,
		"votes_today":  totals.VotesToday,
	})
}

// Healthz handles GET /health for liveness checks
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
