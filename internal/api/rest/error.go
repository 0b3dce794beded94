package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// errorResponse is the standard error envelope for API responses
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	ResetAt string `json:"reset_at,omitempty"`
}

// Error codes
const (
	codeBadRequest        = "bad_request"
	codeUnknownVoter      = "unknown_voter"
	codeUnknownVendor     = "unknown_vendor"
	codeVendorInactive    = "vendor_inactive"
	codeRateLimitExceeded = "rate_limit_exceeded"
	codeNotFound          = "not_found"
	codeInternalError     = "internal_error"
)

func respondWithError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func respondBadRequest(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, codeBadRequest, "Invalid request", details)
}

func respondNotFound(c *gin.Context, message string) {
	respondWithError(c, http.StatusNotFound, codeNotFound, message, "")
}

func respondInternalError(c *gin.Context) {
	respondWithError(c, http.StatusInternalServerError, codeInternalError, "Internal server error", "")
}

func respondRateLimited(c *gin.Context, details string, resetAt time.Time) {
	c.JSON(http.StatusTooManyRequests, errorResponse{
		Error: errorDetail{
			Code:    codeRateLimitExceeded,
			Message: "Daily vote limit reached",
			Details: details,
			ResetAt: resetAt.UTC().Format(time.RFC3339),
		},
	})
}
