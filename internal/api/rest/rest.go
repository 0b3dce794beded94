// Package rest wires the HTTP surface: public vote submission and read
// endpoints, plus operator endpoints behind JWT or API-key auth.
package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/Disidente87/vendor-wars-sub003/internal/api/middleware"
)

// SetupRoutes configures all API routes on the router
func SetupRoutes(router *gin.Engine, handler *Handler, authCfg middleware.AuthConfig) {
	router.GET("/health", handler.Healthz)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/votes", handler.SubmitVote)
		v1.GET("/voters/:voter_id/streak", handler.GetVoterStreak)
		v1.GET("/vendors/:vendor_id/votes", handler.GetVendorVotes)

		// Distribution state exposes wallet addresses and tx hashes, so it
		// sits behind operator auth.
		operator := v1.Group("")
		operator.Use(middleware.Auth(authCfg))
		{
			operator.GET("/votes/:vote_id/distribution", handler.GetDistribution)
		}
	}
}
