package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/matdaan/matdaan_backend/controllers"
	"github.com/matdaan/matdaan_backend/middleware"
)

// RegisterElectionRoutes sets up the election data, voting, and live-results routes
func RegisterElectionRoutes(e *echo.Echo, db *mongo.Client, electionController *controllers.ElectionController) {
	// Public demo data
	e.GET("/api/states", electionController.GetStates)
	e.GET("/api/states/:state/districts", electionController.GetDistricts)
	e.GET("/api/elections/upcoming", electionController.GetUpcomingElections)
	e.GET("/api/elections/live", electionController.GetLiveResults)
	e.GET("/api/elections/results", electionController.GetLiveResults)
	e.GET("/api/elections/candidates", electionController.GetCandidates)

	// Live results feed
	e.GET("/ws/results", electionController.ResultsWebSocket)

	// Voting requires a verified account
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireVerifiedPhone(db))
	r.POST("/vote", electionController.CastVote)
	r.GET("/vote/status", electionController.GetVoteStatus)
}
