// controllers/election_controller.go
package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/matdaan/matdaan_backend/middleware"
	"github.com/matdaan/matdaan_backend/models"
	"github.com/matdaan/matdaan_backend/utils"
	"github.com/matdaan/matdaan_backend/websocket"
)

// Cast votes are remembered for the login session only, never tallied.
const voteSessionTTL = 24 * time.Hour

// ElectionController serves the demo election data and the session vote flag
type ElectionController struct {
	logger       *log.Logger
	voteSessions *utils.VoteSessions
	hub          *websocket.Hub
}

// NewElectionController creates a new election controller
func NewElectionController(voteSessions *utils.VoteSessions, hub *websocket.Hub) *ElectionController {
	return &ElectionController{
		logger:       log.New(os.Stdout, "[ELECTION] ", log.LstdFlags),
		voteSessions: voteSessions,
		hub:          hub,
	}
}

// ResultsSnapshot builds the current live-results frame for the WebSocket
// feed and the REST endpoint.
func (ec *ElectionController) ResultsSnapshot() websocket.ResultsSnapshot {
	return websocket.ResultsSnapshot{
		ElectionID: UpcomingElectionID(),
		Results:    models.LiveResults,
		AsOf:       time.Now(),
	}
}

// UpcomingElectionID returns the id of the election currently counting.
func UpcomingElectionID() string {
	for _, e := range models.UpcomingElections {
		if e.Live {
			return e.ID
		}
	}
	return ""
}

// GetStates lists the registration location options.
func (ec *ElectionController) GetStates(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "States retrieved successfully",
		Data:    models.States,
	})
}

// GetDistricts lists the districts of one state.
func (ec *ElectionController) GetDistricts(c echo.Context) error {
	state := c.Param("state")
	districts := models.DistrictsForState(state)
	if districts == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Unknown state",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Districts retrieved successfully",
		Data: map[string]interface{}{
			"state":     state,
			"districts": districts,
		},
	})
}

// GetUpcomingElections returns the fixed upcoming-elections list.
func (ec *ElectionController) GetUpcomingElections(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Elections retrieved successfully",
		Data:    models.UpcomingElections,
	})
}

// GetLiveResults returns the current results frame.
func (ec *ElectionController) GetLiveResults(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Live results retrieved successfully",
		Data:    ec.ResultsSnapshot(),
	})
}

// GetCandidates returns the fixed ballot.
func (ec *ElectionController) GetCandidates(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Candidates retrieved successfully",
		Data:    models.Candidates,
	})
}

// CastVote flips the session voted flag. A second vote in the same session
// is rejected; the choice never reaches any tally.
func (ec *ElectionController) CastVote(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	candidate, ok := models.CandidateByID(req.CandidateID)
	if !ok {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Unknown candidate",
		})
	}

	if _, voted, err := ec.voteSessions.Voted(userID); err != nil {
		ec.logger.Printf("Failed to read vote flag for %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check vote status",
		})
	} else if voted {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "You have already voted in this session",
		})
	}

	if err := ec.voteSessions.MarkVoted(userID, candidate.ID, voteSessionTTL); err != nil {
		ec.logger.Printf("Failed to mark vote for %s: %v", userID, err)
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record vote",
		})
	}

	ec.logger.Printf("Session vote recorded for user %s", userID)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vote Submitted. Thank you for voting!",
		Data: map[string]interface{}{
			"candidate": candidate,
		},
	})
}

// GetVoteStatus reports whether the session has voted and for whom.
func (ec *ElectionController) GetVoteStatus(c echo.Context) error {
	userID := middleware.GetUserIDFromToken(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid session",
		})
	}

	candidateID, voted, err := ec.voteSessions.Voted(userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check vote status",
		})
	}

	data := map[string]interface{}{"voted": voted}
	if voted {
		if candidate, ok := models.CandidateByID(candidateID); ok {
			data["candidate"] = candidate
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vote status retrieved successfully",
		Data:    data,
	})
}

// ResultsWebSocket upgrades to the live-results feed.
func (ec *ElectionController) ResultsWebSocket(c echo.Context) error {
	return websocket.HandleResultsSocket(c, ec.hub, ec.ResultsSnapshot)
}
