package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neestoralvz/app-anime-conexion/internal/services"
	"github.com/neestoralvz/app-anime-conexion/internal/ws"
)

// GameHandler covers the in-session writes: selections with their
// self-ratings, the blind cross-ratings, and the final results read.
type GameHandler struct {
	sessionService *services.SessionService
	hub            *ws.Hub
}

func NewGameHandler(sessionService *services.SessionService, hub *ws.Hub) *GameHandler {
	return &GameHandler{sessionService: sessionService, hub: hub}
}

type SubmitSelectionsRequest struct {
	Selections []services.SelectionInput `json:"selections" binding:"required"`
}

type SubmitRatingRequest struct {
	AnimeID string `json:"anime_id" binding:"required" example:"death-note"`
	Q1      int    `json:"q1" binding:"required" example:"4"`
	Q2      int    `json:"q2" binding:"required" example:"3"`
	Q3      int    `json:"q3" binding:"required" example:"4"`
}

// SubmitSelections godoc
// @Summary      Submit selections
// @Description  Submit the three picks with their self-ratings, write-once per participant
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body SubmitSelectionsRequest true "Three distinct picks with q1-q3 in [1,4]"
// @Success      200 {object} services.SessionState
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/selections [post]
func (h *GameHandler) SubmitSelections(c *gin.Context) {
	var req SubmitSelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.sessionService.SubmitSelections(c.GetString("session_id"), c.GetString("participant_id"), req.Selections)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(state.Session.ID, ws.WSMessage{
		Type: "session_updated",
		Data: state,
	})

	c.JSON(http.StatusOK, state)
}

// SubmitRating godoc
// @Summary      Submit a cross-rating
// @Description  Rate one of the partner's picks, write-once per anime
// @Tags         game
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Param        request body SubmitRatingRequest true "Rating with q1-q3 in [1,4]"
// @Success      200 {object} services.SessionState
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/ratings [post]
func (h *GameHandler) SubmitRating(c *gin.Context) {
	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, err := h.sessionService.SubmitRating(
		c.GetString("session_id"), c.GetString("participant_id"),
		req.AnimeID, req.Q1, req.Q2, req.Q3,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(state.Session.ID, ws.WSMessage{
		Type: "session_updated",
		Data: state,
	})

	c.JSON(http.StatusOK, state)
}

// GetResults godoc
// @Summary      Get the final result
// @Description  Get the ranked outcome once the session is completed
// @Tags         game
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} GameResult
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/{id}/results [get]
func (h *GameHandler) GetResults(c *gin.Context) {
	result, err := h.sessionService.Results(c.GetString("session_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
