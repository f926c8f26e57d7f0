package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/services"
	"github.com/neestoralvz/app-anime-conexion/internal/ws"
)

type SessionHandler struct {
	sessionService *services.SessionService
	tokenService   *services.TokenService
	hub            *ws.Hub
}

func NewSessionHandler(sessionService *services.SessionService, tokenService *services.TokenService, hub *ws.Hub) *SessionHandler {
	return &SessionHandler{sessionService: sessionService, tokenService: tokenService, hub: hub}
}

type CreateSessionRequest struct {
	Nickname string `json:"nickname" binding:"required" example:"OtakuMaster"`
}

type JoinSessionRequest struct {
	Code     string `json:"code" binding:"required" example:"A3F9K2"`
	Nickname string `json:"nickname" binding:"required" example:"AnimeLover"`
}

type SessionResponse struct {
	Session     services.SessionState `json:"session"`
	Participant models.Participant    `json:"participant"`
	Token       string                `json:"token"`
}

// CreateSession godoc
// @Summary      Create a session
// @Description  Create a new matching session and get its join code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body CreateSessionRequest true "Creator nickname"
// @Success      201 {object} SessionResponse
// @Failure      400 {object} ErrorResponse
// @Router       /api/v1/sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, participant, err := h.sessionService.Create(req.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokenService.Generate(state.Session.ID, participant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SessionResponse{
		Session:     *state,
		Participant: *participant,
		Token:       token,
	})
}

// JoinSession godoc
// @Summary      Join a session
// @Description  Join a waiting session by its 6-character code
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body JoinSessionRequest true "Join data"
// @Success      200 {object} SessionResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/sessions/join [post]
func (h *SessionHandler) JoinSession(c *gin.Context) {
	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	state, participant, err := h.sessionService.Join(req.Code, req.Nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokenService.Generate(state.Session.ID, participant.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(state.Session.ID, ws.WSMessage{
		Type: "session_updated",
		Data: state,
	})

	c.JSON(http.StatusOK, SessionResponse{
		Session:     *state,
		Participant: *participant,
		Token:       token,
	})
}

// GetSession godoc
// @Summary      Get session state
// @Description  Get the current session snapshot including phase and per-participant progress
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Session ID"
// @Success      200 {object} services.SessionState
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	state, err := h.sessionService.GetState(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
