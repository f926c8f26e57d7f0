package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/services"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
)

// Type aliases so swag can resolve models in annotations.
type GameResult = models.GameResult
type Anime = models.Anime

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// respondError maps the error taxonomy onto HTTP statuses in one place:
// absent/expired → 404, capacity and write races → 409, caller bugs → 400.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, store.ErrFull),
		errors.Is(err, store.ErrDuplicateNickname),
		errors.Is(err, store.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}
