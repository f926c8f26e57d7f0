package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/neestoralvz/app-anime-conexion/internal/catalog"
)

type CatalogHandler struct {
	provider catalog.Provider
}

func NewCatalogHandler(provider catalog.Provider) *CatalogHandler {
	return &CatalogHandler{provider: provider}
}

type SearchResponse struct {
	Animes []Anime `json:"animes"`
	Total  int     `json:"total"`
	Query  string  `json:"query"`
}

// Search godoc
// @Summary      Search animes
// @Description  Search the catalog by title or genre
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Search query"
// @Param        limit query int false "Max results" default(10)
// @Success      200 {object} SearchResponse
// @Router       /api/v1/animes/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	query := c.Query("q")
	limit, _ := strconv.Atoi(c.Query("limit"))

	animes := h.provider.Search(query, limit)
	c.JSON(http.StatusOK, SearchResponse{
		Animes: animes,
		Total:  len(animes),
		Query:  query,
	})
}

// Popular godoc
// @Summary      Popular animes
// @Description  Get the most popular catalog entries
// @Tags         catalog
// @Produce      json
// @Param        limit query int false "Max results" default(10)
// @Success      200 {array} Anime
// @Router       /api/v1/animes/popular [get]
func (h *CatalogHandler) Popular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	c.JSON(http.StatusOK, h.provider.Popular(limit))
}
