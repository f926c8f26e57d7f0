package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neestoralvz/app-anime-conexion/internal/catalog"
	"github.com/neestoralvz/app-anime-conexion/internal/middleware"
	"github.com/neestoralvz/app-anime-conexion/internal/models"
	"github.com/neestoralvz/app-anime-conexion/internal/services"
	"github.com/neestoralvz/app-anime-conexion/internal/store"
	"github.com/neestoralvz/app-anime-conexion/internal/ws"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	sessions := services.NewSessionService(store.NewMemory(), services.NewMatchCoordinator(), services.NewScoringService(), 24*time.Hour)
	tokens := services.NewTokenService("test-secret", 24*time.Hour)
	hub := ws.NewHub()

	sessionHandler := NewSessionHandler(sessions, tokens, hub)
	gameHandler := NewGameHandler(sessions, hub)
	catalogHandler := NewCatalogHandler(catalog.NewSeeded())

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/animes/search", catalogHandler.Search)
		api.GET("/animes/popular", catalogHandler.Popular)

		api.POST("/sessions", sessionHandler.CreateSession)
		api.POST("/sessions/join", sessionHandler.JoinSession)

		authed := api.Group("/sessions/:id", middleware.SessionAuth(tokens))
		{
			authed.GET("", sessionHandler.GetSession)
			authed.POST("/selections", gameHandler.SubmitSelections)
			authed.POST("/ratings", gameHandler.SubmitRating)
			authed.GET("/results", gameHandler.GetResults)
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createSession(t *testing.T, r *gin.Engine, nickname string) SessionResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", CreateSessionRequest{Nickname: nickname})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[SessionResponse](t, w)
}

func joinSession(t *testing.T, r *gin.Engine, code, nickname string) SessionResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/join", "", JoinSessionRequest{Code: code, Nickname: nickname})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[SessionResponse](t, w)
}

func TestCreateSessionEndpoint(t *testing.T) {
	r := newTestRouter()

	resp := createSession(t, r, "OtakuMaster")
	assert.NotEmpty(t, resp.Token)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, resp.Session.Session.Code)
	assert.Equal(t, models.SessionStatusWaiting, resp.Session.Session.Status)
	assert.True(t, resp.Participant.IsCreator)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", "", CreateSessionRequest{Nickname: "!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinSessionEndpoint(t *testing.T) {
	r := newTestRouter()
	created := createSession(t, r, "OtakuMaster")
	code := created.Session.Session.Code

	joined := joinSession(t, r, code, "AnimeLover")
	assert.Equal(t, models.SessionStatusActive, joined.Session.Session.Status)
	assert.NotEmpty(t, joined.Token)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sessions/join", "", JoinSessionRequest{Code: "ZZZZZ0", Nickname: "AnimeLover"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/join", "", JoinSessionRequest{Code: code, Nickname: "OTAKUMASTER"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions/join", "", JoinSessionRequest{Code: code, Nickname: "ThirdWheel"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	r := newTestRouter()
	created := createSession(t, r, "OtakuMaster")
	id := created.Session.Session.ID

	w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A valid token for one session cannot read another.
	other := createSession(t, r, "SomeoneElse")
	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/sessions/"+id, created.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGameFlowOverHTTP(t *testing.T) {
	r := newTestRouter()

	a := createSession(t, r, "OtakuMaster")
	id := a.Session.Session.ID
	b := joinSession(t, r, a.Session.Session.Code, "AnimeLover")

	submit := func(token string, items [3]string) *httptest.ResponseRecorder {
		req := SubmitSelectionsRequest{}
		for _, item := range items {
			req.Selections = append(req.Selections, services.SelectionInput{AnimeID: item, Q1: 3, Q2: 4, Q3: 3})
		}
		return doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/selections", id), token, req)
	}

	w := submit(a.Token, [3]string{"death-note", "one-piece", "your-name"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state := decode[services.SessionState](t, w)
	assert.Equal(t, models.PhaseSelection, state.Session.Phase)

	// Write-once: the same participant cannot submit again.
	w = submit(a.Token, [3]string{"naruto", "spirited-away", "your-name"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = submit(b.Token, [3]string{"death-note", "naruto", "spirited-away"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	state = decode[services.SessionState](t, w)
	assert.Equal(t, []string{"death-note"}, state.Session.DirectMatches)

	// Results are not ready until both sides finish rating.
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/results", id), a.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	rate := func(token, item string) *httptest.ResponseRecorder {
		return doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/sessions/%s/ratings", id), token,
			SubmitRatingRequest{AnimeID: item, Q1: 3, Q2: 3, Q3: 4})
	}

	for _, item := range []string{"death-note", "naruto", "spirited-away"} {
		w = rate(a.Token, item)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	// Rating an item the partner never picked.
	w = rate(b.Token, "demon-slayer")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, item := range []string{"death-note", "one-piece", "your-name"} {
		w = rate(b.Token, item)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	state = decode[services.SessionState](t, w)
	assert.Equal(t, models.SessionStatusCompleted, state.Session.Status)
	assert.Equal(t, models.PhaseResults, state.Session.Phase)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/sessions/%s/results", id), a.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := decode[models.GameResult](t, w)
	assert.Equal(t, 5, result.Stats.ItemsEvaluated)
	assert.Equal(t, 1, result.Stats.DirectMatches)
	assert.NotNil(t, result.Winner)
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/api/v1/animes/search?q=death&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	search := decode[SearchResponse](t, w)
	require.NotEmpty(t, search.Animes)
	assert.Equal(t, "death-note", search.Animes[0].ID)
	assert.Equal(t, len(search.Animes), search.Total)

	w = doJSON(t, r, http.MethodGet, "/api/v1/animes/popular?limit=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	popular := decode[[]Anime](t, w)
	assert.Len(t, popular, 3)
}
