package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshah731/starting5/internal/game"
)

type stubGameService struct {
	startResp  game.StartResponse
	startErr   error
	selectResp game.SelectPlayerResponse
	selectErr  error
	lastSelect game.SelectPlayerRequest
}

func (s *stubGameService) StartGame(context.Context, time.Time) (game.StartResponse, error) {
	return s.startResp, s.startErr
}

func (s *stubGameService) SelectPlayer(_ context.Context, _ time.Time, req game.SelectPlayerRequest) (game.SelectPlayerResponse, error) {
	s.lastSelect = req
	return s.selectResp, s.selectErr
}

type stubDirectory struct {
	players map[int]game.PlayerProfile
}

func (s *stubDirectory) GetPlayerStats(_ context.Context, id int) (game.PlayerProfile, error) {
	p, ok := s.players[id]
	if !ok {
		return game.PlayerProfile{}, game.ErrPlayerNotFound
	}
	return p, nil
}

func (s *stubDirectory) ListPlayers(context.Context) ([]game.PlayerProfile, error) {
	var out []game.PlayerProfile
	for _, p := range s.players {
		out = append(out, p)
	}
	return out, nil
}

func testRouter(t *testing.T, svc GameService, dir PlayerDirectory) http.Handler {
	t.Helper()
	catalog, err := game.NewCatalog([]string{"Lakers", "Pistons"})
	require.NoError(t, err)
	h := NewHandlers(svc, dir, catalog, zerolog.Nop())

	r := chi.NewRouter()
	r.Post("/v1/game/start", h.StartGame)
	r.Post("/v1/game/select-player", h.SelectPlayer)
	r.Get("/v1/players", h.ListPlayers)
	r.Get("/v1/players/{id}", h.GetPlayer)
	r.Get("/v1/teams", h.ListTeams)
	return r
}

func TestStartGameHandler(t *testing.T) {
	svc := &stubGameService{
		startResp: game.StartResponse{
			Criteria:   game.CategoryPair{Category1: "Pistons", Category2: "25+ PPG Career"},
			Categories: []string{"Pistons", "25+ PPG Career"},
		},
	}
	router := testRouter(t, svc, &stubDirectory{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/start", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp game.StartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Pistons", resp.Criteria.Category1)
	assert.Zero(t, resp.Score)
}

func TestSelectPlayerHandlerRejectedPickIsNotAnError(t *testing.T) {
	svc := &stubGameService{
		selectResp: game.SelectPlayerResponse{Success: false, Reason: "This player does not match both categories!"},
	}
	router := testRouter(t, svc, &stubDirectory{})

	body := `{"playerId":7,"position":"PG","criteria":{"category1":"Pistons","category2":"25+ PPG Career"},"filledPositions":["SG"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/select-player", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, "a rejected pick is a normal outcome, not an HTTP error")
	var resp game.SelectPlayerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Reason)

	assert.Equal(t, 1, svc.lastSelect.FilledPositionCount)
	assert.Equal(t, "PG", svc.lastSelect.RequestedPosition)
}

func TestSelectPlayerHandlerUnknownPlayer(t *testing.T) {
	svc := &stubGameService{selectErr: game.ErrPlayerNotFound}
	router := testRouter(t, svc, &stubDirectory{})

	body := `{"playerId":99,"position":"PG","criteria":{"category1":"Pistons","category2":"Lakers"}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/select-player", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectPlayerHandlerValidation(t *testing.T) {
	router := testRouter(t, &stubGameService{}, &stubDirectory{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/select-player", strings.NewReader(`{"playerId":1}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing position is rejected")

	full := `{"playerId":1,"position":"C","filledPositions":["PG","SG","SF","PF","C"]}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/game/select-player", strings.NewReader(full)))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a complete lineup cannot pick again")
}

func TestGetPlayerHandler(t *testing.T) {
	dir := &stubDirectory{players: map[int]game.PlayerProfile{
		7: {ID: 7, FirstName: "Cade", LastName: "Cunningham", Position: game.PositionPG},
	}}
	router := testRouter(t, &stubGameService{}, dir)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var p game.PlayerProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Cade", p.FirstName)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/42", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/players/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTeamsHandler(t *testing.T) {
	router := testRouter(t, &stubGameService{}, &stubDirectory{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/teams", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Lakers", "Pistons"}, resp["teams"])
}
