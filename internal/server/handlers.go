package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rshah731/starting5/internal/game"
	httperrors "github.com/rshah731/starting5/pkg/http/errors"
)

// GameService is the surface of the core consumed by the handlers.
type GameService interface {
	StartGame(ctx context.Context, now time.Time) (game.StartResponse, error)
	SelectPlayer(ctx context.Context, now time.Time, req game.SelectPlayerRequest) (game.SelectPlayerResponse, error)
}

// PlayerDirectory exposes read-only player listings.
type PlayerDirectory interface {
	GetPlayerStats(ctx context.Context, playerID int) (game.PlayerProfile, error)
	ListPlayers(ctx context.Context) ([]game.PlayerProfile, error)
}

// Handlers holds the HTTP handlers for the game API.
type Handlers struct {
	svc     GameService
	players PlayerDirectory
	catalog *game.Catalog
	logger  zerolog.Logger
	now     func() time.Time
}

// NewHandlers constructs the handler set. The clock defaults to time.Now.
func NewHandlers(svc GameService, players PlayerDirectory, catalog *game.Catalog, logger zerolog.Logger) *Handlers {
	return &Handlers{
		svc:     svc,
		players: players,
		catalog: catalog,
		logger:  logger,
		now:     time.Now,
	}
}

// StartGame begins a daily game: returns the round-1 criteria, the full label
// set, a zero score and an empty lineup.
func (h *Handlers) StartGame(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.StartGame(r.Context(), h.now())
	if err != nil {
		h.logger.Error().Err(err).Msg("start game failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeGameStartFailed, "could not start game")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type selectPlayerBody struct {
	PlayerID        int               `json:"playerId"`
	Position        string            `json:"position"`
	Criteria        game.CategoryPair `json:"criteria"`
	IsGameComplete  bool              `json:"isGameComplete"`
	FilledPositions []string          `json:"filledPositions"`
}

// SelectPlayer validates one pick. Rejected picks are normal outcomes and
// return 200 with success=false; unknown player ids return 404.
func (h *Handlers) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	var body selectPlayerBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "malformed request body")
		return
	}
	if body.Position == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "position is required", "position")
		return
	}
	if len(body.FilledPositions) >= game.RoundCount {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeLineupComplete, "lineup already has five players")
		return
	}

	resp, err := h.svc.SelectPlayer(r.Context(), h.now(), game.SelectPlayerRequest{
		PlayerID:            body.PlayerID,
		RequestedPosition:   body.Position,
		Criteria:            body.Criteria,
		IsLastPick:          body.IsGameComplete,
		FilledPositionCount: len(body.FilledPositions),
	})
	if err != nil {
		if errors.Is(err, game.ErrPlayerNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodePlayerNotFound, "player not found")
			return
		}
		h.logger.Error().Err(err).Int("player_id", body.PlayerID).Msg("select player failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeSelectionFailed, "could not process selection")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListPlayers returns every player with stats and team affiliations.
func (h *Handlers) ListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.ListPlayers(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list players failed")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodePlayerListFailed, "could not load players")
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// GetPlayer returns a single player profile by id.
func (h *Handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "player id must be an integer")
		return
	}
	profile, err := h.players.GetPlayerStats(r.Context(), id)
	if err != nil {
		if errors.Is(err, game.ErrPlayerNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodePlayerNotFound, "player not found")
			return
		}
		h.logger.Error().Err(err).Int("player_id", id).Msg("get player failed")
		httperrors.RespondInternalError(w, "could not load player")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListTeams returns the valid team labels from the catalog snapshot.
func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"teams": h.catalog.Teams()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
