package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// PlayerProvider supplies read-only player data. Implemented by the Postgres
// player repository.
type PlayerProvider interface {
	GetPlayerStats(ctx context.Context, playerID int) (PlayerProfile, error)
	GetAllTeamNames(ctx context.Context) ([]string, error)
}

// Service is the request/response surface of the core game logic. It holds no
// per-session state; the caller tracks its lineup and passes the filled count
// back on each pick.
type Service struct {
	generator *Generator
	matcher   *Matcher
	players   PlayerProvider
	logger    zerolog.Logger
}

// NewService wires the generator, matcher and player provider.
func NewService(generator *Generator, matcher *Matcher, players PlayerProvider, logger zerolog.Logger) *Service {
	return &Service{
		generator: generator,
		matcher:   matcher,
		players:   players,
		logger:    logger,
	}
}

// StartResponse is returned on game start: the round-1 criteria plus every
// label in the day's puzzle, with a fresh score and lineup.
type StartResponse struct {
	Criteria   CategoryPair `json:"criteria"`
	Categories []string     `json:"categories"`
	Score      int          `json:"score"`
	Lineup     Lineup       `json:"lineup"`
}

// StartGame returns (creating if needed) today's puzzle and the first round's
// criteria. The seed is the calendar date, so every player shares one puzzle.
func (s *Service) StartGame(ctx context.Context, now time.Time) (StartResponse, error) {
	seed := now.Format(DateLayout)
	puzzle, err := s.generator.GetOrCreate(ctx, seed, now)
	if err != nil {
		return StartResponse{}, fmt.Errorf("start game: %w", err)
	}
	return StartResponse{
		Criteria:   puzzle.CriteriaForRound(1),
		Categories: puzzle.Labels(),
	}, nil
}

// SelectPlayerRequest describes one pick. FilledPositionCount is the number of
// lineup slots filled before this pick; the pick itself fills round
// FilledPositionCount+1, so the follow-up criteria are for round
// FilledPositionCount+2.
type SelectPlayerRequest struct {
	PlayerID            int
	RequestedPosition   string
	Criteria            CategoryPair
	IsLastPick          bool
	FilledPositionCount int
}

// SelectPlayerResponse reports the pick outcome. A rejected pick is a normal
// result: Success is false and Reason says why, with no points awarded.
type SelectPlayerResponse struct {
	Success      bool          `json:"success"`
	Reason       string        `json:"error,omitempty"`
	Points       int           `json:"points,omitempty"`
	Player       *PlayerRef    `json:"player,omitempty"`
	NextCriteria *CategoryPair `json:"nextCriteria,omitempty"`
}

// PlayerRef is the identity echo returned with an accepted pick.
type PlayerRef struct {
	PlayerID  int    `json:"playerId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`
}

// SelectPlayer validates a pick against the active criteria pair and, when the
// game is not complete, returns the next round's criteria from the same daily
// puzzle. Unknown player ids surface ErrPlayerNotFound, distinct from a
// rejected pick.
func (s *Service) SelectPlayer(ctx context.Context, now time.Time, req SelectPlayerRequest) (SelectPlayerResponse, error) {
	player, err := s.players.GetPlayerStats(ctx, req.PlayerID)
	if err != nil {
		return SelectPlayerResponse{}, fmt.Errorf("select player %d: %w", req.PlayerID, err)
	}

	outcome := s.matcher.ValidateSelection(player, req.RequestedPosition, req.Criteria)
	if !outcome.OK {
		picksValidated.WithLabelValues(rejectionOutcome(outcome)).Inc()
		s.logger.Debug().
			Int("player_id", req.PlayerID).
			Str("position", req.RequestedPosition).
			Bool("category1_matched", outcome.Category1Matched).
			Bool("category2_matched", outcome.Category2Matched).
			Msg("pick rejected")
		return SelectPlayerResponse{Success: false, Reason: outcome.Reason}, nil
	}
	picksValidated.WithLabelValues(pickOutcomeAccepted).Inc()

	resp := SelectPlayerResponse{
		Success: true,
		Points:  s.matcher.CalculatePoints(player),
		Player: &PlayerRef{
			PlayerID:  player.ID,
			FirstName: player.FirstName,
			LastName:  player.LastName,
			Position:  player.Position,
		},
	}

	if !req.IsLastPick {
		seed := now.Format(DateLayout)
		puzzle, err := s.generator.GetOrCreate(ctx, seed, now)
		if err != nil {
			return SelectPlayerResponse{}, fmt.Errorf("next criteria: %w", err)
		}
		// This pick fills round FilledPositionCount+1; the caller needs the
		// round after that.
		next := puzzle.CriteriaForRound(req.FilledPositionCount + 2)
		resp.NextCriteria = &next
	}

	return resp, nil
}

func rejectionOutcome(outcome SelectionOutcome) string {
	if outcome.Reason == reasonPositionMismatch {
		return pickOutcomePositionMismatch
	}
	return pickOutcomeCriteriaMismatch
}
