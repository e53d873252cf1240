package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rshah731/starting5/internal/game"
)

// excludedTeamIDs are historical/non-standard franchise identifiers that never
// appear as puzzle categories.
var excludedTeamIDs = []int64{
	1610610034,
	1610610031,
	1610610028,
	1610610025,
	1610610030,
	1610610036,
	1610610026,
	1610610032,
	1610610035,
	1610610029,
	1610610023,
	1610610037,
	1610610033,
}

// PlayerRepository reads player identities, career stats and team affiliations
// from Postgres. All reads; the import pipeline owns writes.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

var _ game.PlayerProvider = (*PlayerRepository)(nil)

// NewPlayerRepository constructs a player repository over a pgx pool.
func NewPlayerRepository(pool *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{pool: pool}
}

// GetAllTeamNames returns the valid team names in alphabetical order,
// excluding the defunct franchise ids.
func (r *PlayerRepository) GetAllTeamNames(ctx context.Context) ([]string, error) {
	const q = `
		SELECT team_name
		FROM nba_teams
		WHERE team_id != ALL($1)
		ORDER BY team_name`

	rows, err := r.pool.Query(ctx, q, excludedTeamIDs)
	if err != nil {
		return nil, fmt.Errorf("query team names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan team name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team names: %w", err)
	}
	return names, nil
}

const playerProfileColumns = `
	p.player_id,
	p.first_name,
	p.last_name,
	p.position,
	COALESCE(s.ppg, 0),
	COALESCE(s.rpg, 0),
	COALESCE(s.apg, 0),
	COALESCE(s.spg, 0),
	COALESCE(s.bpg, 0),
	COALESCE(s.college, ''),
	COALESCE(s.draft_year, -1),
	COALESCE(s.is_lottery, 0) = 1,
	COALESCE(s.years_in_league, 0),
	COALESCE(s.all_stars, 0),
	COALESCE(s.mvps, 0),
	COALESCE(s.dpoys, 0),
	COALESCE(s.six_man_awards, 0),
	COALESCE(s.rings, 0),
	COALESCE(s.rookie_of_the_year, FALSE),
	COALESCE(
		(SELECT array_agg(t.team_name ORDER BY t.team_name)
		 FROM player_teams pt
		 JOIN nba_teams t ON t.team_id = pt.team_id
		 WHERE pt.player_id = p.player_id),
		'{}'
	)`

func scanProfile(row pgx.Row) (game.PlayerProfile, error) {
	var p game.PlayerProfile
	err := row.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Position,
		&p.PPG, &p.RPG, &p.APG, &p.SPG, &p.BPG,
		&p.College, &p.DraftYear, &p.LotteryPick, &p.YearsInLeague,
		&p.AllStars, &p.MVPs, &p.DPOYs, &p.SixthManAwards,
		&p.Rings, &p.RookieOfTheYear,
		&p.Teams,
	)
	return p, err
}

// GetPlayerStats loads one player's full profile. Unknown ids surface
// game.ErrPlayerNotFound so callers can distinguish a malformed request from
// a rejected pick.
func (r *PlayerRepository) GetPlayerStats(ctx context.Context, playerID int) (game.PlayerProfile, error) {
	q := `
		SELECT ` + playerProfileColumns + `
		FROM nba_players p
		LEFT JOIN nba_player_stats s ON s.player_id = p.player_id
		WHERE p.player_id = $1`

	profile, err := scanProfile(r.pool.QueryRow(ctx, q, playerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return game.PlayerProfile{}, game.ErrPlayerNotFound
		}
		return game.PlayerProfile{}, fmt.Errorf("query player %d: %w", playerID, err)
	}
	return profile, nil
}

// ListPlayers returns every player with stats and team sets, ordered by id.
func (r *PlayerRepository) ListPlayers(ctx context.Context) ([]game.PlayerProfile, error) {
	q := `
		SELECT ` + playerProfileColumns + `
		FROM nba_players p
		LEFT JOIN nba_player_stats s ON s.player_id = p.player_id
		ORDER BY p.player_id`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}
	defer rows.Close()

	var players []game.PlayerProfile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate players: %w", err)
	}
	return players, nil
}
