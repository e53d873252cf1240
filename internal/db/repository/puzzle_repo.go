package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rshah731/starting5/internal/game"
)

// PuzzleRepository persists daily puzzles in Postgres. The unique index on
// game_date is what makes concurrent first-requests-of-the-day converge on a
// single canonical puzzle.
type PuzzleRepository struct {
	pool *pgxpool.Pool
}

var _ game.PuzzleStore = (*PuzzleRepository)(nil)

// NewPuzzleRepository constructs a puzzle repository over a pgx pool.
func NewPuzzleRepository(pool *pgxpool.Pool) *PuzzleRepository {
	return &PuzzleRepository{pool: pool}
}

// FindByDate loads the puzzle for a date, or (nil, nil) when none exists.
func (r *PuzzleRepository) FindByDate(ctx context.Context, date string) (*game.DailyPuzzle, error) {
	const q = `
		SELECT daily_game_id,
		       to_char(game_date, 'YYYY-MM-DD'),
		       round1_category1, round1_category2,
		       round2_category1, round2_category2,
		       round3_category1, round3_category2,
		       round4_category1, round4_category2,
		       round5_category1, round5_category2,
		       created_at
		FROM daily_games
		WHERE game_date = $1::date`

	var p game.DailyPuzzle
	err := r.pool.QueryRow(ctx, q, date).Scan(
		&p.ID,
		&p.Date,
		&p.Rounds[0].Category1, &p.Rounds[0].Category2,
		&p.Rounds[1].Category1, &p.Rounds[1].Category2,
		&p.Rounds[2].Category1, &p.Rounds[2].Category2,
		&p.Rounds[3].Category1, &p.Rounds[3].Category2,
		&p.Rounds[4].Category1, &p.Rounds[4].Category2,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query daily game %s: %w", date, err)
	}
	return &p, nil
}

// Save inserts a new puzzle row. A losing concurrent creator gets
// game.ErrDuplicatePuzzleDate and should re-read the winner. The single
// insert either commits the full puzzle or nothing.
func (r *PuzzleRepository) Save(ctx context.Context, puzzle *game.DailyPuzzle) error {
	const q = `
		INSERT INTO daily_games (
			daily_game_id, game_date,
			round1_category1, round1_category2,
			round2_category1, round2_category2,
			round3_category1, round3_category2,
			round4_category1, round4_category2,
			round5_category1, round5_category2,
			created_at
		) VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (game_date) DO NOTHING`

	tag, err := r.pool.Exec(ctx, q,
		puzzle.ID, puzzle.Date,
		puzzle.Rounds[0].Category1, puzzle.Rounds[0].Category2,
		puzzle.Rounds[1].Category1, puzzle.Rounds[1].Category2,
		puzzle.Rounds[2].Category1, puzzle.Rounds[2].Category2,
		puzzle.Rounds[3].Category1, puzzle.Rounds[3].Category2,
		puzzle.Rounds[4].Category1, puzzle.Rounds[4].Category2,
		puzzle.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert daily game %s: %w", puzzle.Date, err)
	}
	if tag.RowsAffected() == 0 {
		return game.ErrDuplicatePuzzleDate
	}
	return nil
}

// DeleteByDate removes the puzzle for one date (used when a stored puzzle
// fails the validity check).
func (r *PuzzleRepository) DeleteByDate(ctx context.Context, date string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM daily_games WHERE game_date = $1::date`, date); err != nil {
		return fmt.Errorf("delete daily game %s: %w", date, err)
	}
	return nil
}

// DeleteOlderThan prunes puzzles dated strictly before the given date.
func (r *PuzzleRepository) DeleteOlderThan(ctx context.Context, date string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM daily_games WHERE game_date < $1::date`, date); err != nil {
		return fmt.Errorf("prune daily games before %s: %w", date, err)
	}
	return nil
}
