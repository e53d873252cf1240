package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PuzzleStore is the durable home of daily puzzles. Implemented by the
// Postgres repository; a date uniqueness constraint guarantees at most one
// canonical puzzle per day even under racing first requests.
type PuzzleStore interface {
	// FindByDate returns the puzzle for a date, or (nil, nil) when absent.
	FindByDate(ctx context.Context, date string) (*DailyPuzzle, error)
	// Save persists a new puzzle. Returns ErrDuplicatePuzzleDate when another
	// creator won the race for the same date.
	Save(ctx context.Context, puzzle *DailyPuzzle) error
	DeleteByDate(ctx context.Context, date string) error
	DeleteOlderThan(ctx context.Context, date string) error
}

// PuzzleCache is an optional read-through cache in front of the store.
type PuzzleCache interface {
	Get(ctx context.Context, date string) (*DailyPuzzle, error)
	Set(ctx context.Context, puzzle *DailyPuzzle) error
	Delete(ctx context.Context, date string) error
}

// Generator deterministically produces, persists and reuses the daily puzzle.
type Generator struct {
	store   PuzzleStore
	cache   PuzzleCache // may be nil
	catalog *Catalog
	logger  zerolog.Logger
}

// NewGenerator creates a generator over an immutable catalog snapshot.
func NewGenerator(store PuzzleStore, cache PuzzleCache, catalog *Catalog, logger zerolog.Logger) *Generator {
	return &Generator{store: store, cache: cache, catalog: catalog, logger: logger}
}

// GetOrCreate returns the puzzle for today, creating it on the first request
// of the day. Repeated calls with the same date are idempotent: every player
// sees the identical puzzle. A persisted puzzle that fails the validity check
// is deleted and regenerated. Generating also garbage-collects puzzles dated
// strictly before today.
func (g *Generator) GetOrCreate(ctx context.Context, seed string, today time.Time) (*DailyPuzzle, error) {
	date := today.Format(DateLayout)

	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, date); err == nil && cached != nil && cached.Valid() {
			return cached, nil
		}
	}

	existing, err := g.store.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find puzzle for %s: %w", date, err)
	}
	if existing != nil {
		if existing.Valid() {
			g.fillCache(ctx, existing)
			return existing, nil
		}
		g.logger.Warn().Str("date", date).Msg("stored puzzle failed validity check, regenerating")
		if err := g.store.DeleteByDate(ctx, date); err != nil {
			return nil, fmt.Errorf("delete invalid puzzle for %s: %w", date, err)
		}
		if g.cache != nil {
			_ = g.cache.Delete(ctx, date)
		}
	}

	puzzle := g.generate(seed, date)

	if err := g.store.Save(ctx, puzzle); err != nil {
		if errors.Is(err, ErrDuplicatePuzzleDate) {
			// Lost the creation race; the winner's puzzle is canonical.
			winner, findErr := g.store.FindByDate(ctx, date)
			if findErr != nil {
				return nil, fmt.Errorf("re-read puzzle for %s after conflict: %w", date, findErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("puzzle for %s conflicted on save but is absent on re-read", date)
			}
			g.fillCache(ctx, winner)
			return winner, nil
		}
		return nil, fmt.Errorf("save puzzle for %s: %w", date, err)
	}

	if err := g.store.DeleteOlderThan(ctx, date); err != nil {
		g.logger.Warn().Err(err).Str("date", date).Msg("failed to prune prior puzzles")
	}

	g.fillCache(ctx, puzzle)
	g.logger.Info().Str("date", date).Str("puzzle_id", puzzle.ID.String()).Msg("generated daily puzzle")
	puzzlesGenerated.Inc()
	return puzzle, nil
}

func (g *Generator) fillCache(ctx context.Context, puzzle *DailyPuzzle) {
	if g.cache == nil {
		return
	}
	if err := g.cache.Set(ctx, puzzle); err != nil {
		g.logger.Warn().Err(err).Str("date", puzzle.Date).Msg("puzzle cache write failed")
	}
}

// generate draws five pairs of distinct labels from a pseudo-random stream
// derived from the seed. Labels are drawn without replacement across rounds;
// when fewer than two unused labels remain the used set resets, so labels may
// repeat across rounds of an exhausted catalog but never within one pair.
func (g *Generator) generate(seed, date string) *DailyPuzzle {
	rng := rand.New(rand.NewSource(seedHash(seed)))
	unused := g.catalog.Labels()

	puzzle := &DailyPuzzle{
		ID:        uuid.New(),
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}

	for round := 0; round < RoundCount; round++ {
		if len(unused) < 2 {
			unused = g.catalog.Labels()
		}
		c1 := drawLabel(rng, &unused)
		c2 := drawLabel(rng, &unused)
		puzzle.Rounds[round] = CategoryPair{Category1: c1, Category2: c2}
	}
	return puzzle
}

func drawLabel(rng *rand.Rand, unused *[]string) string {
	pool := *unused
	i := rng.Intn(len(pool))
	label := pool[i]
	pool[i] = pool[len(pool)-1]
	*unused = pool[:len(pool)-1]
	return label
}

// seedHash maps a seed string to a deterministic rand source using a
// polynomial hash, base 31, initial value 17. Only same-process
// reproducibility is guaranteed; the contract is same seed, same puzzle.
func seedHash(seed string) int64 {
	h := int64(17)
	for _, r := range seed {
		h = h*31 + int64(r)
	}
	return h
}
