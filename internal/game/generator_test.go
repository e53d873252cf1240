package game

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPuzzleStore struct {
	puzzles   map[string]*DailyPuzzle
	saveCalls int
}

func newMemoryPuzzleStore() *memoryPuzzleStore {
	return &memoryPuzzleStore{puzzles: map[string]*DailyPuzzle{}}
}

func (s *memoryPuzzleStore) FindByDate(_ context.Context, date string) (*DailyPuzzle, error) {
	p, ok := s.puzzles[date]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *memoryPuzzleStore) Save(_ context.Context, puzzle *DailyPuzzle) error {
	s.saveCalls++
	if _, exists := s.puzzles[puzzle.Date]; exists {
		return ErrDuplicatePuzzleDate
	}
	cp := *puzzle
	s.puzzles[puzzle.Date] = &cp
	return nil
}

func (s *memoryPuzzleStore) DeleteByDate(_ context.Context, date string) error {
	delete(s.puzzles, date)
	return nil
}

func (s *memoryPuzzleStore) DeleteOlderThan(_ context.Context, date string) error {
	for d := range s.puzzles {
		if d < date {
			delete(s.puzzles, d)
		}
	}
	return nil
}

// racingStore simulates losing the first-request-of-the-day race: the first
// Save conflicts and another creator's puzzle appears as the stored winner.
type racingStore struct {
	*memoryPuzzleStore
	winner *DailyPuzzle
	raced  bool
}

func (s *racingStore) Save(ctx context.Context, puzzle *DailyPuzzle) error {
	if !s.raced {
		s.raced = true
		s.puzzles[s.winner.Date] = s.winner
		return ErrDuplicatePuzzleDate
	}
	return s.memoryPuzzleStore.Save(ctx, puzzle)
}

func testGenerator(t *testing.T, store PuzzleStore) *Generator {
	t.Helper()
	catalog, err := NewCatalog([]string{"Celtics", "Lakers", "Pistons", "Knicks", "Bulls", "Spurs"})
	require.NoError(t, err)
	return NewGenerator(store, nil, catalog, zerolog.Nop())
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	store := newMemoryPuzzleStore()
	gen := testGenerator(t, store)
	today := mustDate(t, "2026-08-30")

	first, err := gen.GetOrCreate(context.Background(), "2026-08-30", today)
	require.NoError(t, err)
	second, err := gen.GetOrCreate(context.Background(), "2026-08-30", today)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Rounds, second.Rounds)
	assert.Equal(t, 1, store.saveCalls, "an existing valid puzzle is reused, not regenerated")
}

func TestGetOrCreateSameSeedSamePuzzle(t *testing.T) {
	genA := testGenerator(t, newMemoryPuzzleStore())
	genB := testGenerator(t, newMemoryPuzzleStore())
	today := mustDate(t, "2026-08-30")

	a, err := genA.GetOrCreate(context.Background(), "2026-08-30", today)
	require.NoError(t, err)
	b, err := genB.GetOrCreate(context.Background(), "2026-08-30", today)
	require.NoError(t, err)

	assert.Equal(t, a.Rounds, b.Rounds, "same seed must produce the same category pairs")
}

func TestGetOrCreateRoundsHaveDistinctLabels(t *testing.T) {
	for _, seed := range []string{"2026-08-30", "2026-08-31", "2026-09-01", "2000-01-01"} {
		gen := testGenerator(t, newMemoryPuzzleStore())
		puzzle, err := gen.GetOrCreate(context.Background(), seed, mustDate(t, seed))
		require.NoError(t, err)

		assert.True(t, puzzle.Valid())
		for i, pair := range puzzle.Rounds {
			assert.NotEqual(t, pair.Category1, pair.Category2, "seed %s round %d", seed, i+1)
		}
	}
}

func TestGetOrCreateRegeneratesInvalidPuzzle(t *testing.T) {
	store := newMemoryPuzzleStore()
	store.puzzles["2026-08-30"] = &DailyPuzzle{
		ID:   uuid.New(),
		Date: "2026-08-30",
		// Round 3 is missing its second label.
		Rounds: [RoundCount]CategoryPair{
			{"Celtics", "Lakers"}, {"Pistons", "Knicks"}, {"Bulls", ""},
			{"All-Stars", "MVP Winners"}, {"Undrafted", "Lottery Pick"},
		},
	}

	gen := testGenerator(t, store)
	puzzle, err := gen.GetOrCreate(context.Background(), "2026-08-30", mustDate(t, "2026-08-30"))
	require.NoError(t, err)

	assert.True(t, puzzle.Valid())
	assert.Equal(t, 1, store.saveCalls)
	assert.Equal(t, puzzle.ID, store.puzzles["2026-08-30"].ID, "regenerated puzzle replaces the invalid row")
}

func TestGetOrCreateLosingRaceReturnsWinner(t *testing.T) {
	winner := &DailyPuzzle{
		ID:   uuid.New(),
		Date: "2026-08-30",
		Rounds: [RoundCount]CategoryPair{
			{"Celtics", "Lakers"}, {"Pistons", "Knicks"}, {"Bulls", "Spurs"},
			{"All-Stars", "MVP Winners"}, {"Undrafted", "Lottery Pick"},
		},
	}
	store := &racingStore{memoryPuzzleStore: newMemoryPuzzleStore(), winner: winner}

	gen := testGenerator(t, store)
	puzzle, err := gen.GetOrCreate(context.Background(), "2026-08-30", mustDate(t, "2026-08-30"))
	require.NoError(t, err)

	assert.Equal(t, winner.ID, puzzle.ID, "the losing creator must adopt the winner's puzzle")
	assert.Equal(t, winner.Rounds, puzzle.Rounds)
}

func TestGetOrCreatePrunesPriorDates(t *testing.T) {
	store := newMemoryPuzzleStore()
	gen := testGenerator(t, store)

	_, err := gen.GetOrCreate(context.Background(), "2026-08-29", mustDate(t, "2026-08-29"))
	require.NoError(t, err)
	_, err = gen.GetOrCreate(context.Background(), "2026-08-30", mustDate(t, "2026-08-30"))
	require.NoError(t, err)

	assert.NotContains(t, store.puzzles, "2026-08-29", "yesterday's puzzle is garbage-collected")
	assert.Contains(t, store.puzzles, "2026-08-30")
}

func TestGenerateWrapsAroundSmallCatalog(t *testing.T) {
	// Three labels for ten draws forces the used set to reset; labels may then
	// repeat across rounds but never within one pair.
	catalog := &Catalog{
		labels: []string{"A", "B", "C"},
		teamed: map[string]struct{}{},
	}
	gen := NewGenerator(newMemoryPuzzleStore(), nil, catalog, zerolog.Nop())

	puzzle := gen.generate("2026-08-30", "2026-08-30")
	for i, pair := range puzzle.Rounds {
		assert.NotEqual(t, pair.Category1, pair.Category2, "round %d", i+1)
		assert.Contains(t, []string{"A", "B", "C"}, pair.Category1)
		assert.Contains(t, []string{"A", "B", "C"}, pair.Category2)
	}
}

func TestSeedHashIsStable(t *testing.T) {
	assert.Equal(t, seedHash("2026-08-30"), seedHash("2026-08-30"))
	assert.NotEqual(t, seedHash("2026-08-30"), seedHash("2026-08-31"))
}
