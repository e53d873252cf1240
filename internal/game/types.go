package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Roster positions, in lineup order.
const (
	PositionPG = "PG"
	PositionSG = "SG"
	PositionSF = "SF"
	PositionPF = "PF"
	PositionC  = "C"
)

// RoundCount is the number of rounds in a daily puzzle (one per lineup slot).
const RoundCount = 5

// DateLayout is the calendar format used as the puzzle seed and storage key.
const DateLayout = "2006-01-02"

var (
	// ErrPlayerNotFound indicates an unknown player id.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrDuplicatePuzzleDate indicates a concurrent creator already saved a
	// puzzle for the same date; the loser should re-read the winner.
	ErrDuplicatePuzzleDate = errors.New("puzzle already exists for date")
)

// CategoryPair holds the two criteria for a single round.
type CategoryPair struct {
	Category1 string `json:"category1"`
	Category2 string `json:"category2"`
}

// DailyPuzzle is the once-per-day set of five category pairs. Once persisted
// for a date it is immutable and shared by every player that day.
type DailyPuzzle struct {
	ID        uuid.UUID
	Date      string // YYYY-MM-DD
	Rounds    [RoundCount]CategoryPair
	CreatedAt time.Time
}

// CriteriaForRound returns the pair for round 1..5. Round numbers are derived
// internally from filled-position counts, so an out-of-range round is a caller
// bug, not a game condition, and panics.
func (p *DailyPuzzle) CriteriaForRound(round int) CategoryPair {
	if round < 1 || round > RoundCount {
		panic(fmt.Sprintf("game: invalid round %d (want 1..%d)", round, RoundCount))
	}
	return p.Rounds[round-1]
}

// Valid reports whether every round carries two non-empty labels. An invalid
// persisted puzzle is discarded and regenerated.
func (p *DailyPuzzle) Valid() bool {
	for _, pair := range p.Rounds {
		if pair.Category1 == "" || pair.Category2 == "" {
			return false
		}
	}
	return true
}

// Labels returns all ten category labels in round order.
func (p *DailyPuzzle) Labels() []string {
	labels := make([]string, 0, 2*RoundCount)
	for _, pair := range p.Rounds {
		labels = append(labels, pair.Category1, pair.Category2)
	}
	return labels
}

// PlayerProfile is a player's identity plus career statistics. Read-only from
// the core's perspective; owned by the player data provider.
type PlayerProfile struct {
	ID        int    `json:"playerId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Position  string `json:"position"`

	PPG float64 `json:"ppg"`
	RPG float64 `json:"rpg"`
	APG float64 `json:"apg"`
	SPG float64 `json:"spg"`
	BPG float64 `json:"bpg"`

	College       string `json:"college"`
	DraftYear     int    `json:"draftYear"` // -1 when undrafted
	LotteryPick   bool   `json:"isLottery"`
	YearsInLeague int    `json:"yearsInLeague"`

	AllStars        int  `json:"allStars"`
	MVPs            int  `json:"mvps"`
	DPOYs           int  `json:"dpoys"`
	SixthManAwards  int  `json:"sixManAwards"`
	Rings           int  `json:"rings"`
	RookieOfTheYear bool `json:"rookieOfTheYear"`

	Teams []string `json:"teams"`
}

// PlayedFor reports whether the player's team set contains the given team
// name (case-sensitive exact match against catalog team strings).
func (p PlayerProfile) PlayedFor(team string) bool {
	for _, t := range p.Teams {
		if t == team {
			return true
		}
	}
	return false
}

// Lineup tracks the five roster slots on behalf of a caller. The core never
// stores one; it only computes per-pick validity and round arithmetic.
type Lineup struct {
	PG *LineupSlot `json:"pg"`
	SG *LineupSlot `json:"sg"`
	SF *LineupSlot `json:"sf"`
	PF *LineupSlot `json:"pf"`
	C  *LineupSlot `json:"c"`
}

// LineupSlot is a filled position: the selected player and the points earned.
type LineupSlot struct {
	PlayerID int `json:"playerId"`
	Points   int `json:"points"`
}

func (l Lineup) slot(position string) *LineupSlot {
	switch position {
	case PositionPG:
		return l.PG
	case PositionSG:
		return l.SG
	case PositionSF:
		return l.SF
	case PositionPF:
		return l.PF
	case PositionC:
		return l.C
	}
	return nil
}

// IsPositionFilled reports whether the named slot holds a player. Unknown
// position names are never filled.
func (l Lineup) IsPositionFilled(position string) bool {
	return l.slot(position) != nil
}

// FilledCount returns the number of occupied slots.
func (l Lineup) FilledCount() int {
	count := 0
	for _, s := range []*LineupSlot{l.PG, l.SG, l.SF, l.PF, l.C} {
		if s != nil {
			count++
		}
	}
	return count
}

// IsComplete reports whether all five slots are filled.
func (l Lineup) IsComplete() bool {
	return l.FilledCount() == RoundCount
}
