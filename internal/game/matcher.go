package game

// MatcherOptions holds configurable matcher constants.
type MatcherOptions struct {
	BasePoints int // points per correct pick, default 500
}

// DefaultMatcherOptions returns production defaults.
func DefaultMatcherOptions() MatcherOptions {
	return MatcherOptions{BasePoints: 500}
}

// Matcher evaluates category predicates against player profiles and validates
// lineup selections. It is stateless apart from the immutable catalog.
type Matcher struct {
	catalog    *Catalog
	basePoints int
}

// NewMatcher creates a matcher over the given catalog snapshot.
func NewMatcher(catalog *Catalog, opts MatcherOptions) *Matcher {
	if opts.BasePoints == 0 {
		opts = DefaultMatcherOptions()
	}
	return &Matcher{catalog: catalog, basePoints: opts.BasePoints}
}

// MatchesCriteria reports whether the player satisfies one category label.
// Team labels check team-set membership; stat labels run their predicate.
// Labels outside the catalog match nothing, a safe default rather than an
// error, since labels always originate from the generator.
func (m *Matcher) MatchesCriteria(player PlayerProfile, label string) bool {
	if m.catalog.IsTeam(label) {
		return player.PlayedFor(label)
	}
	if pred, ok := statPredicates[label]; ok {
		return pred(player)
	}
	return false
}

// SelectionOutcome is the result of validating one pick. A failed pick is a
// normal game outcome, not an error.
type SelectionOutcome struct {
	OK     bool
	Reason string

	// Per-criterion results, recorded for logging even when the first check
	// already failed.
	Category1Matched bool
	Category2Matched bool
}

const (
	reasonPositionMismatch = "Player position doesn't match selected position"
	reasonCriteriaMismatch = "This player does not match both categories!"
)

// ValidateSelection checks a pick: the player's declared position must equal
// the requested slot, and the player must satisfy both criteria of the pair.
// Both criteria are always evaluated so callers can report which side failed.
func (m *Matcher) ValidateSelection(player PlayerProfile, requestedPosition string, pair CategoryPair) SelectionOutcome {
	if player.Position != requestedPosition {
		return SelectionOutcome{Reason: reasonPositionMismatch}
	}

	m1 := m.MatchesCriteria(player, pair.Category1)
	m2 := m.MatchesCriteria(player, pair.Category2)
	if !m1 || !m2 {
		return SelectionOutcome{
			Reason:           reasonCriteriaMismatch,
			Category1Matched: m1,
			Category2Matched: m2,
		}
	}

	return SelectionOutcome{OK: true, Category1Matched: true, Category2Matched: true}
}

// CalculatePoints returns the score for a correct pick. It is a pure function
// of the profile alone (no round or lineup input), so identical picks always
// award identical points. Currently a flat base award.
func (m *Matcher) CalculatePoints(player PlayerProfile) int {
	return m.basePoints
}
