package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	puzzlesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "starting5_puzzles_generated_total",
		Help: "Daily puzzles generated (excludes reuse of an existing puzzle).",
	})

	picksValidated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "starting5_picks_validated_total",
		Help: "Player pick validations by outcome.",
	}, []string{"outcome"})
)

const (
	pickOutcomeAccepted         = "accepted"
	pickOutcomePositionMismatch = "position_mismatch"
	pickOutcomeCriteriaMismatch = "criteria_mismatch"
)
