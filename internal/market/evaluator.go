// Package market decides whether a game is taking bets, about to declare a
// result, or closed, from the current clock and the game's time-of-day schedule.
package market

import (
	"time"

	"matka-ledger-go/internal/models"
)

const (
	MinutesPerDay = 24 * 60

	// DefaultResultGrace is how long after close a result is expected.
	DefaultResultGrace = 15 * time.Minute
)

// Evaluator maps a time of day onto a market status. The zero value uses
// DefaultResultGrace.
type Evaluator struct {
	Grace time.Duration
}

// NewEvaluator returns an Evaluator with the given result grace window.
// A non-positive grace falls back to DefaultResultGrace.
func NewEvaluator(grace time.Duration) Evaluator {
	if grace <= 0 {
		grace = DefaultResultGrace
	}
	return Evaluator{Grace: grace}
}

// graceMinutes rounds up so a sub-minute grace still yields one minute of
// RESULT_SOON instead of none.
func (e Evaluator) graceMinutes() int {
	if e.Grace <= 0 {
		return int(DefaultResultGrace / time.Minute)
	}
	return int((e.Grace + time.Minute - 1) / time.Minute)
}

// Evaluate returns the status for nowMin given a window [openMin, closeMin).
// All arguments are minutes since midnight (0-1439). A close earlier than the
// open means the window crosses midnight exactly once.
func (e Evaluator) Evaluate(nowMin, openMin, closeMin int) models.MarketStatus {
	effectiveClose := closeMin
	effectiveNow := nowMin
	if closeMin < openMin {
		effectiveClose = closeMin + MinutesPerDay
		if nowMin < openMin {
			effectiveNow = nowMin + MinutesPerDay
		}
	}

	switch {
	case effectiveNow >= openMin && effectiveNow < effectiveClose:
		return models.StatusOpen
	case effectiveNow >= effectiveClose && effectiveNow < effectiveClose+e.graceMinutes():
		return models.StatusResultSoon
	default:
		return models.StatusClosed
	}
}

// Evaluate uses the default 15 minute result grace window.
func Evaluate(nowMin, openMin, closeMin int) models.MarketStatus {
	return Evaluator{}.Evaluate(nowMin, openMin, closeMin)
}
