package market

import (
	"strings"
	"time"

	"matka-ledger-go/internal/models"
)

// Board evaluates games against a single clock reading.
type Board struct {
	evaluator Evaluator
	clock     Clock
}

func NewBoard(evaluator Evaluator, clock Clock) *Board {
	return &Board{evaluator: evaluator, clock: clock}
}

// Clock returns the board's clock.
func (b *Board) Clock() Clock {
	return b.clock
}

// Status evaluates one game at the current domain time.
func (b *Board) Status(game models.Game) models.MarketStatus {
	return b.StatusAt(game, b.Now())
}

// StatusAt evaluates one game at wall-clock instant now.
func (b *Board) StatusAt(game models.Game, now time.Time) models.MarketStatus {
	return b.evaluator.Status(b.clock, now, game.Schedule)
}

// Now returns the wall-clock instant the board evaluates against.
func (b *Board) Now() time.Time {
	return b.clock.wall()
}

// Entries builds board entries for games matching the session tab and name
// query. An empty session or models.SessionAll matches every game; the query
// is a case-insensitive substring of the game name.
func (b *Board) Entries(games []models.Game, results map[string]models.GameResult, session, query string, now time.Time) []models.BoardEntry {
	query = strings.ToLower(strings.TrimSpace(query))

	entries := make([]models.BoardEntry, 0, len(games))
	for _, g := range games {
		if session != "" && session != models.SessionAll && g.Session != session {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(g.Name), query) {
			continue
		}

		status := b.StatusAt(g, now)
		entry := models.BoardEntry{
			Game:   g,
			Status: status,
			CanBet: status == models.StatusOpen,
		}
		if r, ok := results[g.Id]; ok {
			res := r
			entry.Result = &res
		}
		entries = append(entries, entry)
	}
	return entries
}

// OpenGames returns the games taking bets at now.
func (b *Board) OpenGames(games []models.Game, now time.Time) []models.Game {
	var open []models.Game
	for _, g := range games {
		if b.StatusAt(g, now) == models.StatusOpen {
			open = append(open, g)
		}
	}
	return open
}

// Counts tallies every game by status at now. All three statuses are
// present in the result, zero when no game has them.
func (b *Board) Counts(games []models.Game, now time.Time) map[models.MarketStatus]int {
	counts := map[models.MarketStatus]int{
		models.StatusOpen:       0,
		models.StatusResultSoon: 0,
		models.StatusClosed:     0,
	}
	for _, g := range games {
		counts[b.StatusAt(g, now)]++
	}
	return counts
}

// Ticker renders the scrolling headline of open markets.
func (b *Board) Ticker(games []models.Game, now time.Time) string {
	open := b.OpenGames(games, now)
	if len(open) == 0 {
		return "All Markets Closed - Next session opening soon"
	}
	parts := make([]string, len(open))
	for i, g := range open {
		parts[i] = g.Name + ": OPEN"
	}
	return strings.Join(parts, "  |  ")
}

// FormatResult renders a result as panel-jodi-panel, masking missing parts.
func FormatResult(r *models.GameResult) string {
	if r == nil {
		return "***-**-***"
	}
	return orMask(r.PanelOpen, "***") + "-" + orMask(r.JodiNumber, "**") + "-" + orMask(r.PanelClose, "***")
}

func orMask(v, mask string) string {
	if v == "" {
		return mask
	}
	return v
}
