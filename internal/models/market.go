package models

// MarketStatus is derived from the current time and a game's schedule; never stored.
type MarketStatus string

const (
	StatusOpen       MarketStatus = "OPEN"
	StatusResultSoon MarketStatus = "RESULT_SOON"
	StatusClosed     MarketStatus = "CLOSED"
)

// Session labels group games by time-of-day slot
const (
	SessionAll     = "All"
	SessionMorning = "Morning"
	SessionDay     = "Day"
	SessionNight   = "Night"
)

// GameSchedule holds a market's open and close instants as epoch seconds.
// Only the hour and minute are significant.
type GameSchedule struct {
	OpenTime  int64 `yaml:"open_time" json:"openTime"`
	CloseTime int64 `yaml:"close_time" json:"closeTime"`
}

// Game represents a named betting market repeating by time of day
type Game struct {
	Id       string       `yaml:"id" json:"id"`
	Name     string       `yaml:"name" json:"name"`
	Session  string       `yaml:"session" json:"session"`
	Schedule GameSchedule `yaml:",inline" json:"schedule"`
}

// GameResult is the declared outcome of a game's round
type GameResult struct {
	GameId      string `yaml:"game_id" json:"gameId"`
	PanelOpen   string `yaml:"panel_open" json:"panelOpen"`
	OpenNumber  string `yaml:"open_number" json:"openNumber"`
	JodiNumber  string `yaml:"jodi_number" json:"jodiNumber"`
	CloseNumber string `yaml:"close_number" json:"closeNumber"`
	PanelClose  string `yaml:"panel_close" json:"panelClose"`
}

// BetType is an opaque tag describing the shape of the guessed number
type BetType string

const (
	BetOpen  BetType = "open"
	BetClose BetType = "close"
	BetJodi  BetType = "jodi"
	BetPanel BetType = "panel"
)

// BoardEntry is one game as shown on the market board
type BoardEntry struct {
	Game   Game
	Status MarketStatus
	Result *GameResult
	CanBet bool
}
