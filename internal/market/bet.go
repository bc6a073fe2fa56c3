package market

import (
	"errors"
	"fmt"
	"regexp"

	"matka-ledger-go/internal/models"
)

var (
	ErrUnknownBetType   = errors.New("unknown bet type")
	ErrInvalidBetNumber = errors.New("invalid bet number")
	ErrBetTooSmall      = errors.New("bet amount below minimum")
	ErrMarketNotOpen    = errors.New("market is not open for betting")
)

// DefaultMinBet is the smallest accepted stake in minor units.
const DefaultMinBet int64 = 10

var (
	singleDigit = regexp.MustCompile(`^\d$`)
	twoDigits   = regexp.MustCompile(`^\d{2}$`)
	threeDigits = regexp.MustCompile(`^\d{3}$`)
)

var multipliers = map[models.BetType]int64{
	models.BetOpen:  9,
	models.BetClose: 9,
	models.BetJodi:  90,
	models.BetPanel: 150,
}

// Multiplier returns the payout multiple for a bet type.
func Multiplier(t models.BetType) (int64, error) {
	m, ok := multipliers[t]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownBetType, t)
	}
	return m, nil
}

// PotentialWin is the payout if the bet wins.
func PotentialWin(t models.BetType, amount int64) int64 {
	m, err := Multiplier(t)
	if err != nil {
		return 0
	}
	return amount * m
}

// ValidateBetNumber checks the guessed number has the shape its bet type needs.
func ValidateBetNumber(t models.BetType, number string) error {
	var re *regexp.Regexp
	switch t {
	case models.BetOpen, models.BetClose:
		re = singleDigit
	case models.BetJodi:
		re = twoDigits
	case models.BetPanel:
		re = threeDigits
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBetType, t)
	}
	if !re.MatchString(number) {
		return fmt.Errorf("%w: %q for %s bet", ErrInvalidBetNumber, number, t)
	}
	return nil
}

// ValidateBet checks a bet before any money moves. Balance sufficiency is
// left to the wallet so that the check and the debit happen together.
func ValidateBet(status models.MarketStatus, t models.BetType, number string, amount, minBet int64) error {
	if err := ValidateBetNumber(t, number); err != nil {
		return err
	}
	if minBet <= 0 {
		minBet = DefaultMinBet
	}
	if amount < minBet {
		return fmt.Errorf("%w: minimum is %d, got %d", ErrBetTooSmall, minBet, amount)
	}
	if status != models.StatusOpen {
		return fmt.Errorf("%w: status %s", ErrMarketNotOpen, status)
	}
	return nil
}
