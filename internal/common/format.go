package common

import (
	"fmt"
	"strings"
	"time"

	"matka-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// Box widths for CLI reports
	DefaultWidth = 80
	WideWidth    = 100

	// TimestampLayout is how ledger entries are dated in reports
	TimestampLayout = "2006-01-02 15:04:05"
)

// PrintHeader prints title between two rules of '=' with a blank line above
func PrintHeader(title string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Printf("\n%s\n%s\n%s\n", rule, title, rule)
}

// PrintFooter closes a report with message between two rules of '='
func PrintFooter(message string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Printf("\n%s\n%s\n%s\n\n", rule, message, rule)
}

// PrintBoxSeparator prints the divider under a board or report heading
func PrintBoxSeparator(width int) {
	fmt.Println("├" + strings.Repeat("─", width))
}

// BoxPrefix returns the tree prefix for a list row
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "│  "
}

// BoxDetailPrefix returns the prefix for a continuation line under a list row
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

// Rupees renders an amount in minor units as ₹N
func Rupees(amount int64) string {
	if amount < 0 {
		return fmt.Sprintf("-₹%d", -amount)
	}
	return fmt.Sprintf("₹%d", amount)
}

// RupeesWithUsd renders ₹N (~$X.YY)
func RupeesWithUsd(amount int64, usd decimal.Decimal) string {
	return fmt.Sprintf("%s (~$%s)", Rupees(amount), usd.StringFixed(2))
}

// SignedRupees prefixes credits with + and debits with -
func SignedRupees(kind models.TransactionKind, amount int64) string {
	if kind == models.KindDebit {
		return "-" + Rupees(amount)
	}
	return "+" + Rupees(amount)
}

// Timestamp formats t with TimestampLayout
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// StatusBadge is the board label for a market status
func StatusBadge(status models.MarketStatus) string {
	switch status {
	case models.StatusOpen:
		return "● OPEN"
	case models.StatusResultSoon:
		return "◐ RESULT SOON"
	default:
		return "○ CLOSED"
	}
}
