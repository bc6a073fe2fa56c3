package common

import (
	"testing"
	"time"

	"matka-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestRupees(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "₹0"},
		{10000, "₹10000"},
		{-250, "-₹250"},
	}
	for _, tt := range tests {
		if got := Rupees(tt.amount); got != tt.want {
			t.Errorf("Rupees(%d) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestRupeesWithUsd(t *testing.T) {
	got := RupeesWithUsd(10000, decimal.RequireFromString("119.047").Round(2))
	if got != "₹10000 (~$119.05)" {
		t.Errorf("Unexpected rendering %q", got)
	}
}

func TestSignedRupees(t *testing.T) {
	if got := SignedRupees(models.KindCredit, 500); got != "+₹500" {
		t.Errorf("Expected +₹500, got %q", got)
	}
	if got := SignedRupees(models.KindDebit, 300); got != "-₹300" {
		t.Errorf("Expected -₹300, got %q", got)
	}
}

func TestTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 5, 7, 0, time.UTC)
	if got := Timestamp(ts); got != "2024-03-01 09:05:07" {
		t.Errorf("Unexpected timestamp %q", got)
	}
}

func TestStatusBadge(t *testing.T) {
	tests := map[models.MarketStatus]string{
		models.StatusOpen:       "● OPEN",
		models.StatusResultSoon: "◐ RESULT SOON",
		models.StatusClosed:     "○ CLOSED",
		models.MarketStatus(""): "○ CLOSED",
	}
	for status, want := range tests {
		if got := StatusBadge(status); got != want {
			t.Errorf("StatusBadge(%q) = %q, want %q", status, got, want)
		}
	}
}
