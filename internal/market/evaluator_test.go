package market

import (
	"testing"
	"time"

	"matka-ledger-go/internal/models"
)

func hm(h, m int) int { return h*60 + m }

func TestEvaluate_SameDayWindow(t *testing.T) {
	openMin, closeMin := hm(9, 0), hm(11, 0)
	tests := []struct {
		now  int
		want models.MarketStatus
	}{
		{hm(9, 0), models.StatusOpen},
		{hm(10, 59), models.StatusOpen},
		{hm(11, 0), models.StatusResultSoon},
		{hm(11, 14), models.StatusResultSoon},
		{hm(11, 15), models.StatusClosed},
		{hm(8, 59), models.StatusClosed},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.now, openMin, closeMin); got != tt.want {
			t.Errorf("Evaluate(%s, 09:00, 11:00) = %s, want %s", FormatMinutes(tt.now), got, tt.want)
		}
	}
}

func TestEvaluate_OvernightWindow(t *testing.T) {
	openMin, closeMin := hm(21, 30), hm(0, 30)
	tests := []struct {
		now  int
		want models.MarketStatus
	}{
		{hm(21, 30), models.StatusOpen},
		{hm(22, 0), models.StatusOpen},
		{hm(23, 59), models.StatusOpen},
		{hm(0, 0), models.StatusOpen},
		{hm(0, 15), models.StatusOpen},
		{hm(0, 30), models.StatusResultSoon},
		{hm(0, 44), models.StatusResultSoon},
		{hm(0, 45), models.StatusClosed},
		{hm(1, 0), models.StatusClosed},
		{hm(20, 0), models.StatusClosed},
		{hm(21, 29), models.StatusClosed},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.now, openMin, closeMin); got != tt.want {
			t.Errorf("Evaluate(%s, 21:30, 00:30) = %s, want %s", FormatMinutes(tt.now), got, tt.want)
		}
	}
}

func TestEvaluate_EqualOpenClose(t *testing.T) {
	at := hm(12, 0)
	if got := Evaluate(at, at, at); got != models.StatusResultSoon {
		t.Errorf("Expected RESULT_SOON at close of zero-length window, got %s", got)
	}
	if got := Evaluate(hm(11, 59), at, at); got != models.StatusClosed {
		t.Errorf("Expected CLOSED before zero-length window, got %s", got)
	}
	if got := Evaluate(hm(12, 15), at, at); got != models.StatusClosed {
		t.Errorf("Expected CLOSED after grace, got %s", got)
	}
}

func TestEvaluator_CustomGrace(t *testing.T) {
	e := NewEvaluator(30 * time.Minute)
	openMin, closeMin := hm(9, 0), hm(11, 0)

	if got := e.Evaluate(hm(11, 29), openMin, closeMin); got != models.StatusResultSoon {
		t.Errorf("Expected RESULT_SOON within 30m grace, got %s", got)
	}
	if got := e.Evaluate(hm(11, 30), openMin, closeMin); got != models.StatusClosed {
		t.Errorf("Expected CLOSED after 30m grace, got %s", got)
	}
}

func TestEvaluator_SubMinuteGraceRoundsUp(t *testing.T) {
	openMin, closeMin := hm(9, 0), hm(11, 0)
	tests := []struct {
		grace time.Duration
		now   int
		want  models.MarketStatus
	}{
		{30 * time.Second, hm(11, 0), models.StatusResultSoon},
		{30 * time.Second, hm(11, 1), models.StatusClosed},
		{90 * time.Second, hm(11, 1), models.StatusResultSoon},
		{90 * time.Second, hm(11, 2), models.StatusClosed},
		{2 * time.Minute, hm(11, 1), models.StatusResultSoon},
		{2 * time.Minute, hm(11, 2), models.StatusClosed},
	}
	for _, tt := range tests {
		e := NewEvaluator(tt.grace)
		if got := e.Evaluate(tt.now, openMin, closeMin); got != tt.want {
			t.Errorf("grace=%s Evaluate(%s, 09:00, 11:00) = %s, want %s", tt.grace, FormatMinutes(tt.now), got, tt.want)
		}
	}
}

func TestNewEvaluator_NonPositiveGraceFallsBack(t *testing.T) {
	if e := NewEvaluator(0); e.Grace != DefaultResultGrace {
		t.Errorf("Expected default grace, got %s", e.Grace)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	for now := 0; now < MinutesPerDay; now++ {
		first := Evaluate(now, hm(21, 30), hm(0, 30))
		second := Evaluate(now, hm(21, 30), hm(0, 30))
		if first != second {
			t.Fatalf("Evaluate not deterministic at %s: %s vs %s", FormatMinutes(now), first, second)
		}
	}
}
