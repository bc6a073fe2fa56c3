package market

import (
	"time"

	"matka-ledger-go/internal/models"
)

// Clock reduces instants to minutes since midnight in a reference time zone.
// Offset shifts the current time only; schedule instants are never offset.
type Clock struct {
	Offset   time.Duration
	Location *time.Location
	Now      func() time.Time
}

// NewClock returns a clock reading wall time through time.Now.
func NewClock(offset time.Duration, loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Offset: offset, Location: loc, Now: time.Now}
}

func (c Clock) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Current returns the domain time: now plus the configured offset, in the
// reference time zone.
func (c Clock) Current() time.Time {
	return c.At(c.wall())
}

// wall reads the injected time source, falling back to time.Now.
func (c Clock) wall() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// At applies the offset to an arbitrary wall-clock instant.
func (c Clock) At(t time.Time) time.Time {
	return t.Add(c.Offset).In(c.location())
}

// MinutesAt returns minutes since midnight of t after the offset is applied.
func (c Clock) MinutesAt(t time.Time) int {
	return MinuteOfDay(c.At(t))
}

// ScheduleMinutes reduces an epoch-seconds schedule instant to minutes since
// midnight in the reference zone.
func (c Clock) ScheduleMinutes(epochSeconds int64) int {
	return MinuteOfDay(time.Unix(epochSeconds, 0).In(c.location()))
}

// MinuteOfDay returns t's hour and minute as minutes since midnight.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// FormatMinutes renders minutes since midnight as HH:MM.
func FormatMinutes(m int) string {
	m = ((m % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format("15:04")
}

// Status evaluates a game schedule at wall-clock instant now.
func (e Evaluator) Status(c Clock, now time.Time, sched models.GameSchedule) models.MarketStatus {
	return e.Evaluate(c.MinutesAt(now), c.ScheduleMinutes(sched.OpenTime), c.ScheduleMinutes(sched.CloseTime))
}
