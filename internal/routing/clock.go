package routing

import "time"

// Clock supplies the current time to the engine. Injecting it keeps
// surge and comfort calculations deterministic in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock used in production.
var SystemClock Clock = systemClock{}

// FixedClock always reports the same instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// IsPeakHour reports whether t falls in a weekday peak window
// (07:00-10:00 or 17:00-20:00).
func IsPeakHour(t time.Time) bool {
	weekday := t.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}
	hour := t.Hour()
	return (hour >= 7 && hour < 10) || (hour >= 17 && hour < 20)
}

// SurgeMultiplier is the peak-hour cost multiplier applied to
// demand-responsive modes (auto/cab).
func SurgeMultiplier(t time.Time) float64 {
	if IsPeakHour(t) {
		return 1.5
	}
	return 1.0
}

// IsNightTime reports whether t is between 22:00 and 06:00.
func IsNightTime(t time.Time) bool {
	hour := t.Hour()
	return hour >= 22 || hour < 6
}
