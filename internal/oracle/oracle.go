// Package oracle estimates real-world road distance and duration between
// two named places. Implementations never fail a request: when an upstream
// provider is unreachable the city-scale fallback values are returned so
// downstream pricing always has numbers to work with.
package oracle

import "context"

const (
	FallbackDistanceKm  = 5.0
	FallbackDurationMin = 10.0
)

type Oracle interface {
	// Resolve returns the estimated road distance in kilometres and travel
	// duration in minutes between two free-text places.
	Resolve(ctx context.Context, origin, destination string) (distanceKm, durationMin float64)
}

// Fixed always answers with the fallback estimates. It is the zero-config
// oracle used when no provider token is set, and in tests.
type Fixed struct {
	DistanceKm  float64
	DurationMin float64
}

func (f Fixed) Resolve(ctx context.Context, origin, destination string) (float64, float64) {
	km, min := f.DistanceKm, f.DurationMin
	if km <= 0 {
		km = FallbackDistanceKm
	}
	if min <= 0 {
		min = FallbackDurationMin
	}
	return km, min
}
