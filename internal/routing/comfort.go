package routing

import "time"

// ComfortScore rates a travel option for accessibility-sensitive users.
// It is a pure weighted sum over the option's attributes and the time of
// day: identical inputs always produce identical scores.
func ComfortScore(opt ModeOption, now time.Time) int {
	score := 0
	peak := IsPeakHour(now)

	// AC availability.
	if opt.Metadata.AC {
		score += 20
	} else if opt.Kind == KindAuto {
		score += 5 // some autos have AC
	}

	// Guaranteed seating: private transport always, metro when off-peak.
	switch opt.Kind {
	case KindAuto, KindCab:
		score += 15
	case KindMetro:
		if !peak {
			score += 10
		}
	}

	// Door-to-door service.
	if opt.Metadata.DoorToDoor {
		score += 25
	}

	// Walking distance bands.
	switch walking := opt.Metadata.WalkingM; {
	case walking < 100:
		score += 20
	case walking < 200:
		score += 15
	case walking < 300:
		score += 10
	case walking < 500:
		score += 5
	}

	// Transfer bonus, capped at 30 for zero transfers.
	if remaining := 3 - opt.Metadata.Transfers; remaining > 0 {
		score += remaining * 10
	}

	// Off-peak bonus.
	if !peak {
		score += 5
	}

	// Long-journey penalty.
	if opt.TimeMinutes > 60 {
		score -= 10
	} else if opt.TimeMinutes > 45 {
		score -= 5
	}

	if score < 0 {
		score = 0
	}
	return score
}
