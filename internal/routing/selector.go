package routing

import "fmt"

// Selection labels the candidates of a single trip along the four axes a
// rider actually decides by. Pointers reference entries of AllOptions.
type Selection struct {
	Cheapest        *ModeOption  `json:"cheapest"`
	Fastest         *ModeOption  `json:"fastest"`
	Balanced        *ModeOption  `json:"balanced"`
	MostComfortable *ModeOption  `json:"mostComfortable"`
	AllOptions      []ModeOption `json:"allOptions"`
	Recommendation  string       `json:"recommendation"`
}

// Select picks one winner per axis. Cost ties on the comfort axis fall
// back to the static mode prior so results stay deterministic.
func Select(options []ModeOption) Selection {
	sel := Selection{AllOptions: options}
	if len(options) == 0 {
		return sel
	}

	cheapest, fastest, balanced, comfortable := 0, 0, 0, 0
	for i := 1; i < len(options); i++ {
		if options[i].Cost < options[cheapest].Cost {
			cheapest = i
		}
		if options[i].TimeMinutes < options[fastest].TimeMinutes {
			fastest = i
		}
		if costPerMinute(options[i]) < costPerMinute(options[balanced]) {
			balanced = i
		}
		if moreComfortable(options[i], options[comfortable]) {
			comfortable = i
		}
	}

	sel.Cheapest = &sel.AllOptions[cheapest]
	sel.Fastest = &sel.AllOptions[fastest]
	sel.Balanced = &sel.AllOptions[balanced]
	sel.MostComfortable = &sel.AllOptions[comfortable]
	sel.Recommendation = recommendation(sel)
	return sel
}

func costPerMinute(opt ModeOption) float64 {
	minutes := opt.TimeMinutes
	if minutes < 1 {
		minutes = 1
	}
	return opt.Cost / float64(minutes)
}

func moreComfortable(a, b ModeOption) bool {
	if a.ComfortScore != b.ComfortScore {
		return a.ComfortScore > b.ComfortScore
	}
	return comfortPrior(a.Kind) > comfortPrior(b.Kind)
}

func recommendation(sel Selection) string {
	if sel.Cheapest == nil || sel.Fastest == nil {
		return ""
	}
	if sel.Cheapest.Kind == sel.Fastest.Kind {
		return fmt.Sprintf("%s is both the cheapest and the fastest way (₹%.0f, ~%d min)",
			sel.Cheapest.Kind, sel.Cheapest.Cost, sel.Cheapest.TimeMinutes)
	}
	return fmt.Sprintf("%s is cheapest (₹%.0f), %s is fastest (~%d min); %s balances both",
		sel.Cheapest.Kind, sel.Cheapest.Cost,
		sel.Fastest.Kind, sel.Fastest.TimeMinutes,
		sel.Balanced.Kind)
}
