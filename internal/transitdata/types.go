// Package transitdata loads the curated static transit data (line
// definitions and fare tables) that the route-option engine is built from.
// The data is read once at startup and is read-only afterwards.
package transitdata

// LineSet is the root of the transit_lines.json document.
type LineSet struct {
	Cities map[string]CityLines `json:"cities"`
}

// CityLines describes the transit network of a single city.
type CityLines struct {
	Metro        LineGroup           `json:"metro"`
	Bus          BusGroup            `json:"bus"`
	SuburbanRail LineGroup           `json:"suburban_rail"`
	Hubs         []string            `json:"hubs"`
	Aliases      map[string][]string `json:"aliases"`
}

// LineGroup holds the lines of one rail-like mode, plus the stations where
// those lines are co-located (interchanges).
type LineGroup struct {
	Lines       []Line   `json:"lines"`
	Interchange []string `json:"interchange"`
}

// Line is a single metro or suburban rail line with its ordered station list.
type Line struct {
	Name      string   `json:"name"`
	Route     string   `json:"route"`
	Stations  []string `json:"stations"`
	Frequency string   `json:"frequency"`
}

// BusGroup holds the major bus routes of a city.
type BusGroup struct {
	MajorRoutes []BusRoute `json:"major_routes"`
}

// BusRoute is a major bus route expressed as a "A - B" hub pair.
type BusRoute struct {
	Number    string `json:"number"`
	Route     string `json:"route"`
	Frequency string `json:"frequency"`
}

// CanonicalHub returns the city's primary hub, used for metro+bus splits.
func (c CityLines) CanonicalHub() string {
	if len(c.Hubs) > 0 {
		return c.Hubs[0]
	}
	return "City Center"
}
