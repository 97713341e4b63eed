package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"marga.transitlab.org/internal/oracle"
	"marga.transitlab.org/internal/transitdata"
	"marga.transitlab.org/internal/transitgraph"
)

// Engine answers travel-option queries for every city in the data store.
// All city graphs are built eagerly at construction so bad data fails at
// startup rather than on a rider's request.
type Engine struct {
	store       *transitdata.Store
	graphs      map[string]*transitgraph.Graph
	oracle      oracle.Oracle
	clock       Clock
	logger      *slog.Logger
	defaultCity string
}

func NewEngine(store *transitdata.Store, orc oracle.Oracle, clock Clock, logger *slog.Logger) (*Engine, error) {
	if orc == nil {
		orc = oracle.Fixed{}
	}
	if clock == nil {
		clock = SystemClock
	}

	cities := store.Cities()
	if len(cities) == 0 {
		return nil, fmt.Errorf("transit store has no cities")
	}

	graphs := make(map[string]*transitgraph.Graph, len(cities))
	for _, city := range cities {
		lines, _ := store.City(city)
		g, err := transitgraph.Build(city, lines)
		if err != nil {
			return nil, fmt.Errorf("building graph for %s: %w", city, err)
		}
		graphs[transitdata.Normalize(city)] = g
		logger.Info("transit graph ready",
			slog.String("city", city),
			slog.Int("stations", g.StationCount()),
			slog.Int("edges", g.EdgeCount()))
	}

	return &Engine{
		store:       store,
		graphs:      graphs,
		oracle:      orc,
		clock:       clock,
		logger:      logger,
		defaultCity: cities[0],
	}, nil
}

// Request is one travel-options query. Distance and duration hints come
// from the caller when already known; non-positive hints are resolved
// through the oracle.
type Request struct {
	Origin          string
	Destination     string
	City            string
	Group           GroupSpec
	DistanceKmHint  float64
	DurationMinHint float64
}

// Result is the full answer for one trip.
type Result struct {
	Origin             string       `json:"origin"`
	Destination        string       `json:"destination"`
	City               string       `json:"city"`
	AlreadyThere       bool         `json:"alreadyThere,omitempty"`
	Cheapest           *ModeOption  `json:"cheapest,omitempty"`
	Fastest            *ModeOption  `json:"fastest,omitempty"`
	Balanced           *ModeOption  `json:"balanced,omitempty"`
	MostComfortable    *ModeOption  `json:"mostComfortable,omitempty"`
	AllOptions         []ModeOption `json:"allOptions"`
	RideOptions        []RideOption `json:"rideOptions,omitempty"`
	RideRecommendation string       `json:"rideRecommendation,omitempty"`
	Recommendation     string       `json:"recommendation"`
	DistanceKm         float64      `json:"distanceKm"`
	DurationMin        float64      `json:"durationMin"`
	SurgeActive        bool         `json:"surgeActive"`
}

// ComputeOptions always returns a usable result. Unknown cities fall back
// to the default city's network, and distance resolution failures fall
// back to conservative estimates inside the oracle.
func (e *Engine) ComputeOptions(ctx context.Context, req Request) Result {
	city, lines, graph := e.resolveCity(req.City)
	now := e.clock.Now()
	surge := SurgeMultiplier(now)

	res := Result{
		Origin:      req.Origin,
		Destination: req.Destination,
		City:        city,
		SurgeActive: surge > 1,
	}

	if graph != nil {
		if o, oc := graph.FindStation(req.Origin); oc != transitgraph.MatchNone {
			if d, dc := graph.FindStation(req.Destination); dc != transitgraph.MatchNone && o.Name == d.Name {
				res.AlreadyThere = true
				res.Recommendation = "You are already at the destination"
				return res
			}
		}
	}

	km, min := req.DistanceKmHint, req.DurationMinHint
	if km <= 0 || min <= 0 {
		km, min = e.oracle.Resolve(ctx, req.Origin, req.Destination)
	}
	km, min = sanitizeEstimates(km, min)
	res.DistanceKm = km
	res.DurationMin = min

	builder := &Builder{
		City:  city,
		Lines: lines,
		Fares: e.store.CityFares(city),
		Graph: graph,
		Clock: e.clock,
	}
	options := builder.BuildOptions(req.Origin, req.Destination, km, req.Group)

	sel := Select(options)
	res.Cheapest = sel.Cheapest
	res.Fastest = sel.Fastest
	res.Balanced = sel.Balanced
	res.MostComfortable = sel.MostComfortable
	res.AllOptions = sel.AllOptions
	res.Recommendation = sel.Recommendation

	rides := EstimateRides(req.Origin, req.Destination, km, surge, "", 0)
	res.RideOptions = rides.Options
	res.RideRecommendation = rides.Recommendation

	e.logger.Info("travel options computed",
		slog.String("city", city),
		slog.String("origin", req.Origin),
		slog.String("destination", req.Destination),
		slog.Float64("distance_km", km),
		slog.Int("options", len(res.AllOptions)))
	return res
}

// AccessiblePlan orders the same candidate set for riders who prioritize
// comfort over cost, such as elderly travellers.
type AccessiblePlan struct {
	MostComfortable *ModeOption  `json:"mostComfortable"`
	Fastest         *ModeOption  `json:"fastest"`
	AllOptions      []ModeOption `json:"allOptionsRankedByComfort"`
	Recommendation  string       `json:"recommendation"`
	SafetyNote      string       `json:"safetyNote,omitempty"`
	RideOptions     []RideOption `json:"rideOptions,omitempty"`
}

func (e *Engine) PlanAccessibleRoute(ctx context.Context, req Request) AccessiblePlan {
	res := e.ComputeOptions(ctx, req)

	ranked := make([]ModeOption, len(res.AllOptions))
	copy(ranked, res.AllOptions)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ComfortScore != ranked[j].ComfortScore {
			return ranked[i].ComfortScore > ranked[j].ComfortScore
		}
		return ranked[i].TimeMinutes < ranked[j].TimeMinutes
	})

	plan := AccessiblePlan{
		Fastest:    res.Fastest,
		AllOptions: ranked,
	}
	if len(ranked) > 0 {
		plan.MostComfortable = &plan.AllOptions[0]
		plan.Recommendation = fmt.Sprintf("%s is the most comfortable choice (₹%.0f, ~%d min, door-to-door: %v)",
			ranked[0].Kind, ranked[0].Cost, ranked[0].TimeMinutes, ranked[0].Metadata.DoorToDoor)
	}
	if IsNightTime(e.clock.Now()) {
		plan.SafetyNote = "Late-night travel: prefer a booked cab over hailing on the street"
	}

	rides := EstimateRides(req.Origin, req.Destination, res.DistanceKm, SurgeMultiplier(e.clock.Now()), "elderly", 0)
	plan.RideOptions = rides.Options
	return plan
}

// FindKRoutes returns up to k alternative rail/bus paths through the city
// graph, shortest first.
func (e *Engine) FindKRoutes(origin, destination, city string, k, maxTransfers int) []transitgraph.PathCandidate {
	_, _, graph := e.resolveCity(city)
	if graph == nil {
		return nil
	}
	if k < 1 {
		k = 1
	}
	if maxTransfers < 0 {
		maxTransfers = transitgraph.DefaultMaxTransfers
	}
	return graph.KShortestPaths(origin, destination, k, maxTransfers)
}

// CurrentSurge reports the surge multiplier at the engine clock's notion
// of now.
func (e *Engine) CurrentSurge() float64 {
	return SurgeMultiplier(e.clock.Now())
}

// Cities lists the cities the engine can answer for.
func (e *Engine) Cities() []string {
	return e.store.Cities()
}

// StationNames lists the known stations of a city, or nil when the city
// is unknown.
func (e *Engine) StationNames(city string) []string {
	g, ok := e.graphs[transitdata.Normalize(city)]
	if !ok {
		return nil
	}
	return g.StationNames()
}

func (e *Engine) resolveCity(city string) (string, transitdata.CityLines, *transitgraph.Graph) {
	name := strings.TrimSpace(city)
	if name == "" {
		name = e.defaultCity
	}
	lines, ok := e.store.City(name)
	if !ok {
		e.logger.Warn("unknown city, using default", slog.String("requested", city), slog.String("default", e.defaultCity))
		name = e.defaultCity
		lines, _ = e.store.City(name)
	}
	return name, lines, e.graphs[transitdata.Normalize(name)]
}

// sanitizeEstimates rejects implausible upstream numbers for an in-city
// trip and replaces them with conservative ones.
func sanitizeEstimates(km, min float64) (float64, float64) {
	if km <= 0 {
		km = oracle.FallbackDistanceKm
	}
	if km > 100 {
		km = 30
	}
	if min <= 0 || min > 300 {
		min = km * 3
	}
	return km, min
}
