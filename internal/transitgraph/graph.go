// Package transitgraph builds an in-memory graph of stations and line
// connections from the static line definitions, and runs shortest-path and
// k-shortest-path searches over it. The graph is built once at startup and
// is read-only afterwards, so it can be shared across requests without
// locking.
package transitgraph

import (
	"fmt"
	"strings"

	"marga.transitlab.org/internal/transitdata"
)

// Mode is the travel mode carried by an edge.
type Mode string

const (
	ModeMetro    Mode = "metro"
	ModeBus      Mode = "bus"
	ModeRail     Mode = "rail"
	ModeTransfer Mode = "walk-transfer"
)

// Per-mode distance defaults (km per hop) used when exact geodistance is
// unknown, and the fixed platform-walk distance for interchange edges.
const (
	metroHopKm    = 2.5
	railHopKm     = 5.0
	busHopKm      = 3.0
	interchangeKm = 0.5
)

// minutesPerKm returns the speed constant used for time estimates.
func minutesPerKm(mode Mode) float64 {
	switch mode {
	case ModeMetro:
		return 2
	case ModeBus:
		return 4
	case ModeRail:
		return 3
	default:
		return 2
	}
}

// Station is a graph node. Name is the canonical display name; the
// normalized form of the name is the node identity.
type Station struct {
	Name  string
	Lines []string
}

// Edge is a directed connection between two stations. Line edges are always
// created in bidirectional pairs.
type Edge struct {
	From       string
	To         string
	Mode       Mode
	Line       string
	Frequency  string
	DistanceKm float64
}

// Graph owns the station set and the adjacency list for one city.
type Graph struct {
	city      string
	stations  map[string]*Station
	order     []string
	adj       map[string][]Edge
	aliases   map[string][]string
	hub       string
	edgeCount int
}

// Build constructs the graph for a city from its line definitions. The
// build is pure and deterministic: the same input always produces the same
// station set and edge count. An interchange naming an unknown station is a
// data-integrity failure and aborts the build.
func Build(city string, lines transitdata.CityLines) (*Graph, error) {
	g := &Graph{
		city:     city,
		stations: make(map[string]*Station),
		adj:      make(map[string][]Edge),
		aliases:  normalizeAliases(lines.Aliases),
		hub:      lines.CanonicalHub(),
	}

	for _, line := range lines.Metro.Lines {
		g.addLine(line.Stations, ModeMetro, line.Name, line.Frequency, metroHopKm)
	}

	for _, route := range lines.Bus.MajorRoutes {
		a, b, ok := transitdata.SplitRoute(route.Route)
		if !ok {
			return nil, fmt.Errorf("%s: bus route %q is not an \"A - B\" pair", city, route.Number)
		}
		g.addLine([]string{a, b}, ModeBus, "Bus "+route.Number, route.Frequency, busHopKm)
	}

	for _, line := range lines.SuburbanRail.Lines {
		g.addLine(line.Stations, ModeRail, line.Name, line.Frequency, railHopKm)
	}

	if err := g.addInterchanges(lines.Metro.Interchange); err != nil {
		return nil, err
	}
	if err := g.addInterchanges(lines.SuburbanRail.Interchange); err != nil {
		return nil, err
	}

	return g, nil
}

// addLine adds bidirectional edges between consecutive stations.
func (g *Graph) addLine(stations []string, mode Mode, line, frequency string, hopKm float64) {
	for i := 0; i < len(stations)-1; i++ {
		from := g.intern(stations[i], line)
		to := g.intern(stations[i+1], line)

		g.adj[from] = append(g.adj[from], Edge{
			From: from, To: to,
			Mode: mode, Line: line, Frequency: frequency, DistanceKm: hopKm,
		})
		g.adj[to] = append(g.adj[to], Edge{
			From: to, To: from,
			Mode: mode, Line: line, Frequency: frequency, DistanceKm: hopKm,
		})
		g.edgeCount += 2
	}
}

// addInterchanges adds a walk-transfer edge between every pair of
// co-located interchange stations.
func (g *Graph) addInterchanges(interchanges []string) error {
	keys := make([]string, len(interchanges))
	for i, name := range interchanges {
		key := transitdata.Normalize(name)
		if _, ok := g.stations[key]; !ok {
			return fmt.Errorf("%s: interchange %q references an unknown station", g.city, name)
		}
		keys[i] = key
	}

	for i := 0; i < len(keys); i++ {
		for j := 0; j < len(keys); j++ {
			if i == j {
				continue
			}
			g.adj[keys[i]] = append(g.adj[keys[i]], Edge{
				From: keys[i], To: keys[j],
				Mode: ModeTransfer, Line: "Station Transfer",
				Frequency: "immediate", DistanceKm: interchangeKm,
			})
			g.edgeCount++
		}
	}
	return nil
}

// intern returns the node key for a station name, creating the station on
// first sight and recording its line membership.
func (g *Graph) intern(name, line string) string {
	key := transitdata.Normalize(name)
	station, ok := g.stations[key]
	if !ok {
		station = &Station{Name: trimmed(name)}
		g.stations[key] = station
		g.order = append(g.order, key)
	}
	for _, existing := range station.Lines {
		if existing == line {
			return key
		}
	}
	station.Lines = append(station.Lines, line)
	return key
}

// City returns the city this graph was built for.
func (g *Graph) City() string { return g.city }

// Hub returns the city's canonical transfer hub.
func (g *Graph) Hub() string { return g.hub }

// StationCount returns the number of distinct stations in the graph.
func (g *Graph) StationCount() int { return len(g.stations) }

// EdgeCount returns the number of directed edges in the graph.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// StationNames returns the canonical station names in build order.
func (g *Graph) StationNames() []string {
	names := make([]string, len(g.order))
	for i, key := range g.order {
		names[i] = g.stations[key].Name
	}
	return names
}

func trimmed(name string) string {
	// Canonical display names keep their case but lose stray whitespace.
	return strings.TrimSpace(name)
}
