package transitgraph

import (
	"sort"
	"strings"

	"marga.transitlab.org/internal/transitdata"
)

// MatchConfidence tells a caller how a free-text query was resolved to a
// station, so it can distinguish a confident match from a best guess.
type MatchConfidence int

const (
	MatchNone MatchConfidence = iota
	MatchFuzzy
	MatchAlias
	MatchExact
)

func (c MatchConfidence) String() string {
	switch c {
	case MatchExact:
		return "exact"
	case MatchAlias:
		return "alias"
	case MatchFuzzy:
		return "fuzzy"
	default:
		return "none"
	}
}

// FindStation resolves a free-text place name to a graph station.
// Precedence is exact match, then alias-table match, then substring match
// in either direction. Substring ties are broken deterministically by
// shortest station name, then lexicographically.
func (g *Graph) FindStation(query string) (*Station, MatchConfidence) {
	q := transitdata.Normalize(query)
	if q == "" {
		return nil, MatchNone
	}

	if station, ok := g.stations[q]; ok {
		return station, MatchExact
	}

	for _, candidate := range g.AliasCandidates(query) {
		if candidate == q {
			continue
		}
		if station, ok := g.stations[candidate]; ok {
			return station, MatchAlias
		}
	}

	if station := g.substringMatch(q); station != nil {
		return station, MatchFuzzy
	}
	return nil, MatchNone
}

// substringMatch returns the best substring match for q, or nil.
func (g *Graph) substringMatch(q string) *Station {
	var best string
	for _, key := range g.order {
		if !strings.Contains(key, q) && !strings.Contains(q, key) {
			continue
		}
		if best == "" || len(key) < len(best) || (len(key) == len(best) && key < best) {
			best = key
		}
	}
	if best == "" {
		return nil
	}
	return g.stations[best]
}

// AliasCandidates returns the normalized names a location may appear under:
// the location itself plus every expansion from the city's alias table, in
// sorted order. A bus route mentioning any candidate is treated as serving
// the location.
func (g *Graph) AliasCandidates(location string) []string {
	loc := transitdata.Normalize(location)
	seen := map[string]bool{loc: true}

	for key, expansions := range g.aliases {
		if key == loc || containsFold(expansions, loc) {
			seen[key] = true
			for _, expansion := range expansions {
				seen[expansion] = true
			}
		}
	}

	candidates := make([]string, 0, len(seen))
	for candidate := range seen {
		candidates = append(candidates, candidate)
	}
	sort.Strings(candidates)
	return candidates
}

// RouteContains reports whether a route description text mentions the
// location directly or through one of its aliases.
func (g *Graph) RouteContains(routeText, location string) bool {
	route := transitdata.Normalize(routeText)
	for _, candidate := range g.AliasCandidates(location) {
		if strings.Contains(route, candidate) {
			return true
		}
	}
	return false
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// normalizeAliases case-folds the alias table once at build time so lookups
// never allocate.
func normalizeAliases(aliases map[string][]string) map[string][]string {
	normalized := make(map[string][]string, len(aliases))
	for key, expansions := range aliases {
		folded := make([]string, len(expansions))
		for i, expansion := range expansions {
			folded[i] = transitdata.Normalize(expansion)
		}
		normalized[transitdata.Normalize(key)] = folded
	}
	return normalized
}
