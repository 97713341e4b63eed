package transitgraph

import (
	"container/heap"
	"math"
	"sort"
	"strings"

	"marga.transitlab.org/internal/transitdata"
)

// DefaultMaxTransfers is the transfer budget applied when a caller passes a
// negative limit. Zero is a valid budget and means same-line trips only.
const DefaultMaxTransfers = 3

// PathCandidate is the result of a single graph search.
type PathCandidate struct {
	Stations     []string `json:"stations"`
	Edges        []Edge   `json:"edges"`
	Lines        []string `json:"lines"`
	DistanceKm   float64  `json:"distanceKm"`
	Transfers    int      `json:"transfers"`
	TimeMinutes  int      `json:"timeMinutes"`
	CostEstimate int      `json:"costEstimate"`
	Description  string   `json:"description"`
}

// searchState is one expanded path in the priority queue. The whole path is
// carried in the state because the transfer count depends on the sequence
// of lines, not just the final node.
type searchState struct {
	dist      float64
	transfers int
	node      string
	lastLine  string
	path      []string
	edges     []Edge
	seq       int
}

type searchQueue []*searchState

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	// Ties break by insertion order so a fixed graph yields a fixed path.
	return q[i].seq < q[j].seq
}

func (q searchQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *searchQueue) Push(x any) { *q = append(*q, x.(*searchState)) }

func (q *searchQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

type edgeKey struct{ from, to, line string }

func keyOf(e Edge) edgeKey { return edgeKey{e.From, e.To, e.Line} }

// ShortestPath finds the minimum-distance path between two free-text
// endpoints while staying within the transfer budget. It returns false when
// either endpoint does not resolve to a station or no path exists; callers
// treat that as a normal condition and fall back to mode heuristics.
func (g *Graph) ShortestPath(origin, destination string, maxTransfers int) (PathCandidate, bool) {
	if maxTransfers < 0 {
		maxTransfers = DefaultMaxTransfers
	}

	from, confFrom := g.FindStation(origin)
	to, confTo := g.FindStation(destination)
	if confFrom == MatchNone || confTo == MatchNone {
		return PathCandidate{}, false
	}

	fromKey := g.keyFor(from)
	toKey := g.keyFor(to)
	if fromKey == toKey {
		return g.trivialCandidate(from), true
	}

	state := g.dijkstra(fromKey, toKey, maxTransfers, nil, nil)
	if state == nil {
		return PathCandidate{}, false
	}
	return g.toCandidate(state.path, state.edges), true
}

// KShortestPaths finds up to k distinct loop-free paths using Yen's
// algorithm: spur from every node of each accepted path with the edges of
// already-found paths removed, and re-run the shortest-path search.
func (g *Graph) KShortestPaths(origin, destination string, k, maxTransfers int) []PathCandidate {
	if k <= 0 {
		return nil
	}
	if maxTransfers < 0 {
		maxTransfers = DefaultMaxTransfers
	}

	from, confFrom := g.FindStation(origin)
	to, confTo := g.FindStation(destination)
	if confFrom == MatchNone || confTo == MatchNone {
		return []PathCandidate{}
	}

	fromKey := g.keyFor(from)
	toKey := g.keyFor(to)
	if fromKey == toKey {
		return []PathCandidate{g.trivialCandidate(from)}
	}

	first := g.dijkstra(fromKey, toKey, maxTransfers, nil, nil)
	if first == nil {
		return []PathCandidate{}
	}

	accepted := []*searchState{first}
	var pool []*searchState

	for len(accepted) < k {
		prev := accepted[len(accepted)-1]

		for i := 0; i < len(prev.path)-1; i++ {
			spurNode := prev.path[i]
			rootPath := prev.path[:i+1]
			rootEdges := prev.edges[:i]

			bannedEdges := make(map[edgeKey]bool)
			for _, p := range accepted {
				if len(p.path) > i+1 && samePath(p.path[:i+1], rootPath) {
					bannedEdges[keyOf(p.edges[i])] = true
				}
			}
			bannedNodes := make(map[string]bool)
			for _, node := range rootPath[:i] {
				bannedNodes[node] = true
			}

			spur := g.dijkstra(spurNode, toKey, maxTransfers, bannedEdges, bannedNodes)
			if spur == nil {
				continue
			}

			total := &searchState{
				path:  append(append([]string{}, rootPath[:i]...), spur.path...),
				edges: append(append([]Edge{}, rootEdges...), spur.edges...),
			}
			total.dist = pathDistance(total.edges)
			total.transfers = countTransfers(total.edges)
			if total.transfers > maxTransfers || hasLoop(total.path) {
				continue
			}
			if containsPath(accepted, total) || containsPath(pool, total) {
				continue
			}
			pool = append(pool, total)
		}

		if len(pool) == 0 {
			break
		}

		sort.Slice(pool, func(a, b int) bool {
			if pool[a].dist != pool[b].dist {
				return pool[a].dist < pool[b].dist
			}
			return strings.Join(pool[a].path, "|") < strings.Join(pool[b].path, "|")
		})
		accepted = append(accepted, pool[0])
		pool = pool[1:]
	}

	candidates := make([]PathCandidate, len(accepted))
	for i, state := range accepted {
		candidates[i] = g.toCandidate(state.path, state.edges)
	}
	return candidates
}

// dijkstra runs the budgeted search between two node keys, skipping banned
// edges and nodes. It returns nil when no path exists.
func (g *Graph) dijkstra(from, to string, maxTransfers int, bannedEdges map[edgeKey]bool, bannedNodes map[string]bool) *searchState {
	pq := &searchQueue{}
	heap.Init(pq)

	seq := 0
	heap.Push(pq, &searchState{node: from, path: []string{from}})

	visited := make(map[string]bool)

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*searchState)

		if visited[current.node] || current.transfers > maxTransfers {
			continue
		}
		visited[current.node] = true

		if current.node == to {
			return current
		}

		for _, edge := range g.adj[current.node] {
			if visited[edge.To] || bannedNodes[edge.To] || bannedEdges[keyOf(edge)] {
				continue
			}

			next := &searchState{
				dist:      current.dist + edge.DistanceKm,
				transfers: current.transfers,
				node:      edge.To,
				lastLine:  current.lastLine,
				path:      append(append([]string{}, current.path...), edge.To),
				edges:     append(append([]Edge{}, current.edges...), edge),
			}
			if edge.Mode != ModeTransfer {
				if next.lastLine != "" && next.lastLine != edge.Line {
					next.transfers++
				}
				next.lastLine = edge.Line
			}
			if next.transfers > maxTransfers {
				continue
			}
			seq++
			next.seq = seq
			heap.Push(pq, next)
		}
	}

	return nil
}

func (g *Graph) keyFor(station *Station) string {
	return transitdata.Normalize(station.Name)
}

// trivialCandidate is the "already at destination" path.
func (g *Graph) trivialCandidate(station *Station) PathCandidate {
	return PathCandidate{
		Stations:    []string{station.Name},
		Edges:       []Edge{},
		Lines:       []string{},
		Description: "You are already at the destination",
	}
}

// toCandidate converts a raw search result to the caller-facing form.
func (g *Graph) toCandidate(path []string, edges []Edge) PathCandidate {
	stations := make([]string, len(path))
	for i, key := range path {
		stations[i] = g.stations[key].Name
	}

	var distance, minutes float64
	var lines []string
	lastLine := ""
	hasMetro := false
	for _, edge := range edges {
		distance += edge.DistanceKm
		minutes += edge.DistanceKm * minutesPerKm(edge.Mode)
		if edge.Mode == ModeMetro {
			hasMetro = true
		}
		if edge.Mode == ModeTransfer {
			continue
		}
		if edge.Line != lastLine {
			lines = append(lines, edge.Line)
			lastLine = edge.Line
		}
	}

	// Base fare plus a per-extra-line transfer penalty.
	cost := 20
	if hasMetro {
		cost = 25
	}
	if extra := len(lines) - 1; extra > 0 {
		cost += extra * 10
	}

	return PathCandidate{
		Stations:     stations,
		Edges:        edges,
		Lines:        lines,
		DistanceKm:   math.Round(distance*100) / 100,
		Transfers:    countTransfers(edges),
		TimeMinutes:  int(minutes),
		CostEstimate: cost,
		Description:  strings.Join(stations, " → "),
	}
}

// countTransfers counts line changes between consecutive non-transfer
// edges. Walk-transfer edges never count themselves but a line change
// across one does.
func countTransfers(edges []Edge) int {
	transfers := 0
	lastLine := ""
	for _, edge := range edges {
		if edge.Mode == ModeTransfer {
			continue
		}
		if lastLine != "" && lastLine != edge.Line {
			transfers++
		}
		lastLine = edge.Line
	}
	return transfers
}

func pathDistance(edges []Edge) float64 {
	var total float64
	for _, edge := range edges {
		total += edge.DistanceKm
	}
	return total
}

func hasLoop(path []string) bool {
	seen := make(map[string]bool, len(path))
	for _, node := range path {
		if seen[node] {
			return true
		}
		seen[node] = true
	}
	return false
}

func samePath(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsPath(states []*searchState, candidate *searchState) bool {
	for _, state := range states {
		if samePath(state.path, candidate.path) {
			return true
		}
	}
	return false
}
