package transitdata

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store holds the loaded static data and exposes read-only views of it.
// A Store is built once at startup and shared freely between requests.
type Store struct {
	lines LineSet
	fares FareTable
}

// Load reads transit_lines.json and fares.json from dataDir and validates
// the line definitions. Malformed static data is a startup failure, not a
// per-request condition, so Load returns an error rather than building a
// partial store.
func Load(dataDir string) (*Store, error) {
	var lines LineSet
	if err := readJSON(filepath.Join(dataDir, "transit_lines.json"), &lines); err != nil {
		return nil, fmt.Errorf("loading transit lines: %w", err)
	}

	var fares FareTable
	if err := readJSON(filepath.Join(dataDir, "fares.json"), &fares); err != nil {
		return nil, fmt.Errorf("loading fares: %w", err)
	}

	store := &Store{lines: lines, fares: fares}
	if err := store.validate(); err != nil {
		return nil, err
	}
	return store, nil
}

// NewStore builds a Store from already-decoded documents. Used by tests and
// by callers that fetch the documents from elsewhere.
func NewStore(lines LineSet, fares FareTable) (*Store, error) {
	store := &Store{lines: lines, fares: fares}
	if err := store.validate(); err != nil {
		return nil, err
	}
	return store, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// validate fails fast on data that would otherwise build a broken graph:
// lines without enough stations, bus routes that are not "A - B" pairs, and
// interchanges that reference stations absent from every line.
func (s *Store) validate() error {
	for city, cityLines := range s.lines.Cities {
		known := make(map[string]bool)

		for _, group := range []struct {
			mode  string
			lines []Line
		}{
			{"metro", cityLines.Metro.Lines},
			{"suburban_rail", cityLines.SuburbanRail.Lines},
		} {
			for _, line := range group.lines {
				if line.Name == "" {
					return fmt.Errorf("%s: unnamed %s line", city, group.mode)
				}
				if len(line.Stations) < 2 {
					return fmt.Errorf("%s: %s line %q needs at least 2 stations", city, group.mode, line.Name)
				}
				for _, station := range line.Stations {
					if strings.TrimSpace(station) == "" {
						return fmt.Errorf("%s: %s line %q has an empty station name", city, group.mode, line.Name)
					}
					known[normalize(station)] = true
				}
			}
		}

		for _, route := range cityLines.Bus.MajorRoutes {
			a, b, ok := SplitRoute(route.Route)
			if !ok {
				return fmt.Errorf("%s: bus route %q is not an \"A - B\" pair: %q", city, route.Number, route.Route)
			}
			known[normalize(a)] = true
			known[normalize(b)] = true
		}

		for _, interchanges := range [][]string{cityLines.Metro.Interchange, cityLines.SuburbanRail.Interchange} {
			for _, station := range interchanges {
				if !known[normalize(station)] {
					return fmt.Errorf("%s: interchange %q is not a station on any line", city, station)
				}
			}
		}
	}
	return nil
}

// City returns the line definitions for a city, matching case-insensitively.
func (s *Store) City(name string) (CityLines, bool) {
	for city, lines := range s.lines.Cities {
		if strings.EqualFold(city, name) {
			return lines, true
		}
	}
	return CityLines{}, false
}

// CityFares returns the fare constants for a city with defaults applied.
func (s *Store) CityFares(name string) CityFares {
	for city, fares := range s.fares.Cities {
		if strings.EqualFold(city, name) {
			return fares.withDefaults()
		}
	}
	return DefaultFares()
}

// Cities lists the configured city names in sorted order.
func (s *Store) Cities() []string {
	cities := make([]string, 0, len(s.lines.Cities))
	for city := range s.lines.Cities {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// SplitRoute splits an "A - B" route string into its two hub names.
func SplitRoute(route string) (string, string, bool) {
	parts := strings.Split(route, " - ")
	if len(parts) != 2 {
		return "", "", false
	}
	a := strings.TrimSpace(parts[0])
	b := strings.TrimSpace(parts[1])
	if a == "" || b == "" {
		return "", "", false
	}
	return a, b, true
}

// normalize produces the interned station key: case-folded and trimmed.
func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Normalize is the exported form used by the graph builder so station
// identity is decided in exactly one place.
func Normalize(name string) string {
	return normalize(name)
}
