package routing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"marga.transitlab.org/internal/transitdata"
	"marga.transitlab.org/internal/transitgraph"
)

// Builder synthesizes one ModeOption per transport mode for a single
// request. It always produces something to offer: when neither the graph
// nor the route tables know the endpoints, it falls back to generic
// fare/speed formulas instead of omitting the mode.
type Builder struct {
	City  string
	Lines transitdata.CityLines
	Fares transitdata.CityFares
	Graph *transitgraph.Graph
	Clock Clock
}

// Fixed overheads, in minutes and rupees.
const (
	busBoardWalkMin  = 2
	busAlightWalkMin = 2
	metroWalkMin     = 3
	bookingMin       = 2
	pickupWaitMin    = 3
	cabPickupMin     = 5
	feederRideMin    = 15
	feederFare       = 100 // auto leg to the bus hub, per person
	suvBaseExtra     = 40
	suvPerKmExtra    = 4
)

// Assumed in-city speeds, km/h.
func assumedSpeedKmh(kind ModeKind) float64 {
	switch kind {
	case KindBus:
		return 15
	case KindMetro:
		return 35
	case KindAuto:
		return 20
	case KindCab:
		return 25
	default:
		return 15
	}
}

// estimateRideMinutes converts a distance to minutes at the mode's assumed
// speed, with a five-minute floor.
func estimateRideMinutes(distanceKm float64, kind ModeKind) int {
	minutes := int(distanceKm / assumedSpeedKmh(kind) * 60)
	if minutes < 5 {
		minutes = 5
	}
	return minutes
}

// BuildOptions produces the full candidate set for a trip. Every option is
// group-adjusted and comfort-scored before being returned.
func (b *Builder) BuildOptions(origin, destination string, distanceKm float64, group GroupSpec) []ModeOption {
	group = group.Normalized()
	now := b.clockNow()
	surge := SurgeMultiplier(now)

	options := make([]ModeOption, 0, 5)
	options = append(options, b.busOption(origin, destination, distanceKm, group, now))
	if metro, ok := b.metroOption(origin, destination, distanceKm, group); ok {
		options = append(options, metro)
	}
	options = append(options, b.metroBusOption(origin, destination, distanceKm, group))
	options = append(options, b.autoOption(origin, destination, distanceKm, group, surge))
	options = append(options, b.cabOption(origin, destination, distanceKm, group, surge, ClassSedan))
	if group.Size > SedanCabCapacity {
		options = append(options, b.cabOption(origin, destination, distanceKm, group, surge, ClassSUV))
	}

	for i := range options {
		options[i].ComfortScore = ComfortScore(options[i], now)
	}
	return options
}

func (b *Builder) clockNow() time.Time {
	if b.Clock == nil {
		return SystemClock.Now()
	}
	return b.Clock.Now()
}

// busOption builds the bus candidate. Matching tiers: a route serving both
// endpoints rides directly; a route serving only one endpoint needs an auto
// feeder leg to the route's hub; no match at all degrades to a generic
// flat-fare estimate.
func (b *Builder) busOption(origin, destination string, distanceKm float64, group GroupSpec, now time.Time) ModeOption {
	route, tier := b.findBusRoute(origin, destination)

	fare := b.Fares.BusFlat
	perPerson := fare
	transfers := 0
	needFeeder := false
	hub := ""

	label := "Local Bus"
	routeInfo := fmt.Sprintf("%s → %s", origin, destination)
	frequency := "15-30 mins"

	if route != nil {
		label = "Bus " + route.Number
		routeInfo = route.Route
		if route.Frequency != "" {
			frequency = route.Frequency
		}
		if tier != busMatchDirect {
			needFeeder = true
			transfers = 1
			perPerson = fare + feederFare
			if a, _, ok := transitdata.SplitRoute(route.Route); ok {
				hub = a
			}
		}
	}

	freqMins := parseFrequency(frequency)
	waitMin := freqMins / 2
	rideMin := estimateRideMinutes(distanceKm, KindBus)

	total := busBoardWalkMin + waitMin + rideMin + busAlightWalkMin
	if needFeeder {
		total += feederRideMin + busBoardWalkMin
	}

	var steps []string
	if needFeeder {
		steps = append(steps,
			fmt.Sprintf("Walk to the auto stand near %s (~%d min)", origin, busBoardWalkMin),
			fmt.Sprintf("Take an auto to %s (~%d min, ₹%d per person)", hub, feederRideMin, feederFare),
			fmt.Sprintf("Walk to the %s bus stand (~%d min)", hub, busBoardWalkMin),
		)
	} else {
		steps = append(steps,
			fmt.Sprintf("Walk to the %s bus stop (~%d min)", origin, busBoardWalkMin),
		)
	}
	steps = append(steps,
		fmt.Sprintf("Board %s towards %s (next around %s, every %s)", label, destination, nextDeparture(now, freqMins), frequency),
		fmt.Sprintf("Ride for about %d min (₹%.0f per person)", rideMin, fare),
		fmt.Sprintf("Get off near %s", destination),
		fmt.Sprintf("Walk to your destination (~%d min)", busAlightWalkMin),
	)

	gf := PerPersonTotal(perPerson, group.Size)
	return ModeOption{
		Kind:          KindBus,
		Route:         label,
		RouteInfo:     routeInfo,
		Cost:          gf.TotalCost,
		PerPersonCost: gf.PerPersonCost,
		NumVehicles:   gf.NumVehicles,
		TimeMinutes:   total,
		Frequency:     frequency,
		Steps:         steps,
		Metadata: Metadata{
			AC:         false,
			DoorToDoor: false,
			Transfers:  transfers,
			WalkingM:   300,
		},
	}
}

type busMatchTier int

const (
	busMatchNone busMatchTier = iota
	busMatchOrigin
	busMatchDestination
	busMatchDirect
)

// findBusRoute scans the major routes for the best match: both endpoints,
// then destination only, then origin only.
func (b *Builder) findBusRoute(origin, destination string) (*transitdata.BusRoute, busMatchTier) {
	var destOnly, originOnly *transitdata.BusRoute

	for i := range b.Lines.Bus.MajorRoutes {
		route := &b.Lines.Bus.MajorRoutes[i]
		originMatch := b.routeContains(route.Route, origin)
		destMatch := b.routeContains(route.Route, destination)

		switch {
		case originMatch && destMatch:
			return route, busMatchDirect
		case destMatch && destOnly == nil:
			destOnly = route
		case originMatch && originOnly == nil:
			originOnly = route
		}
	}

	if destOnly != nil {
		return destOnly, busMatchDestination
	}
	if originOnly != nil {
		return originOnly, busMatchOrigin
	}
	return nil, busMatchNone
}

func (b *Builder) routeContains(routeText, location string) bool {
	if b.Graph != nil {
		return b.Graph.RouteContains(routeText, location)
	}
	return strings.Contains(transitdata.Normalize(routeText), transitdata.Normalize(location))
}

// metroOption builds the metro candidate when the graph has a rail-only
// path with at most one interchange between the endpoints.
func (b *Builder) metroOption(origin, destination string, distanceKm float64, group GroupSpec) (ModeOption, bool) {
	if b.Graph == nil {
		return ModeOption{}, false
	}

	cand, ok := b.Graph.ShortestPath(origin, destination, transitgraph.DefaultMaxTransfers)
	if !ok || len(cand.Edges) == 0 || cand.Transfers > 1 {
		return ModeOption{}, false
	}
	for _, edge := range cand.Edges {
		if edge.Mode == transitgraph.ModeBus {
			return ModeOption{}, false
		}
	}

	fare := clampFare(distanceKm*b.Fares.MetroPerKm, b.Fares.MetroMinFare, b.Fares.MetroMaxFare)
	rideMin := estimateRideMinutes(distanceKm, KindMetro)
	total := metroWalkMin + rideMin + metroWalkMin

	line := "Metro"
	frequency := "5-10 mins"
	if len(cand.Lines) > 0 {
		line = cand.Lines[0]
	}
	if len(cand.Edges) > 0 && cand.Edges[0].Frequency != "" {
		frequency = cand.Edges[0].Frequency
	}

	originStation := cand.Stations[0]
	destStation := cand.Stations[len(cand.Stations)-1]

	steps := []string{
		fmt.Sprintf("Walk to %s metro station (~%d min)", originStation, metroWalkMin),
		fmt.Sprintf("Buy a token (₹%.0f per person)", fare),
		fmt.Sprintf("Board the %s towards %s (every %s)", line, destStation, frequency),
		fmt.Sprintf("Ride for about %d min", rideMin),
		fmt.Sprintf("Alight at %s", destStation),
		fmt.Sprintf("Walk to your destination (~%d min)", metroWalkMin),
	}

	gf := PerPersonTotal(fare, group.Size)
	return ModeOption{
		Kind:          KindMetro,
		Route:         line,
		RouteInfo:     cand.Description,
		Cost:          gf.TotalCost,
		PerPersonCost: gf.PerPersonCost,
		NumVehicles:   gf.NumVehicles,
		TimeMinutes:   total,
		Frequency:     frequency,
		Steps:         steps,
		Metadata: Metadata{
			AC:         true,
			DoorToDoor: false,
			Transfers:  cand.Transfers,
			WalkingM:   400,
		},
	}, true
}

// metroBusOption is the always-available combined fallback: 40% of the
// distance by metro to the city hub, 60% by bus from the hub onwards.
func (b *Builder) metroBusOption(origin, destination string, distanceKm float64, group GroupSpec) ModeOption {
	hub := b.Lines.CanonicalHub()

	metroFare := clampFare(distanceKm*0.4*b.Fares.MetroPerKm, b.Fares.MetroMinFare, b.Fares.MetroMaxFare)
	busFare := b.Fares.BusFlat
	perPerson := metroFare + busFare

	metroMin := estimateRideMinutes(distanceKm*0.4, KindMetro)
	busMin := estimateRideMinutes(distanceKm*0.6, KindBus)
	total := metroWalkMin + metroMin + metroWalkMin + busMin + busAlightWalkMin

	steps := []string{
		fmt.Sprintf("Walk to the nearest metro station from %s (~%d min)", origin, metroWalkMin),
		fmt.Sprintf("Take the metro to %s (~%d min, ₹%.0f per person)", hub, metroMin, metroFare),
		fmt.Sprintf("Walk from %s metro to the bus station (~%d min)", hub, metroWalkMin),
		fmt.Sprintf("Board a bus towards %s (~%d min, ₹%.0f per person)", destination, busMin, busFare),
		fmt.Sprintf("Get off near %s and walk to your destination (~%d min)", destination, busAlightWalkMin),
	}

	gf := PerPersonTotal(perPerson, group.Size)
	return ModeOption{
		Kind:          KindMetroBus,
		Route:         fmt.Sprintf("%s → %s → %s", origin, hub, destination),
		RouteInfo:     fmt.Sprintf("Metro to %s, then bus to %s", hub, destination),
		Cost:          gf.TotalCost,
		PerPersonCost: gf.PerPersonCost,
		NumVehicles:   gf.NumVehicles,
		TimeMinutes:   total,
		Steps:         steps,
		Metadata: Metadata{
			AC:         false,
			DoorToDoor: false,
			Transfers:  1,
			WalkingM:   300,
		},
	}
}

// autoOption is the door-to-door auto rickshaw candidate.
func (b *Builder) autoOption(origin, destination string, distanceKm float64, group GroupSpec, surge float64) ModeOption {
	perVehicle := math.Round((b.Fares.AutoBase + distanceKm*b.Fares.AutoPerKm) * surge)
	rideMin := estimateRideMinutes(distanceKm, KindAuto)
	total := bookingMin + pickupWaitMin + rideMin

	gf := SplitCost(perVehicle, group.Size, AutoCapacity)

	steps := []string{
		fmt.Sprintf("Book or hail an auto from %s (~%d min)", origin, bookingMin),
		fmt.Sprintf("Wait for the driver (~%d min)", pickupWaitMin),
		fmt.Sprintf("Ride directly to %s (~%d min)", destination, rideMin),
		fmt.Sprintf("Pay about ₹%.0f total (₹%.2f per person)", gf.TotalCost, gf.PerPersonCost),
	}
	if gf.NumVehicles > 1 {
		steps = append([]string{fmt.Sprintf("Group of %d needs %d autos (%d seats each)", group.Size, gf.NumVehicles, AutoCapacity)}, steps...)
	}

	return ModeOption{
		Kind:          KindAuto,
		Route:         "Direct door-to-door",
		Cost:          gf.TotalCost,
		PerPersonCost: gf.PerPersonCost,
		NumVehicles:   gf.NumVehicles,
		TimeMinutes:   total,
		Steps:         steps,
		SurgeActive:   surge > 1,
		Metadata: Metadata{
			AC:         false,
			DoorToDoor: true,
			Transfers:  0,
			WalkingM:   0,
		},
	}
}

// cabOption builds a cab candidate for the given vehicle class. Groups
// larger than a sedan get an SUV candidate in addition, never instead.
func (b *Builder) cabOption(origin, destination string, distanceKm float64, group GroupSpec, surge float64, class string) ModeOption {
	capacity := SedanCabCapacity
	base := b.Fares.CabBase
	perKm := b.Fares.CabPerKm
	if class == ClassSUV {
		capacity = SUVCabCapacity
		base += suvBaseExtra
		perKm += suvPerKmExtra
	}

	perVehicle := math.Round((base + distanceKm*perKm) * surge)
	rideMin := estimateRideMinutes(distanceKm, KindCab)
	total := rideMin + cabPickupMin

	gf := SplitCost(perVehicle, group.Size, capacity)

	steps := []string{
		fmt.Sprintf("Book a cab (%s) on Ola/Uber from %s", class, origin),
		fmt.Sprintf("Wait for pickup (~%d min)", cabPickupMin),
		fmt.Sprintf("AC ride directly to %s (~%d min)", destination, rideMin),
		fmt.Sprintf("Pay about ₹%.0f total (₹%.2f per person)", gf.TotalCost, gf.PerPersonCost),
	}
	if gf.NumVehicles > 1 {
		steps = append([]string{fmt.Sprintf("Group of %d needs %d cabs (%d seats each)", group.Size, gf.NumVehicles, capacity)}, steps...)
	}

	return ModeOption{
		Kind:          KindCab,
		Route:         "Direct door-to-door",
		VehicleClass:  class,
		Cost:          gf.TotalCost,
		PerPersonCost: gf.PerPersonCost,
		NumVehicles:   gf.NumVehicles,
		TimeMinutes:   total,
		Steps:         steps,
		SurgeActive:   surge > 1,
		Metadata: Metadata{
			AC:         true,
			DoorToDoor: true,
			Transfers:  0,
			WalkingM:   0,
		},
	}
}

func clampFare(fare, min, max float64) float64 {
	fare = math.Round(fare)
	if fare < min {
		return min
	}
	if fare > max {
		return max
	}
	return fare
}

var frequencyDigits = regexp.MustCompile(`\d+`)

// parseFrequency averages the numbers in a frequency string such as
// "15 mins" or "10-20 mins". Unparseable strings default to 15.
func parseFrequency(frequency string) int {
	matches := frequencyDigits.FindAllString(frequency, -1)
	if len(matches) == 0 {
		return 15
	}
	sum := 0
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			return 15
		}
		sum += n
	}
	return sum / len(matches)
}

// nextDeparture rounds now up to the next departure slot.
func nextDeparture(now time.Time, freqMins int) string {
	if freqMins <= 0 {
		freqMins = 5
	}
	wait := freqMins - now.Minute()%freqMins
	return now.Add(time.Duration(wait) * time.Minute).Format("15:04")
}
