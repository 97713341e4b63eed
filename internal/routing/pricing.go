package routing

import (
	"fmt"
	"net/url"
	"sort"
)

// rideService is one row of the static ride-hailing rate card.
type rideService struct {
	ID          string
	Name        string
	Base        float64
	PerKm       float64
	Category    string
	Description string
}

// Base rates for Bengaluru ride-hailing services, updated January 2026.
var rideServices = []rideService{
	{"namma_yatri_auto", "Namma Yatri Auto", 25, 14, "auto", "Open-source auto booking"},
	{"ola_auto", "Ola Auto", 30, 15, "auto", "Standard auto rickshaw"},
	{"uber_auto", "Uber Auto", 30, 15, "auto", "UberAuto service"},
	{"rapido_bike", "Rapido Bike", 20, 8, "bike", "Bike taxi - fastest for short trips"},
	{"rapido_auto", "Rapido Auto", 28, 14, "auto", "Auto via Rapido"},
	{"ola_micro", "Ola Micro", 50, 12, "cab", "Economy cab - shared option"},
	{"uber_go", "Uber Go", 55, 13, "cab", "Affordable cab rides"},
	{"ola_prime", "Ola Prime", 80, 16, "cab", "Sedan with AC"},
	{"uber_premier", "Uber Premier", 85, 17, "cab", "Premium sedan"},
}

// RideOption is a single ride-hailing estimate shown next to the engine's
// own mode options.
type RideOption struct {
	Service        string `json:"service"`
	ServiceID      string `json:"serviceId"`
	Category       string `json:"category"`
	EstimatedPrice int    `json:"estimatedPrice"`
	PriceRange     string `json:"priceRange"`
	Description    string `json:"description"`
	DeepLink       string `json:"deepLink"`
	SurgeApplied   bool   `json:"surgeApplied"`
}

// RideEstimates is the full rate-card response for one trip.
type RideEstimates struct {
	Options        []RideOption `json:"rideOptions"`
	Recommendation string       `json:"recommendation"`
	SurgeActive    bool         `json:"surgeActive"`
	Note           string       `json:"note"`
}

// EstimateRides prices every service on the rate card for the trip,
// filters it for the user type, and sorts cheapest first. userType
// "elderly" drops bikes and prefers cabs on longer trips.
func EstimateRides(origin, destination string, distanceKm, surge float64, userType string, budgetLimit int) RideEstimates {
	options := make([]RideOption, 0, len(rideServices))

	for _, svc := range rideServices {
		estimated, low, high := estimatePrice(distanceKm, svc.Base, svc.PerKm, surge)
		options = append(options, RideOption{
			Service:        svc.Name,
			ServiceID:      svc.ID,
			Category:       svc.Category,
			EstimatedPrice: estimated,
			PriceRange:     fmt.Sprintf("₹%d-%d", low, high),
			Description:    svc.Description,
			DeepLink:       deepLink(svc.ID, origin, destination),
			SurgeApplied:   surge > 1.0,
		})
	}

	options = filterByUserType(options, userType, distanceKm)

	if budgetLimit > 0 {
		within := options[:0]
		for _, opt := range options {
			if opt.EstimatedPrice <= budgetLimit {
				within = append(within, opt)
			}
		}
		options = within
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].EstimatedPrice < options[j].EstimatedPrice
	})

	return RideEstimates{
		Options:        options,
		Recommendation: rideRecommendation(options, userType, distanceKm),
		SurgeActive:    surge > 1.0,
		Note:           "Prices are estimated. Tap links to see live prices in apps.",
	}
}

// estimatePrice applies the surge and a ±10% variance band.
func estimatePrice(distanceKm, base, perKm, surge float64) (estimated, low, high int) {
	fare := (base + distanceKm*perKm) * surge
	return int(fare), int(fare * 0.9), int(fare * 1.1)
}

func deepLink(serviceID, origin, destination string) string {
	pickup := url.QueryEscape(origin)
	drop := url.QueryEscape(destination)

	switch {
	case hasPrefix(serviceID, "ola"):
		return fmt.Sprintf("https://book.olacabs.com/?pickup=%s&drop=%s", pickup, drop)
	case hasPrefix(serviceID, "uber"):
		return fmt.Sprintf("https://m.uber.com/ul/?action=setPickup&pickup=my_location&dropoff[formatted_address]=%s", drop)
	case hasPrefix(serviceID, "rapido"):
		return fmt.Sprintf("https://rapido.bike/ride?pickup=%s&drop=%s", pickup, drop)
	case hasPrefix(serviceID, "namma_yatri"):
		return fmt.Sprintf("https://nammayatri.in/open/?pickup=%s&destination=%s", pickup, drop)
	default:
		return "#"
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func filterByUserType(options []RideOption, userType string, distanceKm float64) []RideOption {
	if userType != "elderly" {
		return options
	}

	// No bikes for elderly users.
	filtered := make([]RideOption, 0, len(options))
	for _, opt := range options {
		if opt.Category != "bike" {
			filtered = append(filtered, opt)
		}
	}

	// On longer trips, surface cabs before autos for comfort.
	if distanceKm > 10 {
		reordered := make([]RideOption, 0, len(filtered))
		for _, opt := range filtered {
			if opt.Category == "cab" {
				reordered = append(reordered, opt)
			}
		}
		for _, opt := range filtered {
			if opt.Category != "cab" {
				reordered = append(reordered, opt)
			}
		}
		return reordered
	}
	return filtered
}

func rideRecommendation(options []RideOption, userType string, distanceKm float64) string {
	if len(options) == 0 {
		return "No ride options available within budget"
	}

	cheapest := options[0]

	switch userType {
	case "elderly":
		if distanceKm > 10 {
			for _, opt := range options {
				if opt.Category == "cab" {
					return fmt.Sprintf("%s - Comfortable for longer trips (₹%d)", opt.Service, opt.EstimatedPrice)
				}
			}
		}
		return fmt.Sprintf("%s - Safe and affordable (₹%d)", cheapest.Service, cheapest.EstimatedPrice)
	default:
		return fmt.Sprintf("%s - Most economical (₹%d)", cheapest.Service, cheapest.EstimatedPrice)
	}
}
