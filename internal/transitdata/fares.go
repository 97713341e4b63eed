package transitdata

// FareTable is the root of the fares.json document.
type FareTable struct {
	Cities map[string]CityFares `json:"cities"`
}

// CityFares holds the per-city fare constants consumed by the option
// builder. Zero values are replaced with the defaults below at load time so
// a sparse fares file still produces a usable table.
type CityFares struct {
	BusFlat      float64 `json:"bus_flat"`
	MetroPerKm   float64 `json:"metro_per_km"`
	MetroMinFare float64 `json:"metro_min_fare"`
	MetroMaxFare float64 `json:"metro_max_fare"`
	AutoBase     float64 `json:"auto_base"`
	AutoPerKm    float64 `json:"auto_per_km"`
	CabBase      float64 `json:"cab_base"`
	CabPerKm     float64 `json:"cab_per_km"`
}

// DefaultFares mirrors the fallback constants used when a city has no fare
// entry at all.
func DefaultFares() CityFares {
	return CityFares{
		BusFlat:      25,
		MetroPerKm:   4,
		MetroMinFare: 15,
		MetroMaxFare: 60,
		AutoBase:     35,
		AutoPerKm:    18,
		CabBase:      50,
		CabPerKm:     22,
	}
}

// withDefaults fills any unset fare constants from DefaultFares.
func (f CityFares) withDefaults() CityFares {
	def := DefaultFares()
	if f.BusFlat <= 0 {
		f.BusFlat = def.BusFlat
	}
	if f.MetroPerKm <= 0 {
		f.MetroPerKm = def.MetroPerKm
	}
	if f.MetroMinFare <= 0 {
		f.MetroMinFare = def.MetroMinFare
	}
	if f.MetroMaxFare <= 0 {
		f.MetroMaxFare = def.MetroMaxFare
	}
	if f.AutoBase <= 0 {
		f.AutoBase = def.AutoBase
	}
	if f.AutoPerKm <= 0 {
		f.AutoPerKm = def.AutoPerKm
	}
	if f.CabBase <= 0 {
		f.CabBase = def.CabBase
	}
	if f.CabPerKm <= 0 {
		f.CabPerKm = def.CabPerKm
	}
	return f
}
