package routing

// ModeKind is the discriminant of the ModeOption variant. Ranking code can
// switch over it exhaustively instead of sniffing ad hoc map keys.
type ModeKind string

const (
	KindBus      ModeKind = "Bus"
	KindMetro    ModeKind = "Metro"
	KindMetroBus ModeKind = "Metro+Bus"
	KindAuto     ModeKind = "Auto"
	KindCab      ModeKind = "Cab"
)

// Vehicle classes for cab options.
const (
	ClassSedan = "sedan"
	ClassSUV   = "suv"
)

// Metadata carries the mode-specific attributes the comfort scorer reads.
type Metadata struct {
	AC         bool `json:"ac"`
	DoorToDoor bool `json:"doorToDoor"`
	Transfers  int  `json:"transfers"`
	WalkingM   int  `json:"walkingM"`
}

// ModeOption is one user-facing travel candidate. Cost is the total for the
// whole group; the figures embedded in Steps always match Cost and
// TimeMinutes, so the readable and machine-readable views never disagree.
type ModeOption struct {
	Kind          ModeKind `json:"mode"`
	Route         string   `json:"route"`
	RouteInfo     string   `json:"routeInfo,omitempty"`
	VehicleClass  string   `json:"vehicleClass,omitempty"`
	Cost          float64  `json:"cost"`
	PerPersonCost float64  `json:"perPersonCost"`
	NumVehicles   int      `json:"numVehicles"`
	TimeMinutes   int      `json:"timeMinutes"`
	Frequency     string   `json:"frequency,omitempty"`
	Steps         []string `json:"steps"`
	ComfortScore  int      `json:"comfortScore"`
	Metadata      Metadata `json:"metadata"`
	SurgeActive   bool     `json:"surgeActive"`
}

// comfortPrior is the fixed per-mode tie-break table used when raw comfort
// scores tie: cab highest, then metro, metro+bus, bus, auto.
func comfortPrior(kind ModeKind) int {
	switch kind {
	case KindCab:
		return 100
	case KindMetro:
		return 80
	case KindMetroBus:
		return 70
	case KindBus:
		return 60
	case KindAuto:
		return 50
	default:
		return 0
	}
}
