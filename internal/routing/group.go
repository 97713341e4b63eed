package routing

import "math"

// GroupSpec describes the travelling party. It is supplied by the caller
// per request and never mutated by the engine.
type GroupSpec struct {
	Size              int  `json:"size"`
	ElderlyCount      int  `json:"elderlyCount"`
	StudentCount      int  `json:"studentCount"`
	ChildrenCount     int  `json:"childrenCount"`
	AccessibilityNeed bool `json:"accessibilityNeed"`
}

// Normalized floors the group size at one traveller so later per-head
// division cannot divide by zero.
func (g GroupSpec) Normalized() GroupSpec {
	if g.Size < 1 {
		g.Size = 1
	}
	return g
}

// Per-mode vehicle capacities. Bus and metro are effectively unbounded and
// charge per person instead.
const (
	AutoCapacity     = 3
	SedanCabCapacity = 4
	SUVCabCapacity   = 6
)

// GroupFare is the result of splitting a fare across a group.
type GroupFare struct {
	TotalCost     float64
	PerPersonCost float64
	NumVehicles   int
}

// SplitCost divides a per-vehicle cost across a group, hiring as many
// vehicles as the capacity requires.
func SplitCost(perVehicleCost float64, groupSize, vehicleCapacity int) GroupFare {
	if groupSize < 1 {
		groupSize = 1
	}
	if vehicleCapacity < 1 {
		vehicleCapacity = 1
	}

	numVehicles := 1
	if groupSize > vehicleCapacity {
		numVehicles = int(math.Ceil(float64(groupSize) / float64(vehicleCapacity)))
	}

	total := perVehicleCost * float64(numVehicles)
	return GroupFare{
		TotalCost:     total,
		PerPersonCost: roundRupees(total / float64(groupSize)),
		NumVehicles:   numVehicles,
	}
}

// PerPersonTotal is the unbounded-capacity case: every traveller pays the
// flat or metered fare directly.
func PerPersonTotal(perPersonFare float64, groupSize int) GroupFare {
	if groupSize < 1 {
		groupSize = 1
	}
	return GroupFare{
		TotalCost:     perPersonFare * float64(groupSize),
		PerPersonCost: perPersonFare,
		NumVehicles:   0,
	}
}

func roundRupees(v float64) float64 {
	return math.Round(v*100) / 100
}
