// Package instance holds the immutable problem snapshot consumed by the
// decoder and BRKGA engine: item count, reloading depth, relocation cost,
// and the two symmetric pickup/delivery distance matrices.
package instance

import (
	"fmt"
	"math"
)

// Error reports a malformed Instance: out-of-range indices, non-square or
// asymmetric matrices, or a non-positive item count.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("instance: %s", e.Reason)
}

// Instance is the read-only snapshot of problem data. Node 0 is the depot;
// items are numbered 1..N.
type Instance struct {
	N int // number of items
	L int // reloading depth
	H int // unit relocation cost

	Pickup   [][]int // (N+1)x(N+1) symmetric distance matrix
	Delivery [][]int // (N+1)x(N+1) symmetric distance matrix

	// PickupCoords and DeliveryCoords hold the raw 2D coordinates behind
	// Pickup and Delivery, when the Instance was built from coordinates
	// (FromCoordinates or Loader.Load). Both are nil when built via New
	// directly from matrices; callers that need them (e.g. solution
	// rendering) must treat a nil slice as "coordinates unavailable".
	PickupCoords   [][2]float64
	DeliveryCoords [][2]float64
}

// New validates and constructs an Instance from two pre-built distance
// matrices. The matrices are not copied; callers must not mutate them after
// construction.
func New(n, l, h int, pickup, delivery [][]int) (*Instance, error) {
	if n < 1 {
		return nil, &Error{Reason: fmt.Sprintf("N must be >= 1, got %d", n)}
	}
	if l < 0 {
		return nil, &Error{Reason: fmt.Sprintf("L must be >= 0, got %d", l)}
	}
	if h < 0 {
		return nil, &Error{Reason: fmt.Sprintf("H must be >= 0, got %d", h)}
	}
	if err := validateMatrix(pickup, n); err != nil {
		return nil, err
	}
	if err := validateMatrix(delivery, n); err != nil {
		return nil, err
	}
	return &Instance{N: n, L: l, H: h, Pickup: pickup, Delivery: delivery}, nil
}

func validateMatrix(d [][]int, n int) error {
	size := n + 1
	if len(d) != size {
		return &Error{Reason: fmt.Sprintf("distance matrix must have %d rows, got %d", size, len(d))}
	}
	for i, row := range d {
		if len(row) != size {
			return &Error{Reason: fmt.Sprintf("distance matrix row %d must have %d columns, got %d", i, size, len(row))}
		}
	}
	for i := 0; i < size; i++ {
		if d[i][i] != 0 {
			return &Error{Reason: fmt.Sprintf("distance matrix diagonal must be zero, d[%d][%d]=%d", i, i, d[i][i])}
		}
		for j := i + 1; j < size; j++ {
			if d[i][j] != d[j][i] {
				return &Error{Reason: fmt.Sprintf("distance matrix not symmetric at (%d,%d): %d != %d", i, j, d[i][j], d[j][i])}
			}
		}
	}
	return nil
}

// CombinedDistance returns the (N+1)x(N+1) matrix Dp+Dd used to seed the
// TSP warm-start tour.
func (inst *Instance) CombinedDistance() [][]int {
	size := inst.N + 1
	combined := make([][]int, size)
	for i := range combined {
		combined[i] = make([]int, size)
		for j := range combined[i] {
			combined[i][j] = inst.Pickup[i][j] + inst.Delivery[i][j]
		}
	}
	return combined
}

// FromCoordinates builds an Instance from raw 2D coordinates, rounding
// Euclidean distances to the nearest integer exactly as the original
// solver's data loader does: floor(0.5 + sqrt(dx*dx+dy*dy)).
func FromCoordinates(pickupPts, deliveryPts [][2]float64, l, h int) (*Instance, error) {
	n := len(pickupPts) - 1
	if n != len(deliveryPts)-1 {
		return nil, &Error{Reason: "pickup and delivery coordinate lists must have the same length"}
	}
	inst, err := New(n, l, h, euclideanMatrix(pickupPts), euclideanMatrix(deliveryPts))
	if err != nil {
		return nil, err
	}
	inst.PickupCoords = pickupPts
	inst.DeliveryCoords = deliveryPts
	return inst, nil
}

func euclideanMatrix(pts [][2]float64) [][]int {
	size := len(pts)
	d := make([][]int, size)
	for i := range d {
		d[i] = make([]int, size)
	}
	for i := 0; i < size; i++ {
		for j := i; j < size; j++ {
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			v := int(0.5 + math.Sqrt(dx*dx+dy*dy))
			d[i][j] = v
			d[j][i] = v
		}
	}
	return d
}
