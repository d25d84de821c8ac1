// Package decoder implements the chromosome-to-solution mapping: Phase A
// (key sorting), Phase B (pickup tour and stack simulation), Phase C
// (delivery tour and stack emptying) and Phase D (cost), grounded on
// Decoder::decode in the original solver.
package decoder

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
)

// Decoder maps a chromosome's key vector onto a feasible double-tour
// solution and its cost. A Decoder is safe to share across goroutines: Decode
// allocates its own working state per call and never mutates the Decoder.
type Decoder struct {
	Inst   *instance.Instance
	Layout *Layout
	Alpha  float64
	Beta   float64

	// NDS, if non-nil, records every (distance, relocations) pair produced
	// by Decode. It is NOT safe for concurrent use; callers that decode in
	// parallel must either leave it nil or serialize access themselves.
	NDS *NonDominatedSet
}

// New builds a Decoder for inst with the given cost weights.
func New(inst *instance.Instance, alpha, beta float64) (*Decoder, error) {
	layout, err := NewLayout(inst.N, inst.L)
	if err != nil {
		return nil, err
	}
	return &Decoder{Inst: inst, Layout: layout, Alpha: alpha, Beta: beta}, nil
}

// Len returns G, the chromosome length this decoder expects.
func (d *Decoder) Len() int {
	return d.Layout.Total
}

// Result is the decoded solution for one chromosome.
type Result struct {
	Cost         int
	Distance     int
	Relocations  int
	PickupTour   []int
	DeliveryTour []int
}

// rankedItem pairs a stack item with the reorder rank it was assigned by the
// chromosome's S_k or T_k block.
type rankedItem struct {
	rank int
	item int
}

// Decode runs Phases A-D over keys and returns the resulting solution.
func (d *Decoder) Decode(keys []float64) (Result, error) {
	res, _, err := d.decode(keys, false)
	return res, err
}

// DecodeWithTrace runs the same decode as Decode but additionally returns
// the stack-snapshot trace needed to render a solution file (see
// WriteSolution).
func (d *Decoder) DecodeWithTrace(keys []float64) (Result, *trace, error) {
	res, tr, err := d.decode(keys, true)
	return res, tr, err
}

// trace holds the stack snapshots recorded while decoding, one per pickup
// step, one duplicate spacer, and one per delivery step but the last -
// mirroring the original solver's solution-file bookkeeping exactly.
type trace struct {
	n        int
	columns  [][]int // each entry is a snapshot of the stack, bottom-first
	pickup   []int
	delivery []int
}

func (d *Decoder) decode(keys []float64, withTrace bool) (Result, *trace, error) {
	if len(keys) != d.Layout.Total {
		return Result{}, nil, fmt.Errorf("decoder: expected %d keys, got %d", d.Layout.Total, len(keys))
	}
	n := d.Inst.N

	pickupPerm := decodeLabeledBlock(keys[0:n], 1)
	pickupTour := make([]int, n+2)
	pickupTour[0] = 0
	copy(pickupTour[1:n+1], pickupPerm)
	pickupTour[n+1] = 0

	var tr *trace
	if withTrace {
		tr = &trace{n: n}
	}

	stack := make([]int, 0, n)
	relocations := 0

	for k := 1; k <= n; k++ {
		br := d.Layout.SBlocks[k-1]
		sigma := decodeLabeledBlock(keys[br.start:br.start+br.width], 0)

		v := make([]rankedItem, br.width)
		v[0] = rankedItem{rank: sigma[0], item: pickupTour[k]}
		for i := 1; i < br.width; i++ {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v[i] = rankedItem{rank: sigma[i], item: top}
		}

		relocations += relocateAndReorder(v)
		for _, e := range v {
			stack = append(stack, e.item)
		}

		if withTrace {
			tr.columns = append(tr.columns, snapshot(stack))
		}
	}
	if withTrace {
		tr.columns = append(tr.columns, snapshot(stack))
	}

	deliveryTour := make([]int, 0, n+2)
	deliveryTour = append(deliveryTour, 0)

	for k := 1; k <= n; k++ {
		br := d.Layout.TBlocks[k-1]
		tau := decodeLabeledBlock(keys[br.start:br.start+br.width], 0)

		v := make([]rankedItem, br.width)
		for i := 0; i < br.width; i++ {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			v[i] = rankedItem{rank: tau[i], item: top}
		}

		relocations += relocateAndReorder(v)
		for _, e := range v {
			stack = append(stack, e.item)
		}

		delivered := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deliveryTour = append(deliveryTour, delivered)

		if withTrace {
			tr.columns = append(tr.columns, snapshot(stack))
		}
	}
	deliveryTour = append(deliveryTour, 0)

	if withTrace {
		tr.columns = tr.columns[:len(tr.columns)-1]
		tr.pickup = pickupTour
		tr.delivery = deliveryTour
	}

	distance := tourDistance(pickupTour, d.Inst.Pickup) + tourDistance(deliveryTour, d.Inst.Delivery)
	cost := int(math.Round(d.Alpha*float64(distance) + d.Beta*float64(d.Inst.H*relocations)))

	if d.NDS != nil {
		d.NDS.Add(distance, relocations)
	}

	return Result{
		Cost:         cost,
		Distance:     distance,
		Relocations:  relocations,
		PickupTour:   pickupTour,
		DeliveryTour: deliveryTour,
	}, tr, nil
}

// relocateAndReorder counts the relocations implied by v (the number of
// already-placed items that must be lifted off and set back down before the
// focal item reaches its assigned rank) and reorders v in place so pushing
// it back onto the stack leaves the smallest rank on top.
func relocateAndReorder(v []rankedItem) int {
	relocations := 0
	for i, e := range v {
		if e.rank != i {
			relocations = len(v) - i - 1
			break
		}
	}
	sort.Slice(v, func(i, j int) bool { return v[i].rank > v[j].rank })
	return relocations
}

func snapshot(stack []int) []int {
	out := make([]int, len(stack))
	copy(out, stack)
	return out
}

func tourDistance(tour []int, dist [][]int) int {
	total := 0
	for i := 1; i < len(tour); i++ {
		total += dist[tour[i-1]][tour[i]]
	}
	return total
}

// decodeLabeledBlock sorts keys ascending, breaking ties by the lower label,
// and returns the labels in that order. Labels run labelOffset..labelOffset+
// len(keys)-1.
func decodeLabeledBlock(keys []float64, labelOffset int) []int {
	type pair struct {
		key   float64
		label int
	}
	n := len(keys)
	pairs := make([]pair, n)
	for i, k := range keys {
		pairs[i] = pair{key: k, label: i + labelOffset}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].label < pairs[j].label
	})
	out := make([]int, n)
	for i, p := range pairs {
		out[i] = p.label
	}
	return out
}
