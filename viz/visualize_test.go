package viz

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/decoder"
	"github.com/jonatasbcchagas/ilps-brkga-dtsppl/instance"
)

func TestVisualizeSolutionWritesFile(t *testing.T) {
	pickup := [][2]float64{{0, 0}, {10, 0}, {10, 10}}
	delivery := [][2]float64{{0, 0}, {10, 0}, {10, 10}}
	inst, err := instance.New(2, 0, 1, [][]int{{0, 10, 14}, {10, 0, 10}, {14, 10, 0}},
		[][]int{{0, 10, 14}, {10, 0, 10}, {14, 10, 0}})
	require.NoError(t, err)
	inst.PickupCoords = pickup
	inst.DeliveryCoords = delivery

	res := decoder.Result{
		Cost: 48, Distance: 48, Relocations: 0,
		PickupTour:   []int{0, 1, 2, 0},
		DeliveryTour: []int{0, 2, 1, 0},
	}

	path := filepath.Join(t.TempDir(), "solution.svg")
	require.NoError(t, VisualizeSolution(inst, res, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Cost 48")
}

func TestVisualizeSolutionRequiresCoordinates(t *testing.T) {
	inst, err := instance.New(1, 0, 1, [][]int{{0, 5}, {5, 0}}, [][]int{{0, 5}, {5, 0}})
	require.NoError(t, err)
	res := decoder.Result{PickupTour: []int{0, 1, 0}, DeliveryTour: []int{0, 1, 0}}
	err = VisualizeSolution(inst, res, filepath.Join(t.TempDir(), "out.svg"))
	require.Error(t, err)
}
