package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestNeighborOracleSmall(t *testing.T) {
	dist := [][]int{
		{0, 10, 20},
		{10, 0, 15},
		{20, 15, 0},
	}
	oracle := NearestNeighborOracle{}
	cost, cycle, err := oracle.Solve(3, dist)
	require.NoError(t, err)
	assert.Len(t, cycle, 3)
	assert.ElementsMatch(t, []int{0, 1, 2}, cycle)
	assert.Equal(t, 45, cost)
}

func TestNearestNeighborOracleRejectsBadShape(t *testing.T) {
	oracle := NearestNeighborOracle{}
	_, _, err := oracle.Solve(3, [][]int{{0, 1}, {1, 0}})
	require.Error(t, err)
}

func TestNearestNeighborOracleDeterministic(t *testing.T) {
	dist := [][]int{
		{0, 5, 9, 10},
		{5, 0, 6, 8},
		{9, 6, 0, 3},
		{10, 8, 3, 0},
	}
	oracle := NearestNeighborOracle{}
	cost1, cycle1, err := oracle.Solve(4, dist)
	require.NoError(t, err)
	cost2, cycle2, err := oracle.Solve(4, dist)
	require.NoError(t, err)
	assert.Equal(t, cost1, cost2)
	assert.Equal(t, cycle1, cycle2)
}

func TestNearestNeighborOracleVisitsEveryNode(t *testing.T) {
	dist := [][]int{
		{0, 2, 9, 10, 7},
		{2, 0, 6, 4, 3},
		{9, 6, 0, 8, 5},
		{10, 4, 8, 0, 6},
		{7, 3, 5, 6, 0},
	}
	oracle := NearestNeighborOracle{}
	_, cycle, err := oracle.Solve(5, dist)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4}, cycle)
}
