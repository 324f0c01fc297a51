package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGophersatFeasible(t *testing.T) {
	//** Arrange
	model := Model{Vars: 3}
	model.Add(ExactlyK([]int{1, 2, 3}, 2))
	model.Add(Forbid(1))

	//** Act
	result, err := NewGophersat().Solve(context.Background(), model)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, Feasible, result.Outcome)
	assert.False(t, result.Assignment[1])
	assert.True(t, result.Assignment[2])
	assert.True(t, result.Assignment[3])
}

func TestGophersatSaturatedAssignment(t *testing.T) {
	//** Arrange
	model := Model{Vars: 4}
	model.Add(ExactlyK([]int{1, 2, 3, 4}, 4))

	//** Act
	result, err := NewGophersat().Solve(context.Background(), model)

	//** Assert
	require.NoError(t, err)
	require.Equal(t, Feasible, result.Outcome)
	for v := 1; v <= model.Vars; v++ {
		assert.True(t, result.Assignment[v])
	}
}

func TestGophersatInfeasible(t *testing.T) {
	//** Arrange
	model := Model{Vars: 2}
	model.Add(ExactlyK([]int{1, 2}, 2))
	model.Add(Forbid(2))

	//** Act
	result, err := NewGophersat().Solve(context.Background(), model)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, Infeasible, result.Outcome)
}

func TestGophersatEmptyLowerBound(t *testing.T) {
	//** Arrange
	model := Model{Vars: 1}
	model.Add(ExactlyK(nil, 3))

	//** Act
	result, err := NewGophersat().Solve(context.Background(), model)

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, Infeasible, result.Outcome)
}
