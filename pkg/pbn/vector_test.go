package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVector_DistanceTo(t *testing.T) {
	a := NewVector([]float64{0, 0, 0}, 1, nil)
	b := NewVector([]float64{3, 4, 0}, 1, nil)
	assert.Equal(t, 5.0, a.DistanceTo(b))
}

func TestVector_Clone(t *testing.T) {
	v := NewVector([]float64{1, 2, 3}, 2, "tag")
	c := v.Clone()
	c.Values[0] = 99
	assert.Equal(t, 1.0, v.Values[0], "mutating the clone must not affect the original")
	assert.Equal(t, "tag", c.Tag)
}

func TestAverageVectors_SingleVector(t *testing.T) {
	v := NewVector([]float64{1, 2, 3}, 5, nil)
	avg, err := AverageVectors([]*Vector{v})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, avg.Values)
	assert.Equal(t, 5.0, avg.Weight)
}

func TestAverageVectors_EqualWeightIsMidpoint(t *testing.T) {
	a := NewVector([]float64{0, 0}, 1, nil)
	b := NewVector([]float64{10, 20}, 1, nil)
	avg, err := AverageVectors([]*Vector{a, b})
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 10}, avg.Values)
}

func TestAverageVectors_WeightedPullsTowardHeavierPoint(t *testing.T) {
	a := NewVector([]float64{0}, 1, nil)
	b := NewVector([]float64{10}, 3, nil)
	avg, err := AverageVectors([]*Vector{a, b})
	require.NoError(t, err)
	assert.Equal(t, 7.5, avg.Values[0])
}

func TestAverageVectors_EmptySetIsNumericDegeneracy(t *testing.T) {
	_, err := AverageVectors(nil)
	require.Error(t, err)
	var pbnErr *Error
	require.ErrorAs(t, err, &pbnErr)
	assert.Equal(t, NumericDegeneracy, pbnErr.Kind)
}

func TestAverageVectors_ZeroTotalWeightIsNumericDegeneracy(t *testing.T) {
	a := NewVector([]float64{1}, 0, nil)
	b := NewVector([]float64{2}, 0, nil)
	_, err := AverageVectors([]*Vector{a, b})
	require.Error(t, err)
	var pbnErr *Error
	require.ErrorAs(t, err, &pbnErr)
	assert.Equal(t, NumericDegeneracy, pbnErr.Kind)
}
