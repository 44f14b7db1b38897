package pbn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings_HasUsableValues(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 16, s.KMeansClusters)
	assert.Equal(t, RGBSpace, s.ColorSpace)
	assert.Nil(t, s.RandomSeed)
	assert.Nil(t, s.MaxFacets)
	assert.Equal(t, 0, s.maxFacets())
}

func TestSettings_MaxFacetsReflectsPointer(t *testing.T) {
	s := DefaultSettings()
	m := 250
	s.MaxFacets = &m
	assert.Equal(t, 250, s.maxFacets())
}

func TestSettings_KMeansMaxIterationsFallsBackToDefault(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, defaultKMeansMaxIteration, s.kMeansMaxIterations())
	s.KMeansMaxIterations = 5
	assert.Equal(t, 5, s.kMeansMaxIterations())
}

func TestSettings_NewRandomIsSeededWhenRequested(t *testing.T) {
	s := DefaultSettings()
	seed := int64(17)
	s.RandomSeed = &seed

	a := s.newRandom().Next()
	b := NewRandom(17).Next()
	assert.Equal(t, b, a)
}
