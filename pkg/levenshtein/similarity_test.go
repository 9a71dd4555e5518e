package levenshtein_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/strmetrics/editdist/pkg/levenshtein"
)

func TestNormalizedSimilarityIdenticalIsOne(t *testing.T) {
	assert.Equal(t, 1.0, levenshtein.NormalizedSimilarityString("abc", "abc", levenshtein.NoCutoff))
	assert.Equal(t, 1.0, levenshtein.NormalizedSimilarityString("", "", levenshtein.NoCutoff))
}

func TestNormalizedSimilarityCompletelyDifferent(t *testing.T) {
	got := levenshtein.NormalizedSimilarityString("abc", "xyz", levenshtein.NoCutoff)
	assert.Equal(t, 0.0, got)
}

func TestSimilarityScoreIsPercentage(t *testing.T) {
	got := levenshtein.SimilarityString("kitten", "sitting", levenshtein.NoCutoff)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 100)
}

func TestSimilarityBelowCutoffReturnsZero(t *testing.T) {
	got := levenshtein.SimilarityString("kitten", "sitting", 100)
	assert.Equal(t, 0, got)
}

func TestNormalizedSimilarityBelowCutoffReturnsZero(t *testing.T) {
	got := levenshtein.NormalizedSimilarityString("kitten", "sitting", 1.0)
	assert.Equal(t, 0.0, got)
}

func TestDistanceWithWeightsRejectsNonUniform(t *testing.T) {
	s1 := []uint8("abc")
	s2 := []uint8("abd")

	_, err := levenshtein.DistanceWithWeights(s1, s2, levenshtein.NoCutoff, levenshtein.Weights{
		InsertCost:  2,
		DeleteCost:  1,
		ReplaceCost: 1,
	})
	assert.True(t, errors.Is(err, levenshtein.ErrUnsupportedWeights))
}

func TestDistanceWithWeightsAcceptsUniform(t *testing.T) {
	s1 := []uint8("abc")
	s2 := []uint8("abd")

	d, err := levenshtein.DistanceWithWeights(s1, s2, levenshtein.NoCutoff, levenshtein.UniformWeights)
	assert.NoError(t, err)
	assert.Equal(t, 1, d)
}
