package levenshtein_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmetrics/editdist/pkg/levenshtein"
)

func TestApplyRejectsOutOfRangeSrcPos(t *testing.T) {
	s1, s2 := []uint8("abc"), []uint8("abd")
	bad := levenshtein.Editops{{Kind: levenshtein.Replace, SrcPos: 10, DestPos: 2}}

	_, err := levenshtein.Apply(bad, s1, s2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, levenshtein.InvalidEditops))
}

func TestApplyRejectsNonMonotonicSrcPos(t *testing.T) {
	s1, s2 := []uint8("abcd"), []uint8("abcd")
	bad := levenshtein.Editops{
		{Kind: levenshtein.Delete, SrcPos: 2, DestPos: 2},
		{Kind: levenshtein.Delete, SrcPos: 1, DestPos: 2},
	}

	_, err := levenshtein.Apply(bad, s1, s2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, levenshtein.InvalidEditops))
}

func TestApplyRejectsMismatchedEqualRunLength(t *testing.T) {
	s1, s2 := []uint8("abcd"), []uint8("abcd")
	// Skips 2 src positions but only 1 dest position before the op — the
	// implied equal run can't hold the same characters on both sides.
	bad := levenshtein.Editops{{Kind: levenshtein.Delete, SrcPos: 2, DestPos: 1}}

	_, err := levenshtein.Apply(bad, s1, s2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, levenshtein.InvalidEditops))
}

func TestApplyEmptyScriptIsIdentity(t *testing.T) {
	s1 := []uint8("same")
	out, err := levenshtein.Apply(nil, s1, s1)
	require.NoError(t, err)
	assert.Equal(t, s1, out)
}
