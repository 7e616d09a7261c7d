package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_ExactMatch(t *testing.T) {
	assert.Equal(t, 100, Score("fever", "fever"))
}

func TestScore_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, Score("", "fever"))
	assert.Equal(t, 0, Score("fever", ""))
}

func TestScore_SingleEdit(t *testing.T) {
	// One substitution over eight runes: (8-1)/8 = 87.5, rounds to 88.
	assert.Equal(t, 88, Score("biogesic", "byogesic"))
}

func TestScore_PartialRatioFindsSubstring(t *testing.T) {
	assert.Equal(t, 100, Score("fever", "high fever please"))
}

func TestScore_TokenSetIgnoresOrder(t *testing.T) {
	assert.Equal(t, 100, Score("vomiting nausea", "nausea vomiting"))
}

func TestBestMatch_PicksHighestScorer(t *testing.T) {
	m, ok := BestMatch("Feverr", []string{"Headache", "Fever", "Nausea"})
	require.True(t, ok)
	assert.Equal(t, "Fever", m.Candidate)
	assert.GreaterOrEqual(t, m.Score, 70)
}

func TestBestMatch_TieKeepsEarliestCandidate(t *testing.T) {
	m, ok := BestMatch("ac", []string{"aa", "ab"})
	require.True(t, ok)
	assert.Equal(t, "aa", m.Candidate)
	assert.Equal(t, 50, m.Score)
}

func TestBestMatch_NormalizesCaseAndWhitespace(t *testing.T) {
	m, ok := BestMatch("  FEVER  ", []string{"Fever"})
	require.True(t, ok)
	assert.Equal(t, "Fever", m.Candidate)
	assert.Equal(t, 100, m.Score)
}

func TestBestMatch_EmptyInputs(t *testing.T) {
	_, ok := BestMatch("fever", nil)
	assert.False(t, ok)

	_, ok = BestMatch("   ", []string{"Fever"})
	assert.False(t, ok)
}
