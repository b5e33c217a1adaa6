package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistrictsForState(t *testing.T) {
	districts := DistrictsForState("Maharashtra")
	require.NotNil(t, districts)
	assert.Contains(t, districts, "Mumbai City")
	assert.Contains(t, districts, "Pune")

	assert.Nil(t, DistrictsForState("Atlantis"))
	assert.Nil(t, DistrictsForState(""))
}

func TestStatesHaveDistricts(t *testing.T) {
	require.NotEmpty(t, States)
	for _, s := range States {
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Districts, "state %s has no districts", s.Name)
	}
}

func TestCandidateByID(t *testing.T) {
	c, ok := CandidateByID("2")
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", c.Name)
	assert.Equal(t, "Bharatiya Janata Party", c.Party)

	_, ok = CandidateByID("99")
	assert.False(t, ok)
}

func TestDemoElectionData(t *testing.T) {
	require.NotEmpty(t, UpcomingElections)

	live := 0
	for _, e := range UpcomingElections {
		if e.Live {
			live++
		}
	}
	assert.Equal(t, 1, live)

	assert.Len(t, Candidates, 4)
	assert.Len(t, LiveResults, 4)
	for _, r := range LiveResults {
		assert.NotEmpty(t, r.Party)
		assert.NotEmpty(t, r.Votes)
		assert.NotEmpty(t, r.Color)
	}
}
