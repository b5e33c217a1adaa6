package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteSessionsInMemory(t *testing.T) {
	v := NewVoteSessions(nil)

	_, voted, err := v.Voted("user-1")
	require.NoError(t, err)
	assert.False(t, voted)

	require.NoError(t, v.MarkVoted("user-1", "3", time.Hour))

	candidateID, voted, err := v.Voted("user-1")
	require.NoError(t, err)
	assert.True(t, voted)
	assert.Equal(t, "3", candidateID)

	// Another session is unaffected
	_, voted, err = v.Voted("user-2")
	require.NoError(t, err)
	assert.False(t, voted)

	require.NoError(t, v.Clear("user-1"))
	_, voted, err = v.Voted("user-1")
	require.NoError(t, err)
	assert.False(t, voted)
}
