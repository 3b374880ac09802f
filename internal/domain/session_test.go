package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendTurn_Transitions(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)
	assert.Equal(t, StateNew, s.State)

	require.NoError(t, s.AppendTurn("we sell artisan coffee", now))
	assert.Equal(t, StateCollecting, s.State)
	assert.Equal(t, []string{"we sell artisan coffee"}, s.Transcript)

	require.NoError(t, s.AppendTurn("target: young professionals", now))
	assert.Len(t, s.Transcript, 2)
	assert.Equal(t, StateCollecting, s.State)
}

func TestSession_AppendTurn_RejectsBlank(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)

	assert.ErrorIs(t, s.AppendTurn("", now), ErrInvalidInput)
	assert.ErrorIs(t, s.AppendTurn("   \t\n", now), ErrInvalidInput)
	assert.Equal(t, StateNew, s.State)
	assert.Empty(t, s.Transcript)
}

func TestSession_AppendTurn_KeepsResearchedResult(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)
	require.NoError(t, s.AppendTurn("coffee shop", now))

	result := &ResearchResult{Summary: "Coffee shop"}
	s.SetResearched(result, now)

	require.NoError(t, s.AppendTurn("also we do catering", now))
	assert.Equal(t, StateResearched, s.State)
	assert.Same(t, result, s.Research)
}

func TestSession_SetFailed_KeepsTranscript(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)
	require.NoError(t, s.AppendTurn("coffee shop", now))
	s.SetResearching(now)
	s.SetFailed(now)

	assert.Equal(t, StateFailed, s.State)
	assert.Nil(t, s.Research)
	assert.Len(t, s.Transcript, 1)
}

func TestSession_ResearchStale(t *testing.T) {
	start := time.Now().UTC()
	s := NewSession("u1", start)
	require.NoError(t, s.AppendTurn("coffee shop", start))
	s.SetResearching(start)

	assert.False(t, s.ResearchStale(start.Add(30*time.Second), time.Minute))
	assert.True(t, s.ResearchStale(start.Add(2*time.Minute), time.Minute))

	s.SetFailed(start)
	assert.False(t, s.ResearchStale(start.Add(time.Hour), time.Minute))
}

func TestSession_ResearchStale_NotDeferredByAppends(t *testing.T) {
	start := time.Now().UTC()
	s := NewSession("u1", start)
	require.NoError(t, s.AppendTurn("coffee shop", start))
	s.SetResearching(start)

	// Appending refreshes LastUpdated but must not re-base staleness.
	require.NoError(t, s.AppendTurn("also catering", start.Add(50*time.Second)))
	assert.True(t, s.ResearchStale(start.Add(100*time.Second), time.Minute))
}

func TestSession_ResearchStartedAt_ClearedOnTerminalStates(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)
	require.NoError(t, s.AppendTurn("coffee shop", now))

	s.SetResearching(now)
	assert.Equal(t, now, s.ResearchStartedAt)

	s.SetResearched(&ResearchResult{Summary: "x"}, now)
	assert.True(t, s.ResearchStartedAt.IsZero())

	s.SetResearching(now)
	s.SetFailed(now)
	assert.True(t, s.ResearchStartedAt.IsZero())
}

func TestSession_Clone_IsDeep(t *testing.T) {
	now := time.Now().UTC()
	s := NewSession("u1", now)
	require.NoError(t, s.AppendTurn("turn one", now))
	s.SetResearched(&ResearchResult{Summary: "original"}, now)

	c := s.Clone()
	c.Transcript[0] = "mutated"
	c.Research.Summary = "mutated"

	assert.Equal(t, "turn one", s.Transcript[0])
	assert.Equal(t, "original", s.Research.Summary)
}

func TestResearchResult_Fields_AllKeysPresent(t *testing.T) {
	fields := ResearchResult{Summary: "x"}.Fields()
	for _, key := range []string{"summary", "target_audience", "key_features", "design_direction"} {
		_, ok := fields[key]
		assert.True(t, ok, "missing key %q", key)
	}
}
