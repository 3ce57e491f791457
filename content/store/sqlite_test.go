package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore_RecordAndReplayActivation(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	now := time.Unix(1700000000, 0)
	require.NoError(t, s.RecordActivation("core", true, now))
	require.NoError(t, s.RecordActivation("addon", true, now.Add(time.Second)))

	labels, err := s.LastKnownEnabled()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"core", "addon"}, labels)
}

func TestSQLiteStore_LastKnownEnabledReflectsMostRecentTransition(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	base := time.Unix(1700000000, 0)
	require.NoError(t, s.RecordActivation("core", true, base))
	require.NoError(t, s.RecordActivation("core", false, base.Add(time.Minute)))

	labels, err := s.LastKnownEnabled()
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestSQLiteStore_LastKnownEnabledEmptyWhenNoHistory(t *testing.T) {
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer s.Close()

	labels, err := s.LastKnownEnabled()
	require.NoError(t, err)
	assert.Empty(t, labels)
}
