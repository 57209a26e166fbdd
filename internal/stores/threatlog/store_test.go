package threatlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SqlStore {
	t.Helper()

	store, err := NewSqliteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestLogAndGetThreats(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.LogThreat(ctx, "user-1", SeverityHigh, "Blackmail"))
	require.NoError(t, store.LogThreat(ctx, "user-1", SeverityLow, "General Risk"))
	require.NoError(t, store.LogThreat(ctx, "user-2", SeverityMedium, "Stalking"))

	threats, err := store.GetThreats(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, threats, 2)

	threats, err = store.GetThreats(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, threats, 1)
	assert.Equal(t, "Stalking", threats[0].Category)
}

func TestGetRiskProfile(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("no history is low risk", func(t *testing.T) {
		profile, err := store.GetRiskProfile(ctx, "unknown-user")
		require.NoError(t, err)
		assert.Equal(t, RiskLow, profile)
	})

	t.Run("only minor threats is medium risk", func(t *testing.T) {
		require.NoError(t, store.LogThreat(ctx, "user-medium", SeverityLow, "General Risk"))
		require.NoError(t, store.LogThreat(ctx, "user-medium", SeverityUnknown, "General Risk"))

		profile, err := store.GetRiskProfile(ctx, "user-medium")
		require.NoError(t, err)
		assert.Equal(t, RiskMedium, profile)
	})

	t.Run("any high or critical threat is high risk", func(t *testing.T) {
		require.NoError(t, store.LogThreat(ctx, "user-high", SeverityLow, "General Risk"))
		require.NoError(t, store.LogThreat(ctx, "user-high", SeverityCritical, "Death Threat"))

		profile, err := store.GetRiskProfile(ctx, "user-high")
		require.NoError(t, err)
		assert.Equal(t, RiskHigh, profile)
	})
}

func TestDetectGroomingPattern(t *testing.T) {
	t.Run("detects secrecy phrases", func(t *testing.T) {
		found, matches := DetectGroomingPattern("This is our SECRET, don't tell anyone")
		assert.True(t, found)
		assert.Contains(t, matches, "secret")
		assert.Contains(t, matches, "don't tell")
	})

	t.Run("clean text", func(t *testing.T) {
		found, matches := DetectGroomingPattern("See you at lunch tomorrow")
		assert.False(t, found)
		assert.Empty(t, matches)
	})
}
