package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceSeedsOnFirstRead(t *testing.T) {
	store := newMemStore()
	ledger := NewLedger(store)

	points, err := ledger.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed, points)

	// The seed is persisted, not recomputed.
	stored, ok, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, DefaultPointsSeed, stored)
}

func TestBalanceDoesNotReseed(t *testing.T) {
	store := newMemStore()
	ledger := NewLedger(store)

	_, err := ledger.Balance("user-1")
	require.NoError(t, err)

	// A drained balance stays at zero instead of snapping back to the seed.
	require.NoError(t, store.SetBalance("user-1", 0))

	points, err := ledger.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, points)
}

func TestAddPoints(t *testing.T) {
	store := newMemStore()

	points, err := addPoints(store, "user-1", 500)
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed+500, points)
}

func TestSubtractPointsFloorsAtZero(t *testing.T) {
	store := newMemStore()
	require.NoError(t, store.SetBalance("user-1", 100))

	points, err := subtractPoints(store, "user-1", 250)
	require.NoError(t, err)
	assert.Equal(t, 0, points)
}
