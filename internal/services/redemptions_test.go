package services

import (
	"testing"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redemptionFixture() (*memStore, *RedemptionService, *models.User) {
	store := newMemStore()
	store.rewards["rw-1"] = models.Reward{
		ID:        "rw-1",
		Title:     "Vale-compras R$50",
		Cost:      5000,
		Stock:     2,
		Available: true,
	}
	return store, NewRedemptionService(store), testResident("user-1", "Carlos Morador", "Centro")
}

func TestRequestCreatesPendingRedemption(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 99999, user)
	require.NoError(t, err)

	assert.Equal(t, models.RedemptionPending, red.Status)
	assert.Equal(t, 5000, red.Cost)
	assert.Equal(t, "Vale-compras R$50", red.RewardTitle)

	// Filing the request moves neither points nor stock.
	points, _, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed, points)
	assert.Equal(t, 2, store.rewards["rw-1"].Stock)
}

func TestRequestIgnoresClaimedBalance(t *testing.T) {
	store, svc, user := redemptionFixture()
	require.NoError(t, store.SetBalance("user-1", 100))

	// The client claims plenty of points; the ledger says otherwise.
	_, err := svc.Request("rw-1", 99999, user)
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestRequestOutOfStock(t *testing.T) {
	store, svc, user := redemptionFixture()
	reward := store.rewards["rw-1"]
	reward.Stock = 0
	store.rewards["rw-1"] = reward

	_, err := svc.Request("rw-1", 0, user)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestRequestUnknownReward(t *testing.T) {
	_, svc, user := redemptionFixture()

	_, err := svc.Request("rw-missing", 0, user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProcessDeliveryMovesPointsAndStock(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 0, user)
	require.NoError(t, err)

	require.NoError(t, svc.Process(red.ID, models.RedemptionDelivered, ""))

	points, _, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed-5000, points)
	assert.Equal(t, 1, store.rewards["rw-1"].Stock)
	assert.Equal(t, models.RedemptionDelivered, store.redemptions[red.ID].Status)
}

func TestProcessRejectionHasNoSideEffects(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 0, user)
	require.NoError(t, err)

	require.NoError(t, svc.Process(red.ID, models.RedemptionRejected, "Fora da política"))

	points, _, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed, points)
	assert.Equal(t, 2, store.rewards["rw-1"].Stock)
	assert.Equal(t, models.RedemptionRejected, store.redemptions[red.ID].Status)
}

func TestProcessRevalidatesStockAtDelivery(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 0, user)
	require.NoError(t, err)

	// Stock drained between request and approval.
	reward := store.rewards["rw-1"]
	reward.Stock = 0
	store.rewards["rw-1"] = reward

	err = svc.Process(red.ID, models.RedemptionDelivered, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, models.RedemptionPending, store.redemptions[red.ID].Status)
}

func TestProcessRevalidatesBalanceAtDelivery(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 0, user)
	require.NoError(t, err)

	// Balance spent elsewhere between request and approval.
	require.NoError(t, store.SetBalance("user-1", 1000))

	err = svc.Process(red.ID, models.RedemptionDelivered, "")
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 2, store.rewards["rw-1"].Stock)
}

func TestProcessStockNeverGoesNegative(t *testing.T) {
	store, svc := redemptionStore1Stock()
	userA := testResident("user-a", "Ana", "Centro")
	userB := testResident("user-b", "Bruno", "Centro")

	redA, err := svc.Request("rw-1", 0, userA)
	require.NoError(t, err)
	redB, err := svc.Request("rw-1", 0, userB)
	require.NoError(t, err)

	require.NoError(t, svc.Process(redA.ID, models.RedemptionDelivered, ""))

	// Second delivery fails instead of driving stock below zero.
	err = svc.Process(redB.ID, models.RedemptionDelivered, "")
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, store.rewards["rw-1"].Stock)
}

func redemptionStore1Stock() (*memStore, *RedemptionService) {
	store := newMemStore()
	store.rewards["rw-1"] = models.Reward{
		ID:        "rw-1",
		Title:     "Muda de árvore",
		Cost:      800,
		Stock:     1,
		Available: true,
	}
	return store, NewRedemptionService(store)
}

func TestProcessAlreadySettled(t *testing.T) {
	store, svc, user := redemptionFixture()

	red, err := svc.Request("rw-1", 0, user)
	require.NoError(t, err)
	require.NoError(t, svc.Process(red.ID, models.RedemptionDelivered, ""))

	err = svc.Process(red.ID, models.RedemptionDelivered, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	// No double deduction.
	points, _, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed-5000, points)
	assert.Equal(t, 1, store.rewards["rw-1"].Stock)
}
