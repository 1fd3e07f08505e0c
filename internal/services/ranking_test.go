package services

import (
	"fmt"
	"testing"
	"time"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rankingNow = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

func addCollectedRequest(store *memStore, id, userID, region string, createdAt time.Time, status string) {
	store.requests[id] = models.CollectionRequest{
		ID:          id,
		UserID:      userID,
		CommunityID: region,
		Category:    models.CategoryRecyclable,
		ActionType:  models.ActionDiscard,
		Status:      status,
		CreatedAt:   createdAt.Unix(),
	}
}

func TestRankCountsOnlyCollectedThisMonth(t *testing.T) {
	store := newMemStore()
	store.users = []models.User{
		*testResident("u1", "Ana", "Centro"),
		*testResident("u2", "Bruno", "Centro"),
	}

	// Three collected this month, one queued, one collected last month.
	addCollectedRequest(store, "r1", "u1", "Centro", rankingNow, models.RequestStatusCollected)
	addCollectedRequest(store, "r2", "u1", "Centro", rankingNow.Add(-24*time.Hour), models.RequestStatusCollected)
	addCollectedRequest(store, "r3", "u2", "Centro", rankingNow, models.RequestStatusCollected)
	addCollectedRequest(store, "r4", "u1", "Centro", rankingNow, models.RequestStatusQueued)
	addCollectedRequest(store, "r5", "u1", "Centro", rankingNow.AddDate(0, -1, 0), models.RequestStatusCollected)

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Ana", ranked[0].Name)
	assert.Equal(t, 2, ranked[0].RequestsCount)
	assert.Equal(t, 100, ranked[0].Points)
	assert.Equal(t, 10, ranked[0].KgRecycled)
	assert.Equal(t, 0.2, ranked[0].TreesSaved)

	assert.Equal(t, "Bruno", ranked[1].Name)
	assert.Equal(t, 1, ranked[1].RequestsCount)
	assert.Equal(t, 50, ranked[1].Points)
}

func TestRankFiltersByRegion(t *testing.T) {
	store := newMemStore()
	store.users = []models.User{
		*testResident("u1", "Ana", "Centro"),
		*testResident("u2", "Bruno", "Vila Madalena"),
	}
	addCollectedRequest(store, "r1", "u1", "Centro", rankingNow, models.RequestStatusCollected)
	addCollectedRequest(store, "r2", "u2", "Vila Madalena", rankingNow, models.RequestStatusCollected)

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Ana", ranked[0].Name)
}

func TestRankExcludesOrganizations(t *testing.T) {
	store := newMemStore()
	store.users = []models.User{
		*testResident("u1", "Ana", "Centro"),
		*testOrganization("org-1", "Condomínio Solar", "Centro"),
	}

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)

	require.Len(t, ranked, 1)
	assert.Equal(t, "Ana", ranked[0].Name)
}

func TestRankTiesBreakByName(t *testing.T) {
	store := newMemStore()
	store.users = []models.User{
		*testResident("u1", "Carla", "Centro"),
		*testResident("u2", "Bruno", "Centro"),
	}
	addCollectedRequest(store, "r1", "u1", "Centro", rankingNow, models.RequestStatusCollected)
	addCollectedRequest(store, "r2", "u2", "Centro", rankingNow, models.RequestStatusCollected)

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	assert.Equal(t, "Bruno", ranked[0].Name)
	assert.Equal(t, "Carla", ranked[1].Name)
}

func TestRankCapsAtTen(t *testing.T) {
	store := newMemStore()
	for i := 0; i < 15; i++ {
		store.users = append(store.users,
			*testResident(fmt.Sprintf("u%02d", i), fmt.Sprintf("Morador %02d", i), "Centro"))
	}

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)

	assert.Len(t, ranked, 10)
}

func TestRankZeroActivityStillLists(t *testing.T) {
	store := newMemStore()
	store.users = []models.User{*testResident("u1", "Ana", "Centro")}

	svc := NewRankingService(store, store)
	ranked, err := svc.Rank("Centro", rankingNow)
	require.NoError(t, err)
	require.Len(t, ranked, 1)

	assert.Equal(t, 0, ranked[0].Points)
	assert.Equal(t, 0, ranked[0].KgRecycled)
	assert.Equal(t, 0.0, ranked[0].TreesSaved)
}
