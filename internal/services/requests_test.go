package services

import (
	"testing"
	"time"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStampsOwnerAndRegion(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)
	user := testResident("user-1", "Carlos Morador", "Centro")

	req, err := svc.Create(models.CreateRequestPayload{
		Category:    models.CategoryElectronic,
		ActionType:  models.ActionDiscard,
		Address:     "Rua das Flores, 123",
		Description: "TV antiga",
	}, user)
	require.NoError(t, err)

	assert.Equal(t, "user-1", req.UserID)
	assert.Equal(t, "Carlos Morador", req.UserName)
	assert.Equal(t, "Centro", req.CommunityID)
	assert.Equal(t, models.RequestStatusCreated, req.Status)
	assert.Nil(t, req.ScheduledAt)
}

func TestCreateValidatesCategoryAndAction(t *testing.T) {
	svc := NewRequestService(newMemStore())
	user := testResident("user-1", "Carlos", "Centro")

	_, err := svc.Create(models.CreateRequestPayload{
		Category:   "Plutônio",
		ActionType: models.ActionDonate,
	}, user)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(models.CreateRequestPayload{
		Category:   models.CategoryOil,
		ActionType: "Queimar",
	}, user)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateParsesScheduledAt(t *testing.T) {
	svc := NewRequestService(newMemStore())
	user := testResident("user-1", "Carlos", "Centro")

	when := "2026-06-20T14:00:00Z"
	req, err := svc.Create(models.CreateRequestPayload{
		Category:    models.CategoryFurniture,
		ActionType:  models.ActionDonate,
		ScheduledAt: &when,
	}, user)
	require.NoError(t, err)

	require.NotNil(t, req.ScheduledAt)
	parsed, _ := time.Parse(time.RFC3339, when)
	assert.Equal(t, parsed.Unix(), *req.ScheduledAt)

	bad := "20/06/2026"
	_, err = svc.Create(models.CreateRequestPayload{
		Category:    models.CategoryFurniture,
		ActionType:  models.ActionDonate,
		ScheduledAt: &bad,
	}, user)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListResidentSeesOnlyOwnNewestFirst(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusCreated, CreatedAt: 100,
	}
	store.requests["r2"] = models.CollectionRequest{
		ID: "r2", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusCollected, CreatedAt: 200,
	}
	store.requests["r3"] = models.CollectionRequest{
		ID: "r3", UserID: "user-2", CommunityID: "Centro",
		Status: models.RequestStatusCreated, CreatedAt: 300,
	}

	list, err := svc.List(testResident("user-1", "Carlos", "Centro"))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "r2", list[0].ID)
	assert.Equal(t, "r1", list[1].ID)
}

func TestListOrganizationSeesRegionActionableFirst(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusCollected, CreatedAt: 400,
	}
	store.requests["r2"] = models.CollectionRequest{
		ID: "r2", UserID: "user-2", CommunityID: "Centro",
		Status: models.RequestStatusCreated, CreatedAt: 100,
	}
	store.requests["r3"] = models.CollectionRequest{
		ID: "r3", UserID: "user-3", CommunityID: "Centro",
		Status: models.RequestStatusQueued, CreatedAt: 200,
	}
	store.requests["r4"] = models.CollectionRequest{
		ID: "r4", UserID: "user-4", CommunityID: "Vila Madalena",
		Status: models.RequestStatusCreated, CreatedAt: 500,
	}

	list, err := svc.List(testOrganization("org-1", "Condomínio Solar", "Centro"))
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Actionable (created, queued) first, newest first inside each band.
	assert.Equal(t, "r3", list[0].ID)
	assert.Equal(t, "r2", list[1].ID)
	assert.Equal(t, "r1", list[2].ID)
}

func TestUpdateOwnerWhileEditable(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)
	user := testResident("user-1", "Carlos", "Centro")

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Category: models.CategoryOther, ActionType: models.ActionDiscard,
		Status: models.RequestStatusQueued, CreatedAt: 100,
	}

	desc := "Sofá de três lugares"
	updated, err := svc.Update("r1", models.RequestPatch{Description: &desc}, user)
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Description)
}

func TestUpdateOwnerBlockedOnceInRoute(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)
	user := testResident("user-1", "Carlos", "Centro")

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusInRoute, CreatedAt: 100,
	}

	desc := "tarde demais"
	_, err := svc.Update("r1", models.RequestPatch{Description: &desc}, user)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestUpdateOrganizationCrossRegionDenied(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Vila Madalena",
		Status: models.RequestStatusCreated, CreatedAt: 100,
	}

	desc := "x"
	_, err := svc.Update("r1", models.RequestPatch{Description: &desc},
		testOrganization("org-1", "Condomínio Solar", "Centro"))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDeleteStrangerDenied(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusCreated, CreatedAt: 100,
	}

	err := svc.Delete("r1", testResident("user-2", "Outro", "Centro"))
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Len(t, store.requests, 1)
}

func TestSetStatusResidentDenied(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusCreated, CreatedAt: 100,
	}

	_, err := svc.SetStatus("r1", models.RequestStatusCollected,
		testResident("user-1", "Carlos", "Centro"))
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestSetStatusOrganizationSameRegion(t *testing.T) {
	store := newMemStore()
	svc := NewRequestService(store)

	store.requests["r1"] = models.CollectionRequest{
		ID: "r1", UserID: "user-1", CommunityID: "Centro",
		Status: models.RequestStatusQueued, CreatedAt: 100,
	}

	updated, err := svc.SetStatus("r1", models.RequestStatusInRoute,
		testOrganization("org-1", "Condomínio Solar", "Centro"))
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusInRoute, updated.Status)

	_, err = svc.SetStatus("r1", "teleported",
		testOrganization("org-1", "Condomínio Solar", "Centro"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSetStatusNotFound(t *testing.T) {
	svc := NewRequestService(newMemStore())

	_, err := svc.SetStatus("missing", models.RequestStatusCollected,
		testOrganization("org-1", "Condomínio Solar", "Centro"))
	assert.ErrorIs(t, err, ErrNotFound)
}
