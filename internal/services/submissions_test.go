package services

import (
	"testing"

	"recoleta-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submissionFixture() (*memStore, *SubmissionService, *models.User) {
	store := newMemStore()
	store.challenges["ch-1"] = models.Challenge{
		ID:       "ch-1",
		Title:    "Recicle 5kg de materiais",
		XPReward: 500,
		Type:     models.ChallengeWeekly,
	}
	return store, NewSubmissionService(store), testResident("user-1", "Carlos Morador", "Centro")
}

func TestSubmitCreatesPendingSubmission(t *testing.T) {
	_, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "Foto dos materiais separados", user)
	require.NoError(t, err)

	assert.Equal(t, models.SubmissionPending, sub.Status)
	assert.Equal(t, "ch-1", sub.ChallengeID)
	assert.Equal(t, "Recicle 5kg de materiais", sub.ChallengeTitle)
	assert.Equal(t, "user-1", sub.UserID)
}

func TestSubmitRequiresProofText(t *testing.T) {
	_, svc, user := submissionFixture()

	_, err := svc.Submit("ch-1", "   ", user)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitUnknownChallenge(t *testing.T) {
	_, svc, user := submissionFixture()

	_, err := svc.Submit("ch-missing", "prova", user)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitRejectsSecondActiveSubmission(t *testing.T) {
	_, svc, user := submissionFixture()

	_, err := svc.Submit("ch-1", "primeira prova", user)
	require.NoError(t, err)

	_, err = svc.Submit("ch-1", "segunda prova", user)
	assert.ErrorIs(t, err, ErrDuplicateSubmission)
}

func TestSubmitReplacesRejectedSubmission(t *testing.T) {
	store, svc, user := submissionFixture()

	first, err := svc.Submit("ch-1", "primeira prova", user)
	require.NoError(t, err)

	_, err = svc.Review(first.ID, models.SubmissionRejected, "Foto ilegível")
	require.NoError(t, err)

	second, err := svc.Submit("ch-1", "segunda prova", user)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The rejected record is gone; only the fresh pending one remains.
	assert.Len(t, store.submissions, 1)
	assert.Equal(t, models.SubmissionPending, store.submissions[second.ID].Status)
}

func TestReviewApprovalAwardsPointsOnce(t *testing.T) {
	store, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "prova", user)
	require.NoError(t, err)

	xp, err := svc.Review(sub.ID, models.SubmissionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 500, xp)

	points, _, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed+500, points)

	// A second approval attempt neither changes state nor awards again.
	_, err = svc.Review(sub.ID, models.SubmissionApproved, "")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)

	points, _, err = store.Balance("user-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultPointsSeed+500, points)
}

func TestReviewRejectionRequiresFeedback(t *testing.T) {
	_, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "prova", user)
	require.NoError(t, err)

	_, err = svc.Review(sub.ID, models.SubmissionRejected, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewRejectionAwardsNothing(t *testing.T) {
	store, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "prova", user)
	require.NoError(t, err)

	xp, err := svc.Review(sub.ID, models.SubmissionRejected, "Foto ilegível")
	require.NoError(t, err)
	assert.Equal(t, 0, xp)

	_, ok, err := store.Balance("user-1")
	require.NoError(t, err)
	assert.False(t, ok, "rejection must not touch the ledger")
}

func TestReviewUnknownOutcome(t *testing.T) {
	_, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "prova", user)
	require.NoError(t, err)

	_, err = svc.Review(sub.ID, "maybe", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewApprovalOfDeletedChallenge(t *testing.T) {
	store, svc, user := submissionFixture()

	sub, err := svc.Submit("ch-1", "prova", user)
	require.NoError(t, err)

	// Challenge removed between submission and review.
	delete(store.challenges, "ch-1")

	xp, err := svc.Review(sub.ID, models.SubmissionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, 0, xp)
	assert.Equal(t, models.SubmissionApproved, store.submissions[sub.ID].Status)
}
