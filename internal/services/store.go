package services

import "recoleta-backend/internal/models"

// RequestStore is the persistence boundary for collection requests.
// The SQL implementation lives in internal/database; tests inject an
// in-memory fake.
type RequestStore interface {
	Get(id string) (*models.CollectionRequest, error)
	ListByUser(userID string) ([]models.CollectionRequest, error)
	ListByRegion(region string) ([]models.CollectionRequest, error)
	Insert(req *models.CollectionRequest) error
	Update(req *models.CollectionRequest) error
	Delete(id string) error
}

// GamificationStore is the persistence boundary for challenges,
// submissions, rewards, redemptions and the points ledger.
//
// WithTx runs fn against a store view bound to a single transaction: the
// approval workflows use it so that a points write and a stock write
// either both commit or neither does.
type GamificationStore interface {
	WithTx(fn func(GamificationStore) error) error

	GetChallenge(id string) (*models.Challenge, error)

	GetSubmission(id string) (*models.ChallengeSubmission, error)
	// FindSubmission returns the submission for (userID, challengeID),
	// or nil when none exists. At most one record exists per pair.
	FindSubmission(userID, challengeID string) (*models.ChallengeSubmission, error)
	InsertSubmission(sub *models.ChallengeSubmission) error
	UpdateSubmission(sub *models.ChallengeSubmission) error
	DeleteSubmission(id string) error

	GetReward(id string) (*models.Reward, error)
	UpdateReward(reward *models.Reward) error

	GetRedemption(id string) (*models.RedemptionRequest, error)
	InsertRedemption(red *models.RedemptionRequest) error
	UpdateRedemption(red *models.RedemptionRequest) error

	// Balance returns the stored balance and whether one exists yet.
	Balance(userID string) (int, bool, error)
	SetBalance(userID string, points int) error

	ListResidentsByRegion(region string) ([]models.User, error)
}
