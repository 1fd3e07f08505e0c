package services

import (
	"recoleta-backend/internal/models"
)

// memStore is an in-memory stand-in for the SQL stores. WithTx just runs
// fn against the same store; the transactional tests assert on observable
// outcomes, not rollback mechanics.
type memStore struct {
	requests    map[string]models.CollectionRequest
	challenges  map[string]models.Challenge
	submissions map[string]models.ChallengeSubmission
	rewards     map[string]models.Reward
	redemptions map[string]models.RedemptionRequest
	balances    map[string]int
	users       []models.User
}

func newMemStore() *memStore {
	return &memStore{
		requests:    make(map[string]models.CollectionRequest),
		challenges:  make(map[string]models.Challenge),
		submissions: make(map[string]models.ChallengeSubmission),
		rewards:     make(map[string]models.Reward),
		redemptions: make(map[string]models.RedemptionRequest),
		balances:    make(map[string]int),
	}
}

// RequestStore

func (m *memStore) Get(id string) (*models.CollectionRequest, error) {
	if req, ok := m.requests[id]; ok {
		copy := req
		return &copy, nil
	}
	return nil, nil
}

func (m *memStore) ListByUser(userID string) ([]models.CollectionRequest, error) {
	out := []models.CollectionRequest{}
	for _, req := range m.requests {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memStore) ListByRegion(region string) ([]models.CollectionRequest, error) {
	out := []models.CollectionRequest{}
	for _, req := range m.requests {
		if req.CommunityID == region {
			out = append(out, req)
		}
	}
	return out, nil
}

func (m *memStore) Insert(req *models.CollectionRequest) error {
	m.requests[req.ID] = *req
	return nil
}

func (m *memStore) Update(req *models.CollectionRequest) error {
	m.requests[req.ID] = *req
	return nil
}

func (m *memStore) Delete(id string) error {
	delete(m.requests, id)
	return nil
}

// GamificationStore

func (m *memStore) WithTx(fn func(GamificationStore) error) error {
	return fn(m)
}

func (m *memStore) GetChallenge(id string) (*models.Challenge, error) {
	if c, ok := m.challenges[id]; ok {
		copy := c
		return &copy, nil
	}
	return nil, nil
}

func (m *memStore) GetSubmission(id string) (*models.ChallengeSubmission, error) {
	if s, ok := m.submissions[id]; ok {
		copy := s
		return &copy, nil
	}
	return nil, nil
}

func (m *memStore) FindSubmission(userID, challengeID string) (*models.ChallengeSubmission, error) {
	for _, s := range m.submissions {
		if s.UserID == userID && s.ChallengeID == challengeID {
			copy := s
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *memStore) InsertSubmission(sub *models.ChallengeSubmission) error {
	m.submissions[sub.ID] = *sub
	return nil
}

func (m *memStore) UpdateSubmission(sub *models.ChallengeSubmission) error {
	m.submissions[sub.ID] = *sub
	return nil
}

func (m *memStore) DeleteSubmission(id string) error {
	delete(m.submissions, id)
	return nil
}

func (m *memStore) GetReward(id string) (*models.Reward, error) {
	if r, ok := m.rewards[id]; ok {
		copy := r
		return &copy, nil
	}
	return nil, nil
}

func (m *memStore) UpdateReward(reward *models.Reward) error {
	m.rewards[reward.ID] = *reward
	return nil
}

func (m *memStore) GetRedemption(id string) (*models.RedemptionRequest, error) {
	if r, ok := m.redemptions[id]; ok {
		copy := r
		return &copy, nil
	}
	return nil, nil
}

func (m *memStore) InsertRedemption(red *models.RedemptionRequest) error {
	m.redemptions[red.ID] = *red
	return nil
}

func (m *memStore) UpdateRedemption(red *models.RedemptionRequest) error {
	m.redemptions[red.ID] = *red
	return nil
}

func (m *memStore) Balance(userID string) (int, bool, error) {
	points, ok := m.balances[userID]
	return points, ok, nil
}

func (m *memStore) SetBalance(userID string, points int) error {
	m.balances[userID] = points
	return nil
}

func (m *memStore) ListResidentsByRegion(region string) ([]models.User, error) {
	out := []models.User{}
	for _, u := range m.users {
		if u.Role == models.RoleResident && u.Region == region {
			out = append(out, u)
		}
	}
	return out, nil
}

func testResident(id, name, region string) *models.User {
	return &models.User{
		ID:     id,
		Name:   name,
		Role:   models.RoleResident,
		Region: region,
	}
}

func testOrganization(id, name, region string) *models.User {
	return &models.User{
		ID:     id,
		Name:   name,
		Role:   models.RoleOrganization,
		Region: region,
	}
}
