package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
)

// querier is the subset of sqlx shared by *sqlx.DB and *sqlx.Tx, so the
// same store methods run inside and outside a transaction.
type querier interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
	NamedExec(query string, arg interface{}) (sql.Result, error)
}

// GamificationStore is the Postgres-backed persistence for challenges,
// submissions, rewards, redemptions and the points ledger.
type GamificationStore struct {
	db *sqlx.DB // nil when the store is bound to a transaction
	q  querier
}

func NewGamificationStore(db *sqlx.DB) *GamificationStore {
	return &GamificationStore{db: db, q: db}
}

// WithTx runs fn against a store view bound to one transaction. Nested
// calls reuse the enclosing transaction.
func (s *GamificationStore) WithTx(fn func(services.GamificationStore) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&GamificationStore{q: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *GamificationStore) GetChallenge(id string) (*models.Challenge, error) {
	var challenge models.Challenge
	err := s.q.Get(&challenge, `SELECT * FROM challenges WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge: %w", err)
	}
	return &challenge, nil
}

func (s *GamificationStore) GetSubmission(id string) (*models.ChallengeSubmission, error) {
	var sub models.ChallengeSubmission
	err := s.q.Get(&sub, `SELECT * FROM challenge_submissions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission: %w", err)
	}
	return &sub, nil
}

func (s *GamificationStore) FindSubmission(userID, challengeID string) (*models.ChallengeSubmission, error) {
	var sub models.ChallengeSubmission
	err := s.q.Get(&sub,
		`SELECT * FROM challenge_submissions WHERE user_id = $1 AND challenge_id = $2`,
		userID, challengeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find submission: %w", err)
	}
	return &sub, nil
}

func (s *GamificationStore) InsertSubmission(sub *models.ChallengeSubmission) error {
	_, err := s.q.NamedExec(`
		INSERT INTO challenge_submissions
			(id, challenge_id, challenge_title, user_id, user_name, proof_text, status, admin_feedback, created_at)
		VALUES
			(:id, :challenge_id, :challenge_title, :user_id, :user_name, :proof_text, :status, :admin_feedback, :created_at)`,
		sub)
	if err != nil {
		return fmt.Errorf("failed to insert submission: %w", err)
	}
	return nil
}

func (s *GamificationStore) UpdateSubmission(sub *models.ChallengeSubmission) error {
	_, err := s.q.NamedExec(`
		UPDATE challenge_submissions SET
			status = :status,
			admin_feedback = :admin_feedback
		WHERE id = :id`, sub)
	if err != nil {
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

func (s *GamificationStore) DeleteSubmission(id string) error {
	_, err := s.q.Exec(`DELETE FROM challenge_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}

func (s *GamificationStore) GetReward(id string) (*models.Reward, error) {
	var reward models.Reward
	err := s.q.Get(&reward, `SELECT * FROM rewards WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reward: %w", err)
	}
	return &reward, nil
}

func (s *GamificationStore) UpdateReward(reward *models.Reward) error {
	_, err := s.q.NamedExec(`
		UPDATE rewards SET
			title = :title,
			cost = :cost,
			description = :description,
			stock = :stock,
			available = :available
		WHERE id = :id`, reward)
	if err != nil {
		return fmt.Errorf("failed to update reward: %w", err)
	}
	return nil
}

func (s *GamificationStore) GetRedemption(id string) (*models.RedemptionRequest, error) {
	var red models.RedemptionRequest
	err := s.q.Get(&red, `SELECT * FROM redemption_requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch redemption: %w", err)
	}
	return &red, nil
}

func (s *GamificationStore) InsertRedemption(red *models.RedemptionRequest) error {
	_, err := s.q.NamedExec(`
		INSERT INTO redemption_requests
			(id, user_id, user_name, reward_id, reward_title, cost, status, admin_feedback, created_at)
		VALUES
			(:id, :user_id, :user_name, :reward_id, :reward_title, :cost, :status, :admin_feedback, :created_at)`,
		red)
	if err != nil {
		return fmt.Errorf("failed to insert redemption: %w", err)
	}
	return nil
}

func (s *GamificationStore) UpdateRedemption(red *models.RedemptionRequest) error {
	_, err := s.q.NamedExec(`
		UPDATE redemption_requests SET
			status = :status,
			admin_feedback = :admin_feedback
		WHERE id = :id`, red)
	if err != nil {
		return fmt.Errorf("failed to update redemption: %w", err)
	}
	return nil
}

func (s *GamificationStore) Balance(userID string) (int, bool, error) {
	var points int
	err := s.q.Get(&points, `SELECT points FROM user_points WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to fetch balance: %w", err)
	}
	return points, true, nil
}

func (s *GamificationStore) SetBalance(userID string, points int) error {
	_, err := s.q.Exec(`
		INSERT INTO user_points (user_id, points, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET points = $2, updated_at = $3`,
		userID, points, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

func (s *GamificationStore) ListResidentsByRegion(region string) ([]models.User, error) {
	users := []models.User{}
	err := s.q.Select(&users,
		`SELECT * FROM users WHERE region = $1 AND role = 'resident' ORDER BY name ASC`, region)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	return users, nil
}
