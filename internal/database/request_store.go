package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"recoleta-backend/internal/models"
)

// RequestStore is the Postgres-backed persistence for collection requests.
type RequestStore struct {
	db *sqlx.DB
}

func NewRequestStore(db *sqlx.DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) Get(id string) (*models.CollectionRequest, error) {
	var req models.CollectionRequest
	err := s.db.Get(&req, `SELECT * FROM collection_requests WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch request: %w", err)
	}
	return &req, nil
}

func (s *RequestStore) ListByUser(userID string) ([]models.CollectionRequest, error) {
	requests := []models.CollectionRequest{}
	err := s.db.Select(&requests,
		`SELECT * FROM collection_requests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by user: %w", err)
	}
	return requests, nil
}

func (s *RequestStore) ListByRegion(region string) ([]models.CollectionRequest, error) {
	requests := []models.CollectionRequest{}
	err := s.db.Select(&requests,
		`SELECT * FROM collection_requests WHERE community_id = $1 ORDER BY created_at DESC`, region)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests by region: %w", err)
	}
	return requests, nil
}

func (s *RequestStore) Insert(req *models.CollectionRequest) error {
	_, err := s.db.NamedExec(`
		INSERT INTO collection_requests
			(id, user_id, user_name, community_id, photo_url, category, action_type,
			 address, description, scheduled_at, status, created_at)
		VALUES
			(:id, :user_id, :user_name, :community_id, :photo_url, :category, :action_type,
			 :address, :description, :scheduled_at, :status, :created_at)`, req)
	if err != nil {
		return fmt.Errorf("failed to insert request: %w", err)
	}
	return nil
}

func (s *RequestStore) Update(req *models.CollectionRequest) error {
	result, err := s.db.NamedExec(`
		UPDATE collection_requests SET
			photo_url = :photo_url,
			category = :category,
			action_type = :action_type,
			address = :address,
			description = :description,
			scheduled_at = :scheduled_at,
			status = :status
		WHERE id = :id`, req)
	if err != nil {
		return fmt.Errorf("failed to update request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("request %s does not exist", req.ID)
	}
	return nil
}

func (s *RequestStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM collection_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("request %s does not exist", id)
	}
	return nil
}
