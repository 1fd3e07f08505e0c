package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"recoleta-backend/internal/models"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListChallenges returns the challenge catalog, newest first.
func ListChallenges(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challenges := []models.Challenge{}
		if err := db.Select(&challenges, `SELECT * FROM challenges ORDER BY created_at DESC`); err != nil {
			log.Printf("❌ Failed to list challenges: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, challenges)
	}
}

// CreateChallenge adds a challenge to the catalog (organization only,
// enforced by route middleware).
func CreateChallenge(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateChallengeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			utils.Error(w, http.StatusBadRequest, "Título é obrigatório.")
			return
		}
		if req.XPReward < 0 {
			utils.Error(w, http.StatusBadRequest, "Recompensa não pode ser negativa.")
			return
		}
		if req.Type != models.ChallengeDaily && req.Type != models.ChallengeWeekly && req.Type != models.ChallengeSpecial {
			utils.Error(w, http.StatusBadRequest, "Tipo de desafio inválido.")
			return
		}

		challenge := models.Challenge{
			ID:          uuid.New().String(),
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			XPReward:    req.XPReward,
			Type:        req.Type,
			CreatedAt:   time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO challenges (id, title, description, xp_reward, type, created_at)
			VALUES (:id, :title, :description, :xp_reward, :type, :created_at)`, challenge)
		if err != nil {
			log.Printf("❌ Failed to insert challenge: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("🏆 Challenge created: %s (%d pts)", challenge.Title, challenge.XPReward)
		utils.JSON(w, http.StatusCreated, challenge)
	}
}

// UpdateChallenge edits the mutable fields of a challenge.
func UpdateChallenge(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challengeID := chi.URLParam(r, "id")

		var req models.UpdateChallengeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var challenge models.Challenge
		if err := db.Get(&challenge, `SELECT * FROM challenges WHERE id = $1`, challengeID); err != nil {
			utils.Error(w, http.StatusNotFound, "Desafio não encontrado.")
			return
		}

		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				utils.Error(w, http.StatusBadRequest, "Título não pode ser vazio.")
				return
			}
			challenge.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			challenge.Description = strings.TrimSpace(*req.Description)
		}
		if req.XPReward != nil {
			if *req.XPReward < 0 {
				utils.Error(w, http.StatusBadRequest, "Recompensa não pode ser negativa.")
				return
			}
			challenge.XPReward = *req.XPReward
		}

		_, err := db.NamedExec(`
			UPDATE challenges SET title = :title, description = :description, xp_reward = :xp_reward
			WHERE id = :id`, challenge)
		if err != nil {
			log.Printf("❌ Failed to update challenge: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, challenge)
	}
}

// DeleteChallenge removes a challenge and, via cascade, its submissions.
func DeleteChallenge(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		challengeID := chi.URLParam(r, "id")

		result, err := db.Exec(`DELETE FROM challenges WHERE id = $1`, challengeID)
		if err != nil {
			log.Printf("❌ Failed to delete challenge: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Desafio não encontrado.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}
