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

// ListRewards returns the reward catalog. Out-of-stock items are still
// listed; the client greys them out.
func ListRewards(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rewards := []models.Reward{}
		if err := db.Select(&rewards, `SELECT * FROM rewards WHERE available = TRUE ORDER BY cost ASC`); err != nil {
			log.Printf("❌ Failed to list rewards: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, rewards)
	}
}

// CreateReward adds a catalog item (organization only).
func CreateReward(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateRewardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Title) == "" {
			utils.Error(w, http.StatusBadRequest, "Título é obrigatório.")
			return
		}
		if req.Cost < 0 || req.Stock < 0 {
			utils.Error(w, http.StatusBadRequest, "Custo e estoque não podem ser negativos.")
			return
		}

		reward := models.Reward{
			ID:          uuid.New().String(),
			Title:       strings.TrimSpace(req.Title),
			Cost:        req.Cost,
			Description: strings.TrimSpace(req.Description),
			Stock:       req.Stock,
			Available:   true,
			CreatedAt:   time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO rewards (id, title, cost, description, stock, available, created_at)
			VALUES (:id, :title, :cost, :description, :stock, :available, :created_at)`, reward)
		if err != nil {
			log.Printf("❌ Failed to insert reward: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("🎁 Reward created: %s (%d pts, stock %d)", reward.Title, reward.Cost, reward.Stock)
		utils.JSON(w, http.StatusCreated, reward)
	}
}

// UpdateReward edits a catalog item.
func UpdateReward(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rewardID := chi.URLParam(r, "id")

		var req models.UpdateRewardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var reward models.Reward
		if err := db.Get(&reward, `SELECT * FROM rewards WHERE id = $1`, rewardID); err != nil {
			utils.Error(w, http.StatusNotFound, "Recompensa não encontrada.")
			return
		}

		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				utils.Error(w, http.StatusBadRequest, "Título não pode ser vazio.")
				return
			}
			reward.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			reward.Description = strings.TrimSpace(*req.Description)
		}
		if req.Cost != nil {
			if *req.Cost < 0 {
				utils.Error(w, http.StatusBadRequest, "Custo não pode ser negativo.")
				return
			}
			reward.Cost = *req.Cost
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				utils.Error(w, http.StatusBadRequest, "Estoque não pode ser negativo.")
				return
			}
			reward.Stock = *req.Stock
		}

		_, err := db.NamedExec(`
			UPDATE rewards SET title = :title, cost = :cost, description = :description,
				stock = :stock, available = :available
			WHERE id = :id`, reward)
		if err != nil {
			log.Printf("❌ Failed to update reward: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, reward)
	}
}

// DeleteReward retires a catalog item. Existing redemption history keeps
// its reward title snapshot.
func DeleteReward(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rewardID := chi.URLParam(r, "id")

		result, err := db.Exec(`DELETE FROM rewards WHERE id = $1`, rewardID)
		if err != nil {
			log.Printf("❌ Failed to delete reward: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Recompensa não encontrada.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}
