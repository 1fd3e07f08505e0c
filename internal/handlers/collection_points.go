package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListCollectionPoints returns the public bins of the caller's region.
func ListCollectionPoints(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		points := []models.CollectionPoint{}
		err := db.Select(&points,
			`SELECT * FROM collection_points WHERE region = $1 ORDER BY address ASC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list collection points: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, points)
	}
}

// AddCollectionPoint registers a bin in the admin's region.
func AddCollectionPoint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.CreatePointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Address) == "" {
			utils.Error(w, http.StatusBadRequest, "Endereço é obrigatório.")
			return
		}
		if !models.ValidBinStatus(req.Status) {
			utils.Error(w, http.StatusBadRequest, "Status de lixeira inválido.")
			return
		}

		point := models.CollectionPoint{
			ID:        uuid.New().String(),
			Address:   strings.TrimSpace(req.Address),
			Status:    req.Status,
			Type:      req.Type,
			Region:    claims.Region,
			Lat:       req.Lat,
			Lng:       req.Lng,
			CreatedAt: time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO collection_points
				(id, address, status, type, region, lat, lng, predicted_level, last_collection_at, created_at)
			VALUES
				(:id, :address, :status, :type, :region, :lat, :lng, :predicted_level, :last_collection_at, :created_at)`,
			point)
		if err != nil {
			log.Printf("❌ Failed to insert collection point: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("🗑️  Collection point added: %s (%s)", point.Address, point.Region)
		utils.JSON(w, http.StatusCreated, point)
	}
}

// UpdateCollectionPointStatus sets a bin's fill status. Moving back to
// empty records a collection.
func UpdateCollectionPointStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		pointID := chi.URLParam(r, "id")

		var req models.UpdatePointStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if !models.ValidBinStatus(req.Status) {
			utils.Error(w, http.StatusBadRequest, "Status de lixeira inválido.")
			return
		}

		var point models.CollectionPoint
		if err := db.Get(&point, `SELECT * FROM collection_points WHERE id = $1`, pointID); err != nil {
			utils.Error(w, http.StatusNotFound, "Ponto de coleta não encontrado.")
			return
		}
		if point.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Este ponto pertence a outra região.")
			return
		}

		point.Status = req.Status
		if req.Status == models.BinEmpty {
			now := time.Now().Unix()
			point.LastCollectionAt = &now
		}

		_, err := db.NamedExec(`
			UPDATE collection_points SET status = :status, last_collection_at = :last_collection_at
			WHERE id = :id`, point)
		if err != nil {
			log.Printf("❌ Failed to update collection point: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, point)
	}
}

// DeleteCollectionPoint removes a bin from the admin's region.
func DeleteCollectionPoint(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		pointID := chi.URLParam(r, "id")

		result, err := db.Exec(
			`DELETE FROM collection_points WHERE id = $1 AND region = $2`, pointID, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to delete collection point: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Ponto de coleta não encontrado.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}

// PredictCollectionPoints annotates the region's bins with a 24h fill
// forecast. Failures degrade to "Estável (Sem dados)" per point.
func PredictCollectionPoints(db *sqlx.DB, assistant *services.AssistantService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		points := []models.CollectionPoint{}
		err := db.Select(&points,
			`SELECT * FROM collection_points WHERE region = $1 ORDER BY address ASC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list collection points: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, assistant.PredictZoneStatus(r.Context(), points))
	}
}
