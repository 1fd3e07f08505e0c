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
	"recoleta-backend/internal/websocket"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func validAlertType(t string) bool {
	return t == models.AlertInfo || t == models.AlertWarning || t == models.AlertCritical
}

// ListAlerts returns the caller's region announcements, newest first.
func ListAlerts(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		alerts := []models.Alert{}
		err := db.Select(&alerts,
			`SELECT * FROM alerts WHERE region = $1 ORDER BY created_at DESC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list alerts: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, alerts)
	}
}

// CreateAlert publishes an announcement to the admin's region: stored,
// pushed over the live feed, and sent to resident devices.
func CreateAlert(db *sqlx.DB, hub *websocket.Hub, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.CreateAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
			utils.Error(w, http.StatusBadRequest, "Título e mensagem são obrigatórios.")
			return
		}
		if !validAlertType(req.Type) {
			utils.Error(w, http.StatusBadRequest, "Tipo de alerta inválido.")
			return
		}

		alert := models.Alert{
			ID:        uuid.New().String(),
			Title:     strings.TrimSpace(req.Title),
			Message:   strings.TrimSpace(req.Message),
			Type:      req.Type,
			CreatedBy: claims.UserID,
			Region:    claims.Region,
			CreatedAt: time.Now().Unix(),
		}

		_, err := db.NamedExec(`
			INSERT INTO alerts (id, title, message, type, created_by, region, created_at)
			VALUES (:id, :title, :message, :type, :created_by, :region, :created_at)`, alert)
		if err != nil {
			log.Printf("❌ Failed to insert alert: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		log.Printf("📢 Alert published to %s: %s (%s)", alert.Region, alert.Title, alert.Type)

		hub.BroadcastToRegion(alert.Region, map[string]interface{}{
			"type": "alert_created",
			"data": alert,
		})
		if tokens := fcmTokensForRegionResidents(db, alert.Region); len(tokens) > 0 {
			if err := fcm.SendMulticast(tokens, alert.Title, alert.Message, map[string]string{
				"type":     "alert",
				"alert_id": alert.ID,
				"severity": alert.Type,
			}); err != nil {
				log.Printf("⚠️  Alert multicast failed: %v", err)
			}
		}

		utils.JSON(w, http.StatusCreated, alert)
	}
}

// UpdateAlert edits an announcement in the admin's own region.
func UpdateAlert(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		alertID := chi.URLParam(r, "id")

		var req models.UpdateAlertRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var alert models.Alert
		if err := db.Get(&alert, `SELECT * FROM alerts WHERE id = $1`, alertID); err != nil {
			utils.Error(w, http.StatusNotFound, "Alerta não encontrado.")
			return
		}
		if alert.Region != claims.Region {
			utils.Error(w, http.StatusForbidden, "Este alerta pertence a outra região.")
			return
		}

		if req.Title != nil {
			if strings.TrimSpace(*req.Title) == "" {
				utils.Error(w, http.StatusBadRequest, "Título não pode ser vazio.")
				return
			}
			alert.Title = strings.TrimSpace(*req.Title)
		}
		if req.Message != nil {
			if strings.TrimSpace(*req.Message) == "" {
				utils.Error(w, http.StatusBadRequest, "Mensagem não pode ser vazia.")
				return
			}
			alert.Message = strings.TrimSpace(*req.Message)
		}
		if req.Type != nil {
			if !validAlertType(*req.Type) {
				utils.Error(w, http.StatusBadRequest, "Tipo de alerta inválido.")
				return
			}
			alert.Type = *req.Type
		}

		_, err := db.NamedExec(`
			UPDATE alerts SET title = :title, message = :message, type = :type
			WHERE id = :id`, alert)
		if err != nil {
			log.Printf("❌ Failed to update alert: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, alert)
	}
}

// DeleteAlert removes an announcement from the admin's region.
func DeleteAlert(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		alertID := chi.URLParam(r, "id")

		result, err := db.Exec(`DELETE FROM alerts WHERE id = $1 AND region = $2`, alertID, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to delete alert: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Alerta não encontrado.")
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}
