package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type registerTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

// RegisterFCMToken stores or refreshes a device push token for the
// authenticated user.
func RegisterFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		if req.Token == "" {
			utils.Error(w, http.StatusBadRequest, "Token é obrigatório.")
			return
		}
		if req.DeviceType != "ios" && req.DeviceType != "android" && req.DeviceType != "web" {
			utils.Error(w, http.StatusBadRequest, "Tipo de dispositivo inválido.")
			return
		}

		now := time.Now().Unix()
		_, err := db.Exec(`
			INSERT INTO fcm_tokens (user_id, token, device_type, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $4)
			ON CONFLICT (token) DO UPDATE SET user_id = $1, device_type = $3, updated_at = $4`,
			claims.UserID, req.Token, req.DeviceType, now)
		if err != nil {
			log.Printf("❌ Failed to register FCM token: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}

// UnregisterFCMToken removes a device token, e.g. on logout.
func UnregisterFCMToken(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req registerTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if _, err := db.Exec(`DELETE FROM fcm_tokens WHERE token = $1 AND user_id = $2`,
			req.Token, claims.UserID); err != nil {
			log.Printf("❌ Failed to remove FCM token: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, map[string]bool{"ok": true})
	}
}

// fcmTokensForUser returns every registered device token for a user.
// Errors degrade to an empty list; push is best-effort.
func fcmTokensForUser(db *sqlx.DB, userID string) []string {
	tokens := []string{}
	if err := db.Select(&tokens, `SELECT token FROM fcm_tokens WHERE user_id = $1`, userID); err != nil {
		log.Printf("⚠️  Failed to load FCM tokens for %s: %v", userID, err)
		return nil
	}
	return tokens
}

// fcmTokensForRegionResidents returns tokens of all residents of a region.
func fcmTokensForRegionResidents(db *sqlx.DB, region string) []string {
	tokens := []string{}
	err := db.Select(&tokens, `
		SELECT t.token FROM fcm_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE u.region = $1 AND u.role = 'resident'`, region)
	if err != nil {
		log.Printf("⚠️  Failed to load region FCM tokens for %s: %v", region, err)
		return nil
	}
	return tokens
}
