package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/services"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// RedeemReward files a redemption request for a reward. Points are not
// deducted here; that happens when the administration marks it delivered.
func RedeemReward(db *sqlx.DB, svc *services.RedemptionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		rewardID := chi.URLParam(r, "id")

		var req models.RedeemRewardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		red, err := svc.Request(rewardID, req.CurrentPoints, user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		log.Printf("🎫 Redemption %s filed: %s wants %s (%d pts)", red.ID, user.Name, red.RewardTitle, red.Cost)
		utils.JSON(w, http.StatusCreated, red)
	}
}

// ListMyRedemptions returns the caller's redemption history, newest first.
func ListMyRedemptions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		reds := []models.RedemptionRequest{}
		err := db.Select(&reds,
			`SELECT * FROM redemption_requests WHERE user_id = $1 ORDER BY created_at DESC`,
			claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to list redemptions: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, reds)
	}
}

// ListPendingRedemptions returns the processing queue (organization only).
func ListPendingRedemptions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reds := []models.RedemptionRequest{}
		err := db.Select(&reds,
			`SELECT * FROM redemption_requests WHERE status = 'pending' ORDER BY created_at ASC`)
		if err != nil {
			log.Printf("❌ Failed to list pending redemptions: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, reds)
	}
}

// ProcessRedemption delivers or rejects a pending redemption. Delivery
// re-validates stock and balance and commits both side effects atomically.
func ProcessRedemption(db *sqlx.DB, svc *services.RedemptionService, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		redemptionID := chi.URLParam(r, "id")

		var req models.ProcessRedemptionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := svc.Process(redemptionID, req.Status, req.Feedback); err != nil {
			utils.ServiceError(w, err)
			return
		}

		var red models.RedemptionRequest
		if err := db.Get(&red, `SELECT * FROM redemption_requests WHERE id = $1`, redemptionID); err != nil {
			log.Printf("⚠️  Processed redemption %s but could not reload it: %v", redemptionID, err)
			utils.Success(w, map[string]bool{"ok": true})
			return
		}

		log.Printf("🎫 Redemption %s -> %s (%s, %d pts)", red.ID, red.Status, red.RewardTitle, red.Cost)

		title := "Resgate entregue! 🎁"
		body := "Seu resgate de \"" + red.RewardTitle + "\" foi entregue."
		if red.Status == models.RedemptionRejected {
			title = "Resgate não aprovado"
			body = "Seu resgate de \"" + red.RewardTitle + "\" foi recusado. " + red.AdminFeedback
		}
		for _, token := range fcmTokensForUser(db, red.UserID) {
			if err := fcm.SendReviewNotification(token, title, body, map[string]string{
				"type":          "redemption_processed",
				"redemption_id": red.ID,
				"status":        red.Status,
			}); err != nil {
				log.Printf("⚠️  Push notification failed for %s: %v", red.UserID, err)
			}
		}

		utils.Success(w, red)
	}
}
