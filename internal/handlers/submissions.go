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

// SubmitChallengeProof files the caller's proof for a challenge.
func SubmitChallengeProof(db *sqlx.DB, svc *services.SubmissionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		challengeID := chi.URLParam(r, "id")

		var req models.SubmitProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		sub, err := svc.Submit(challengeID, req.ProofText, user)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		log.Printf("📨 Submission %s for challenge %s by %s", sub.ID, challengeID, user.Name)
		utils.JSON(w, http.StatusCreated, sub)
	}
}

// ListMySubmissions returns the caller's submissions, newest first.
func ListMySubmissions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		subs := []models.ChallengeSubmission{}
		err := db.Select(&subs,
			`SELECT * FROM challenge_submissions WHERE user_id = $1 ORDER BY created_at DESC`,
			claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to list submissions: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, subs)
	}
}

// ListPendingSubmissions returns the review queue (organization only).
func ListPendingSubmissions(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subs := []models.ChallengeSubmission{}
		err := db.Select(&subs,
			`SELECT * FROM challenge_submissions WHERE status = 'pending' ORDER BY created_at ASC`)
		if err != nil {
			log.Printf("❌ Failed to list pending submissions: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		utils.Success(w, subs)
	}
}

// ReviewSubmission approves or rejects a pending submission. Approval
// awards the challenge's points exactly once.
func ReviewSubmission(db *sqlx.DB, svc *services.SubmissionService, fcm *services.FCMService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID := chi.URLParam(r, "id")

		var req models.ReviewSubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		xpAwarded, err := svc.Review(submissionID, req.Status, req.Feedback)
		if err != nil {
			utils.ServiceError(w, err)
			return
		}

		var sub models.ChallengeSubmission
		if err := db.Get(&sub, `SELECT * FROM challenge_submissions WHERE id = $1`, submissionID); err != nil {
			log.Printf("⚠️  Reviewed submission %s but could not reload it: %v", submissionID, err)
			utils.Success(w, map[string]interface{}{"ok": true, "xp_awarded": xpAwarded})
			return
		}

		log.Printf("⚖️  Submission %s %s (%d pts awarded)", submissionID, sub.Status, xpAwarded)

		title := "Desafio aprovado! 🎉"
		body := "Sua participação em \"" + sub.ChallengeTitle + "\" foi aprovada."
		if sub.Status == models.SubmissionRejected {
			title = "Desafio não aprovado"
			body = "Sua participação em \"" + sub.ChallengeTitle + "\" foi recusada. " + sub.AdminFeedback
		}
		for _, token := range fcmTokensForUser(db, sub.UserID) {
			if err := fcm.SendReviewNotification(token, title, body, map[string]string{
				"type":          "submission_review",
				"submission_id": sub.ID,
				"status":        sub.Status,
			}); err != nil {
				log.Printf("⚠️  Push notification failed for %s: %v", sub.UserID, err)
			}
		}

		utils.Success(w, map[string]interface{}{
			"submission": sub,
			"xp_awarded": xpAwarded,
		})
	}
}
