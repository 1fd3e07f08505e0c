package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/validation"
	"recoleta-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

// GetMe returns the authenticated user's profile.
func GetMe(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID); err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		utils.Success(w, user.ToUserResponse())
	}
}

// UpdateProfile applies the editable profile fields. Role, region and
// email stay as registered.
func UpdateProfile(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		var user models.User
		if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", claims.UserID); err != nil {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				utils.Error(w, http.StatusBadRequest, "Nome não pode ser vazio.")
				return
			}
			user.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			if *req.Phone != "" && !validation.ValidatePhone(*req.Phone) {
				utils.Error(w, http.StatusBadRequest, "Telefone inválido.")
				return
			}
			user.Phone = validation.CleanDigits(*req.Phone)
		}
		if req.Address != nil {
			user.Address = strings.TrimSpace(*req.Address)
		}
		if req.HouseholdSize != nil {
			if *req.HouseholdSize < 0 {
				utils.Error(w, http.StatusBadRequest, "Tamanho da residência inválido.")
				return
			}
			user.HouseholdSize = *req.HouseholdSize
		}
		if req.ContactName != nil {
			user.ContactName = strings.TrimSpace(*req.ContactName)
		}
		if req.Segment != nil {
			user.Segment = strings.TrimSpace(*req.Segment)
		}
		user.UpdatedAt = time.Now().Unix()

		_, err := db.NamedExec(`
			UPDATE users SET
				name = :name,
				phone = :phone,
				address = :address,
				household_size = :household_size,
				contact_name = :contact_name,
				segment = :segment,
				updated_at = :updated_at
			WHERE id = :id`, user)
		if err != nil {
			log.Printf("❌ Failed to update profile for %s: %v", claims.UserID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		utils.Success(w, user.ToUserResponse())
	}
}

// loadUser fetches a full user row for handlers that need the caller's
// stored profile rather than just the token claims.
func loadUser(db *sqlx.DB, userID string) (*models.User, error) {
	var user models.User
	if err := db.Get(&user, "SELECT * FROM users WHERE id = $1", userID); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListRegionUsers returns every account in the admin's region, residents
// and organizations alike.
func ListRegionUsers(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		users := []models.User{}
		err := db.Select(&users,
			`SELECT * FROM users WHERE region = $1 ORDER BY name ASC`, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to list users: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		responses := make([]models.UserResponse, len(users))
		for i, u := range users {
			responses[i] = u.ToUserResponse()
		}
		utils.Success(w, responses)
	}
}

// DeleteUser removes an account in the admin's region. Admins cannot
// delete themselves through this endpoint.
func DeleteUser(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		userID := chi.URLParam(r, "id")

		if userID == claims.UserID {
			utils.Error(w, http.StatusBadRequest, "Você não pode excluir a própria conta por aqui.")
			return
		}

		result, err := db.Exec(
			`DELETE FROM users WHERE id = $1 AND region = $2`, userID, claims.Region)
		if err != nil {
			log.Printf("❌ Failed to delete user: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			utils.Error(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}

		// Cascade cleanup; FKs are not declared ON DELETE CASCADE.
		if _, err := db.Exec(`DELETE FROM fcm_tokens WHERE user_id = $1`, userID); err != nil {
			log.Printf("❌ Failed to clean up FCM tokens for %s: %v", userID, err)
		}
		if _, err := db.Exec(`DELETE FROM user_points WHERE user_id = $1`, userID); err != nil {
			log.Printf("❌ Failed to clean up points ledger for %s: %v", userID, err)
		}

		log.Printf("🗑️  User removed by admin: %s (region %s)", userID, claims.Region)
		utils.Success(w, map[string]bool{"ok": true})
	}
}
