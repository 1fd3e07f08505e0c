package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"recoleta-backend/internal/middleware"
	"recoleta-backend/internal/models"
	"recoleta-backend/internal/validation"
	"recoleta-backend/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// Sessions expire 30 minutes after login, with no refresh. The client is
// expected to redirect to login when a 401 comes back.
const sessionDuration = 30 * time.Minute

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
	Error string               `json:"error,omitempty"`
}

func generateToken(user *models.User, jwtSecret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"region":  user.Region,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(sessionDuration).Unix(),
	})
	return token.SignedString([]byte(jwtSecret))
}

func Login(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		log.Printf("🔐 Login attempt for: %s", req.Email)

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			utils.JSON(w, http.StatusInternalServerError, AuthResponse{OK: false})
			return
		}

		var user models.User
		query := "SELECT * FROM users WHERE LOWER(email) = LOWER($1)"
		if err := db.Get(&user, query, strings.TrimSpace(req.Email)); err != nil {
			log.Printf("❌ User not found: %s", req.Email)
			utils.JSON(w, http.StatusUnauthorized, AuthResponse{OK: false, Error: "E-mail ou senha inválidos."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			log.Printf("❌ Invalid password for: %s", req.Email)
			utils.JSON(w, http.StatusUnauthorized, AuthResponse{OK: false, Error: "E-mail ou senha inválidos."})
			return
		}

		tokenString, err := generateToken(&user, jwtSecret)
		if err != nil {
			log.Println("❌ Failed to create token")
			http.Error(w, "Failed to create token", http.StatusInternalServerError)
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Login successful: %s (%s)", user.Email, user.Role)

		utils.JSON(w, http.StatusOK, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

func Register(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		log.Printf("📝 Registration attempt: %s (%s)", req.Email, req.Role)

		if msg := validateRegistration(&req); msg != "" {
			utils.Error(w, http.StatusBadRequest, msg)
			return
		}

		var exists bool
		err := db.Get(&exists, "SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))", req.Email)
		if err != nil {
			log.Printf("❌ Failed to check email uniqueness: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if exists {
			utils.Error(w, http.StatusConflict, "Este e-mail já está cadastrado.")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("❌ Failed to hash password: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		now := time.Now().Unix()
		user := models.User{
			ID:        uuid.New().String(),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Password:  string(hash),
			Name:      strings.TrimSpace(req.Name),
			Role:      req.Role,
			Region:    strings.TrimSpace(req.Region),
			Avatar:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random", strings.ReplaceAll(strings.TrimSpace(req.Name), " ", "+")),
			Phone:     validation.CleanDigits(req.Phone),
			CreatedAt: now,
			UpdatedAt: now,
		}

		switch req.Role {
		case models.RoleResident:
			user.Address = strings.TrimSpace(req.Address)
			user.CPF = validation.FormatCPF(req.CPF)
			user.HouseholdSize = req.HouseholdSize
		case models.RoleOrganization:
			user.CNPJ = validation.FormatCNPJ(req.CNPJ)
			user.ContactName = strings.TrimSpace(req.ContactName)
			user.Segment = strings.TrimSpace(req.Segment)
		}

		_, err = db.NamedExec(`
			INSERT INTO users
				(id, email, password, name, role, region, avatar, phone, address, cpf,
				 household_size, cnpj, contact_name, segment, created_at, updated_at)
			VALUES
				(:id, :email, :password, :name, :role, :region, :avatar, :phone, :address, :cpf,
				 :household_size, :cnpj, :contact_name, :segment, :created_at, :updated_at)`, user)
		if err != nil {
			log.Printf("❌ Failed to insert user: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		jwtSecret := os.Getenv("APP_JWT_SECRET")
		if jwtSecret == "" {
			log.Println("❌ JWT secret not configured")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		tokenString, err := generateToken(&user, jwtSecret)
		if err != nil {
			log.Println("❌ Failed to create token")
			http.Error(w, "Failed to create token", http.StatusInternalServerError)
			return
		}

		userResponse := user.ToUserResponse()
		log.Printf("✅ Registered: %s (%s, region=%s)", user.Email, user.Role, user.Region)

		utils.JSON(w, http.StatusCreated, AuthResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

// validateRegistration returns a user-facing message for the first failed
// rule, or "" when the payload is acceptable. Nothing is written before
// this passes.
func validateRegistration(req *models.RegisterRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "Nome é obrigatório."
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		return "E-mail inválido."
	}
	if len(req.Password) < 6 {
		return "A senha deve ter pelo menos 6 caracteres."
	}
	if req.Role != models.RoleResident && req.Role != models.RoleOrganization {
		return "Tipo de conta inválido."
	}
	if strings.TrimSpace(req.Region) == "" {
		return "Região é obrigatória."
	}
	if req.Phone != "" && !validation.ValidatePhone(req.Phone) {
		return "Telefone inválido."
	}

	if req.Role == models.RoleResident {
		if req.CPF != "" && !validation.ValidateCPF(req.CPF) {
			return "CPF inválido."
		}
	} else {
		if req.CNPJ == "" || !validation.ValidateCNPJ(req.CNPJ) {
			return "CNPJ inválido."
		}
	}
	return ""
}

// AuthStatus reports whether the presented token is still valid and who
// it belongs to. The client polls this to detect session expiry.
func AuthStatus(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.JSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		user, err := loadUser(db, claims.UserID)
		if err != nil || user == nil {
			utils.JSON(w, http.StatusUnauthorized, AuthResponse{OK: false})
			return
		}

		resp := user.ToUserResponse()
		utils.JSON(w, http.StatusOK, AuthResponse{OK: true, User: &resp})
	}
}
