package handlers

import (
	"testing"
	"time"

	"recoleta-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResidentRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Name:     "Carlos Morador",
		Email:    "carlos@email.com",
		Password: "123456",
		Role:     models.RoleResident,
		Region:   "Centro",
		Phone:    "(11) 98765-4321",
		CPF:      "529.982.247-25",
	}
}

func TestValidateRegistrationResident(t *testing.T) {
	req := validResidentRegistration()
	assert.Empty(t, validateRegistration(&req))

	// CPF is optional for residents.
	req.CPF = ""
	assert.Empty(t, validateRegistration(&req))
}

func TestValidateRegistrationFirstFailureWins(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		message string
	}{
		{"missing name", func(r *models.RegisterRequest) { r.Name = "  " }, "Nome é obrigatório."},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "carlos.email.com" }, "E-mail inválido."},
		{"short password", func(r *models.RegisterRequest) { r.Password = "12345" }, "A senha deve ter pelo menos 6 caracteres."},
		{"bad role", func(r *models.RegisterRequest) { r.Role = "driver" }, "Tipo de conta inválido."},
		{"missing region", func(r *models.RegisterRequest) { r.Region = "" }, "Região é obrigatória."},
		{"bad phone", func(r *models.RegisterRequest) { r.Phone = "1234" }, "Telefone inválido."},
		{"bad cpf", func(r *models.RegisterRequest) { r.CPF = "111.111.111-11" }, "CPF inválido."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validResidentRegistration()
			tc.mutate(&req)
			assert.Equal(t, tc.message, validateRegistration(&req))
		})
	}
}

func TestValidateRegistrationOrganizationRequiresCNPJ(t *testing.T) {
	req := models.RegisterRequest{
		Name:     "Condomínio Solar",
		Email:    "admin@solar.com",
		Password: "123456",
		Role:     models.RoleOrganization,
		Region:   "Centro",
	}

	assert.Equal(t, "CNPJ inválido.", validateRegistration(&req))

	req.CNPJ = "11.222.333/0001-81"
	assert.Empty(t, validateRegistration(&req))
}

func TestGenerateTokenClaims(t *testing.T) {
	user := &models.User{
		ID:     "user-1",
		Email:  "carlos@email.com",
		Name:   "Carlos Morador",
		Role:   models.RoleResident,
		Region: "Centro",
	}

	tokenString, err := generateToken(user, "test-secret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)

	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, models.RoleResident, claims["role"])
	assert.Equal(t, "Centro", claims["region"])

	// Absolute 30-minute expiry, no refresh.
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(sessionDuration/time.Second), exp-iat)
}

func TestGenerateTokenRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: "user-1", Role: models.RoleResident}

	tokenString, err := generateToken(user, "right-secret")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
