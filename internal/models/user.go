package models

// User roles. Organizations are condominium/neighborhood administrators
// with mutation rights scoped to their own region.
const (
	RoleResident     = "resident"
	RoleOrganization = "organization"
)

type User struct {
	ID       string `json:"id" db:"id"`
	Email    string `json:"email" db:"email"`
	Password string `json:"-" db:"password"` // Never return password in JSON
	Name     string `json:"name" db:"name"`
	Role     string `json:"role" db:"role"` // "resident" or "organization"
	Region   string `json:"region" db:"region"`
	Avatar   string `json:"avatar" db:"avatar"`
	Phone    string `json:"phone" db:"phone"`

	// Resident fields
	Address       string `json:"address,omitempty" db:"address"`
	CPF           string `json:"cpf,omitempty" db:"cpf"`
	HouseholdSize int    `json:"household_size,omitempty" db:"household_size"`

	// Organization fields
	CNPJ        string `json:"cnpj,omitempty" db:"cnpj"`
	ContactName string `json:"contact_name,omitempty" db:"contact_name"`
	Segment     string `json:"segment,omitempty" db:"segment"`

	CreatedAt int64 `json:"created_at" db:"created_at"`
	UpdatedAt int64 `json:"updated_at" db:"updated_at"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	Region        string `json:"region"`
	Avatar        string `json:"avatar"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	CPF           string `json:"cpf,omitempty"`
	HouseholdSize int    `json:"household_size,omitempty"`
	CNPJ          string `json:"cnpj,omitempty"`
	ContactName   string `json:"contact_name,omitempty"`
	Segment       string `json:"segment,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

func (u *User) ToUserResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role,
		Region:        u.Region,
		Avatar:        u.Avatar,
		Phone:         u.Phone,
		Address:       u.Address,
		CPF:           u.CPF,
		HouseholdSize: u.HouseholdSize,
		CNPJ:          u.CNPJ,
		ContactName:   u.ContactName,
		Segment:       u.Segment,
		CreatedAt:     u.CreatedAt,
	}
}

// RegisterRequest is the request body for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Region   string `json:"region"`
	Phone    string `json:"phone"`

	// Resident fields
	Address       string `json:"address"`
	CPF           string `json:"cpf"`
	HouseholdSize int    `json:"household_size"`

	// Organization fields
	CNPJ        string `json:"cnpj"`
	ContactName string `json:"contact_name"`
	Segment     string `json:"segment"`
}

// UpdateProfileRequest enumerates the profile fields a user may change.
// Role, region and email are fixed at registration.
type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	HouseholdSize *int    `json:"household_size,omitempty"`
	ContactName   *string `json:"contact_name,omitempty"`
	Segment       *string `json:"segment,omitempty"`
}
