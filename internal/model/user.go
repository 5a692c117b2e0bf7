package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role enumerates the access levels in the system.
type Role string

const (
	RoleOwner   Role = "Owner"
	RoleManager Role = "Manager"
	RoleCashier Role = "Cashier"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleManager || r == RoleCashier
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents an authenticated user. The password exists at rest only
// as a bcrypt hash; plaintext is transient during creation and verification.
type User struct {
	BaseModel
	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone    *string `gorm:"type:varchar(20);uniqueIndex" json:"phone,omitempty"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string  `gorm:"type:varchar(255);not null" json:"full_name"`
	Role     Role    `gorm:"type:varchar(20);not null" json:"role"`
}

// SignupRequest is the payload for creating a user account.
type SignupRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone"`
	Password string  `json:"password" validate:"required,min=8,max=128"`
	FullName string  `json:"full_name" validate:"required"`
	Role     Role    `json:"role" validate:"required,oneof=Owner Manager Cashier"`
}

// LoginRequest is the payload for authenticating.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries a partial profile update.
type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
}

// NewUser validates, normalizes the email to lowercase, and hashes the
// password before returning a User.
func NewUser(req SignupRequest) (*User, error) {
	email, err := NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if req.FullName == "" {
		return nil, NewValidationError("full name is required")
	}
	if !req.Role.Valid() {
		return nil, NewValidationError("unknown role '%s'", req.Role)
	}

	u := &User{
		Email:    email,
		Phone:    req.Phone,
		FullName: req.FullName,
		Role:     req.Role,
	}
	if err := u.SetPassword(req.Password); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims, validates the format, and lowercases.
func NormalizeEmail(email string) (string, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return "", NewValidationError("email is required")
	}
	if len(trimmed) > 254 {
		return "", NewValidationError("email is too long (max 254 characters)")
	}
	if !emailPattern.MatchString(trimmed) {
		return "", NewValidationError("invalid email format")
	}
	return strings.ToLower(trimmed), nil
}

// validatePassword enforces length plus at-least-one-letter-and-one-number.
func validatePassword(password string) error {
	if len(password) < 8 {
		return NewValidationError("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return NewValidationError("password is too long (max 128 characters)")
	}
	var hasLetter, hasNumber bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasNumber = true
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		}
	}
	if !hasLetter || !hasNumber {
		return NewValidationError("password must contain at least one letter and one number")
	}
	return nil
}

// SetPassword validates and hashes the password before storing it.
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword verifies the provided password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	FullName  string    `json:"full_name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
