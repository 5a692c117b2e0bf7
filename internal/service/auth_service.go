package service

import (
	"errors"
	"strings"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"
	"go-retail-pos/pkg/jwt"
	"go-retail-pos/pkg/validator"

	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService interface {
	Signup(req *model.SignupRequest) (*model.User, error)
	Login(req *model.LoginRequest) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Signup(req *model.SignupRequest) (*model.User, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	email, err := model.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, model.NewConflictError("email %s already exists", email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.NewPersistenceError("user.findByEmail", err)
	}

	if req.Phone != nil && *req.Phone != "" {
		if _, err := s.userRepo.FindByPhone(*req.Phone); err == nil {
			return nil, model.NewConflictError("phone %s already exists", *req.Phone)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewPersistenceError("user.findByPhone", err)
		}
	}

	user, err := model.NewUser(*req)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, model.NewPersistenceError("user.create", err)
	}
	return user, nil
}

// Login accepts an email or, when the identifier contains no '@', a phone
// number.
func (s *authService) Login(req *model.LoginRequest) (*LoginResponse, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, model.NewValidationError("%s", msg)
	}

	var user *model.User
	var err error
	if strings.Contains(req.Email, "@") {
		user, err = s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	} else {
		user, err = s.userRepo.FindByPhone(req.Email)
	}
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}
