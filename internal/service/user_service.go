package service

import (
	"errors"

	"go-retail-pos/internal/model"
	"go-retail-pos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserService interface {
	GetAllUsers() ([]model.UserResponse, error)
	GetUserByID(id uuid.UUID) (*model.UserResponse, error)
	UpdateUser(id uuid.UUID, req *model.UpdateUserRequest) (*model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, model.NewPersistenceError("user.findAll", err)
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *model.UpdateUserRequest) (*model.UserResponse, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		email, err := model.NormalizeEmail(*req.Email)
		if err != nil {
			return nil, err
		}
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			return nil, model.NewConflictError("email %s already exists", email)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewPersistenceError("user.findByEmail", err)
		}
		user.Email = email
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}
	if req.FullName != nil {
		if *req.FullName == "" {
			return nil, model.NewValidationError("full name cannot be empty")
		}
		user.FullName = *req.FullName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, model.NewPersistenceError("user.update", err)
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.findUser(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return model.NewPersistenceError("user.delete", err)
	}
	return nil
}

func (s *userService) findUser(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.NewNotFoundError("user", id.String())
		}
		return nil, model.NewPersistenceError("user.findByID", err)
	}
	return user, nil
}
