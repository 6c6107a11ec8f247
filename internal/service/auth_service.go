package service

import (
	"errors"

	"go-consumable-inventory/internal/model"
	"go-consumable-inventory/internal/repository"
	"go-consumable-inventory/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService only exists to hand the stock engine an authenticated actor
// id. It issues tokens; the engine itself never authenticates anything.
type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, User: *user}, nil
}
