package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dashboard/entity"
	"dashboard/repository"
	"dashboard/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles login and token refresh.
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   repo,
		jwtSecret:  secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type TokenPair struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn"`
	User         *entity.User `json:"user,omitempty"`
}

// Login checks the credentials and issues a token pair.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != entity.UserActive {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// Refresh trades a valid refresh token for a new pair.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := utils.ParseToken(refreshToken, utils.TokenRefresh, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != entity.UserActive {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	u, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, wrapDB(fmt.Sprintf("user %d", userID), err)
	}
	return u, nil
}

func (s *AuthService) issue(user *entity.User) (*TokenPair, error) {
	access, err := utils.GenerateToken(user.ID, user.Role.Name, utils.TokenAccess, s.jwtSecret, s.accessTTL)
	if err != nil {
		return nil, errors.New("cannot generate token")
	}
	refresh, err := utils.GenerateToken(user.ID, user.Role.Name, utils.TokenRefresh, s.jwtSecret, s.refreshTTL)
	if err != nil {
		return nil, errors.New("cannot generate token")
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
		User:         user,
	}, nil
}
