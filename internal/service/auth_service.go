package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/entities"
	"pawhaven/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 72 * time.Hour

type AuthService interface {
	Register(req entities.RegisterRequest) (int, error)
	Login(email, password string) (string, error)
	Logout(ctx context.Context, tokenString string) error
	GetProfile(userID int) (*entities.UserResponse, error)
	UpdateProfile(userID int, req entities.UpdateProfileRequest) error
}

type authService struct {
	repo      repository.UserRepository
	tokens    TokenStore
	jwtSecret string
}

func NewAuthService(repo repository.UserRepository, tokens TokenStore, jwtSecret string) AuthService {
	return &authService{repo: repo, tokens: tokens, jwtSecret: jwtSecret}
}

func (s *authService) Register(req entities.RegisterRequest) (int, error) {
	existing, err := s.repo.GetByEmail(req.Email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, errors.New("email already registered")
	}
	return s.repo.CreateUser(req.Name, req.Email, req.Password, req.Phone, "user")
}

func (s *authService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", errors.New("invalid credentials")
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *authService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid token claims")
	}
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return errors.New("token has no jti")
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return errors.New("token has no expiry")
	}
	return s.tokens.Revoke(ctx, jti, time.Until(exp.Time))
}

func (s *authService) GetProfile(userID int) (*entities.UserResponse, error) {
	user, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return &entities.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
		Role:  user.Role,
	}, nil
}

func (s *authService) UpdateProfile(userID int, req entities.UpdateProfileRequest) error {
	return s.repo.UpdateProfile(userID, req.Name, req.Phone)
}
