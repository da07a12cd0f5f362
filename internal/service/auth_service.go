package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tickdesk/tickdesk/internal/models"
	"github.com/tickdesk/tickdesk/internal/repository"
)

// AuthService verifies credentials and issues the signed session tokens
// the middleware later turns back into an Identity. Passwords are only
// ever handled as bcrypt hashes at rest.
type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates an authentication service. tokenTTL bounds the
// lifetime of issued tokens.
func NewAuthService(users repository.UserRepository, secret []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Login checks the claimed credentials against the stored hash and, on
// success, returns the user and a signed token. Unknown usernames and
// wrong passwords come back as the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

// GenerateToken signs a session token for the user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// IdentityFromToken validates a session token and rebuilds the acting
// identity from its claims.
func (s *AuthService) IdentityFromToken(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return models.Identity{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Identity{}, errors.New("invalid token claims")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return models.Identity{}, errors.New("invalid username in token")
	}
	role, _ := claims["role"].(string)
	if !models.ValidRole(role) {
		role = models.RoleUser
	}

	return models.Identity{Username: username, Role: role}, nil
}
