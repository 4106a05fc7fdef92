package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tutortribe/internal/entities"
	"tutortribe/internal/repository"
)

var (
	// ErrDomainNotAllowed: username is outside the institutional email domain.
	ErrDomainNotAllowed = errors.New("email domain not allowed")
	// ErrInvalidCredentials covers both unknown user and wrong password, so the
	// two are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

const refreshTokenTTL = 7 * 24 * time.Hour

type AuthService struct {
	users         repository.UserRepository
	secret        []byte
	accessTTL     time.Duration
	allowedDomain string
}

func NewAuthService(users repository.UserRepository, secret string, accessTTL time.Duration, allowedDomain string) *AuthService {
	return &AuthService{
		users:         users,
		secret:        []byte(secret),
		accessTTL:     accessTTL,
		allowedDomain: strings.ToLower(allowedDomain),
	}
}

func (s *AuthService) AllowedDomain() string {
	return s.allowedDomain
}

// Login implements the password grant. The domain policy is checked before any
// store access.
func (s *AuthService) Login(username, password string) (*entities.TokenResponse, error) {
	if !strings.HasSuffix(strings.ToLower(username), s.allowedDomain) {
		return nil, ErrDomainNotAllowed
	}

	user, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()

	accessClaims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("error signing access token: %w", err)
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID,
		"iat": now.Unix(),
		"exp": now.Add(refreshTokenTTL).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("error signing refresh token: %w", err)
	}

	return &entities.TokenResponse{
		TokenType:    "Bearer",
		AccessToken:  accessToken,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		RefreshToken: refreshToken,
		Scope:        "read write",
		User: entities.UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		},
	}, nil
}
