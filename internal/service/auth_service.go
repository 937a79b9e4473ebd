package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/praxis-events/registration-api/internal/dto"
	"github.com/praxis-events/registration-api/internal/models"
	appErrors "github.com/praxis-events/registration-api/pkg/errors"
)

// AuthConfig defines the reviewer account and token parameters, built from
// process configuration at start.
type AuthConfig struct {
	AdminEmail        string
	AdminPasswordHash string
	TokenSecret       string
	TokenExpiry       time.Duration
}

// AuthService authenticates the single reviewer account and issues bearer
// tokens for the admin endpoints.
type AuthService struct {
	config AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(config AuthConfig) *AuthService {
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	return &AuthService{config: config}
}

// Login verifies the reviewer credentials and returns a signed token.
func (s *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.config.AdminPasswordHash == "" {
		return nil, appErrors.Clone(appErrors.ErrInternal, "admin account not configured")
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.config.AdminEmail) {
		return nil, appErrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.ErrInvalidCredentials
	}

	expiresAt := time.Now().UTC().Add(s.config.TokenExpiry)
	claims := &models.JWTClaims{
		Email: s.config.AdminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.config.AdminEmail,
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.TokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}

	return &dto.LoginResponse{Token: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
