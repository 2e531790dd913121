package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// TokenType distinguishes short-lived access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

//go:generate mockery --name=Manager --dir=. --output=mocks/ --filename=jwt_manager_mock.go --case=underscore --with-expecter
type (
	Manager interface {
		CreateToken(userID uuid.UUID, email string, tokenType TokenType) (string, error)
		ValidateToken(tokenString string, tokenType TokenType) (*Claims, error)
	}
	manager struct {
		config *config.AuthConfig
	}
)

func NewJwtManager(config *config.AuthConfig) Manager {
	return &manager{
		config: config,
	}
}

type Claims struct {
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

func (m *manager) CreateToken(userID uuid.UUID, email string, tokenType TokenType) (string, error) {
	now := time.Now()
	expiry := now.Add(time.Duration(m.config.AccessTokenExpiryMins) * time.Minute)
	if tokenType == RefreshToken {
		expiry = now.Add(time.Duration(m.config.RefreshTokenExpiryDays) * 24 * time.Hour)
	}
	claims := &Claims{
		UserID:    userID.String(),
		UserEmail: email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.SecretKey))
}

func (m *manager) ValidateToken(tokenString string, tokenType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(m.config.SecretKey), nil
		},
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
