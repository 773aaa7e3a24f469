package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/packhouse/backend/internal/model"
)

// Claims represents session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) model.TokenManager {
	return &JWT{secretKey: secretKey}
}

const sessionTTL = 12 * time.Hour

// Generate creates a session token for the given user.
func (j *JWT) Generate(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		UserID: userID,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Parse validates a session token and extracts the user ID and issue time.
// The issue time drives the recent-login check on account deletion.
func (j *JWT) Parse(tokenString string) (model.TokenInfo, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return model.TokenInfo{}, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return model.TokenInfo{}, fmt.Errorf("session token is invalid")
	}
	if claims.IssuedAt == nil {
		return model.TokenInfo{}, fmt.Errorf("session token has no issue time")
	}
	return model.TokenInfo{UserID: claims.UserID, IssuedAt: claims.IssuedAt.Time}, nil
}
