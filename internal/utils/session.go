package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clinic-management-server/internal/config"
	"clinic-management-server/internal/models"
)

// SessionCookieName is the HTTP-only cookie carrying the session token.
const SessionCookieName = "clinic_session"

// SessionClaims represents the signed session payload.
type SessionClaims struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a session token for a logged-in user.
func GenerateSessionToken(user *models.User, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.SessionTTLHours) * time.Hour)
	claims := &SessionClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns its claims.
func ValidateSessionToken(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
