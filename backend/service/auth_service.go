package service

import (
	"errors"
	"fmt"
	"time"

	"studyshare/backend/common"
	"studyshare/backend/model"

	"github.com/golang-jwt/jwt/v5"
)

const tokenLifetime = 24 * time.Hour

// Claims carries the authenticated identity inside an API token. College is
// included so the read predicate can be evaluated without a user lookup on
// every request.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	College string `json:"college"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed API token for the user.
func GenerateToken(user *model.User) (string, error) {
	if common.JWTSecret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	now := time.Now()
	claims := Claims{
		UserID:  user.ID,
		Name:    user.Name,
		College: user.College,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "studyshare",
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(common.JWTSecret))
}

// ValidateToken parses and verifies an API token.
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(common.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
