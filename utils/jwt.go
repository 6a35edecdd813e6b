package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenTTL = 7 * 24 * time.Hour

// GenerateJWT signs a bearer token carrying the user id and email.
func GenerateJWT(userID uint, email string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", NewInternalError("JWT secret not configured")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"exp":    time.Now().Add(tokenTTL).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseJWT validates an HS256 token and returns the embedded user id
// and email.
func ParseJWT(tokenString string) (uint, string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, "", NewInternalError("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", NewAuthenticationError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", NewAuthenticationError("invalid claims")
	}

	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, "", NewAuthenticationError("userId claim missing")
	}
	email, _ := claims["email"].(string)

	return uint(id), email, nil
}
