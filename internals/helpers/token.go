package helper

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"madaris_backend/internals/configs"
)

const tokenTTL = 24 * time.Hour

// CreateToken signs the session claims issued at login.
func CreateToken(userID uint, username, role, schoolID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	}
	if schoolID != "" {
		claims["school_id"] = schoolID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

// ParseToken verifies a bearer token and returns its claims.
func ParseToken(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(configs.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GetRawAccessToken pulls the bearer token from the Authorization header.
func GetRawAccessToken(c *fiber.Ctx) string {
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && auth[:len(p)] == p {
		return auth[len(p):]
	}
	return ""
}
