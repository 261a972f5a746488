package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/madrasa-lms/madrasa/internal/apperror"
)

// Token purposes. Access tokens authenticate requests; reset tokens are only
// good for the password-reset confirm step.
const (
	PurposeAccess = "access"
	PurposeReset  = "password_reset"
)

type Claims struct {
	UserID  uint   `json:"user_id"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateToken(userID uint, purpose string, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature, expiry and purpose, and returns the
// user id the token was issued for.
func ParseToken(tokenString, purpose, secret string) (uint, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperror.Unauthorized("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, apperror.Wrap(apperror.KindUnauthorized, "invalid token", err)
	}
	if !token.Valid {
		return 0, apperror.Unauthorized("invalid token")
	}
	if claims.Purpose != purpose {
		return 0, apperror.Unauthorized("token not valid for this operation")
	}
	return claims.UserID, nil
}
