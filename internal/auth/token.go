package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"expensetracker/internal/apperr"
	"expensetracker/internal/models"
)

// Claims is the payload embedded in every issued bearer token. Verification
// is stateless: expiry is the only invalidation mechanism.
type Claims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256-signed token for user, valid for ttl.
func GenerateToken(user *models.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(secret)
}

// ParseToken verifies a bearer token against secret and returns its claims.
// Any failure (malformed token, wrong signing method, bad signature, expiry,
// missing identity claims) is reported as Unauthenticated.
func ParseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm confusion.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindUnauthenticated, Message: "Invalid or expired token", Err: err}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthenticated("Invalid or expired token")
	}
	if claims.UserID == 0 {
		return nil, apperr.Unauthenticated("Token missing subject")
	}
	if claims.Role != models.RoleEmployee && claims.Role != models.RoleAdmin {
		return nil, apperr.Unauthenticated("Token carries unknown role")
	}
	return claims, nil
}
