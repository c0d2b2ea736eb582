// Package auth signs and checks the session tokens handed out after a
// successful password check.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/credtable/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the username as the token subject.
type Claims struct {
	jwt.RegisteredClaims
}

// GenerateToken returns an HS256 token for userName expiring after validity.
func GenerateToken(userName string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
	})

	return token.SignedString(secretKey)
}

// ParseToken checks tokenString and returns its username. Expired tokens
// yield common.ErrTokenExpired, anything else wrong common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
