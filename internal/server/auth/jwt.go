// Package auth issues and verifies bearer tokens and resolves the caller
// identity carried by them.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a token asserts about its holder. It is the only state
// carried inside a token and must never include secrets.
type Identity struct {
	UserID   string
	UserName string
}

// Claims is the signed payload. The "_id"/"userName" field names are kept
// compatible with tokens minted by earlier deployments.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"_id"`
	UserName string `json:"userName"`
}

// GenerateToken signs identity with secretKey using HS256. A non-positive
// validityDuration yields a token without expiry.
func GenerateToken(identity Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID:   identity.UserID,
		UserName: identity.UserName,
	}
	if validityDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(validityDuration))
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

// ParseToken verifies tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired; anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{UserID: claims.UserID, UserName: claims.UserName}, nil
}
