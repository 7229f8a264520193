// Package auth mints and parses the signed identity tokens that carry the
// authenticated actor between requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/server/models"
)

// Claims carries the registered claims plus the identity fields the core
// services consume: id, name and email.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// GenerateToken signs an HS256 token embedding the identity.
func GenerateToken(identity models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: identity.ID,
		Name:   identity.Name,
		Email:  identity.Email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// IdentityFromToken validates the token and returns the identity it
// carries. Invalid or expired tokens yield ErrUnauthorized.
func IdentityFromToken(tokenString string, secretKey []byte) (*models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, common.ErrUnauthorized
	}

	return &models.Identity{ID: claims.UserID, Name: claims.Name, Email: claims.Email}, nil
}
