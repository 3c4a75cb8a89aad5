// Package auth implements the signed-token codec: issuing and verifying
// HS256 JWTs that carry the authenticated subject, the user id, and a
// token kind tag separating access tokens from refresh tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avolkov/pdfchat/internal/common"
)

// TokenKind tags a token as access or refresh. Verification requires the
// decoded kind to equal the expected one; this is what stops a refresh
// token from being presented where an access token is required.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims is the claim set encoded into every token: the registered claims
// carry the subject (username) and expiry, UserID and Kind are custom.
type Claims struct {
	jwt.RegisteredClaims
	UserID string    `json:"user_id"`
	Kind   TokenKind `json:"type"`
}

// GenerateToken signs a claim set for the given user with an expiry of
// now + ttl. The codec is stateless; nothing about the issued token is
// retained server-side.
func GenerateToken(username, userID string, kind TokenKind, secretKey []byte, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			// The jti keeps every issued token a distinct string even
			// when two are minted within the same clock second.
			ID: uuid.NewString(),
		},
		UserID: userID,
		Kind:   kind,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns
// its claims. It fails with common.ErrTokenExpired for an expired token
// and common.ErrInvalidToken for any other defect: bad signature, missing
// subject or user id, or a kind tag not equal to expectedKind.
func ParseToken(tokenString string, expectedKind TokenKind, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.Subject == "" || claims.UserID == "" {
		return nil, common.ErrInvalidToken
	}
	if claims.Kind != expectedKind {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
