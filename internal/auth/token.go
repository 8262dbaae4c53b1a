package auth

import (
	"errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenManager handles issuing and validating identity tokens. Tokens carry
// only the subject user id and do not expire.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager around the signing key.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the token payload.
type Claims struct {
	UserID int64 `json:"id"`
	jwt.RegisteredClaims
}

// Sign builds and signs a token for the user.
func (tm *TokenManager) Sign(userID int64) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: userID})
	return token.SignedString(tm.secret)
}

// Parse validates the signature and returns claims.
func (tm *TokenManager) Parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
