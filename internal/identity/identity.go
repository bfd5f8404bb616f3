// Package identity is the boundary with the external identity provider.
// Tokens are issued, refreshed and revoked elsewhere; this package only
// verifies an access token and surfaces the subject user id.
package identity

import (
	"errors"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("identity: invalid token")
	ErrTokenExpired = errors.New("identity: token expired")
)

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier validates access tokens against the shared HMAC secret.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the subject user id.
func (v *Verifier) Verify(tokenString string) (int64, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, nil, ErrTokenExpired
		}
		return 0, nil, ErrInvalidToken
	}
	if !token.Valid {
		return 0, nil, ErrInvalidToken
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, nil, ErrInvalidToken
	}
	return userID, claims, nil
}
