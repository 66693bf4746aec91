// Package token mints and checks the self-contained session tokens
// both services trust. A token carries the user identity and stays
// valid until its expiry; there is no server-side token state.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type (
	Identity struct {
		UserID   string
		Username string
	}

	claims struct {
		Username string `json:"username"`
		jwt.RegisteredClaims
	}

	Issuer struct {
		secret   []byte
		validity time.Duration
		now      func() time.Time
	}

	Verifier struct {
		secret []byte
	}
)

// Validity is the fixed window every issued token lives for.
const Validity = 24 * time.Hour

// ErrInvalidToken covers missing, malformed, tampered and expired
// tokens alike; callers must not learn which one it was.
var ErrInvalidToken = errors.New("invalid token")

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, validity: Validity, now: time.Now}
}

// Issue signs a token for the identity. Tokens issued at different
// instants differ but each is independently valid until its expiry.
func (i *Issuer) Issue(userID, username string) (string, error) {
	now := i.now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
	})
	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("token: unable to sign token, cause %w", err)
	}
	return signed, nil
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify checks signature and expiry and extracts the identity. Pure
// function of (token, clock, secret); the context only exists to keep
// the signature interchangeable with remote verifiers.
func (v *Verifier) Verify(_ context.Context, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, ErrInvalidToken
	}
	var cl claims
	tk, err := jwt.ParseWithClaims(tokenString, &cl, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !tk.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: cl.Subject, Username: cl.Username}, nil
}
