package models

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// SessionToken is a signed session issued to a username.
//
// It embeds [jwt.RegisteredClaims] so it can be passed directly to
// [jwt.ParseWithClaims]; the username travels in the "sub" claim.
type SessionToken struct {
	// Token is the parsed JWT. Excluded from JSON serialization because only
	// the compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Username returns the session owner stored in the "sub" claim.
func (t *SessionToken) Username() (string, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errors.New("empty session subject")
	}
	return sub, nil
}

// String returns the compact JWS serialization of the token.
func (t *SessionToken) String() string {
	return t.SignedString
}
