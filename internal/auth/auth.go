// Package auth issues and verifies bearer tokens and tracks revoked ones.
package auth

import (
	"librarian/internal/apperr"
)

const TokenTypeBearer = "bearer"

var (
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "incorrect email or password")
	ErrInvalidToken       = apperr.New(apperr.ErrUnauthorized, "could not validate credentials")
	ErrInactiveUser       = apperr.New(apperr.ErrUnauthorized, "user is inactive")
)

// Token is the response to a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
