// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionLifetime is how long a minted credential stays valid. The voter has
// this long to fill out and submit the ballot after OTP verification.
const SessionLifetime = 15 * time.Minute

// ErrInvalidSession is returned when a credential fails signature
// verification or its embedded expiry has passed.
var ErrInvalidSession = errors.New("invalid or expired session credential")

// SessionAuthority mints and verifies the self-contained bearer credential
// that proves a completed OTP verification. No session state is held server
// side; possession of a valid credential is the whole proof. The signing
// mechanism is swappable behind this interface.
type SessionAuthority interface {
	Mint(voterID string) (string, error)
	Verify(credential string) (string, error)
}

// JWTAuthority implements SessionAuthority with HMAC-SHA256 signed JWTs.
type JWTAuthority struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewJWTAuthority(secret string) *JWTAuthority {
	return &JWTAuthority{
		secret:   []byte(secret),
		lifetime: SessionLifetime,
		now:      time.Now,
	}
}

// Mint issues a credential binding the voter identifier to a 15-minute
// validity window.
func (a *JWTAuthority) Mint(voterID string) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   voterID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.lifetime)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session credential: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the voter identifier
// the credential was minted for. Any failure collapses to ErrInvalidSession;
// callers get no hint of which check failed.
func (a *JWTAuthority) Verify(credential string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(t *jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	if err != nil {
		return "", ErrInvalidSession
	}
	if claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
