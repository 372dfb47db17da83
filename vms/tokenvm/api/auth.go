// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/args"
)

const bearerPrefix = "Bearer "

var (
	errEmptySecret             = errors.New("empty token secret")
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
	errInvalidToken            = errors.New("invalid token")
	errUnauthenticated         = errors.New("request is not authenticated")
)

type callerKey struct{}

// Authenticator issues and verifies HS256 tokens whose subject is the
// caller's address.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret []byte) (*Authenticator, error) {
	if len(secret) == 0 {
		return nil, errEmptySecret
	}
	return &Authenticator{secret: secret}, nil
}

// NewToken returns a token for caller. A zero ttl issues a token that never
// expires.
func (a *Authenticator) NewToken(caller ids.ShortID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:  caller.String(),
		IssuedAt: jwt.NewNumericDate(now),
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Verify returns the caller a token was issued for.
func (a *Authenticator) Verify(token string) (ids.ShortID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	caller, err := args.Address(claims.Subject)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("%w: %w", errInvalidToken, err)
	}
	return caller, nil
}

// Wrap authenticates requests that carry a bearer token. Requests without
// one pass through unauthenticated; requests with an invalid one are
// rejected.
func (a *Authenticator) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok {
			http.Error(w, errInvalidToken.Error(), http.StatusUnauthorized)
			return
		}
		caller, err := a.Verify(token)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), callerKey{}, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Caller returns the authenticated caller of r.
func Caller(r *http.Request) (ids.ShortID, error) {
	caller, ok := r.Context().Value(callerKey{}).(ids.ShortID)
	if !ok {
		return ids.ShortEmpty, errUnauthenticated
	}
	return caller, nil
}
