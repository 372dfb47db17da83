// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("token-api-test-secret")

func newTestAuthenticator(t *testing.T) *Authenticator {
	auth, err := NewAuthenticator(testSecret)
	require.NoError(t, err)
	return auth
}

func TestNewAuthenticatorRequiresSecret(t *testing.T) {
	_, err := NewAuthenticator(nil)
	require.ErrorIs(t, err, errEmptySecret)
}

func TestTokenRoundTrip(t *testing.T) {
	require := require.New(t)
	auth := newTestAuthenticator(t)
	caller := ids.GenerateTestShortID()

	for _, ttl := range []time.Duration{0, time.Hour} {
		token, err := auth.NewToken(caller, ttl)
		require.NoError(err)

		verified, err := auth.Verify(token)
		require.NoError(err)
		require.Equal(caller, verified)
	}
}

func TestVerifyRejects(t *testing.T) {
	caller := ids.GenerateTestShortID()
	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.RegisteredClaims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.RegisteredClaims{
					Subject: caller.String(),
				})
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{
					Subject:   caller.String(),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				})
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.RegisteredClaims{
					Subject: caller.String(),
				})
			},
		},
		{
			name: "subject is not an address",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{
					Subject: "alice",
				})
			},
		},
		{
			name: "malformed",
			token: func(*testing.T) string {
				return "not.a.token"
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			auth := newTestAuthenticator(t)
			_, err := auth.Verify(test.token(t))
			require.ErrorIs(t, err, errInvalidToken)
		})
	}
}

func TestWrap(t *testing.T) {
	auth := newTestAuthenticator(t)
	caller := ids.GenerateTestShortID()
	token, err := auth.NewToken(caller, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedCaller ids.ShortID
		expectedErr    error
	}{
		{
			name:           "anonymous",
			expectedStatus: http.StatusOK,
			expectedErr:    errUnauthenticated,
		},
		{
			name:           "bearer token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			expectedCaller: caller,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			header:         "Bearer " + token + "x",
			expectedStatus: http.StatusUnauthorized,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)

			var (
				called    bool
				gotCaller ids.ShortID
				gotErr    error
			)
			handler := auth.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				called = true
				gotCaller, gotErr = Caller(r)
			}))

			request := httptest.NewRequest(http.MethodPost, "/", nil)
			if test.header != "" {
				request.Header.Set("Authorization", test.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			require.Equal(test.expectedStatus, recorder.Code)
			if test.expectedStatus != http.StatusOK {
				require.False(called)
				return
			}
			require.True(called)
			require.ErrorIs(gotErr, test.expectedErr)
			require.Equal(test.expectedCaller, gotCaller)
		})
	}
}
