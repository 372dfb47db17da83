// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var teapot = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusTeapot)
})

func TestFilterInvalidHosts(t *testing.T) {
	tests := []struct {
		name           string
		allowedHosts   []string
		host           string
		expectedStatus int
	}{
		{
			name:           "no filter",
			host:           "example.com",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "wildcard",
			allowedHosts:   []string{"localhost", "*"},
			host:           "example.com",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "allowed host with port",
			allowedHosts:   []string{"localhost"},
			host:           "LOCALHOST:9650",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "ip literal",
			allowedHosts:   []string{"localhost"},
			host:           "127.0.0.1:9650",
			expectedStatus: http.StatusTeapot,
		},
		{
			name:           "unknown host",
			allowedHosts:   []string{"localhost"},
			host:           "example.com",
			expectedStatus: http.StatusForbidden,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Host = test.host
			recorder := httptest.NewRecorder()
			filterInvalidHosts(teapot, test.allowedHosts).ServeHTTP(recorder, request)
			require.Equal(t, test.expectedStatus, recorder.Code)
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	require := require.New(t)

	handler := wrapHandler(teapot, []string{"https://app.example"}, nil)
	request := httptest.NewRequest(http.MethodOptions, "/", nil)
	request.Header.Set("Origin", "https://app.example")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.Equal("https://app.example", recorder.Header().Get("Access-Control-Allow-Origin"))
	require.Equal("true", recorder.Header().Get("Access-Control-Allow-Credentials"))
}

func TestServer(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	s, err := New(
		log.NewNoOpLogger(),
		listener,
		[]string{"*"},
		[]string{"*"},
		time.Second,
		prometheus.NewRegistry(),
		HTTPConfig{ReadHeaderTimeout: time.Second},
	)
	require.NoError(err)

	require.NoError(s.AddRoute(teapot, "token", ""))
	require.ErrorIs(s.AddRoute(teapot, "token", ""), errDuplicateRoute)
	require.NoError(s.AddHandler(teapot, "/metrics"))

	dispatched := make(chan error, 1)
	go func() {
		dispatched <- s.Dispatch()
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	for _, path := range []string{"/ext/token", "/metrics"} {
		response, err := client.Get("http://" + listener.Addr().String() + path)
		require.NoError(err)
		require.NoError(response.Body.Close())
		require.Equal(http.StatusTeapot, response.StatusCode, path)
	}

	response, err := client.Get("http://" + listener.Addr().String() + "/ext/other")
	require.NoError(err)
	require.NoError(response.Body.Close())
	require.Equal(http.StatusNotFound, response.StatusCode)

	require.NoError(s.Shutdown())
	require.NoError(<-dispatched)
}
