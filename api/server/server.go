// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	baseURL              = "/ext"
	maxConcurrentStreams = 64
)

var (
	_ Server = (*server)(nil)

	errDuplicateRoute = errors.New("route already registered")
)

// Server maintains the HTTP router
type Server interface {
	// AddRoute registers handler under /ext/<base><endpoint>.
	AddRoute(handler http.Handler, base, endpoint string) error
	// AddHandler registers handler at an absolute path, outside of /ext.
	AddHandler(handler http.Handler, path string) error
	// Dispatch starts the API server
	Dispatch() error
	// Shutdown this server
	Shutdown() error
}

type HTTPConfig struct {
	ReadTimeout       time.Duration `json:"readTimeout"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout"`
	WriteTimeout      time.Duration `json:"writeTimeout"`
	IdleTimeout       time.Duration `json:"idleTimeout"`
}

type server struct {
	// log this server writes to
	log log.Logger

	shutdownTimeout time.Duration

	metrics *serverMetrics

	router *mux.Router
	lock   sync.Mutex
	routes map[string]struct{}

	srv *http.Server

	// Listener used to serve traffic
	listener net.Listener
}

// New returns an instance of a Server.
func New(
	log log.Logger,
	listener net.Listener,
	allowedOrigins []string,
	allowedHosts []string,
	shutdownTimeout time.Duration,
	registerer prometheus.Registerer,
	httpConfig HTTPConfig,
) (Server, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	handler := wrapHandler(router, allowedOrigins, allowedHosts)

	httpServer := &http.Server{
		Handler: h2c.NewHandler(
			handler,
			&http2.Server{
				MaxConcurrentStreams: maxConcurrentStreams,
			}),
		ReadTimeout:       httpConfig.ReadTimeout,
		ReadHeaderTimeout: httpConfig.ReadHeaderTimeout,
		WriteTimeout:      httpConfig.WriteTimeout,
		IdleTimeout:       httpConfig.IdleTimeout,
	}

	log.Info("API created with allowed origins: " + strings.Join(allowedOrigins, ","))

	return &server{
		log:             log,
		shutdownTimeout: shutdownTimeout,
		metrics:         m,
		router:          router,
		routes:          make(map[string]struct{}),
		srv:             httpServer,
		listener:        listener,
	}, nil
}

func (s *server) Dispatch() error {
	err := s.srv.Serve(s.listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *server) AddRoute(handler http.Handler, base, endpoint string) error {
	url := fmt.Sprintf("%s/%s%s", baseURL, base, endpoint)
	s.log.Info("adding route",
		log.String("url", url),
	)
	return s.addHandler(s.metrics.wrapHandler(base, handler), url)
}

func (s *server) AddHandler(handler http.Handler, path string) error {
	s.log.Info("adding handler",
		log.String("path", path),
	)
	return s.addHandler(handler, path)
}

func (s *server) addHandler(handler http.Handler, path string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.routes[path]; ok {
		return fmt.Errorf("%w: %s", errDuplicateRoute, path)
	}
	s.routes[path] = struct{}{}
	s.router.Handle(path, handler)
	return nil
}

func (s *server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	err := s.srv.Shutdown(ctx)
	cancel()

	// If shutdown times out, make sure the server is still shutdown.
	_ = s.srv.Close()
	return err
}

func wrapHandler(
	handler http.Handler,
	allowedOrigins []string,
	allowedHosts []string,
) http.Handler {
	h := filterInvalidHosts(handler, allowedHosts)
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
	}).Handler(h)
}

// filterInvalidHosts rejects requests whose Host is not in allowedHosts. A
// "*" entry, an empty list or an IP literal host allows the request.
func filterInvalidHosts(handler http.Handler, allowedHosts []string) http.Handler {
	filter := make(map[string]struct{}, len(allowedHosts))
	for _, host := range allowedHosts {
		if host == "*" {
			return handler
		}
		filter[strings.ToLower(host)] = struct{}{}
	}
	if len(filter) == 0 {
		return handler
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			host = r.Host
		}
		if net.ParseIP(host) != nil {
			handler.ServeHTTP(w, r)
			return
		}
		if _, ok := filter[strings.ToLower(host)]; !ok {
			http.Error(w, "invalid host specified", http.StatusForbidden)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
