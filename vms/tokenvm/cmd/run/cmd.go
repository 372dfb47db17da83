// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package run

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/corruptabledb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Soccial/soccial-token-sub000/api/admin"
	"github.com/Soccial/soccial-token-sub000/api/server"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/api"
)

const (
	serviceBase       = "token"
	metricsPath       = "/metrics"
	readHeaderTimeout = 30 * time.Second
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Runs a token node",
		RunE:  runFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func runFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", net.JoinHostPort(config.HTTPHost, strconv.Itoa(int(config.HTTPPort))))
	if err != nil {
		return err
	}
	return Run(ctx, log.NewLogger(tokenvm.Name), listener, config)
}

// Run serves the token VM on listener until ctx is cancelled or the server
// fails. The VM and its database are closed before Run returns.
func Run(ctx context.Context, logger log.Logger, listener net.Listener, config *Config) error {
	genesisBytes, err := os.ReadFile(config.GenesisFile)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to read genesis: %w", err), listener.Close())
	}
	var configBytes []byte
	if config.ConfigFile != "" {
		configBytes, err = os.ReadFile(config.ConfigFile)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to read config: %w", err), listener.Close())
		}
	}

	db, err := openDB(config.DBDir, logger)
	if err != nil {
		return errors.Join(err, listener.Close())
	}

	registry := prometheus.NewRegistry()
	err = errors.Join(
		registry.Register(collectors.NewGoCollector()),
		registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})),
	)
	if err != nil {
		return errors.Join(err, db.Close(), listener.Close())
	}

	vm := &tokenvm.VM{}
	if err := vm.Initialize(ctx, db, genesisBytes, configBytes, logger, registry); err != nil {
		return errors.Join(err, db.Close(), listener.Close())
	}

	srv, err := newServer(vm, logger, listener, registry, config)
	if err != nil {
		return errors.Join(err, vm.Shutdown(context.Background()), db.Close(), listener.Close())
	}

	logger.Info("serving token vm",
		log.Stringer("address", listener.Addr()),
		log.Bool("authentication", config.JWTSecret != ""),
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down server")
		return srv.Shutdown()
	})
	err = g.Wait()
	return errors.Join(err, vm.Shutdown(context.Background()), db.Close())
}

func newServer(
	vm *tokenvm.VM,
	logger log.Logger,
	listener net.Listener,
	registry *prometheus.Registry,
	config *Config,
) (server.Server, error) {
	var auth *api.Authenticator
	if config.JWTSecret != "" {
		var err error
		auth, err = api.NewAuthenticator([]byte(config.JWTSecret))
		if err != nil {
			return nil, err
		}
	}

	handlers, err := vm.CreateHandlers(context.Background(), auth)
	if err != nil {
		return nil, err
	}

	srv, err := server.New(
		logger,
		listener,
		config.AllowedOrigins,
		config.AllowedHosts,
		config.ShutdownTimeout,
		registry,
		server.HTTPConfig{
			ReadHeaderTimeout: readHeaderTimeout,
		},
	)
	if err != nil {
		return nil, err
	}
	for extension, handler := range handlers {
		if err := srv.AddRoute(handler, serviceBase, extension); err != nil {
			return nil, err
		}
	}
	if config.AdminAPIEnabled {
		adminHandler, err := admin.NewService(logger, config.ProfileDir, auth, vm)
		if err != nil {
			return nil, err
		}
		if err := srv.AddRoute(adminHandler, admin.ServiceName, ""); err != nil {
			return nil, err
		}
	}
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	if err := srv.AddHandler(metricsHandler, metricsPath); err != nil {
		return nil, err
	}
	return srv, nil
}

// openDB returns a badger database under dir, or an in-memory database when
// dir is empty.
func openDB(dir string, logger log.Logger) (database.Database, error) {
	if dir == "" {
		logger.Warn("no database directory configured, state will not survive a restart")
		return memdb.New(), nil
	}
	db, err := badgerdb.New(dir, nil, "", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dir, err)
	}
	return corruptabledb.New(db, logger), nil
}
