// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package tokenvm hosts the token economy: authorization, vaults, fees,
// staking, vesting and governance over a single atomic database.
package tokenvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Soccial/soccial-token-sub000/utils/timer/mockable"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/api"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/config"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/genesis"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/market"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/metrics"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/state"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/token"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

const Name = "tokenvm"

var (
	_ api.Backend = (*VM)(nil)

	errNotInitialized = errors.New("vm not initialized")
	errShutdown       = errors.New("vm is shut down")

	tokenPrefix = []byte("token")
	statePrefix = []byte("state")
)

type VM struct {
	config  *config.Config
	log     log.Logger
	metrics *metrics.Metrics
	clock   mockable.Clock

	// lock serializes operations. Each operation sees the committed result
	// of the previous one.
	lock     sync.Mutex
	shutdown bool

	db     *versiondb.Database
	state  *state.State
	tokens *token.Ledger

	access     *access.Manager
	vaults     *vault.Ledger
	staking    *staking.Engine
	vesting    *vesting.Engine
	governance *governance.Engine
	market     *market.Engine
}

// Initialize wires the engines over db and applies genesisBytes the first
// time db is used.
func (vm *VM) Initialize(
	ctx context.Context,
	db database.Database,
	genesisBytes []byte,
	configBytes []byte,
	logger log.Logger,
	registerer prometheus.Registerer,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := config.GetConfig(configBytes)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Verify(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	vm.config = cfg
	vm.log = logger

	vm.metrics, err = metrics.New(registerer)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	vm.db = versiondb.New(db)
	vm.tokens = token.NewLedger(prefixdb.New(tokenPrefix, vm.db))
	vm.state, err = state.New(prefixdb.New(statePrefix, vm.db), cfg.AccessCacheSize)
	if err != nil {
		return err
	}

	vm.access = access.NewManager(vm.state, logger)
	auth := vm.access.Authorizer
	vm.vaults = vault.NewLedger(auth, vm.tokens, vm.state, cfg.MaxMemoLength, logger)
	vm.staking = staking.NewEngine(cfg.Staking, auth, vm.vaults, vm.state, &vm.clock, logger)
	vm.vesting = vesting.NewEngine(auth, vm.vaults, vm.state, &vm.clock, logger)
	vm.governance = governance.NewEngine(
		cfg.Governance,
		cfg.FeeLimits,
		auth,
		vm.vaults,
		vm.tokens,
		vm.state,
		&vm.clock,
		logger,
	)
	vm.market = market.NewEngine(auth, vm.vaults, vm.staking, logger)

	initialized, err := vm.state.IsInitialized()
	if err != nil {
		return err
	}
	if !initialized {
		g, err := genesis.Parse(genesisBytes)
		if err != nil {
			return err
		}
		if err := vm.applyGenesis(g); err != nil {
			vm.db.Abort()
			vm.state.Purge()
			return fmt.Errorf("failed to apply genesis: %w", err)
		}
		if err := vm.db.Commit(); err != nil {
			return err
		}
	}

	if err := vm.refreshVaultMetrics(); err != nil {
		return err
	}
	vm.log.Info("token vm initialized",
		log.Bool("genesis", !initialized),
		log.Int("maxMemoLength", cfg.MaxMemoLength),
	)
	return nil
}

func (vm *VM) applyGenesis(g *genesis.Genesis) error {
	err := vm.access.Initialize(&access.Settings{
		Owner:        g.Owner,
		APIAuthority: g.APIAuthority,
		Version:      g.Version,
	})
	if err != nil {
		return err
	}

	for _, user := range g.Users {
		if user.IsAdmin {
			if err := vm.access.SetAdmin(g.Owner, user.Address, true); err != nil {
				return err
			}
		}
		for _, name := range user.Permissions {
			if err := vm.access.GrantPermission(g.Owner, user.Address, name); err != nil {
				return err
			}
		}
		for _, name := range user.Flags {
			if err := vm.access.SetFlag(g.Owner, user.Address, name); err != nil {
				return err
			}
		}
	}

	if err := vm.governance.Initialize(g.Governance, g.FeeConfig); err != nil {
		return err
	}
	for _, plan := range g.StakingPlans {
		if err := vm.staking.AddPlan(g.Owner, plan.ID, plan.LockupDuration, plan.AprBps); err != nil {
			return err
		}
	}
	for i := range g.Allocations {
		allocation := &g.Allocations[i]
		holder, err := allocation.Holder()
		if err != nil {
			return err
		}
		if err := vm.tokens.Mint(holder, allocation.Amount); err != nil {
			return err
		}
	}

	supply, err := vm.tokens.TotalSupply()
	if err != nil {
		return err
	}
	vm.log.Info("genesis applied",
		log.Stringer("owner", g.Owner),
		log.Int("users", len(g.Users)),
		log.Int("plans", len(g.StakingPlans)),
		log.Uint64("supply", supply),
	)
	return vm.state.SetInitialized()
}

// execute runs fn as one atomic operation. Every write fn makes is
// committed if it returns nil and discarded otherwise. Operations that are
// not administrative are rejected while the contract is paused.
func (vm *VM) execute(operation string, administrative bool, fn func() error) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if err := vm.ready(); err != nil {
		return err
	}
	start := time.Now()
	err := vm.run(administrative, fn)
	vm.metrics.Observe(operation, time.Since(start), err)
	if err != nil {
		vm.log.Debug("operation rejected",
			log.String("operation", operation),
			log.Err(err),
		)
		return err
	}
	if err := vm.refreshVaultMetrics(); err != nil {
		vm.log.Warn("failed to read vault balances", log.Err(err))
	}
	return nil
}

func (vm *VM) ready() error {
	switch {
	case vm.shutdown:
		return errShutdown
	case vm.db == nil:
		return errNotInitialized
	}
	return nil
}

func (vm *VM) run(administrative bool, fn func() error) error {
	if !administrative {
		if err := vm.access.RequireNotPaused(); err != nil {
			return err
		}
	}
	if err := fn(); err != nil {
		vm.abort()
		return err
	}
	if err := vm.db.Commit(); err != nil {
		vm.abort()
		return err
	}
	return nil
}

func (vm *VM) abort() {
	vm.db.Abort()
	vm.state.Purge()
}

func (vm *VM) refreshVaultMetrics() error {
	balances, err := vm.vaults.Balances()
	if err != nil {
		return err
	}
	vm.metrics.SetVaultBalances(balances)
	return nil
}

// read runs fn under the operation lock against committed state.
func (vm *VM) read(fn func() error) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if err := vm.ready(); err != nil {
		return err
	}
	return fn()
}

// CreateHandlers returns the JSON-RPC handler of the VM keyed by its path
// extension. Operations can only be executed when auth is provided.
func (vm *VM) CreateHandlers(_ context.Context, auth *api.Authenticator) (map[string]http.Handler, error) {
	handler, err := api.NewHandler(vm, auth, vm.log)
	if err != nil {
		return nil, err
	}
	return map[string]http.Handler{
		"": handler,
	}, nil
}

// Clock returns the clock every time-dependent operation reads.
func (vm *VM) Clock() *mockable.Clock {
	return &vm.clock
}

func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown || vm.db == nil {
		vm.shutdown = true
		return nil
	}
	vm.shutdown = true
	vm.log.Info("shutting down token vm")
	return vm.db.Close()
}
