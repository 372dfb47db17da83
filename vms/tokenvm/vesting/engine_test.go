// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vesting

import (
	"testing"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/Soccial/soccial-token-sub000/utils/timer/mockable"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/token"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
)

const liquidity = 1_000_000_000

var genesisTime = time.Unix(1_700_000_000, 0)

type memStore struct {
	settings  access.Settings
	users     map[ids.ShortID]access.UserAccess
	schedules map[uint64]Schedule
	lastID    uint64
}

func (s *memStore) GetSettings() (*access.Settings, error) {
	settings := s.settings
	return &settings, nil
}

func (s *memStore) PutSettings(settings *access.Settings) error {
	s.settings = *settings
	return nil
}

func (s *memStore) GetUserAccess(addr ids.ShortID) (*access.UserAccess, error) {
	ua, ok := s.users[addr]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &ua, nil
}

func (s *memStore) PutUserAccess(ua *access.UserAccess) error {
	s.users[ua.Address] = *ua
	return nil
}

func (*memStore) GetFeeConfig() (fee.Config, error) {
	return fee.DefaultConfig, nil
}

func (s *memStore) GetSchedule(id uint64) (*Schedule, error) {
	schedule, ok := s.schedules[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &schedule, nil
}

func (s *memStore) PutSchedule(schedule *Schedule) error {
	s.schedules[schedule.ID] = *schedule
	return nil
}

func (s *memStore) NextVestingID() (uint64, error) {
	id := s.lastID
	s.lastID++
	return id, nil
}

type testEnv struct {
	owner   ids.ShortID
	alice   ids.ShortID
	granter ids.ShortID
	manager ids.ShortID
	clock   *mockable.Clock
	tokens  *token.Ledger
	engine  *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		owner:   ids.GenerateTestShortID(),
		alice:   ids.GenerateTestShortID(),
		granter: ids.GenerateTestShortID(),
		manager: ids.GenerateTestShortID(),
		clock:   &mockable.Clock{},
		tokens:  token.NewLedger(memdb.New()),
	}
	env.clock.Set(genesisTime)
	store := &memStore{
		settings: access.Settings{Owner: env.owner},
		users: map[ids.ShortID]access.UserAccess{
			env.granter: {
				Address:     env.granter,
				Permissions: uint64(access.CreateVesting | access.UpdateVesting),
			},
			env.manager: {
				Address:     env.manager,
				Permissions: uint64(access.ManageVesting),
			},
		},
		schedules: make(map[uint64]Schedule),
	}
	auth := access.NewAuthorizer(store)
	vaults := vault.NewLedger(auth, env.tokens, store, 128, log.NewNoOpLogger())
	env.engine = NewEngine(auth, vaults, store, env.clock, log.NewNoOpLogger())

	require.NoError(t, env.tokens.Mint(vault.Liquidity.Address(), liquidity))
	return env
}

func (env *testEnv) balance(t *testing.T, holder ids.ShortID) uint64 {
	balance, err := env.tokens.Balance(holder)
	require.NoError(t, err)
	return balance
}

func (env *testEnv) create(t *testing.T, terms Terms) *Schedule {
	schedule, err := env.engine.Create(env.granter, env.alice, terms)
	require.NoError(t, err)
	return schedule
}

func TestVested(t *testing.T) {
	tests := []struct {
		name     string
		terms    Terms
		now      uint64
		expected uint64
	}{
		{
			name:     "before cliff",
			terms:    Terms{StartTime: 100, CliffDuration: 50, VestingDuration: 100, InitialTokens: 10, TotalTokens: 110},
			now:      149,
			expected: 0,
		},
		{
			name:     "initial at cliff",
			terms:    Terms{StartTime: 100, CliffDuration: 50, VestingDuration: 100, InitialTokens: 10, TotalTokens: 110},
			now:      150,
			expected: 10,
		},
		{
			name:     "linear midway",
			terms:    Terms{StartTime: 100, CliffDuration: 50, VestingDuration: 100, InitialTokens: 10, TotalTokens: 110},
			now:      175,
			expected: 35,
		},
		{
			name:     "linear end",
			terms:    Terms{StartTime: 100, CliffDuration: 50, VestingDuration: 100, InitialTokens: 10, TotalTokens: 110},
			now:      250,
			expected: 110,
		},
		{
			name:     "between cycles",
			terms:    Terms{StartTime: 0, VestingDuration: 400, Cycles: 4, TotalTokens: 1_000},
			now:      199,
			expected: 250,
		},
		{
			name:     "on cycle boundary",
			terms:    Terms{StartTime: 0, VestingDuration: 400, Cycles: 4, TotalTokens: 1_000},
			now:      200,
			expected: 500,
		},
		{
			name:     "zero duration releases at cliff",
			terms:    Terms{StartTime: 10, CliffDuration: 5, TotalTokens: 1_000},
			now:      15,
			expected: 1_000,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			vested, err := test.terms.Vested(test.now)
			require.NoError(t, err)
			require.Equal(t, test.expected, vested)
		})
	}
}

func TestShortScheduleReleasesEverything(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{VestingDuration: 1, TotalTokens: 100_000_000})
	require.Equal(uint64(genesisTime.Unix()), schedule.StartTime)
	require.Equal(uint64(100_000_000), env.balance(t, vault.Vesting.Address()))

	env.clock.Advance(time.Second)
	released, err := env.engine.Claim(env.alice, schedule.ID)
	require.NoError(err)
	require.Equal(uint64(100_000_000), released)
	require.Equal(uint64(100_000_000), env.balance(t, env.alice))
	require.Zero(env.balance(t, vault.Vesting.Address()))
}

func TestClaimBeforeCliff(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{
		CliffDuration:   100,
		VestingDuration: 1_000,
		InitialTokens:   1_000,
		TotalTokens:     11_000,
	})

	_, err := env.engine.Claim(env.alice, schedule.ID)
	require.ErrorIs(err, errs.ErrNoTokensToRelease)

	env.clock.Advance(99 * time.Second)
	_, err = env.engine.Claim(env.alice, schedule.ID)
	require.ErrorIs(err, errs.ErrNoTokensToRelease)

	env.clock.Advance(time.Second)
	released, err := env.engine.Claim(env.alice, schedule.ID)
	require.NoError(err)
	require.Equal(uint64(1_000), released)
}

func TestRepeatedClaimsNeverExceedTotal(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	const total = 1_000_003
	schedule := env.create(t, Terms{
		CliffDuration:   10,
		VestingDuration: 997,
		InitialTokens:   7,
		TotalTokens:     total,
	})

	var claimed uint64
	for i := 0; i < 200; i++ {
		env.clock.Advance(7 * time.Second)
		released, err := env.engine.Claim(env.alice, schedule.ID)
		if err != nil {
			require.ErrorIs(err, errs.ErrNoTokensToRelease)
			continue
		}
		claimed += released
		require.LessOrEqual(claimed, uint64(total))
	}
	require.Equal(uint64(total), claimed)

	stored, err := env.engine.GetSchedule(schedule.ID)
	require.NoError(err)
	require.Equal(uint64(total), stored.ReleasedTokens)
}

func TestCreatePreconditions(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		caller      ids.ShortID
		participant ids.ShortID
		terms       Terms
		expected    error
	}{
		{
			name:        "unauthorized",
			caller:      env.manager,
			participant: env.alice,
			terms:       Terms{TotalTokens: 1},
			expected:    errs.ErrUnauthorized,
		},
		{
			name:        "initial above total",
			caller:      env.granter,
			participant: env.alice,
			terms:       Terms{InitialTokens: 2, TotalTokens: 1},
			expected:    errs.ErrInvalidSchedule,
		},
		{
			name:        "zero total",
			caller:      env.granter,
			participant: env.alice,
			terms:       Terms{},
			expected:    errs.ErrInvalidSchedule,
		},
		{
			name:        "more cycles than seconds",
			caller:      env.granter,
			participant: env.alice,
			terms:       Terms{Cycles: 10, VestingDuration: 9, TotalTokens: 1},
			expected:    errs.ErrInvalidSchedule,
		},
		{
			name:        "vault participant",
			caller:      env.granter,
			participant: vault.Treasury.Address(),
			terms:       Terms{TotalTokens: 1},
			expected:    errs.ErrInvalidSchedule,
		},
		{
			name:        "liquidity too small",
			caller:      env.granter,
			participant: env.alice,
			terms:       Terms{TotalTokens: liquidity + 1},
			expected:    errs.ErrInsufficientVaultBalance,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := env.engine.Create(test.caller, test.participant, test.terms)
			require.ErrorIs(t, err, test.expected)
		})
	}
}

func TestSequentialIDs(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	first := env.create(t, Terms{TotalTokens: 1})
	second := env.create(t, Terms{TotalTokens: 1})
	require.Zero(first.ID)
	require.Equal(uint64(1), second.ID)
}

func TestClaimOnBehalf(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{TotalTokens: 500})
	_, err := env.engine.Claim(env.granter, schedule.ID)
	require.ErrorIs(err, errs.ErrUnauthorized)

	released, err := env.engine.Claim(env.manager, schedule.ID)
	require.NoError(err)
	require.Equal(uint64(500), released)
	require.Equal(uint64(500), env.balance(t, env.alice))

	_, err = env.engine.Claim(env.alice, 99)
	require.ErrorIs(err, errs.ErrScheduleNotFound)
}

func TestImmutableSchedule(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{VestingDuration: 100, TotalTokens: 1_000})

	_, err := env.engine.SetImmutable(env.granter, schedule.ID)
	require.ErrorIs(err, errs.ErrUnauthorized)

	changed, err := env.engine.SetImmutable(env.manager, schedule.ID)
	require.NoError(err)
	require.True(changed)

	changed, err = env.engine.SetImmutable(env.manager, schedule.ID)
	require.NoError(err)
	require.False(changed)

	_, err = env.engine.Update(env.granter, schedule.ID, Terms{VestingDuration: 10, TotalTokens: 1_000})
	require.ErrorIs(err, errs.ErrScheduleImmutable)
	_, err = env.engine.Cancel(env.manager, schedule.ID)
	require.ErrorIs(err, errs.ErrScheduleImmutable)

	env.clock.Advance(50 * time.Second)
	released, err := env.engine.Claim(env.alice, schedule.ID)
	require.NoError(err)
	require.Equal(uint64(500), released)
}

func TestCancelReturnsRemainder(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{VestingDuration: 100, TotalTokens: 1_000})
	env.clock.Advance(30 * time.Second)
	_, err := env.engine.Claim(env.alice, schedule.ID)
	require.NoError(err)

	_, err = env.engine.Cancel(env.granter, schedule.ID)
	require.ErrorIs(err, errs.ErrUnauthorized)

	returned, err := env.engine.Cancel(env.manager, schedule.ID)
	require.NoError(err)
	require.Equal(uint64(700), returned)
	require.Zero(env.balance(t, vault.Vesting.Address()))
	require.Equal(uint64(liquidity-300), env.balance(t, vault.Liquidity.Address()))

	env.clock.Advance(time.Hour)
	_, err = env.engine.Claim(env.alice, schedule.ID)
	require.ErrorIs(err, errs.ErrScheduleCancelled)
	_, err = env.engine.Cancel(env.manager, schedule.ID)
	require.ErrorIs(err, errs.ErrScheduleCancelled)
	_, err = env.engine.SetImmutable(env.manager, schedule.ID)
	require.ErrorIs(err, errs.ErrScheduleCancelled)

	releasable, err := env.engine.Releasable(schedule.ID)
	require.NoError(err)
	require.Zero(releasable)
}

func TestUpdateRebalances(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	schedule := env.create(t, Terms{VestingDuration: 100, TotalTokens: 1_000})
	env.clock.Advance(50 * time.Second)
	_, err := env.engine.Claim(env.alice, schedule.ID)
	require.NoError(err)

	updated, err := env.engine.Update(env.granter, schedule.ID, Terms{VestingDuration: 100, TotalTokens: 3_000})
	require.NoError(err)
	require.Equal(schedule.StartTime, updated.StartTime)
	require.Equal(uint64(2_500), env.balance(t, vault.Vesting.Address()))

	_, err = env.engine.Update(env.granter, schedule.ID, Terms{VestingDuration: 100, TotalTokens: 499})
	require.ErrorIs(err, errs.ErrInvalidSchedule)

	_, err = env.engine.Update(env.granter, schedule.ID, Terms{VestingDuration: 100, TotalTokens: 800})
	require.NoError(err)
	require.Equal(uint64(300), env.balance(t, vault.Vesting.Address()))
	require.Equal(uint64(liquidity-800), env.balance(t, vault.Liquidity.Address()))

	releasable, err := env.engine.Releasable(schedule.ID)
	require.NoError(err)
	// 400 vested against 500 already released
	require.Zero(releasable)
}
