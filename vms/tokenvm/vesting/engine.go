// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vesting

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/utils/timer/mockable"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
)

// Store persists schedules. GetSchedule returns database.ErrNotFound for a
// missing schedule.
type Store interface {
	GetSchedule(id uint64) (*Schedule, error)
	PutSchedule(*Schedule) error

	// NextVestingID returns the next schedule id and advances the counter.
	NextVestingID() (uint64, error)
}

type Engine struct {
	auth   *access.Authorizer
	vaults *vault.Ledger
	store  Store
	clock  *mockable.Clock
	log    log.Logger
}

func NewEngine(
	auth *access.Authorizer,
	vaults *vault.Ledger,
	store Store,
	clock *mockable.Clock,
	logger log.Logger,
) *Engine {
	return &Engine{
		auth:   auth,
		vaults: vaults,
		store:  store,
		clock:  clock,
		log:    logger,
	}
}

// Create funds a new schedule for participant from the liquidity vault. A
// zero StartTime starts the schedule now.
func (e *Engine) Create(caller, participant ids.ShortID, terms Terms) (*Schedule, error) {
	if err := e.auth.Authorize(caller, access.CreateVesting, true); err != nil {
		return nil, err
	}
	if participant == ids.ShortEmpty || vault.IsVault(participant) {
		return nil, fmt.Errorf("%w: invalid participant %s", errs.ErrInvalidSchedule, participant)
	}
	if terms.StartTime == 0 {
		terms.StartTime = e.clock.Unix()
	}
	if err := terms.Verify(); err != nil {
		return nil, err
	}
	if err := e.vaults.RequireBalance(vault.Liquidity, terms.TotalTokens); err != nil {
		return nil, err
	}

	id, err := e.store.NextVestingID()
	if err != nil {
		return nil, err
	}
	schedule := &Schedule{
		ID:          id,
		Participant: participant,
		Terms:       terms,
	}
	if err := e.store.PutSchedule(schedule); err != nil {
		return nil, err
	}
	if err := e.vaults.Move(vault.Liquidity, vault.Vesting, terms.TotalTokens); err != nil {
		return nil, err
	}

	e.log.Info("vesting schedule created",
		log.Uint64("vestingID", id),
		log.Stringer("participant", participant),
		log.Uint64("total", terms.TotalTokens),
		log.Uint64("start", terms.StartTime),
	)
	return schedule, nil
}

// Claim releases everything vested and not yet released to the
// participant.
func (e *Engine) Claim(caller ids.ShortID, id uint64) (uint64, error) {
	schedule, err := e.GetSchedule(id)
	if err != nil {
		return 0, err
	}
	if err := e.auth.AuthorizeSelfOrPermission(caller, schedule.Participant, access.ManageVesting); err != nil {
		return 0, err
	}
	if schedule.Cancelled {
		return 0, fmt.Errorf("%w: %d", errs.ErrScheduleCancelled, id)
	}
	releasable, err := schedule.Releasable(e.clock.Unix())
	if err != nil {
		return 0, err
	}
	if releasable == 0 {
		return 0, errs.ErrNoTokensToRelease
	}

	schedule.ReleasedTokens += releasable
	if err := e.store.PutSchedule(schedule); err != nil {
		return 0, err
	}
	if err := e.vaults.Pay(vault.Vesting, schedule.Participant, releasable); err != nil {
		return 0, err
	}

	e.log.Info("vested tokens claimed",
		log.Uint64("vestingID", id),
		log.Stringer("participant", schedule.Participant),
		log.Uint64("amount", releasable),
		log.Uint64("released", schedule.ReleasedTokens),
	)
	return releasable, nil
}

// Update replaces the terms of a mutable schedule. A changed total is
// rebalanced against the liquidity vault and may not fall below what has
// already been released.
func (e *Engine) Update(caller ids.ShortID, id uint64, terms Terms) (*Schedule, error) {
	if err := e.auth.Authorize(caller, access.UpdateVesting, true); err != nil {
		return nil, err
	}
	schedule, err := e.mutable(id)
	if err != nil {
		return nil, err
	}
	if terms.StartTime == 0 {
		terms.StartTime = schedule.StartTime
	}
	if err := terms.Verify(); err != nil {
		return nil, err
	}
	if terms.TotalTokens < schedule.ReleasedTokens {
		return nil, fmt.Errorf("%w: total %d below released %d",
			errs.ErrInvalidSchedule, terms.TotalTokens, schedule.ReleasedTokens)
	}

	oldTotal := schedule.TotalTokens
	schedule.Terms = terms
	if err := e.store.PutSchedule(schedule); err != nil {
		return nil, err
	}
	switch {
	case terms.TotalTokens > oldTotal:
		err = e.vaults.Move(vault.Liquidity, vault.Vesting, terms.TotalTokens-oldTotal)
	case terms.TotalTokens < oldTotal:
		err = e.vaults.Move(vault.Vesting, vault.Liquidity, oldTotal-terms.TotalTokens)
	}
	if err != nil {
		return nil, err
	}

	e.log.Info("vesting schedule updated",
		log.Uint64("vestingID", id),
		log.Uint64("total", terms.TotalTokens),
	)
	return schedule, nil
}

// Cancel ends a mutable schedule and returns the unreleased remainder to
// the liquidity vault. The record is kept, marked cancelled.
func (e *Engine) Cancel(caller ids.ShortID, id uint64) (uint64, error) {
	if err := e.auth.Authorize(caller, access.ManageVesting, true); err != nil {
		return 0, err
	}
	schedule, err := e.mutable(id)
	if err != nil {
		return 0, err
	}

	remainder := schedule.Unreleased()
	schedule.Cancelled = true
	if err := e.store.PutSchedule(schedule); err != nil {
		return 0, err
	}
	if remainder > 0 {
		if err := e.vaults.Move(vault.Vesting, vault.Liquidity, remainder); err != nil {
			return 0, err
		}
	}

	e.log.Info("vesting schedule cancelled",
		log.Uint64("vestingID", id),
		log.Uint64("returned", remainder),
	)
	return remainder, nil
}

// SetImmutable latches the schedule's terms. It reports whether the
// schedule changed.
func (e *Engine) SetImmutable(caller ids.ShortID, id uint64) (bool, error) {
	if err := e.auth.Authorize(caller, access.ManageVesting, true); err != nil {
		return false, err
	}
	schedule, err := e.GetSchedule(id)
	if err != nil {
		return false, err
	}
	if schedule.Cancelled {
		return false, fmt.Errorf("%w: %d", errs.ErrScheduleCancelled, id)
	}
	if schedule.Immutable {
		return false, nil
	}
	schedule.Immutable = true
	if err := e.store.PutSchedule(schedule); err != nil {
		return false, err
	}
	e.log.Info("vesting schedule made immutable", log.Uint64("vestingID", id))
	return true, nil
}

// GetSchedule returns the schedule with id.
func (e *Engine) GetSchedule(id uint64) (*Schedule, error) {
	schedule, err := e.store.GetSchedule(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", errs.ErrScheduleNotFound, id)
	}
	return schedule, err
}

// Releasable returns what Claim would release now.
func (e *Engine) Releasable(id uint64) (uint64, error) {
	schedule, err := e.GetSchedule(id)
	if err != nil {
		return 0, err
	}
	return schedule.Releasable(e.clock.Unix())
}

func (e *Engine) mutable(id uint64) (*Schedule, error) {
	schedule, err := e.GetSchedule(id)
	if err != nil {
		return nil, err
	}
	switch {
	case schedule.Immutable:
		return nil, fmt.Errorf("%w: %d", errs.ErrScheduleImmutable, id)
	case schedule.Cancelled:
		return nil, fmt.Errorf("%w: %d", errs.ErrScheduleCancelled, id)
	}
	return schedule, nil
}
