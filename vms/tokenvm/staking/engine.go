// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package staking

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

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

// Store persists plans and positions. Getters return database.ErrNotFound
// for missing records.
type Store interface {
	GetPlan(id uint8) (*Plan, error)
	PutPlan(*Plan) error

	GetStake(participant ids.ShortID, id uint64) (*Stake, error)
	PutStake(*Stake) error
	DeleteStake(participant ids.ShortID, id uint64) error

	// NextStakeID returns the next id for participant and advances the
	// counter. The first id is 0.
	NextStakeID(participant ids.ShortID) (uint64, error)
}

type Engine struct {
	config Config
	auth   *access.Authorizer
	vaults *vault.Ledger
	store  Store
	clock  *mockable.Clock
	log    log.Logger
}

func NewEngine(
	config Config,
	auth *access.Authorizer,
	vaults *vault.Ledger,
	store Store,
	clock *mockable.Clock,
	logger log.Logger,
) *Engine {
	return &Engine{
		config: config,
		auth:   auth,
		vaults: vaults,
		store:  store,
		clock:  clock,
		log:    logger,
	}
}

// AddPlan creates an active plan.
func (e *Engine) AddPlan(caller ids.ShortID, id uint8, lockup uint64, aprBps uint16) error {
	if err := e.auth.Authorize(caller, access.ManageContract, false); err != nil {
		return err
	}
	if err := e.verifyTerms(lockup, aprBps); err != nil {
		return err
	}
	_, err := e.store.GetPlan(id)
	switch {
	case err == nil:
		return fmt.Errorf("%w: %d", errs.ErrPlanAlreadyExists, id)
	case !errors.Is(err, database.ErrNotFound):
		return err
	}

	plan := &Plan{
		ID:             id,
		LockupDuration: lockup,
		AprBps:         aprBps,
		Active:         true,
	}
	if err := e.store.PutPlan(plan); err != nil {
		return err
	}
	e.log.Info("staking plan added",
		log.Int("planID", int(id)),
		log.Uint64("lockup", lockup),
		log.Int("aprBps", int(aprBps)),
	)
	return nil
}

// EditPlan changes the terms offered to new positions. Open positions keep
// the terms they started with.
func (e *Engine) EditPlan(caller ids.ShortID, id uint8, lockup uint64, aprBps uint16) error {
	if err := e.auth.Authorize(caller, access.ManageContract, false); err != nil {
		return err
	}
	if err := e.verifyTerms(lockup, aprBps); err != nil {
		return err
	}
	plan, err := e.GetPlan(id)
	if err != nil {
		return err
	}
	plan.LockupDuration = lockup
	plan.AprBps = aprBps
	if err := e.store.PutPlan(plan); err != nil {
		return err
	}
	e.log.Info("staking plan edited",
		log.Int("planID", int(id)),
		log.Uint64("lockup", lockup),
		log.Int("aprBps", int(aprBps)),
	)
	return nil
}

// DisablePlan stops new positions from opening under the plan.
func (e *Engine) DisablePlan(caller ids.ShortID, id uint8) error {
	if err := e.auth.Authorize(caller, access.ManageContract, false); err != nil {
		return err
	}
	plan, err := e.GetPlan(id)
	if err != nil {
		return err
	}
	if !plan.Active {
		return fmt.Errorf("%w: plan %d already disabled", errs.ErrInvalidTransition, id)
	}
	plan.Active = false
	if err := e.store.PutPlan(plan); err != nil {
		return err
	}
	e.log.Info("staking plan disabled", log.Int("planID", int(id)))
	return nil
}

// Stake locks amount of the caller's tokens under plan.
func (e *Engine) Stake(caller ids.ShortID, planID uint8, amount uint64) (*Stake, error) {
	return e.StakeFor(caller, planID, amount)
}

// StakeFor opens a position for participant funded from participant's own
// balance. It performs no authorization and is used by operations that have
// already authorized the caller.
func (e *Engine) StakeFor(participant ids.ShortID, planID uint8, amount uint64) (*Stake, error) {
	if amount == 0 {
		return nil, errs.ErrInvalidAmount
	}
	plan, err := e.activePlan(planID)
	if err != nil {
		return nil, err
	}
	if err := e.vaults.RequireUserBalance(participant, amount); err != nil {
		return nil, err
	}
	if err := e.reserveReward(plan, amount); err != nil {
		return nil, err
	}

	id, err := e.store.NextStakeID(participant)
	if err != nil {
		return nil, err
	}
	stake := &Stake{
		Participant:  participant,
		ID:           id,
		PlanID:       planID,
		StakedTokens: amount,
	}
	e.startCycle(stake, plan)
	if err := e.store.PutStake(stake); err != nil {
		return nil, err
	}
	if err := e.vaults.Collect(participant, vault.Staking, amount); err != nil {
		return nil, err
	}

	e.log.Info("stake created",
		log.Stringer("participant", participant),
		log.Uint64("stakeID", id),
		log.Int("planID", int(planID)),
		log.Uint64("amount", amount),
	)
	return stake, nil
}

// Reinforce adds amount from the participant's balance to an open position
// and restarts its cycle at the plan's current terms. Reward accrued but not
// claimed is forfeited and its reservation returns to the liquidity vault.
// Disabled plans still accept reinforcement.
func (e *Engine) Reinforce(caller, participant ids.ShortID, stakeID uint64, amount uint64) (*Stake, error) {
	if err := e.auth.AuthorizeSelfOrPermission(caller, participant, access.ManageStaking); err != nil {
		return nil, err
	}
	if amount == 0 {
		return nil, errs.ErrInvalidAmount
	}
	stake, err := e.GetStake(participant, stakeID)
	if err != nil {
		return nil, err
	}
	plan, err := e.existingPlan(stake.PlanID)
	if err != nil {
		return nil, err
	}
	if err := e.vaults.RequireUserBalance(participant, amount); err != nil {
		return nil, err
	}
	total, err := safemath.Add(stake.StakedTokens, amount)
	if err != nil {
		return nil, fmt.Errorf("%w: staked %d plus %d: %w", errs.ErrAmountOutOfRange, stake.StakedTokens, amount, err)
	}
	forfeited, err := stake.Unreserved(e.config.RewardPeriod)
	if err != nil {
		return nil, err
	}
	if forfeited > 0 {
		if err := e.vaults.Move(vault.Rewards, vault.Liquidity, forfeited); err != nil {
			return nil, err
		}
	}
	if err := e.reserveReward(plan, total); err != nil {
		return nil, err
	}

	stake.StakedTokens = total
	stake.RewardsClaimed = 0
	e.startCycle(stake, plan)
	if err := e.store.PutStake(stake); err != nil {
		return nil, err
	}
	if err := e.vaults.Collect(participant, vault.Staking, amount); err != nil {
		return nil, err
	}

	e.log.Info("stake reinforced",
		log.Stringer("participant", participant),
		log.Uint64("stakeID", stakeID),
		log.Uint64("amount", amount),
		log.Uint64("total", total),
		log.Uint64("forfeited", forfeited),
	)
	return stake, nil
}

// ClaimRewards pays the reward accrued and not yet paid in the current
// cycle. The cycle start is not reset.
func (e *Engine) ClaimRewards(caller, participant ids.ShortID, stakeID uint64) (uint64, error) {
	if err := e.auth.AuthorizeSelfOrPermission(caller, participant, access.ManageStaking); err != nil {
		return 0, err
	}
	stake, err := e.GetStake(participant, stakeID)
	if err != nil {
		return 0, err
	}
	now := e.clock.Unix()
	minInterval := uint64(e.config.MinClaimInterval.Seconds())
	if now < stake.StartTime || now-stake.StartTime < minInterval {
		return 0, fmt.Errorf("%w: claimable %ds after start", errs.ErrStakingPeriodNotOver, minInterval)
	}
	claimable, err := stake.Claimable(now, e.config.RewardPeriod)
	if err != nil {
		return 0, err
	}
	if claimable == 0 {
		return 0, errs.ErrNoRewardsToClaim
	}

	stake.RewardsClaimed += claimable
	if err := e.store.PutStake(stake); err != nil {
		return 0, err
	}
	if err := e.vaults.Pay(vault.Rewards, participant, claimable); err != nil {
		return 0, err
	}

	e.log.Info("staking rewards claimed",
		log.Stringer("participant", participant),
		log.Uint64("stakeID", stakeID),
		log.Uint64("reward", claimable),
	)
	return claimable, nil
}

// Withdraw closes a matured position, paying back the principal and any
// unpaid reward. Only the participant may withdraw.
func (e *Engine) Withdraw(caller, participant ids.ShortID, stakeID uint64) (uint64, uint64, error) {
	if err := e.auth.AuthorizeSelfOnly(caller, participant); err != nil {
		return 0, 0, err
	}
	stake, err := e.GetStake(participant, stakeID)
	if err != nil {
		return 0, 0, err
	}
	now := e.clock.Unix()
	if !stake.Matured(now) {
		return 0, 0, fmt.Errorf("%w: matures at %d", errs.ErrStakingPeriodNotOver, stake.StartTime+stake.LockupDuration)
	}
	reward, err := stake.Claimable(now, e.config.RewardPeriod)
	if err != nil {
		return 0, 0, err
	}
	if err := e.vaults.RequireBalance(vault.Staking, stake.StakedTokens); err != nil {
		return 0, 0, err
	}
	if err := e.vaults.RequireBalance(vault.Rewards, reward); err != nil {
		return 0, 0, err
	}

	if err := e.store.DeleteStake(participant, stakeID); err != nil {
		return 0, 0, err
	}
	if err := e.vaults.Pay(vault.Staking, participant, stake.StakedTokens); err != nil {
		return 0, 0, err
	}
	if reward > 0 {
		if err := e.vaults.Pay(vault.Rewards, participant, reward); err != nil {
			return 0, 0, err
		}
	}

	e.log.Info("stake withdrawn",
		log.Stringer("participant", participant),
		log.Uint64("stakeID", stakeID),
		log.Uint64("principal", stake.StakedTokens),
		log.Uint64("reward", reward),
	)
	return stake.StakedTokens, reward, nil
}

// GetPlan returns the plan with id.
func (e *Engine) GetPlan(id uint8) (*Plan, error) {
	plan, err := e.store.GetPlan(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", errs.ErrPlanNotFound, id)
	}
	return plan, err
}

// GetStake returns the open position stakeID of participant.
func (e *Engine) GetStake(participant ids.ShortID, stakeID uint64) (*Stake, error) {
	stake, err := e.store.GetStake(participant, stakeID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s/%d", errs.ErrStakeNotFound, participant, stakeID)
	}
	return stake, err
}

// Claimable returns the reward that ClaimRewards would pay now, ignoring
// the minimum claim interval.
func (e *Engine) Claimable(participant ids.ShortID, stakeID uint64) (uint64, error) {
	stake, err := e.GetStake(participant, stakeID)
	if err != nil {
		return 0, err
	}
	return stake.Claimable(e.clock.Unix(), e.config.RewardPeriod)
}

func (e *Engine) existingPlan(id uint8) (*Plan, error) {
	plan, err := e.store.GetPlan(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: plan %d does not exist", errs.ErrInvalidStakingPlan, id)
	}
	return plan, err
}

func (e *Engine) activePlan(id uint8) (*Plan, error) {
	plan, err := e.existingPlan(id)
	if err != nil {
		return nil, err
	}
	if !plan.Active {
		return nil, fmt.Errorf("%w: plan %d is disabled", errs.ErrInvalidStakingPlan, id)
	}
	return plan, nil
}

// reserveReward moves the full-lockup reward for amount from the liquidity
// vault into the rewards vault.
func (e *Engine) reserveReward(plan *Plan, amount uint64) error {
	maxReward, err := plan.MaxReward(amount, e.config.RewardPeriod)
	if err != nil {
		return err
	}
	if maxReward == 0 {
		return nil
	}
	return e.vaults.Move(vault.Liquidity, vault.Rewards, maxReward)
}

func (e *Engine) startCycle(stake *Stake, plan *Plan) {
	stake.StartTime = e.clock.Unix()
	stake.LockupDuration = plan.LockupDuration
	stake.AprBps = plan.AprBps
}

func (e *Engine) verifyTerms(lockup uint64, aprBps uint16) error {
	switch {
	case lockup == 0:
		return fmt.Errorf("%w: zero lockup", errs.ErrInvalidStakingPlan)
	case aprBps > e.config.MaxAprBps:
		return fmt.Errorf("%w: apr %d exceeds %d", errs.ErrInvalidStakingPlan, aprBps, e.config.MaxAprBps)
	}
	return nil
}
