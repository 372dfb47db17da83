// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenvm

import (
	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

// Operation names accepted by Execute.
const (
	OpSetAdmin         = "set_admin"
	OpGrantPermission  = "grant_permission"
	OpRevokePermission = "revoke_permission"
	OpSetFlag          = "set_flag"
	OpClearFlag        = "clear_flag"
	OpPause            = "pause"
	OpResume           = "resume"
	OpSetVersion       = "set_version"
	OpSetAPIAuthority  = "set_api_authority"

	OpDeposit             = "deposit"
	OpWithdraw            = "withdraw"
	OpTransfer            = "transfer"
	OpMoveExternalToVault = "move_external_to_vault"

	OpBuy            = "buy"
	OpBuyAndStake    = "buy_and_stake_tokens"
	OpTransferTokens = "transfer_tokens"

	OpAddStakingPlan      = "add_staking_plan"
	OpEditStakingPlan     = "edit_staking_plan"
	OpDisableStakingPlan  = "disable_staking_plan"
	OpStakeTokens         = "stake_tokens"
	OpAddTokensToStake    = "add_tokens_to_stake"
	OpClaimStakingRewards = "claim_staking_rewards"
	OpWithdrawStaked      = "withdraw_staked_tokens"

	OpCreateVesting       = "create_vesting_schedule"
	OpClaimVested         = "claim_vested_tokens"
	OpUpdateVesting       = "update_vesting_schedule"
	OpCancelVesting       = "cancel_vesting_schedule"
	OpSetVestingImmutable = "set_vesting_immutable"

	OpCreateProposal   = "create_proposal"
	OpVote             = "vote"
	OpFinalizeProposal = "finalize_proposal"
	OpUpdateGovernance = "update_governance"
	OpUpdateRewardsFee = "update_rewards_fee"
	OpUpdateAirdropFee = "update_airdrop_fee"
	OpUpdateMarketFee  = "update_market_fee"
)

func (vm *VM) SetAdmin(caller, user ids.ShortID, isAdmin bool) error {
	return vm.execute(OpSetAdmin, true, func() error {
		return vm.access.SetAdmin(caller, user, isAdmin)
	})
}

func (vm *VM) GrantPermission(caller, user ids.ShortID, permission string) error {
	return vm.execute(OpGrantPermission, true, func() error {
		return vm.access.GrantPermission(caller, user, permission)
	})
}

func (vm *VM) RevokePermission(caller, user ids.ShortID, permission string) error {
	return vm.execute(OpRevokePermission, true, func() error {
		return vm.access.RevokePermission(caller, user, permission)
	})
}

func (vm *VM) SetFlag(caller, user ids.ShortID, flag string) error {
	return vm.execute(OpSetFlag, true, func() error {
		return vm.access.SetFlag(caller, user, flag)
	})
}

func (vm *VM) ClearFlag(caller, user ids.ShortID, flag string) error {
	return vm.execute(OpClearFlag, true, func() error {
		return vm.access.ClearFlag(caller, user, flag)
	})
}

func (vm *VM) Pause(caller ids.ShortID) error {
	return vm.execute(OpPause, true, func() error {
		return vm.access.Pause(caller)
	})
}

func (vm *VM) Resume(caller ids.ShortID) error {
	return vm.execute(OpResume, true, func() error {
		return vm.access.Resume(caller)
	})
}

func (vm *VM) SetVersion(caller ids.ShortID, version access.Version) error {
	return vm.execute(OpSetVersion, true, func() error {
		return vm.access.SetVersion(caller, version)
	})
}

func (vm *VM) SetAPIAuthority(caller, authority ids.ShortID) error {
	return vm.execute(OpSetAPIAuthority, true, func() error {
		return vm.access.SetAPIAuthority(caller, authority)
	})
}

func (vm *VM) Deposit(caller ids.ShortID, v vault.Name, amount uint64, memo string) (fee.Split, error) {
	var split fee.Split
	err := vm.execute(OpDeposit, false, func() error {
		var err error
		split, err = vm.vaults.Deposit(caller, v, amount, memo)
		return err
	})
	return split, err
}

func (vm *VM) Withdraw(caller ids.ShortID, v vault.Name, amount uint64, memo string) error {
	return vm.execute(OpWithdraw, false, func() error {
		return vm.vaults.Withdraw(caller, v, amount, memo)
	})
}

// Transfer moves tokens between two vaults.
func (vm *VM) Transfer(caller ids.ShortID, src, dst vault.Name, amount uint64, memo string) error {
	return vm.execute(OpTransfer, false, func() error {
		return vm.vaults.Transfer(caller, src, dst, amount, memo)
	})
}

func (vm *VM) MoveExternalToVault(caller ids.ShortID, v vault.Name, amount uint64) error {
	return vm.execute(OpMoveExternalToVault, false, func() error {
		return vm.vaults.MoveExternalToVault(caller, v, amount)
	})
}

func (vm *VM) Buy(caller, buyer ids.ShortID, amount uint64) (fee.Split, error) {
	var split fee.Split
	err := vm.execute(OpBuy, false, func() error {
		var err error
		split, err = vm.market.Buy(caller, buyer, amount)
		return err
	})
	return split, err
}

func (vm *VM) BuyAndStake(caller, buyer ids.ShortID, planID uint8, amount uint64) (fee.Split, *staking.Stake, error) {
	var (
		split fee.Split
		stake *staking.Stake
	)
	err := vm.execute(OpBuyAndStake, false, func() error {
		var err error
		split, stake, err = vm.market.BuyAndStake(caller, buyer, planID, amount)
		return err
	})
	return split, stake, err
}

// TransferTokens sends the caller's tokens to another user.
func (vm *VM) TransferTokens(caller, to ids.ShortID, amount uint64) (fee.Split, error) {
	var split fee.Split
	err := vm.execute(OpTransferTokens, false, func() error {
		var err error
		split, err = vm.market.Transfer(caller, to, amount)
		return err
	})
	return split, err
}

func (vm *VM) AddStakingPlan(caller ids.ShortID, id uint8, lockup uint64, aprBps uint16) error {
	return vm.execute(OpAddStakingPlan, true, func() error {
		return vm.staking.AddPlan(caller, id, lockup, aprBps)
	})
}

func (vm *VM) EditStakingPlan(caller ids.ShortID, id uint8, lockup uint64, aprBps uint16) error {
	return vm.execute(OpEditStakingPlan, true, func() error {
		return vm.staking.EditPlan(caller, id, lockup, aprBps)
	})
}

func (vm *VM) DisableStakingPlan(caller ids.ShortID, id uint8) error {
	return vm.execute(OpDisableStakingPlan, true, func() error {
		return vm.staking.DisablePlan(caller, id)
	})
}

func (vm *VM) StakeTokens(caller ids.ShortID, planID uint8, amount uint64) (*staking.Stake, error) {
	var stake *staking.Stake
	err := vm.execute(OpStakeTokens, false, func() error {
		var err error
		stake, err = vm.staking.Stake(caller, planID, amount)
		return err
	})
	return stake, err
}

func (vm *VM) AddTokensToStake(caller, participant ids.ShortID, stakeID, amount uint64) (*staking.Stake, error) {
	var stake *staking.Stake
	err := vm.execute(OpAddTokensToStake, false, func() error {
		var err error
		stake, err = vm.staking.Reinforce(caller, participant, stakeID, amount)
		return err
	})
	return stake, err
}

func (vm *VM) ClaimStakingRewards(caller, participant ids.ShortID, stakeID uint64) (uint64, error) {
	var reward uint64
	err := vm.execute(OpClaimStakingRewards, false, func() error {
		var err error
		reward, err = vm.staking.ClaimRewards(caller, participant, stakeID)
		return err
	})
	return reward, err
}

// WithdrawStakedTokens closes a matured position and returns the principal
// and the final reward paid.
func (vm *VM) WithdrawStakedTokens(caller, participant ids.ShortID, stakeID uint64) (uint64, uint64, error) {
	var principal, reward uint64
	err := vm.execute(OpWithdrawStaked, false, func() error {
		var err error
		principal, reward, err = vm.staking.Withdraw(caller, participant, stakeID)
		return err
	})
	return principal, reward, err
}

func (vm *VM) CreateVestingSchedule(caller, participant ids.ShortID, terms vesting.Terms) (*vesting.Schedule, error) {
	var schedule *vesting.Schedule
	err := vm.execute(OpCreateVesting, false, func() error {
		var err error
		schedule, err = vm.vesting.Create(caller, participant, terms)
		return err
	})
	return schedule, err
}

func (vm *VM) ClaimVestedTokens(caller ids.ShortID, id uint64) (uint64, error) {
	var released uint64
	err := vm.execute(OpClaimVested, false, func() error {
		var err error
		released, err = vm.vesting.Claim(caller, id)
		return err
	})
	return released, err
}

func (vm *VM) UpdateVestingSchedule(caller ids.ShortID, id uint64, terms vesting.Terms) (*vesting.Schedule, error) {
	var schedule *vesting.Schedule
	err := vm.execute(OpUpdateVesting, false, func() error {
		var err error
		schedule, err = vm.vesting.Update(caller, id, terms)
		return err
	})
	return schedule, err
}

func (vm *VM) CancelVestingSchedule(caller ids.ShortID, id uint64) (uint64, error) {
	var returned uint64
	err := vm.execute(OpCancelVesting, false, func() error {
		var err error
		returned, err = vm.vesting.Cancel(caller, id)
		return err
	})
	return returned, err
}

func (vm *VM) SetVestingImmutable(caller ids.ShortID, id uint64) (bool, error) {
	var changed bool
	err := vm.execute(OpSetVestingImmutable, false, func() error {
		var err error
		changed, err = vm.vesting.SetImmutable(caller, id)
		return err
	})
	return changed, err
}

func (vm *VM) CreateProposal(caller ids.ShortID, description string, actions, start, duration uint64) (*governance.Proposal, error) {
	var proposal *governance.Proposal
	err := vm.execute(OpCreateProposal, false, func() error {
		var err error
		proposal, err = vm.governance.Create(caller, description, actions, start, duration)
		return err
	})
	return proposal, err
}

func (vm *VM) Vote(caller ids.ShortID, proposalID uint64, support bool, offchain, staked uint64) (uint64, error) {
	var weight uint64
	err := vm.execute(OpVote, false, func() error {
		var err error
		weight, err = vm.governance.Vote(caller, proposalID, support, offchain, staked)
		return err
	})
	return weight, err
}

func (vm *VM) FinalizeProposal(caller ids.ShortID, proposalID uint64) (*governance.Proposal, error) {
	var proposal *governance.Proposal
	err := vm.execute(OpFinalizeProposal, false, func() error {
		var err error
		proposal, err = vm.governance.Finalize(caller, proposalID)
		return err
	})
	return proposal, err
}

// UpdateGovernance applies key=value updates to the governance parameters.
func (vm *VM) UpdateGovernance(caller ids.ShortID, updates []string) (*governance.Params, error) {
	var params *governance.Params
	err := vm.execute(OpUpdateGovernance, true, func() error {
		var err error
		params, err = vm.governance.UpdateParams(caller, updates)
		return err
	})
	return params, err
}

func (vm *VM) UpdateRewardsFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return vm.updateFee(OpUpdateRewardsFee, func() (fee.Config, error) {
		return vm.governance.UpdateRewardsFee(caller, proposalID, bps)
	})
}

func (vm *VM) UpdateAirdropFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return vm.updateFee(OpUpdateAirdropFee, func() (fee.Config, error) {
		return vm.governance.UpdateAirdropFee(caller, proposalID, bps)
	})
}

func (vm *VM) UpdateMarketFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return vm.updateFee(OpUpdateMarketFee, func() (fee.Config, error) {
		return vm.governance.UpdateMarketFee(caller, proposalID, bps)
	})
}

func (vm *VM) updateFee(operation string, fn func() (fee.Config, error)) (fee.Config, error) {
	var cfg fee.Config
	err := vm.execute(operation, false, func() error {
		var err error
		cfg, err = fn()
		return err
	})
	return cfg, err
}
