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

func (vm *VM) GetSettings() (*access.Settings, error) {
	var settings *access.Settings
	err := vm.read(func() error {
		var err error
		settings, err = vm.access.Settings()
		return err
	})
	return settings, err
}

// GetUserAccess returns the record of addr, or an empty record if addr was
// never granted anything.
func (vm *VM) GetUserAccess(addr ids.ShortID) (*access.UserAccess, error) {
	var ua *access.UserAccess
	err := vm.read(func() error {
		var err error
		ua, err = vm.access.UserAccess(addr)
		return err
	})
	return ua, err
}

func (vm *VM) Balance(holder ids.ShortID) (uint64, error) {
	var balance uint64
	err := vm.read(func() error {
		var err error
		balance, err = vm.tokens.Balance(holder)
		return err
	})
	return balance, err
}

func (vm *VM) TotalSupply() (uint64, error) {
	var supply uint64
	err := vm.read(func() error {
		var err error
		supply, err = vm.tokens.TotalSupply()
		return err
	})
	return supply, err
}

func (vm *VM) VaultBalance(v vault.Name) (uint64, error) {
	var balance uint64
	err := vm.read(func() error {
		var err error
		balance, err = vm.vaults.Balance(v)
		return err
	})
	return balance, err
}

func (vm *VM) VaultBalances() (map[vault.Name]uint64, error) {
	var balances map[vault.Name]uint64
	err := vm.read(func() error {
		var err error
		balances, err = vm.vaults.Balances()
		return err
	})
	return balances, err
}

func (vm *VM) GetFeeConfig() (fee.Config, error) {
	var cfg fee.Config
	err := vm.read(func() error {
		var err error
		cfg, err = vm.state.GetFeeConfig()
		return err
	})
	return cfg, err
}

// Split previews how gross would be divided at the current market rate.
func (vm *VM) Split(gross uint64) (fee.Split, error) {
	var split fee.Split
	err := vm.read(func() error {
		var err error
		split, err = vm.vaults.ChargeFee(gross)
		return err
	})
	return split, err
}

func (vm *VM) GetStakingPlan(id uint8) (*staking.Plan, error) {
	var plan *staking.Plan
	err := vm.read(func() error {
		var err error
		plan, err = vm.staking.GetPlan(id)
		return err
	})
	return plan, err
}

func (vm *VM) GetStakingPlans() ([]*staking.Plan, error) {
	var plans []*staking.Plan
	err := vm.read(func() error {
		var err error
		plans, err = vm.state.Plans()
		return err
	})
	return plans, err
}

func (vm *VM) GetStake(participant ids.ShortID, stakeID uint64) (*staking.Stake, error) {
	var stake *staking.Stake
	err := vm.read(func() error {
		var err error
		stake, err = vm.staking.GetStake(participant, stakeID)
		return err
	})
	return stake, err
}

// GetStakes returns the open positions of participant ordered by id.
func (vm *VM) GetStakes(participant ids.ShortID) ([]*staking.Stake, error) {
	var stakes []*staking.Stake
	err := vm.read(func() error {
		var err error
		stakes, err = vm.state.Stakes(participant)
		return err
	})
	return stakes, err
}

func (vm *VM) ClaimableReward(participant ids.ShortID, stakeID uint64) (uint64, error) {
	var reward uint64
	err := vm.read(func() error {
		var err error
		reward, err = vm.staking.Claimable(participant, stakeID)
		return err
	})
	return reward, err
}

func (vm *VM) GetVestingSchedule(id uint64) (*vesting.Schedule, error) {
	var schedule *vesting.Schedule
	err := vm.read(func() error {
		var err error
		schedule, err = vm.vesting.GetSchedule(id)
		return err
	})
	return schedule, err
}

func (vm *VM) Releasable(id uint64) (uint64, error) {
	var amount uint64
	err := vm.read(func() error {
		var err error
		amount, err = vm.vesting.Releasable(id)
		return err
	})
	return amount, err
}

func (vm *VM) GetGovernanceParams() (*governance.Params, error) {
	var params *governance.Params
	err := vm.read(func() error {
		var err error
		params, err = vm.governance.GetParams()
		return err
	})
	return params, err
}

func (vm *VM) GetProposal(id uint64) (*governance.Proposal, error) {
	var proposal *governance.Proposal
	err := vm.read(func() error {
		var err error
		proposal, err = vm.governance.GetProposal(id)
		return err
	})
	return proposal, err
}

func (vm *VM) GetVote(proposalID uint64, voter ids.ShortID) (*governance.Vote, error) {
	var vote *governance.Vote
	err := vm.read(func() error {
		var err error
		vote, err = vm.governance.GetVote(proposalID, voter)
		return err
	})
	return vote, err
}

// AuthorizeAdmin fails unless caller is the owner, an admin, or holds
// manage_contract.
func (vm *VM) AuthorizeAdmin(caller ids.ShortID) error {
	return vm.read(func() error {
		return vm.access.Authorize(caller, access.ManageContract, true)
	})
}
