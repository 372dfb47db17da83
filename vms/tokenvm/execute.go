// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tokenvm

import (
	"context"
	"fmt"
	"sort"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/args"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

// BuyAndStakeResult is the outcome of buy_and_stake_tokens.
type BuyAndStakeResult struct {
	Split fee.Split      `json:"split"`
	Stake *staking.Stake `json:"stake"`
}

// WithdrawResult is the outcome of withdraw_staked_tokens.
type WithdrawResult struct {
	Principal uint64 `json:"principal"`
	Reward    uint64 `json:"reward"`
}

type handler func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error)

var handlers = map[string]handler{
	OpSetAdmin: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		user := r.Address("user")
		isAdmin := r.Bool("is_admin")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.SetAdmin(caller, user, isAdmin)
	},
	OpGrantPermission: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		user := r.Address("user")
		permission := r.String("permission")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.GrantPermission(caller, user, permission)
	},
	OpRevokePermission: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		user := r.Address("user")
		permission := r.String("permission")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.RevokePermission(caller, user, permission)
	},
	OpSetFlag: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		user := r.Address("user")
		flag := r.String("flag")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.SetFlag(caller, user, flag)
	},
	OpClearFlag: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		user := r.Address("user")
		flag := r.String("flag")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.ClearFlag(caller, user, flag)
	},
	OpPause: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.Pause(caller)
	},
	OpResume: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.Resume(caller)
	},
	OpSetVersion: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		version := access.Version{
			Major: r.Uint16("major"),
			Minor: r.Uint16("minor"),
			Patch: r.Uint16("patch"),
		}
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.SetVersion(caller, version)
	},
	OpSetAPIAuthority: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		authority := r.Address("authority")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.SetAPIAuthority(caller, authority)
	},

	OpDeposit: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		name := r.String("vault")
		amount := r.Uint64("amount")
		memo, err := optional(r)
		if err != nil {
			return nil, err
		}
		v, err := vault.ParseName(name)
		if err != nil {
			return nil, err
		}
		return vm.Deposit(caller, v, amount, memo)
	},
	OpWithdraw: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		name := r.String("vault")
		amount := r.Uint64("amount")
		memo, err := optional(r)
		if err != nil {
			return nil, err
		}
		v, err := vault.ParseName(name)
		if err != nil {
			return nil, err
		}
		return nil, vm.Withdraw(caller, v, amount, memo)
	},
	OpTransfer: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		srcName := r.String("src")
		dstName := r.String("dst")
		amount := r.Uint64("amount")
		memo, err := optional(r)
		if err != nil {
			return nil, err
		}
		src, err := vault.ParseName(srcName)
		if err != nil {
			return nil, err
		}
		dst, err := vault.ParseName(dstName)
		if err != nil {
			return nil, err
		}
		return nil, vm.Transfer(caller, src, dst, amount, memo)
	},
	OpMoveExternalToVault: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		name := r.String("vault")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		v, err := vault.ParseName(name)
		if err != nil {
			return nil, err
		}
		return nil, vm.MoveExternalToVault(caller, v, amount)
	},

	OpBuy: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		buyer := r.Address("buyer")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.Buy(caller, buyer, amount)
	},
	OpBuyAndStake: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		buyer := r.Address("buyer")
		planID := r.Uint8("plan")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		split, stake, err := vm.BuyAndStake(caller, buyer, planID, amount)
		if err != nil {
			return nil, err
		}
		return &BuyAndStakeResult{Split: split, Stake: stake}, nil
	},
	OpTransferTokens: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		to := r.Address("to")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.TransferTokens(caller, to, amount)
	},

	OpAddStakingPlan: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id, lockup, aprBps := r.Uint8("plan"), r.Uint64("lockup"), r.Uint16("apr_bps")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.AddStakingPlan(caller, id, lockup, aprBps)
	},
	OpEditStakingPlan: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id, lockup, aprBps := r.Uint8("plan"), r.Uint64("lockup"), r.Uint16("apr_bps")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.EditStakingPlan(caller, id, lockup, aprBps)
	},
	OpDisableStakingPlan: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id := r.Uint8("plan")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return nil, vm.DisableStakingPlan(caller, id)
	},
	OpStakeTokens: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		planID := r.Uint8("plan")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.StakeTokens(caller, planID, amount)
	},
	OpAddTokensToStake: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		participant := r.Address("participant")
		stakeID := r.Uint64("stake")
		amount := r.Uint64("amount")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.AddTokensToStake(caller, participant, stakeID, amount)
	},
	OpClaimStakingRewards: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		participant := r.Address("participant")
		stakeID := r.Uint64("stake")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.ClaimStakingRewards(caller, participant, stakeID)
	},
	OpWithdrawStaked: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		participant := r.Address("participant")
		stakeID := r.Uint64("stake")
		if err := r.Done(); err != nil {
			return nil, err
		}
		principal, reward, err := vm.WithdrawStakedTokens(caller, participant, stakeID)
		if err != nil {
			return nil, err
		}
		return &WithdrawResult{Principal: principal, Reward: reward}, nil
	},

	OpCreateVesting: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		participant := r.Address("participant")
		terms := readTerms(r)
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.CreateVestingSchedule(caller, participant, terms)
	},
	OpClaimVested: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id := r.Uint64("schedule")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.ClaimVestedTokens(caller, id)
	},
	OpUpdateVesting: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id := r.Uint64("schedule")
		terms := readTerms(r)
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.UpdateVestingSchedule(caller, id, terms)
	},
	OpCancelVesting: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id := r.Uint64("schedule")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.CancelVestingSchedule(caller, id)
	},
	OpSetVestingImmutable: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		id := r.Uint64("schedule")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.SetVestingImmutable(caller, id)
	},

	OpCreateProposal: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		description := r.String("description")
		actionNames := r.String("actions")
		start := r.Uint64("start")
		duration := r.Uint64("duration")
		if err := r.Done(); err != nil {
			return nil, err
		}
		actions, err := governance.ParseActions(actionNames)
		if err != nil {
			return nil, err
		}
		return vm.CreateProposal(caller, description, actions, start, duration)
	},
	OpVote: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		proposalID := r.Uint64("proposal")
		support := r.Bool("support")
		offchain := r.Uint64("offchain_balance")
		staked := r.Uint64("staked_balance")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.Vote(caller, proposalID, support, offchain, staked)
	},
	OpFinalizeProposal: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		proposalID := r.Uint64("proposal")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.FinalizeProposal(caller, proposalID)
	},
	OpUpdateGovernance: func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		updates := r.Rest()
		if err := r.Done(); err != nil {
			return nil, err
		}
		return vm.UpdateGovernance(caller, updates)
	},
	OpUpdateRewardsFee: feeHandler((*VM).UpdateRewardsFee),
	OpUpdateAirdropFee: feeHandler((*VM).UpdateAirdropFee),
	OpUpdateMarketFee:  feeHandler((*VM).UpdateMarketFee),
}

func feeHandler(update func(*VM, ids.ShortID, uint64, uint16) (fee.Config, error)) handler {
	return func(vm *VM, caller ids.ShortID, r *args.Reader) (any, error) {
		proposalID := r.Uint64("proposal")
		bps := r.Uint16("bps")
		if err := r.Done(); err != nil {
			return nil, err
		}
		return update(vm, caller, proposalID, bps)
	}
}

func readTerms(r *args.Reader) vesting.Terms {
	return vesting.Terms{
		StartTime:       r.Uint64("start"),
		CliffDuration:   r.Uint64("cliff"),
		Cycles:          r.Uint64("cycles"),
		VestingDuration: r.Uint64("duration"),
		InitialTokens:   r.Uint64("initial"),
		TotalTokens:     r.Uint64("total"),
	}
}

// optional consumes a single trailing optional argument.
func optional(r *args.Reader) (string, error) {
	rest := r.Rest()
	if err := r.Done(); err != nil {
		return "", err
	}
	switch len(rest) {
	case 0:
		return "", nil
	case 1:
		return rest[0], nil
	default:
		return "", fmt.Errorf("%w: %d unexpected arguments", errs.ErrInvalidArgument, len(rest)-1)
	}
}

// Execute decodes arguments for operation and runs it on behalf of caller.
func (vm *VM) Execute(ctx context.Context, caller ids.ShortID, operation string, arguments []string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h, ok := handlers[operation]
	if !ok {
		return nil, fmt.Errorf("%w: unknown operation %q", errs.ErrInvalidArgument, operation)
	}
	return h(vm, caller, args.NewReader(arguments))
}

// Operations lists every operation Execute accepts.
func Operations() []string {
	operations := make([]string, 0, len(handlers))
	for operation := range handlers {
		operations = append(operations, operation)
	}
	sort.Strings(operations)
	return operations
}
