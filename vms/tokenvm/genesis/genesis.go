// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis describes the initial state of the token economy. Genesis
// allocations are the only way tokens are created.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

var (
	errNoOwner            = errors.New("genesis owner is empty")
	errAmbiguousHolder    = errors.New("allocation must name exactly one of vault or address")
	errZeroAllocation     = errors.New("allocation amount is zero")
	errOwnerInUsers       = errors.New("owner cannot be listed as a user")
	errDuplicateUser      = errors.New("duplicate user")
	errDuplicatePlan      = errors.New("duplicate staking plan")
	errAllocationOverflow = errors.New("allocations overflow the supply")
)

type Genesis struct {
	Owner        ids.ShortID       `json:"owner"`
	APIAuthority ids.ShortID       `json:"apiAuthority"`
	Version      access.Version    `json:"version"`
	FeeConfig    fee.Config        `json:"feeConfig"`
	Governance   governance.Params `json:"governance"`
	Users        []User            `json:"users"`
	StakingPlans []Plan            `json:"stakingPlans"`
	Allocations  []Allocation      `json:"allocations"`
}

// User is an access record granted at genesis.
type User struct {
	Address     ids.ShortID `json:"address"`
	IsAdmin     bool        `json:"isAdmin"`
	Permissions []string    `json:"permissions"`
	Flags       []string    `json:"flags"`
}

type Plan struct {
	ID             uint8  `json:"id"`
	LockupDuration uint64 `json:"lockupDuration"`
	AprBps         uint16 `json:"aprBps"`
}

// Allocation mints Amount to either a vault or an address.
type Allocation struct {
	Vault   string      `json:"vault,omitempty"`
	Address ids.ShortID `json:"address"`
	Amount  uint64      `json:"amount"`
}

// Holder returns the address that receives the allocation.
func (a *Allocation) Holder() (ids.ShortID, error) {
	hasVault := a.Vault != ""
	hasAddress := a.Address != ids.ShortEmpty
	if hasVault == hasAddress {
		return ids.ShortEmpty, errAmbiguousHolder
	}
	if !hasVault {
		return a.Address, nil
	}
	name, err := vault.ParseName(a.Vault)
	if err != nil {
		return ids.ShortEmpty, err
	}
	return name.Address(), nil
}

// Parse decodes and verifies genesis bytes.
func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal genesis: %w", err)
	}
	return g, g.Verify()
}

// Bytes encodes g as indented JSON.
func (g *Genesis) Bytes() ([]byte, error) {
	return json.MarshalIndent(g, "", "\t")
}

// Verify checks the parts of g that can be checked without state.
func (g *Genesis) Verify() error {
	if g.Owner == ids.ShortEmpty {
		return errNoOwner
	}

	users := make(map[ids.ShortID]struct{}, len(g.Users))
	for _, user := range g.Users {
		if user.Address == g.Owner {
			return fmt.Errorf("%w: %s", errOwnerInUsers, user.Address)
		}
		if _, ok := users[user.Address]; ok {
			return fmt.Errorf("%w: %s", errDuplicateUser, user.Address)
		}
		users[user.Address] = struct{}{}

		for _, name := range user.Permissions {
			if _, err := access.ParsePermission(name); err != nil {
				return err
			}
		}
		for _, name := range user.Flags {
			if _, err := access.ParseFlag(name); err != nil {
				return err
			}
		}
	}

	plans := make(map[uint8]struct{}, len(g.StakingPlans))
	for _, plan := range g.StakingPlans {
		if _, ok := plans[plan.ID]; ok {
			return fmt.Errorf("%w: %d", errDuplicatePlan, plan.ID)
		}
		plans[plan.ID] = struct{}{}
	}

	var supply uint64
	for i := range g.Allocations {
		allocation := &g.Allocations[i]
		if _, err := allocation.Holder(); err != nil {
			return fmt.Errorf("allocation %d: %w", i, err)
		}
		if allocation.Amount == 0 {
			return fmt.Errorf("allocation %d: %w", i, errZeroAllocation)
		}
		var err error
		supply, err = safemath.Add(supply, allocation.Amount)
		if err != nil {
			return fmt.Errorf("%w: %w", errAllocationOverflow, err)
		}
	}
	return nil
}
