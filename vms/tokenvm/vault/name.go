// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vault

import (
	"crypto/sha256"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

// Name identifies one of the fixed reserve pools.
type Name uint8

const (
	Liquidity Name = iota
	Rewards
	Airdrop
	Revenue
	Vesting
	Staking
	OffchainReserve
	Treasury
	ReservedSupply
	Contract

	numNames
)

const addressTag = "tokenvm/vault/"

var (
	names = [numNames]string{
		Liquidity:       "liquidity",
		Rewards:         "rewards",
		Airdrop:         "airdrop",
		Revenue:         "revenue",
		Vesting:         "vesting",
		Staking:         "staking",
		OffchainReserve: "offchain_reserve",
		Treasury:        "treasury",
		ReservedSupply:  "reserved_supply",
		Contract:        "contract",
	}

	addresses [numNames]ids.ShortID
	byName    = make(map[string]Name, numNames)
	byAddress = make(map[ids.ShortID]Name, numNames)
)

func init() {
	for n := Name(0); n < numNames; n++ {
		digest := sha256.Sum256([]byte(addressTag + names[n]))
		copy(addresses[n][:], digest[:])
		byName[names[n]] = n
		byAddress[addresses[n]] = n
	}
}

// ParseName maps an external vault name to its variant.
func ParseName(s string) (Name, error) {
	n, ok := byName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownVault, s)
	}
	return n, nil
}

// All returns every vault in declaration order.
func All() []Name {
	all := make([]Name, numNames)
	for i := range all {
		all[i] = Name(i)
	}
	return all
}

// IsVault reports whether addr is the address of a vault.
func IsVault(addr ids.ShortID) bool {
	_, ok := byAddress[addr]
	return ok
}

func (n Name) Valid() bool {
	return n < numNames
}

func (n Name) String() string {
	if !n.Valid() {
		return fmt.Sprintf("vault(%d)", uint8(n))
	}
	return names[n]
}

// Address is the token holder backing the vault.
func (n Name) Address() ids.ShortID {
	if !n.Valid() {
		return ids.ShortEmpty
	}
	return addresses[n]
}
