// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package access

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

// Permission is a single capability. Each variant occupies one bit of
// UserAccess.Permissions.
type Permission uint64

const (
	ManageUser Permission = 1 << iota
	ManagePermissions
	ManageContract
	ManageVaults
	ManageStaking
	ManageVesting
	CreateVesting
	UpdateVesting
	CreateProposal
	FinalizeProposal
	ManageEconomy
	ManageMarket

	numPermissions = iota
)

var permissionNames = map[Permission]string{
	ManageUser:        "manage_user",
	ManagePermissions: "manage_permissions",
	ManageContract:    "manage_contract",
	ManageVaults:      "manage_vaults",
	ManageStaking:     "manage_staking",
	ManageVesting:     "manage_vesting",
	CreateVesting:     "create_vesting",
	UpdateVesting:     "update_vesting",
	CreateProposal:    "create_proposal",
	FinalizeProposal:  "finalize_proposal",
	ManageEconomy:     "manage_economy",
	ManageMarket:      "manage_market",
}

var permissionsByName = invert(permissionNames)

// ParsePermission maps an external permission name to its variant.
func ParsePermission(name string) (Permission, error) {
	p, ok := permissionsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownPermissionName, name)
	}
	return p, nil
}

func (p Permission) String() string {
	if name, ok := permissionNames[p]; ok {
		return name
	}
	return fmt.Sprintf("permission(%#x)", uint64(p))
}

// Permissions returns the names of every permission set in mask, in bit order.
func Permissions(mask uint64) []string {
	names := make([]string, 0, bits.OnesCount64(mask))
	for i := 0; i < numPermissions; i++ {
		p := Permission(1) << i
		if mask&uint64(p) != 0 {
			names = append(names, p.String())
		}
	}
	return names
}

// Flag is a per-user feature flag. Flags carry no authority.
type Flag uint64

const (
	EarlyAdopterTier1 Flag = 1 << iota
	EarlyAdopterTier2
	EarlyAdopterTier3
	VIP
	Verified

	numFlags = iota
)

var flagNames = map[Flag]string{
	EarlyAdopterTier1: "early_adopter_tier1",
	EarlyAdopterTier2: "early_adopter_tier2",
	EarlyAdopterTier3: "early_adopter_tier3",
	VIP:               "vip",
	Verified:          "verified",
}

var flagsByName = invert(flagNames)

// ParseFlag maps an external flag name to its variant.
func ParseFlag(name string) (Flag, error) {
	f, ok := flagsByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownFlagName, name)
	}
	return f, nil
}

func (f Flag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("flag(%#x)", uint64(f))
}

// Flags returns the names of every flag set in mask, in bit order.
func Flags(mask uint64) []string {
	names := make([]string, 0, bits.OnesCount64(mask))
	for i := 0; i < numFlags; i++ {
		f := Flag(1) << i
		if mask&uint64(f) != 0 {
			names = append(names, f.String())
		}
	}
	return names
}

func invert[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, name := range m {
		out[strings.ToLower(name)] = k
	}
	return out
}
