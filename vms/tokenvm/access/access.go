// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package access resolves caller identities to capabilities and manages the
// records that grant them.
//
// The owner recorded in Settings is the root authority and never has a
// UserAccess record. Every other caller is authorized through its UserAccess
// record; a missing record is treated as an empty one.
package access

import (
	"fmt"

	"github.com/luxfi/ids"
)

// Version is the semantic version recorded in Settings.
type Version struct {
	Major uint16 `serialize:"true" json:"major"`
	Minor uint16 `serialize:"true" json:"minor"`
	Patch uint16 `serialize:"true" json:"patch"`
}

func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Settings is the singleton core configuration.
type Settings struct {
	Owner        ids.ShortID `serialize:"true" json:"owner"`
	APIAuthority ids.ShortID `serialize:"true" json:"apiAuthority"`
	Paused       bool        `serialize:"true" json:"paused"`
	Version      Version     `serialize:"true" json:"version"`
}

// UserAccess holds the capabilities granted to a single non-owner address.
type UserAccess struct {
	Address     ids.ShortID `serialize:"true" json:"address"`
	IsAdmin     bool        `serialize:"true" json:"isAdmin"`
	Permissions uint64      `serialize:"true" json:"permissions"`
	Flags       uint64      `serialize:"true" json:"flags"`
}

func (u *UserAccess) HasPermission(p Permission) bool {
	return u.Permissions&uint64(p) != 0
}

func (u *UserAccess) HasFlag(f Flag) bool {
	return u.Flags&uint64(f) != 0
}

// Store persists access records. GetUserAccess returns database.ErrNotFound
// when the address has no record.
type Store interface {
	GetSettings() (*Settings, error)
	PutSettings(*Settings) error
	GetUserAccess(addr ids.ShortID) (*UserAccess, error)
	PutUserAccess(*UserAccess) error
}
