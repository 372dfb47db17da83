// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package access

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

// Authorizer is the first gate every mutating operation passes through.
type Authorizer struct {
	store Store
}

func NewAuthorizer(store Store) *Authorizer {
	return &Authorizer{store: store}
}

// Settings returns the core settings or errs.ErrNotInitialized if genesis
// has not been applied.
func (a *Authorizer) Settings() (*Settings, error) {
	settings, err := a.store.GetSettings()
	if errors.Is(err, database.ErrNotFound) {
		return nil, errs.ErrNotInitialized
	}
	return settings, err
}

// UserAccess returns the record for addr. A missing record reads as an empty
// one.
func (a *Authorizer) UserAccess(addr ids.ShortID) (*UserAccess, error) {
	ua, err := a.store.GetUserAccess(addr)
	if errors.Is(err, database.ErrNotFound) {
		return &UserAccess{Address: addr}, nil
	}
	return ua, err
}

// IsOwner reports whether caller is the root authority.
func (a *Authorizer) IsOwner(caller ids.ShortID) (bool, error) {
	settings, err := a.Settings()
	if err != nil {
		return false, err
	}
	return settings.Owner == caller, nil
}

// Authorize resolves caller in order: owner, admin (when allowAdmin), then
// an explicit grant of perm.
func (a *Authorizer) Authorize(caller ids.ShortID, perm Permission, allowAdmin bool) error {
	owner, err := a.IsOwner(caller)
	if err != nil || owner {
		return err
	}
	ua, err := a.UserAccess(caller)
	if err != nil {
		return err
	}
	if allowAdmin && ua.IsAdmin {
		return nil
	}
	if ua.HasPermission(perm) {
		return nil
	}
	return fmt.Errorf("%w: %s lacks %s", errs.ErrUnauthorized, caller, perm)
}

// AuthorizeSelfOrPermission passes when caller acts on its own behalf or
// would pass Authorize for perm. Admins are allowed.
func (a *Authorizer) AuthorizeSelfOrPermission(caller, target ids.ShortID, perm Permission) error {
	if caller == target {
		return nil
	}
	return a.Authorize(caller, perm, true)
}

// AuthorizeSelfOnly passes only on an exact identity match. Neither the
// owner nor admins may act for target.
func (a *Authorizer) AuthorizeSelfOnly(caller, target ids.ShortID) error {
	if caller != target {
		return fmt.Errorf("%w: %s may not act for %s", errs.ErrUnauthorized, caller, target)
	}
	return nil
}

// RequireNotPaused fails with errs.ErrContractPaused while the system is
// paused.
func (a *Authorizer) RequireNotPaused() error {
	settings, err := a.Settings()
	if err != nil {
		return err
	}
	if settings.Paused {
		return errs.ErrContractPaused
	}
	return nil
}
