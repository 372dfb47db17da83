// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package access

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

// Manager mutates settings and access records on behalf of authorized
// callers.
type Manager struct {
	*Authorizer

	store Store
	log   log.Logger
}

func NewManager(store Store, logger log.Logger) *Manager {
	return &Manager{
		Authorizer: NewAuthorizer(store),
		store:      store,
		log:        logger,
	}
}

// Initialize writes the first settings record. It fails if one exists.
func (m *Manager) Initialize(settings *Settings) error {
	_, err := m.store.GetSettings()
	switch {
	case err == nil:
		return errs.ErrAlreadyInitialized
	case !errors.Is(err, database.ErrNotFound):
		return err
	}
	if settings.Owner == ids.ShortEmpty {
		return fmt.Errorf("%w: empty owner", errs.ErrInvalidArgument)
	}
	return m.store.PutSettings(settings)
}

// SetAdmin toggles the admin bit of user. Only the owner may do this.
func (m *Manager) SetAdmin(caller, user ids.ShortID, isAdmin bool) error {
	owner, err := m.IsOwner(caller)
	if err != nil {
		return err
	}
	if !owner {
		return fmt.Errorf("%w: only the owner may change admins", errs.ErrUnauthorized)
	}
	return m.update(user, func(ua *UserAccess) error {
		ua.IsAdmin = isAdmin
		m.log.Info("admin updated",
			log.Stringer("user", user),
			log.Bool("isAdmin", isAdmin),
		)
		return nil
	})
}

// GrantPermission sets the named permission on user. Granting a permission
// that is already held is a no-op.
func (m *Manager) GrantPermission(caller, user ids.ShortID, name string) error {
	perm, err := ParsePermission(name)
	if err != nil {
		return err
	}
	if err := m.Authorize(caller, ManagePermissions, true); err != nil {
		return err
	}
	return m.update(user, func(ua *UserAccess) error {
		ua.Permissions |= uint64(perm)
		m.log.Info("permission granted",
			log.Stringer("user", user),
			log.Stringer("permission", perm),
		)
		return nil
	})
}

// RevokePermission clears the named permission on user.
func (m *Manager) RevokePermission(caller, user ids.ShortID, name string) error {
	perm, err := ParsePermission(name)
	if err != nil {
		return err
	}
	if err := m.Authorize(caller, ManagePermissions, true); err != nil {
		return err
	}
	return m.updateExisting(user, func(ua *UserAccess) error {
		if !ua.HasPermission(perm) {
			return fmt.Errorf("%w: %s", errs.ErrPermissionNotSet, perm)
		}
		ua.Permissions &^= uint64(perm)
		m.log.Info("permission revoked",
			log.Stringer("user", user),
			log.Stringer("permission", perm),
		)
		return nil
	})
}

// SetFlag sets the named flag on user.
func (m *Manager) SetFlag(caller, user ids.ShortID, name string) error {
	flag, err := ParseFlag(name)
	if err != nil {
		return err
	}
	if err := m.Authorize(caller, ManageUser, true); err != nil {
		return err
	}
	return m.update(user, func(ua *UserAccess) error {
		if ua.HasFlag(flag) {
			return fmt.Errorf("%w: %s", errs.ErrFlagAlreadySet, flag)
		}
		ua.Flags |= uint64(flag)
		return nil
	})
}

// ClearFlag clears the named flag on user.
func (m *Manager) ClearFlag(caller, user ids.ShortID, name string) error {
	flag, err := ParseFlag(name)
	if err != nil {
		return err
	}
	if err := m.Authorize(caller, ManageUser, true); err != nil {
		return err
	}
	return m.updateExisting(user, func(ua *UserAccess) error {
		if !ua.HasFlag(flag) {
			return fmt.Errorf("%w: %s", errs.ErrFlagNotSet, flag)
		}
		ua.Flags &^= uint64(flag)
		return nil
	})
}

// Pause blocks every non-administrative operation.
func (m *Manager) Pause(caller ids.ShortID) error {
	return m.setPaused(caller, true)
}

// Resume lifts a pause.
func (m *Manager) Resume(caller ids.ShortID) error {
	return m.setPaused(caller, false)
}

func (m *Manager) setPaused(caller ids.ShortID, paused bool) error {
	return m.updateSettings(caller, func(s *Settings) error {
		if s.Paused == paused {
			return fmt.Errorf("%w: paused is already %t", errs.ErrInvalidTransition, paused)
		}
		s.Paused = paused
		m.log.Info("pause state changed", log.Bool("paused", paused))
		return nil
	})
}

// SetVersion records a new version.
func (m *Manager) SetVersion(caller ids.ShortID, v Version) error {
	return m.updateSettings(caller, func(s *Settings) error {
		s.Version = v
		m.log.Info("version updated", log.Stringer("version", v))
		return nil
	})
}

// SetAPIAuthority rotates the identity trusted to submit market operations.
func (m *Manager) SetAPIAuthority(caller, authority ids.ShortID) error {
	if authority == ids.ShortEmpty {
		return fmt.Errorf("%w: empty api authority", errs.ErrInvalidArgument)
	}
	return m.updateSettings(caller, func(s *Settings) error {
		s.APIAuthority = authority
		m.log.Info("api authority rotated", log.Stringer("authority", authority))
		return nil
	})
}

func (m *Manager) updateSettings(caller ids.ShortID, fn func(*Settings) error) error {
	if err := m.Authorize(caller, ManageContract, false); err != nil {
		return err
	}
	settings, err := m.Settings()
	if err != nil {
		return err
	}
	if err := fn(settings); err != nil {
		return err
	}
	return m.store.PutSettings(settings)
}

// update applies fn to the record of user, creating it if needed.
func (m *Manager) update(user ids.ShortID, fn func(*UserAccess) error) error {
	if err := m.rejectOwner(user); err != nil {
		return err
	}
	ua, err := m.UserAccess(user)
	if err != nil {
		return err
	}
	if err := fn(ua); err != nil {
		return err
	}
	return m.store.PutUserAccess(ua)
}

// updateExisting applies fn to the record of user, which must exist.
func (m *Manager) updateExisting(user ids.ShortID, fn func(*UserAccess) error) error {
	if err := m.rejectOwner(user); err != nil {
		return err
	}
	ua, err := m.store.GetUserAccess(user)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", errs.ErrAccessNotFound, user)
	}
	if err != nil {
		return err
	}
	if err := fn(ua); err != nil {
		return err
	}
	return m.store.PutUserAccess(ua)
}

func (m *Manager) rejectOwner(user ids.ShortID) error {
	owner, err := m.IsOwner(user)
	if err != nil {
		return err
	}
	if owner {
		return fmt.Errorf("%w: the owner has no access record", errs.ErrInvalidArgument)
	}
	return nil
}
