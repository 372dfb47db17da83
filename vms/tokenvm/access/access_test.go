// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package access

import (
	"testing"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

type memStore struct {
	settings *Settings
	users    map[ids.ShortID]UserAccess
}

func newMemStore() *memStore {
	return &memStore{users: make(map[ids.ShortID]UserAccess)}
}

func (s *memStore) GetSettings() (*Settings, error) {
	if s.settings == nil {
		return nil, database.ErrNotFound
	}
	settings := *s.settings
	return &settings, nil
}

func (s *memStore) PutSettings(settings *Settings) error {
	cp := *settings
	s.settings = &cp
	return nil
}

func (s *memStore) GetUserAccess(addr ids.ShortID) (*UserAccess, error) {
	ua, ok := s.users[addr]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &ua, nil
}

func (s *memStore) PutUserAccess(ua *UserAccess) error {
	s.users[ua.Address] = *ua
	return nil
}

func newTestManager(t *testing.T) (*Manager, ids.ShortID) {
	owner := ids.GenerateTestShortID()
	m := NewManager(newMemStore(), log.NewNoOpLogger())
	require.NoError(t, m.Initialize(&Settings{
		Owner:        owner,
		APIAuthority: ids.GenerateTestShortID(),
	}))
	return m, owner
}

func TestParseNames(t *testing.T) {
	require := require.New(t)

	p, err := ParsePermission("manage_staking")
	require.NoError(err)
	require.Equal(ManageStaking, p)
	require.Equal("manage_staking", p.String())

	_, err = ParsePermission("manage_everything")
	require.ErrorIs(err, errs.ErrUnknownPermissionName)

	f, err := ParseFlag("vip")
	require.NoError(err)
	require.Equal(VIP, f)

	_, err = ParseFlag("gold")
	require.ErrorIs(err, errs.ErrUnknownFlagName)

	require.Equal(
		[]string{"manage_user", "manage_market"},
		Permissions(uint64(ManageUser|ManageMarket)),
	)
	require.Equal([]string{"early_adopter_tier2", "verified"}, Flags(uint64(EarlyAdopterTier2|Verified)))
}

func TestInitializeOnce(t *testing.T) {
	m, owner := newTestManager(t)
	err := m.Initialize(&Settings{Owner: owner})
	require.ErrorIs(t, err, errs.ErrAlreadyInitialized)
}

func TestAuthorize(t *testing.T) {
	m, owner := newTestManager(t)
	admin := ids.GenerateTestShortID()
	granted := ids.GenerateTestShortID()
	stranger := ids.GenerateTestShortID()

	require.NoError(t, m.SetAdmin(owner, admin, true))
	require.NoError(t, m.GrantPermission(owner, granted, "manage_vaults"))

	tests := []struct {
		name       string
		caller     ids.ShortID
		perm       Permission
		allowAdmin bool
		expected   error
	}{
		{"owner without record", owner, ManageVaults, false, nil},
		{"admin allowed", admin, ManageVaults, true, nil},
		{"admin not allowed", admin, ManageVaults, false, errs.ErrUnauthorized},
		{"explicit grant", granted, ManageVaults, false, nil},
		{"other permission", granted, ManageStaking, true, errs.ErrUnauthorized},
		{"no record", stranger, ManageVaults, true, errs.ErrUnauthorized},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := m.Authorize(test.caller, test.perm, test.allowAdmin)
			require.ErrorIs(t, err, test.expected)
		})
	}
}

func TestAuthorizeSelf(t *testing.T) {
	require := require.New(t)

	m, owner := newTestManager(t)
	user := ids.GenerateTestShortID()
	manager := ids.GenerateTestShortID()
	require.NoError(m.GrantPermission(owner, manager, "manage_staking"))

	require.NoError(m.AuthorizeSelfOrPermission(user, user, ManageStaking))
	require.NoError(m.AuthorizeSelfOrPermission(manager, user, ManageStaking))
	require.NoError(m.AuthorizeSelfOrPermission(owner, user, ManageStaking))
	require.ErrorIs(m.AuthorizeSelfOrPermission(user, manager, ManageStaking), errs.ErrUnauthorized)

	require.NoError(m.AuthorizeSelfOnly(user, user))
	require.ErrorIs(m.AuthorizeSelfOnly(owner, user), errs.ErrUnauthorized)
	require.ErrorIs(m.AuthorizeSelfOnly(manager, user), errs.ErrUnauthorized)
}

func TestSetAdminOwnerOnly(t *testing.T) {
	require := require.New(t)

	m, owner := newTestManager(t)
	admin := ids.GenerateTestShortID()
	user := ids.GenerateTestShortID()

	require.NoError(m.SetAdmin(owner, admin, true))
	require.ErrorIs(m.SetAdmin(admin, user, true), errs.ErrUnauthorized)
	require.ErrorIs(m.SetAdmin(owner, owner, true), errs.ErrInvalidArgument)

	ua, err := m.UserAccess(admin)
	require.NoError(err)
	require.True(ua.IsAdmin)
}

func TestPermissionLifecycle(t *testing.T) {
	require := require.New(t)

	m, owner := newTestManager(t)
	user := ids.GenerateTestShortID()

	require.ErrorIs(m.RevokePermission(owner, user, "manage_user"), errs.ErrAccessNotFound)

	require.NoError(m.GrantPermission(owner, user, "manage_user"))
	require.NoError(m.GrantPermission(owner, user, "manage_user"))
	ua, err := m.UserAccess(user)
	require.NoError(err)
	require.True(ua.HasPermission(ManageUser))

	require.ErrorIs(m.RevokePermission(owner, user, "manage_vaults"), errs.ErrPermissionNotSet)
	require.NoError(m.RevokePermission(owner, user, "manage_user"))
	require.ErrorIs(m.RevokePermission(owner, user, "manage_user"), errs.ErrPermissionNotSet)
	require.ErrorIs(m.GrantPermission(owner, user, "superuser"), errs.ErrUnknownPermissionName)

	// record persists once emptied
	ua, err = m.store.GetUserAccess(user)
	require.NoError(err)
	require.Zero(ua.Permissions)
}

func TestFlagLifecycle(t *testing.T) {
	require := require.New(t)

	m, owner := newTestManager(t)
	operator := ids.GenerateTestShortID()
	user := ids.GenerateTestShortID()

	require.ErrorIs(m.SetFlag(operator, user, "vip"), errs.ErrUnauthorized)
	require.NoError(m.GrantPermission(owner, operator, "manage_user"))

	require.NoError(m.SetFlag(operator, user, "vip"))
	require.ErrorIs(m.SetFlag(operator, user, "vip"), errs.ErrFlagAlreadySet)
	require.NoError(m.ClearFlag(operator, user, "vip"))
	require.ErrorIs(m.ClearFlag(operator, user, "vip"), errs.ErrFlagNotSet)
	require.ErrorIs(m.SetFlag(operator, user, "platinum"), errs.ErrUnknownFlagName)

	// flags carry no authority
	require.NoError(m.SetFlag(operator, user, "verified"))
	require.ErrorIs(m.Authorize(user, ManageUser, true), errs.ErrUnauthorized)
}

func TestSettingsOperations(t *testing.T) {
	require := require.New(t)

	m, owner := newTestManager(t)
	operator := ids.GenerateTestShortID()
	authority := ids.GenerateTestShortID()

	require.ErrorIs(m.Pause(operator), errs.ErrUnauthorized)
	require.NoError(m.GrantPermission(owner, operator, "manage_contract"))

	require.NoError(m.RequireNotPaused())
	require.NoError(m.Pause(operator))
	require.ErrorIs(m.RequireNotPaused(), errs.ErrContractPaused)
	require.ErrorIs(m.Pause(operator), errs.ErrInvalidTransition)
	require.NoError(m.Resume(owner))
	require.NoError(m.RequireNotPaused())

	require.NoError(m.SetVersion(operator, Version{Major: 1, Minor: 2, Patch: 3}))
	require.NoError(m.SetAPIAuthority(owner, authority))
	require.ErrorIs(m.SetAPIAuthority(owner, ids.ShortEmpty), errs.ErrInvalidArgument)

	settings, err := m.Settings()
	require.NoError(err)
	require.Equal(owner, settings.Owner)
	require.Equal(authority, settings.APIAuthority)
	require.Equal("v1.2.3", settings.Version.String())
}

func TestUninitialized(t *testing.T) {
	m := NewManager(newMemStore(), log.NewNoOpLogger())
	err := m.Authorize(ids.GenerateTestShortID(), ManageUser, true)
	require.ErrorIs(t, err, errs.ErrNotInitialized)
}
