// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists every record of the token economy. Each record
// kind lives in its own prefixed namespace of the underlying database.
package state

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

var (
	SingletonPrefix    = []byte("singleton")
	AccessPrefix       = []byte("access")
	PlanPrefix         = []byte("plan")
	StakePrefix        = []byte("stake")
	StakeCounterPrefix = []byte("stakeCounter")
	SchedulePrefix     = []byte("schedule")
	ProposalPrefix     = []byte("proposal")
	VotePrefix         = []byte("vote")

	InitializedKey    = []byte("initialized")
	SettingsKey       = []byte("settings")
	FeeConfigKey      = []byte("feeConfig")
	ParamsKey         = []byte("governanceParams")
	VestingCounterKey = []byte("vestingCounter")

	errWrongCacheType = errors.New("unexpected type in access cache")

	_ access.Store     = (*State)(nil)
	_ vault.FeeSource  = (*State)(nil)
	_ staking.Store    = (*State)(nil)
	_ vesting.Store    = (*State)(nil)
	_ governance.Store = (*State)(nil)
)

type State struct {
	singletonDB    database.Database
	accessDB       database.Database
	planDB         database.Database
	stakeDB        database.Database
	stakeCounterDB database.Database
	scheduleDB     database.Database
	proposalDB     database.Database
	voteDB         database.Database

	// decoded user access records, keyed by address
	accessCache *lru.Cache
}

func New(db database.Database, accessCacheSize int) (*State, error) {
	accessCache, err := lru.New(accessCacheSize)
	if err != nil {
		return nil, err
	}
	return &State{
		singletonDB:    prefixdb.New(SingletonPrefix, db),
		accessDB:       prefixdb.New(AccessPrefix, db),
		planDB:         prefixdb.New(PlanPrefix, db),
		stakeDB:        prefixdb.New(StakePrefix, db),
		stakeCounterDB: prefixdb.New(StakeCounterPrefix, db),
		scheduleDB:     prefixdb.New(SchedulePrefix, db),
		proposalDB:     prefixdb.New(ProposalPrefix, db),
		voteDB:         prefixdb.New(VotePrefix, db),
		accessCache:    accessCache,
	}, nil
}

// Purge drops every cached record. It must be called whenever writes to the
// underlying database are discarded.
func (s *State) Purge() {
	s.accessCache.Purge()
}

func (s *State) IsInitialized() (bool, error) {
	return s.singletonDB.Has(InitializedKey)
}

func (s *State) SetInitialized() error {
	return s.singletonDB.Put(InitializedKey, []byte{1})
}

func (s *State) GetSettings() (*access.Settings, error) {
	return get[access.Settings](s.singletonDB, SettingsKey)
}

func (s *State) PutSettings(settings *access.Settings) error {
	return put(s.singletonDB, SettingsKey, settings)
}

func (s *State) GetUserAccess(addr ids.ShortID) (*access.UserAccess, error) {
	if cached, ok := s.accessCache.Get(addr); ok {
		ua, ok := cached.(access.UserAccess)
		if !ok {
			return nil, fmt.Errorf("%w: %T", errWrongCacheType, cached)
		}
		return &ua, nil
	}
	ua, err := get[access.UserAccess](s.accessDB, addr[:])
	if err != nil {
		return nil, err
	}
	s.accessCache.Add(addr, *ua)
	return ua, nil
}

func (s *State) PutUserAccess(ua *access.UserAccess) error {
	if err := put(s.accessDB, ua.Address[:], ua); err != nil {
		return err
	}
	s.accessCache.Add(ua.Address, *ua)
	return nil
}

func (s *State) GetFeeConfig() (fee.Config, error) {
	cfg, err := get[fee.Config](s.singletonDB, FeeConfigKey)
	if err != nil {
		return fee.Config{}, err
	}
	return *cfg, nil
}

func (s *State) PutFeeConfig(cfg fee.Config) error {
	return put(s.singletonDB, FeeConfigKey, &cfg)
}

func (s *State) GetPlan(id uint8) (*staking.Plan, error) {
	return get[staking.Plan](s.planDB, []byte{id})
}

func (s *State) PutPlan(plan *staking.Plan) error {
	return put(s.planDB, []byte{plan.ID}, plan)
}

// Plans returns every plan in id order.
func (s *State) Plans() ([]*staking.Plan, error) {
	it := s.planDB.NewIterator()
	defer it.Release()

	var plans []*staking.Plan
	for it.Next() {
		plan := &staking.Plan{}
		if _, err := Codec.Unmarshal(it.Value(), plan); err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, it.Error()
}

func (s *State) GetStake(participant ids.ShortID, id uint64) (*staking.Stake, error) {
	return get[staking.Stake](s.stakeDB, stakeKey(participant, id))
}

func (s *State) PutStake(stake *staking.Stake) error {
	return put(s.stakeDB, stakeKey(stake.Participant, stake.ID), stake)
}

func (s *State) DeleteStake(participant ids.ShortID, id uint64) error {
	return s.stakeDB.Delete(stakeKey(participant, id))
}

// Stakes returns the open positions of participant in id order.
func (s *State) Stakes(participant ids.ShortID) ([]*staking.Stake, error) {
	it := s.stakeDB.NewIteratorWithPrefix(participant[:])
	defer it.Release()

	var stakes []*staking.Stake
	for it.Next() {
		stake := &staking.Stake{}
		if _, err := Codec.Unmarshal(it.Value(), stake); err != nil {
			return nil, err
		}
		stakes = append(stakes, stake)
	}
	return stakes, it.Error()
}

func (s *State) NextStakeID(participant ids.ShortID) (uint64, error) {
	return next(s.stakeCounterDB, participant[:])
}

func (s *State) GetSchedule(id uint64) (*vesting.Schedule, error) {
	return get[vesting.Schedule](s.scheduleDB, database.PackUInt64(id))
}

func (s *State) PutSchedule(schedule *vesting.Schedule) error {
	return put(s.scheduleDB, database.PackUInt64(schedule.ID), schedule)
}

func (s *State) NextVestingID() (uint64, error) {
	return next(s.singletonDB, VestingCounterKey)
}

func (s *State) GetParams() (*governance.Params, error) {
	return get[governance.Params](s.singletonDB, ParamsKey)
}

func (s *State) PutParams(params *governance.Params) error {
	return put(s.singletonDB, ParamsKey, params)
}

func (s *State) GetProposal(id uint64) (*governance.Proposal, error) {
	return get[governance.Proposal](s.proposalDB, database.PackUInt64(id))
}

func (s *State) PutProposal(proposal *governance.Proposal) error {
	return put(s.proposalDB, database.PackUInt64(proposal.ID), proposal)
}

func (s *State) GetVote(proposalID uint64, voter ids.ShortID) (*governance.Vote, error) {
	return get[governance.Vote](s.voteDB, voteKey(proposalID, voter))
}

func (s *State) PutVote(vote *governance.Vote) error {
	return put(s.voteDB, voteKey(vote.ProposalID, vote.Voter), vote)
}

// stakeKey orders a participant's positions by id.
func stakeKey(participant ids.ShortID, id uint64) []byte {
	return append(participant[:], database.PackUInt64(id)...)
}

func voteKey(proposalID uint64, voter ids.ShortID) []byte {
	return append(database.PackUInt64(proposalID), voter[:]...)
}

func get[T any](db database.KeyValueReader, key []byte) (*T, error) {
	bytes, err := db.Get(key)
	if err != nil {
		return nil, err
	}
	v := new(T)
	if _, err := Codec.Unmarshal(bytes, v); err != nil {
		return nil, err
	}
	return v, nil
}

func put(db database.KeyValueWriter, key []byte, v any) error {
	bytes, err := Codec.Marshal(CodecVersion, v)
	if err != nil {
		return err
	}
	return db.Put(key, bytes)
}

// next returns the counter stored at key and advances it.
func next(db database.Database, key []byte) (uint64, error) {
	id, err := database.GetUInt64(db, key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		id = 0
	case err != nil:
		return 0, err
	}
	return id, database.PutUInt64(db, key, id+1)
}
