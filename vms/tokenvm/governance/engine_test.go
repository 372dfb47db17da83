// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"strings"
	"testing"
	"time"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/stretchr/testify/require"

	"github.com/Soccial/soccial-token-sub000/utils/timer/mockable"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/token"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
)

var genesisTime = time.Unix(1_700_000_000, 0)

type voteKey struct {
	proposalID uint64
	voter      ids.ShortID
}

type memStore struct {
	settings  access.Settings
	users     map[ids.ShortID]access.UserAccess
	params    *Params
	proposals map[uint64]Proposal
	votes     map[voteKey]Vote
	fees      fee.Config
}

func (s *memStore) GetSettings() (*access.Settings, error) {
	settings := s.settings
	return &settings, nil
}

func (s *memStore) PutSettings(settings *access.Settings) error {
	s.settings = *settings
	return nil
}

func (s *memStore) GetUserAccess(addr ids.ShortID) (*access.UserAccess, error) {
	ua, ok := s.users[addr]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &ua, nil
}

func (s *memStore) PutUserAccess(ua *access.UserAccess) error {
	s.users[ua.Address] = *ua
	return nil
}

func (s *memStore) GetParams() (*Params, error) {
	if s.params == nil {
		return nil, database.ErrNotFound
	}
	params := *s.params
	return &params, nil
}

func (s *memStore) PutParams(params *Params) error {
	cp := *params
	s.params = &cp
	return nil
}

func (s *memStore) GetProposal(id uint64) (*Proposal, error) {
	proposal, ok := s.proposals[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &proposal, nil
}

func (s *memStore) PutProposal(proposal *Proposal) error {
	s.proposals[proposal.ID] = *proposal
	return nil
}

func (s *memStore) GetVote(proposalID uint64, voter ids.ShortID) (*Vote, error) {
	vote, ok := s.votes[voteKey{proposalID, voter}]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &vote, nil
}

func (s *memStore) PutVote(vote *Vote) error {
	s.votes[voteKey{vote.ProposalID, vote.Voter}] = *vote
	return nil
}

func (s *memStore) GetFeeConfig() (fee.Config, error) {
	return s.fees, nil
}

func (s *memStore) PutFeeConfig(cfg fee.Config) error {
	s.fees = cfg
	return nil
}

type testEnv struct {
	owner     ids.ShortID
	proposer  ids.ShortID
	finalizer ids.ShortID
	economist ids.ShortID
	clock     *mockable.Clock
	tokens    *token.Ledger
	store     *memStore
	engine    *Engine
}

func newTestEnv(t *testing.T) *testEnv {
	require := require.New(t)

	env := &testEnv{
		owner:     ids.GenerateTestShortID(),
		proposer:  ids.GenerateTestShortID(),
		finalizer: ids.GenerateTestShortID(),
		economist: ids.GenerateTestShortID(),
		clock:     &mockable.Clock{},
		tokens:    token.NewLedger(memdb.New()),
	}
	env.clock.Set(genesisTime)
	env.store = &memStore{
		settings: access.Settings{Owner: env.owner},
		users: map[ids.ShortID]access.UserAccess{
			env.proposer:  {Address: env.proposer, Permissions: uint64(access.CreateProposal)},
			env.finalizer: {Address: env.finalizer, Permissions: uint64(access.FinalizeProposal)},
			env.economist: {Address: env.economist, Permissions: uint64(access.ManageEconomy)},
		},
		proposals: make(map[uint64]Proposal),
		votes:     make(map[voteKey]Vote),
	}
	auth := access.NewAuthorizer(env.store)
	vaults := vault.NewLedger(auth, env.tokens, env.store, 128, log.NewNoOpLogger())
	env.engine = NewEngine(
		DefaultConfig,
		fee.DefaultLimits,
		auth,
		vaults,
		env.tokens,
		env.store,
		env.clock,
		log.NewNoOpLogger(),
	)

	// supply 13_000, quorum at 10% is 1_300
	require.NoError(env.tokens.Mint(env.proposer, 10_000))
	require.NoError(env.tokens.Mint(vault.OffchainReserve.Address(), 2_000))
	require.NoError(env.tokens.Mint(vault.Staking.Address(), 1_000))
	require.NoError(env.engine.Initialize(DefaultParams, fee.DefaultConfig))
	return env
}

func (env *testEnv) propose(t *testing.T, actions Action) *Proposal {
	proposal, err := env.engine.Create(env.proposer, "adjust fees", uint64(actions), 0, 0)
	require.NoError(t, err)
	return proposal
}

func (env *testEnv) endVoting(proposal *Proposal) {
	env.clock.Set(time.Unix(int64(proposal.EndTime)+1, 0))
}

func (env *testEnv) approved(t *testing.T, actions Action) *Proposal {
	require := require.New(t)

	proposal := env.propose(t, actions)
	_, err := env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, true, 1_500, 0)
	require.NoError(err)
	env.endVoting(proposal)
	proposal, err = env.engine.Finalize(env.finalizer, proposal.ID)
	require.NoError(err)
	require.Equal(Approved, proposal.Status)
	return proposal
}

func TestInitializeOnce(t *testing.T) {
	env := newTestEnv(t)
	err := env.engine.Initialize(DefaultParams, fee.DefaultConfig)
	require.ErrorIs(t, err, errs.ErrAlreadyInitialized)
}

func TestParseActions(t *testing.T) {
	require := require.New(t)

	mask, err := ParseActions("update_rewards_fee,update_market_fee")
	require.NoError(err)
	require.Equal(uint64(UpdateRewardsFee|UpdateMarketFee), mask)

	_, err = ParseActions("update_everything")
	require.ErrorIs(err, errs.ErrInvalidProposal)
}

func TestCreate(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	proposal := env.propose(t, UpdateRewardsFee)
	require.Equal(&Proposal{
		ID:          0,
		Proposer:    env.proposer,
		Description: "adjust fees",
		Actions:     uint64(UpdateRewardsFee),
		StartTime:   uint64(genesisTime.Unix()),
		EndTime:     uint64(genesisTime.Unix()) + DefaultParams.VotingPeriod,
		Status:      Voting,
	}, proposal)

	second, err := env.engine.Create(env.proposer, "later", uint64(UpdateAirdropFee), 5_000, 60)
	require.NoError(err)
	require.Equal(uint64(1), second.ID)
	require.Equal(uint64(5_060), second.EndTime)

	params, err := env.engine.GetParams()
	require.NoError(err)
	require.Equal(uint64(2), params.LastID)
}

func TestCreatePreconditions(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name        string
		caller      ids.ShortID
		description string
		actions     uint64
		expected    error
	}{
		{"unauthorized", env.finalizer, "x", uint64(UpdateRewardsFee), errs.ErrUnauthorized},
		{"empty description", env.proposer, "", uint64(UpdateRewardsFee), errs.ErrInvalidProposal},
		{"long description", env.proposer, strings.Repeat("a", 257), uint64(UpdateRewardsFee), errs.ErrInvalidProposal},
		{"no actions", env.proposer, "x", 0, errs.ErrInvalidProposal},
		{"unknown action", env.proposer, "x", 1 << 10, errs.ErrInvalidProposal},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := env.engine.Create(test.caller, test.description, test.actions, 0, 0)
			require.ErrorIs(t, err, test.expected)
		})
	}
}

func TestCreateRequiresMinTokens(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	_, err := env.engine.UpdateParams(env.owner, []string{"min_tokens=10001"})
	require.NoError(err)

	_, err = env.engine.Create(env.proposer, "x", uint64(UpdateRewardsFee), 0, 0)
	require.ErrorIs(err, errs.ErrInsufficientUserBalance)
}

func TestVoteWindow(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	start := uint64(genesisTime.Unix()) + 100
	proposal, err := env.engine.Create(env.proposer, "x", uint64(UpdateRewardsFee), start, 50)
	require.NoError(err)

	voter := ids.GenerateTestShortID()
	_, err = env.engine.Vote(voter, proposal.ID, true, 10, 0)
	require.ErrorIs(err, errs.ErrVotingClosed)

	env.clock.Set(time.Unix(int64(start), 0))
	_, err = env.engine.Vote(voter, proposal.ID, true, 10, 0)
	require.NoError(err)

	env.clock.Set(time.Unix(int64(start)+50, 0))
	_, err = env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, false, 10, 0)
	require.NoError(err)

	env.clock.Set(time.Unix(int64(start)+51, 0))
	_, err = env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, false, 10, 0)
	require.ErrorIs(err, errs.ErrVotingClosed)

	_, err = env.engine.Vote(voter, 42, true, 10, 0)
	require.ErrorIs(err, errs.ErrProposalNotFound)
}

func TestVoteWeight(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	proposal := env.propose(t, UpdateRewardsFee)
	voter := ids.GenerateTestShortID()

	_, err := env.engine.Vote(voter, proposal.ID, true, 2_001, 0)
	require.ErrorIs(err, errs.ErrInvalidVoteWeight)
	_, err = env.engine.Vote(voter, proposal.ID, true, 0, 1_001)
	require.ErrorIs(err, errs.ErrInvalidVoteWeight)
	_, err = env.engine.Vote(voter, proposal.ID, true, 0, 0)
	require.ErrorIs(err, errs.ErrInvalidVoteWeight)

	weight, err := env.engine.Vote(voter, proposal.ID, true, 2_000, 1_000)
	require.NoError(err)
	require.Equal(uint64(3_000), weight)

	_, err = env.engine.Vote(voter, proposal.ID, false, 1, 0)
	require.ErrorIs(err, errs.ErrAlreadyVoted)

	vote, err := env.engine.GetVote(proposal.ID, voter)
	require.NoError(err)
	require.Equal(&Vote{ProposalID: proposal.ID, Voter: voter, Support: true, Weight: 3_000}, vote)

	_, err = env.engine.GetVote(proposal.ID, env.proposer)
	require.ErrorIs(err, errs.ErrVoteNotFound)

	stored, err := env.engine.GetProposal(proposal.ID)
	require.NoError(err)
	require.Equal(uint64(3_000), stored.VotesFor)
	require.Zero(stored.VotesAgainst)
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name     string
		votesFor uint64
		against  uint64
		expected Status
	}{
		{"approved", 1_500, 500, Approved},
		{"majority below quorum", 1_000, 200, Rejected},
		{"exact quorum", 1_300, 0, Approved},
		{"tie", 1_000, 1_000, Rejected},
		{"no votes", 0, 0, Rejected},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t)
			proposal := env.propose(t, UpdateRewardsFee)

			if test.votesFor > 0 {
				_, err := env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, true, test.votesFor, 0)
				require.NoError(err)
			}
			if test.against > 0 {
				_, err := env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, false, test.against, 0)
				require.NoError(err)
			}

			env.endVoting(proposal)
			finalized, err := env.engine.Finalize(env.finalizer, proposal.ID)
			require.NoError(err)
			require.Equal(test.expected, finalized.Status)
			require.True(finalized.Finalized())
			require.Equal(test.expected == Approved, finalized.Approved())
			require.False(finalized.Used())
		})
	}
}

func TestFinalizePreconditions(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	proposal := env.propose(t, UpdateRewardsFee)

	_, err := env.engine.Finalize(env.proposer, proposal.ID)
	require.ErrorIs(err, errs.ErrUnauthorized)

	env.clock.Set(time.Unix(int64(proposal.EndTime), 0))
	_, err = env.engine.Finalize(env.finalizer, proposal.ID)
	require.ErrorIs(err, errs.ErrVotingNotEnded)

	env.endVoting(proposal)
	_, err = env.engine.Finalize(env.finalizer, proposal.ID)
	require.NoError(err)

	_, err = env.engine.Finalize(env.finalizer, proposal.ID)
	require.ErrorIs(err, errs.ErrProposalFinalized)
	_, err = env.engine.Vote(ids.GenerateTestShortID(), proposal.ID, true, 1, 0)
	require.ErrorIs(err, errs.ErrProposalFinalized)
}

func TestFeeUpdateRequiresApproval(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	open := env.propose(t, UpdateRewardsFee)
	_, err := env.engine.UpdateRewardsFee(env.economist, open.ID, 1_000)
	require.ErrorIs(err, errs.ErrProposalNotFinalized)

	env.endVoting(open)
	rejected, err := env.engine.Finalize(env.finalizer, open.ID)
	require.NoError(err)
	require.Equal(Rejected, rejected.Status)
	_, err = env.engine.UpdateRewardsFee(env.economist, open.ID, 1_000)
	require.ErrorIs(err, errs.ErrProposalNotApproved)

	_, err = env.engine.UpdateRewardsFee(env.economist, 99, 1_000)
	require.ErrorIs(err, errs.ErrProposalNotFound)
}

func TestFeeUpdateConsumesApproval(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	proposal := env.approved(t, UpdateRewardsFee)

	_, err := env.engine.UpdateRewardsFee(env.proposer, proposal.ID, 1_000)
	require.ErrorIs(err, errs.ErrUnauthorized)
	_, err = env.engine.UpdateAirdropFee(env.economist, proposal.ID, 1_000)
	require.ErrorIs(err, errs.ErrProposalTypeMismatch)
	_, err = env.engine.UpdateRewardsFee(env.economist, proposal.ID, 5_001)
	require.ErrorIs(err, errs.ErrInvalidFeeValue)

	cfg, err := env.engine.UpdateRewardsFee(env.economist, proposal.ID, 1_000)
	require.NoError(err)
	require.Equal(uint16(1_000), cfg.RewardsFeeBps)
	require.Equal(cfg, env.store.fees)

	stored, err := env.engine.GetProposal(proposal.ID)
	require.NoError(err)
	require.Equal(Consumed, stored.Status)
	require.True(stored.Used())

	_, err = env.engine.UpdateRewardsFee(env.economist, proposal.ID, 2_000)
	require.ErrorIs(err, errs.ErrProposalAlreadyUsed)
}

func TestMultiActionProposalIsSingleUse(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)
	proposal := env.approved(t, UpdateMarketFee|UpdateAirdropFee)

	cfg, err := env.engine.UpdateMarketFee(env.economist, proposal.ID, 100)
	require.NoError(err)
	require.Equal(uint16(100), cfg.MarketFeeBps)

	_, err = env.engine.UpdateAirdropFee(env.economist, proposal.ID, 100)
	require.ErrorIs(err, errs.ErrProposalAlreadyUsed)
}

func TestUpdateParams(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t)

	tests := []struct {
		name     string
		updates  []string
		expected error
	}{
		{"unknown key", []string{"max_tokens=1"}, errs.ErrInvalidArgument},
		{"zero quorum", []string{"quorum_percent=0"}, errs.ErrInvalidArgument},
		{"quorum above 100", []string{"quorum_percent=101"}, errs.ErrInvalidArgument},
		{"zero period", []string{"voting_period=0"}, errs.ErrInvalidArgument},
		{"malformed value", []string{"min_tokens=1k"}, errs.ErrInvalidArgument},
		{"not key value", []string{"min_tokens"}, errs.ErrInvalidArgument},
		{"partly invalid", []string{"min_tokens=5", "quorum_percent=0"}, errs.ErrInvalidArgument},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := env.engine.UpdateParams(env.owner, test.updates)
			require.ErrorIs(err, test.expected)
		})
	}

	_, err := env.engine.UpdateParams(env.proposer, []string{"min_tokens=1"})
	require.ErrorIs(err, errs.ErrUnauthorized)

	params, err := env.engine.UpdateParams(env.owner, []string{
		"min_tokens=500",
		"quorum_percent=51",
		"voting_period=3600",
	})
	require.NoError(err)
	require.Equal(&Params{MinTokens: 500, QuorumPercent: 51, VotingPeriod: 3_600}, params)

	stored, err := env.engine.GetParams()
	require.NoError(err)
	require.Equal(params, stored)
}
