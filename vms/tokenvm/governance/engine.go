// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package governance runs token-weighted proposals whose approvals gate
// changes to the fee configuration.
package governance

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/utils/timer/mockable"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/args"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/token"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

const (
	keyMinTokens     = "min_tokens"
	keyQuorumPercent = "quorum_percent"
	keyVotingPeriod  = "voting_period"
)

var (
	DefaultConfig = Config{
		DefaultVotingPeriod:  72 * time.Hour,
		MaxDescriptionLength: 256,
	}

	DefaultParams = Params{
		QuorumPercent: 10,
		VotingPeriod:  uint64((72 * time.Hour).Seconds()),
	}
)

type Config struct {
	DefaultVotingPeriod  time.Duration `json:"defaultVotingPeriod"`
	MaxDescriptionLength int           `json:"maxDescriptionLength"`
}

// Store persists governance records. Getters return database.ErrNotFound for
// missing records.
type Store interface {
	GetParams() (*Params, error)
	PutParams(*Params) error

	GetProposal(id uint64) (*Proposal, error)
	PutProposal(*Proposal) error

	GetVote(proposalID uint64, voter ids.ShortID) (*Vote, error)
	PutVote(*Vote) error

	GetFeeConfig() (fee.Config, error)
	PutFeeConfig(fee.Config) error
}

type Engine struct {
	config    Config
	feeLimits fee.Limits
	auth      *access.Authorizer
	vaults    *vault.Ledger
	supply    token.Supplier
	store     Store
	clock     *mockable.Clock
	log       log.Logger
}

func NewEngine(
	config Config,
	feeLimits fee.Limits,
	auth *access.Authorizer,
	vaults *vault.Ledger,
	supply token.Supplier,
	store Store,
	clock *mockable.Clock,
	logger log.Logger,
) *Engine {
	return &Engine{
		config:    config,
		feeLimits: feeLimits,
		auth:      auth,
		vaults:    vaults,
		supply:    supply,
		store:     store,
		clock:     clock,
		log:       logger,
	}
}

// Initialize writes the starting parameters and fee configuration.
func (e *Engine) Initialize(params Params, feeConfig fee.Config) error {
	_, err := e.store.GetParams()
	switch {
	case err == nil:
		return errs.ErrAlreadyInitialized
	case !errors.Is(err, database.ErrNotFound):
		return err
	}
	if params.VotingPeriod == 0 {
		params.VotingPeriod = uint64(e.config.DefaultVotingPeriod.Seconds())
	}
	if err := params.Verify(); err != nil {
		return err
	}
	if err := feeConfig.Verify(e.feeLimits); err != nil {
		return err
	}
	params.LastID = 0
	if err := e.store.PutParams(&params); err != nil {
		return err
	}
	return e.store.PutFeeConfig(feeConfig)
}

// Create opens a proposal authorizing actions. A zero start opens voting now
// and a zero duration uses the configured voting period.
func (e *Engine) Create(caller ids.ShortID, description string, actions uint64, start, duration uint64) (*Proposal, error) {
	if err := e.auth.Authorize(caller, access.CreateProposal, true); err != nil {
		return nil, err
	}
	switch {
	case description == "":
		return nil, fmt.Errorf("%w: empty description", errs.ErrInvalidProposal)
	case utf8.RuneCountInString(description) > e.config.MaxDescriptionLength:
		return nil, fmt.Errorf("%w: description longer than %d characters", errs.ErrInvalidProposal, e.config.MaxDescriptionLength)
	case actions == 0:
		return nil, fmt.Errorf("%w: no actions", errs.ErrInvalidProposal)
	case actions&^uint64(allActions) != 0:
		return nil, fmt.Errorf("%w: unknown actions %#x", errs.ErrInvalidProposal, actions&^uint64(allActions))
	}

	params, err := e.GetParams()
	if err != nil {
		return nil, err
	}
	if err := e.vaults.RequireUserBalance(caller, params.MinTokens); err != nil {
		return nil, err
	}
	if start == 0 {
		start = e.clock.Unix()
	}
	if duration == 0 {
		duration = params.VotingPeriod
	}
	end, err := safemath.Add(start, duration)
	if err != nil {
		return nil, fmt.Errorf("%w: voting window overflows", errs.ErrInvalidProposal)
	}

	proposal := &Proposal{
		ID:          params.LastID,
		Proposer:    caller,
		Description: description,
		Actions:     actions,
		StartTime:   start,
		EndTime:     end,
		Status:      Voting,
	}
	params.LastID++
	if err := e.store.PutParams(params); err != nil {
		return nil, err
	}
	if err := e.store.PutProposal(proposal); err != nil {
		return nil, err
	}

	e.log.Info("proposal created",
		log.Uint64("proposalID", proposal.ID),
		log.Stringer("proposer", caller),
		log.Uint64("actions", actions),
		log.Uint64("start", start),
		log.Uint64("end", end),
	)
	return proposal, nil
}

// Vote records the caller's reported off-chain and staked balances as voting
// weight. Each reported balance must be backed by the matching vault.
func (e *Engine) Vote(caller ids.ShortID, proposalID uint64, support bool, offchain, staked uint64) (uint64, error) {
	proposal, err := e.GetProposal(proposalID)
	if err != nil {
		return 0, err
	}
	if proposal.Finalized() {
		return 0, fmt.Errorf("%w: proposal %d", errs.ErrProposalFinalized, proposalID)
	}
	now := e.clock.Unix()
	if !proposal.Open(now) {
		return 0, fmt.Errorf("%w: proposal %d accepts votes in [%d, %d]",
			errs.ErrVotingClosed, proposalID, proposal.StartTime, proposal.EndTime)
	}
	_, err = e.store.GetVote(proposalID, caller)
	switch {
	case err == nil:
		return 0, fmt.Errorf("%w: %s on proposal %d", errs.ErrAlreadyVoted, caller, proposalID)
	case !errors.Is(err, database.ErrNotFound):
		return 0, err
	}

	weight, err := e.weight(offchain, staked)
	if err != nil {
		return 0, err
	}
	if support {
		proposal.VotesFor, err = safemath.Add(proposal.VotesFor, weight)
	} else {
		proposal.VotesAgainst, err = safemath.Add(proposal.VotesAgainst, weight)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: tally on proposal %d: %w", errs.ErrAmountOutOfRange, proposalID, err)
	}
	if err := e.store.PutProposal(proposal); err != nil {
		return 0, err
	}
	err = e.store.PutVote(&Vote{
		ProposalID: proposalID,
		Voter:      caller,
		Support:    support,
		Weight:     weight,
	})
	if err != nil {
		return 0, err
	}

	e.log.Info("vote cast",
		log.Uint64("proposalID", proposalID),
		log.Stringer("voter", caller),
		log.Bool("support", support),
		log.Uint64("weight", weight),
	)
	return weight, nil
}

func (e *Engine) weight(offchain, staked uint64) (uint64, error) {
	for _, component := range []struct {
		vault  vault.Name
		amount uint64
	}{
		{vault.OffchainReserve, offchain},
		{vault.Staking, staked},
	} {
		backing, err := e.vaults.Balance(component.vault)
		if err != nil {
			return 0, err
		}
		if component.amount > backing {
			return 0, fmt.Errorf("%w: reported %d exceeds %s backing of %d",
				errs.ErrInvalidVoteWeight, component.amount, component.vault, backing)
		}
	}
	weight, err := safemath.Add(offchain, staked)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrInvalidVoteWeight, err)
	}
	if weight == 0 {
		return 0, fmt.Errorf("%w: zero weight", errs.ErrInvalidVoteWeight)
	}
	return weight, nil
}

// Finalize closes voting. The proposal is approved when it has more votes
// for than against and the total vote reaches the quorum share of the token
// supply.
func (e *Engine) Finalize(caller ids.ShortID, proposalID uint64) (*Proposal, error) {
	if err := e.auth.Authorize(caller, access.FinalizeProposal, true); err != nil {
		return nil, err
	}
	proposal, err := e.GetProposal(proposalID)
	if err != nil {
		return nil, err
	}
	if proposal.Finalized() {
		return nil, fmt.Errorf("%w: proposal %d", errs.ErrProposalFinalized, proposalID)
	}
	if now := e.clock.Unix(); now <= proposal.EndTime {
		return nil, fmt.Errorf("%w: proposal %d ends at %d", errs.ErrVotingNotEnded, proposalID, proposal.EndTime)
	}
	params, err := e.GetParams()
	if err != nil {
		return nil, err
	}
	supply, err := e.supply.TotalSupply()
	if err != nil {
		return nil, err
	}
	quorum, err := safemath.MulDiv(supply, params.QuorumPercent, 100)
	if err != nil {
		return nil, err
	}
	turnout, err := safemath.Add(proposal.VotesFor, proposal.VotesAgainst)
	if err != nil {
		return nil, fmt.Errorf("%w: turnout on proposal %d: %w", errs.ErrAmountOutOfRange, proposalID, err)
	}
	if proposal.VotesFor > proposal.VotesAgainst && turnout >= quorum {
		proposal.Status = Approved
	} else {
		proposal.Status = Rejected
	}
	if err := e.store.PutProposal(proposal); err != nil {
		return nil, err
	}

	e.log.Info("proposal finalized",
		log.Uint64("proposalID", proposalID),
		log.Stringer("status", proposal.Status),
		log.Uint64("votesFor", proposal.VotesFor),
		log.Uint64("votesAgainst", proposal.VotesAgainst),
		log.Uint64("quorum", quorum),
	)
	return proposal, nil
}

// UpdateParams applies a list of key=value updates. Keys are min_tokens,
// quorum_percent and voting_period. Either every update applies or none do.
func (e *Engine) UpdateParams(caller ids.ShortID, updates []string) (*Params, error) {
	if err := e.auth.Authorize(caller, access.ManageContract, false); err != nil {
		return nil, err
	}
	kvs, err := args.KeyValues(updates)
	if err != nil {
		return nil, err
	}
	params, err := e.GetParams()
	if err != nil {
		return nil, err
	}
	for _, kv := range kvs {
		value, err := args.Uint64(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kv.Key, err)
		}
		switch kv.Key {
		case keyMinTokens:
			params.MinTokens = value
		case keyQuorumPercent:
			params.QuorumPercent = value
		case keyVotingPeriod:
			params.VotingPeriod = value
		default:
			return nil, fmt.Errorf("%w: unknown governance key %q", errs.ErrInvalidArgument, kv.Key)
		}
	}
	if err := params.Verify(); err != nil {
		return nil, err
	}
	if err := e.store.PutParams(params); err != nil {
		return nil, err
	}

	e.log.Info("governance params updated",
		log.Uint64("minTokens", params.MinTokens),
		log.Uint64("quorumPercent", params.QuorumPercent),
		log.Uint64("votingPeriod", params.VotingPeriod),
	)
	return params, nil
}

// UpdateRewardsFee sets the rewards share of collected fees.
func (e *Engine) UpdateRewardsFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return e.updateFee(caller, proposalID, UpdateRewardsFee, func(c *fee.Config) { c.RewardsFeeBps = bps })
}

// UpdateAirdropFee sets the airdrop share of collected fees.
func (e *Engine) UpdateAirdropFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return e.updateFee(caller, proposalID, UpdateAirdropFee, func(c *fee.Config) { c.AirdropFeeBps = bps })
}

// UpdateMarketFee sets the gross fee rate of fee-bearing operations.
func (e *Engine) UpdateMarketFee(caller ids.ShortID, proposalID uint64, bps uint16) (fee.Config, error) {
	return e.updateFee(caller, proposalID, UpdateMarketFee, func(c *fee.Config) { c.MarketFeeBps = bps })
}

func (e *Engine) updateFee(caller ids.ShortID, proposalID uint64, action Action, apply func(*fee.Config)) (fee.Config, error) {
	if err := e.auth.Authorize(caller, access.ManageEconomy, true); err != nil {
		return fee.Config{}, err
	}
	proposal, err := e.GetProposal(proposalID)
	if err != nil {
		return fee.Config{}, err
	}
	if err := proposal.Consume(action); err != nil {
		return fee.Config{}, err
	}
	cfg, err := e.store.GetFeeConfig()
	if err != nil {
		return fee.Config{}, err
	}
	apply(&cfg)
	if err := cfg.Verify(e.feeLimits); err != nil {
		return fee.Config{}, err
	}
	if err := e.store.PutProposal(proposal); err != nil {
		return fee.Config{}, err
	}
	if err := e.store.PutFeeConfig(cfg); err != nil {
		return fee.Config{}, err
	}

	e.log.Info("fee updated",
		log.Stringer("action", action),
		log.Uint64("proposalID", proposalID),
		log.Int("marketFeeBps", int(cfg.MarketFeeBps)),
		log.Int("rewardsFeeBps", int(cfg.RewardsFeeBps)),
		log.Int("airdropFeeBps", int(cfg.AirdropFeeBps)),
	)
	return cfg, nil
}

// GetParams returns the governance parameters.
func (e *Engine) GetParams() (*Params, error) {
	params, err := e.store.GetParams()
	if errors.Is(err, database.ErrNotFound) {
		return nil, errs.ErrNotInitialized
	}
	return params, err
}

// GetProposal returns the proposal with id.
func (e *Engine) GetProposal(id uint64) (*Proposal, error) {
	proposal, err := e.store.GetProposal(id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", errs.ErrProposalNotFound, id)
	}
	return proposal, err
}

// GetVote returns the vote of voter on proposalID.
func (e *Engine) GetVote(proposalID uint64, voter ids.ShortID) (*Vote, error) {
	vote, err := e.store.GetVote(proposalID, voter)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s on proposal %d", errs.ErrVoteNotFound, voter, proposalID)
	}
	return vote, err
}
