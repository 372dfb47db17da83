// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

// Action is an economic change a proposal can authorize. Proposals carry a
// bitmask of actions.
type Action uint64

const (
	UpdateRewardsFee Action = 1 << iota
	UpdateAirdropFee
	UpdateMarketFee

	allActions = UpdateRewardsFee | UpdateAirdropFee | UpdateMarketFee
)

var actionNames = map[Action]string{
	UpdateRewardsFee: "update_rewards_fee",
	UpdateAirdropFee: "update_airdrop_fee",
	UpdateMarketFee:  "update_market_fee",
}

// ParseActions maps a comma separated list of action names to a bitmask.
func ParseActions(s string) (uint64, error) {
	var mask uint64
	for _, name := range strings.Split(s, ",") {
		found := false
		for action, actionName := range actionNames {
			if actionName == name {
				mask |= uint64(action)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown action %q", errs.ErrInvalidProposal, name)
		}
	}
	return mask, nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%#x)", uint64(a))
}

// Status is the position of a proposal in its lifecycle:
//
//	Voting -> Rejected
//	Voting -> Approved -> Consumed
type Status uint8

const (
	Voting Status = iota
	Rejected
	Approved
	Consumed
)

var statusNames = [...]string{
	Voting:   "voting",
	Rejected: "rejected",
	Approved: "approved",
	Consumed: "consumed",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	for status, statusName := range statusNames {
		if statusName == name {
			*s = Status(status)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown status %q", errs.ErrInvalidArgument, name)
}

// Params is the governance configuration and proposal counter.
type Params struct {
	LastID        uint64 `serialize:"true" json:"lastID"`
	MinTokens     uint64 `serialize:"true" json:"minTokens"`
	QuorumPercent uint64 `serialize:"true" json:"quorumPercent"`
	VotingPeriod  uint64 `serialize:"true" json:"votingPeriod"`
}

func (p *Params) Verify() error {
	switch {
	case p.QuorumPercent == 0 || p.QuorumPercent > 100:
		return fmt.Errorf("%w: quorum_percent %d outside [1, 100]", errs.ErrInvalidArgument, p.QuorumPercent)
	case p.VotingPeriod == 0:
		return fmt.Errorf("%w: zero voting_period", errs.ErrInvalidArgument)
	}
	return nil
}

type Proposal struct {
	ID           uint64      `serialize:"true" json:"id"`
	Proposer     ids.ShortID `serialize:"true" json:"proposer"`
	Description  string      `serialize:"true" json:"description"`
	Actions      uint64      `serialize:"true" json:"actions"`
	StartTime    uint64      `serialize:"true" json:"startTime"`
	EndTime      uint64      `serialize:"true" json:"endTime"`
	VotesFor     uint64      `serialize:"true" json:"votesFor"`
	VotesAgainst uint64      `serialize:"true" json:"votesAgainst"`
	Status       Status      `serialize:"true" json:"status"`
}

func (p *Proposal) Finalized() bool {
	return p.Status != Voting
}

func (p *Proposal) Approved() bool {
	return p.Status == Approved || p.Status == Consumed
}

func (p *Proposal) Used() bool {
	return p.Status == Consumed
}

// Open reports whether votes are accepted at now.
func (p *Proposal) Open(now uint64) bool {
	return p.Status == Voting && p.StartTime <= now && now <= p.EndTime
}

// Consume spends the approval on action. An approval can be spent once.
func (p *Proposal) Consume(action Action) error {
	switch p.Status {
	case Voting:
		return fmt.Errorf("%w: proposal %d", errs.ErrProposalNotFinalized, p.ID)
	case Rejected:
		return fmt.Errorf("%w: proposal %d", errs.ErrProposalNotApproved, p.ID)
	case Consumed:
		return fmt.Errorf("%w: proposal %d", errs.ErrProposalAlreadyUsed, p.ID)
	case Approved:
	default:
		return fmt.Errorf("%w: proposal %d has status %s", errs.ErrInvalidTransition, p.ID, p.Status)
	}
	if p.Actions&uint64(action) == 0 {
		return fmt.Errorf("%w: proposal %d does not cover %s", errs.ErrProposalTypeMismatch, p.ID, action)
	}
	p.Status = Consumed
	return nil
}

// Vote is the receipt of a single voter on a proposal.
type Vote struct {
	ProposalID uint64      `serialize:"true" json:"proposalID"`
	Voter      ids.ShortID `serialize:"true" json:"voter"`
	Support    bool        `serialize:"true" json:"support"`
	Weight     uint64      `serialize:"true" json:"weight"`
}
