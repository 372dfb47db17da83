// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	stdjson "encoding/json"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/utils/json"
	"github.com/Soccial/soccial-token-sub000/utils/rpc"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

// Endpoint is the path the service is mounted under.
const Endpoint = "/ext/token"

// Client for interacting with the token API. Options are passed to every
// request.
type Client struct {
	Requester rpc.EndpointRequester
	options   []rpc.Option
}

// NewClient returns a client for the node at uri. A non-empty token
// authenticates every request.
func NewClient(uri string, token string) *Client {
	c := &Client{Requester: rpc.NewEndpointRequester(uri + Endpoint)}
	if token != "" {
		c.options = append(c.options, rpc.WithBearerToken(token))
	}
	return c
}

func (c *Client) send(ctx context.Context, method string, params interface{}, reply interface{}) error {
	return c.Requester.SendRequest(ctx, ServiceName+"."+method, params, reply, c.options...)
}

// Execute runs operation and returns its raw JSON result.
func (c *Client) Execute(ctx context.Context, operation string, arguments ...string) (stdjson.RawMessage, error) {
	res := &struct {
		Result stdjson.RawMessage `json:"result"`
	}{}
	err := c.send(ctx, "execute", &ExecuteArgs{Operation: operation, Args: arguments}, res)
	return res.Result, err
}

func (c *Client) GetBalance(ctx context.Context, addr ids.ShortID) (uint64, error) {
	res := &GetBalanceReply{}
	err := c.send(ctx, "getBalance", &AddressArgs{Address: addr.String()}, res)
	return uint64(res.Balance), err
}

func (c *Client) GetTotalSupply(ctx context.Context) (uint64, error) {
	res := &GetTotalSupplyReply{}
	err := c.send(ctx, "getTotalSupply", struct{}{}, res)
	return uint64(res.Supply), err
}

func (c *Client) GetVaultBalances(ctx context.Context) (map[string]uint64, error) {
	res := &GetVaultBalancesReply{}
	if err := c.send(ctx, "getVaultBalances", struct{}{}, res); err != nil {
		return nil, err
	}
	balances := make(map[string]uint64, len(res.Balances))
	for name, balance := range res.Balances {
		balances[name] = uint64(balance)
	}
	return balances, nil
}

func (c *Client) GetSettings(ctx context.Context) (*access.Settings, error) {
	res := &GetSettingsReply{}
	err := c.send(ctx, "getSettings", struct{}{}, res)
	return res.Settings, err
}

func (c *Client) GetUserAccess(ctx context.Context, addr ids.ShortID) (*GetUserAccessReply, error) {
	res := &GetUserAccessReply{}
	err := c.send(ctx, "getUserAccess", &AddressArgs{Address: addr.String()}, res)
	return res, err
}

func (c *Client) GetFeeConfig(ctx context.Context) (fee.Config, error) {
	res := &GetFeeConfigReply{}
	err := c.send(ctx, "getFeeConfig", struct{}{}, res)
	return res.Config, err
}

func (c *Client) Split(ctx context.Context, amount uint64) (fee.Split, error) {
	res := &SplitReply{}
	err := c.send(ctx, "split", &SplitArgs{Amount: json.Uint64(amount)}, res)
	return res.Split, err
}

func (c *Client) GetStakingPlans(ctx context.Context) ([]*staking.Plan, error) {
	res := &GetStakingPlansReply{}
	err := c.send(ctx, "getStakingPlans", struct{}{}, res)
	return res.Plans, err
}

// GetStake returns a position and the reward claimable on it now.
func (c *Client) GetStake(ctx context.Context, participant ids.ShortID, stakeID uint64) (*staking.Stake, uint64, error) {
	res := &GetStakeReply{}
	err := c.send(ctx, "getStake", &GetStakeArgs{
		Participant: participant.String(),
		StakeID:     json.Uint64(stakeID),
	}, res)
	return res.Stake, uint64(res.Claimable), err
}

func (c *Client) GetStakes(ctx context.Context, participant ids.ShortID) ([]*staking.Stake, error) {
	res := &GetStakesReply{}
	err := c.send(ctx, "getStakes", &AddressArgs{Address: participant.String()}, res)
	return res.Stakes, err
}

// GetVestingSchedule returns a schedule and the amount releasable now.
func (c *Client) GetVestingSchedule(ctx context.Context, id uint64) (*vesting.Schedule, uint64, error) {
	res := &GetVestingScheduleReply{}
	err := c.send(ctx, "getVestingSchedule", &IDArgs{ID: json.Uint64(id)}, res)
	return res.Schedule, uint64(res.Releasable), err
}

func (c *Client) GetGovernanceParams(ctx context.Context) (*governance.Params, error) {
	res := &GetGovernanceParamsReply{}
	err := c.send(ctx, "getGovernanceParams", struct{}{}, res)
	return res.Params, err
}

func (c *Client) GetProposal(ctx context.Context, id uint64) (*governance.Proposal, error) {
	res := &GetProposalReply{}
	err := c.send(ctx, "getProposal", &IDArgs{ID: json.Uint64(id)}, res)
	return res.Proposal, err
}

func (c *Client) GetVote(ctx context.Context, proposalID uint64, voter ids.ShortID) (*governance.Vote, error) {
	res := &GetVoteReply{}
	err := c.send(ctx, "getVote", &GetVoteArgs{
		ProposalID: json.Uint64(proposalID),
		Voter:      voter.String(),
	}, res)
	return res.Vote, err
}
