// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the token VM over JSON-RPC 2.0.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/rpc/v2"
	"github.com/gorilla/rpc/v2/json2"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/utils/json"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/args"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vesting"
)

// ServiceName prefixes every method, as in "token.getBalance".
const ServiceName = "token"

// Backend is the state the service reads and the operations it executes.
type Backend interface {
	Execute(ctx context.Context, caller ids.ShortID, operation string, arguments []string) (any, error)

	GetSettings() (*access.Settings, error)
	GetUserAccess(addr ids.ShortID) (*access.UserAccess, error)
	Balance(holder ids.ShortID) (uint64, error)
	TotalSupply() (uint64, error)
	VaultBalances() (map[vault.Name]uint64, error)
	GetFeeConfig() (fee.Config, error)
	Split(gross uint64) (fee.Split, error)
	GetStakingPlans() ([]*staking.Plan, error)
	GetStake(participant ids.ShortID, stakeID uint64) (*staking.Stake, error)
	GetStakes(participant ids.ShortID) ([]*staking.Stake, error)
	ClaimableReward(participant ids.ShortID, stakeID uint64) (uint64, error)
	GetVestingSchedule(id uint64) (*vesting.Schedule, error)
	Releasable(id uint64) (uint64, error)
	GetGovernanceParams() (*governance.Params, error)
	GetProposal(id uint64) (*governance.Proposal, error)
	GetVote(proposalID uint64, voter ids.ShortID) (*governance.Vote, error)
}

// NewHandler serves backend under ServiceName. When auth is nil every
// request is unauthenticated and Execute is rejected.
func NewHandler(backend Backend, auth *Authenticator, logger log.Logger) (http.Handler, error) {
	server := rpc.NewServer()
	codec := json.NewCodec()
	server.RegisterCodec(codec, "application/json")
	server.RegisterCodec(codec, "application/json;charset=UTF-8")
	err := server.RegisterService(&Service{backend: backend, log: logger}, ServiceName)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		return server, nil
	}
	return auth.Wrap(server), nil
}

type Service struct {
	backend Backend
	log     log.Logger
}

type ExecuteArgs struct {
	Operation string   `json:"operation"`
	Args      []string `json:"args"`
}

type ExecuteReply struct {
	Result any `json:"result"`
}

// Execute runs an operation as the authenticated caller.
func (s *Service) Execute(r *http.Request, a *ExecuteArgs, reply *ExecuteReply) error {
	caller, err := Caller(r)
	if err != nil {
		return RPCError(fmt.Errorf("%w: %w", errs.ErrUnauthorized, err))
	}
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", "execute"),
		log.String("operation", a.Operation),
		log.Stringer("caller", caller),
	)

	reply.Result, err = s.backend.Execute(r.Context(), caller, a.Operation, a.Args)
	return RPCError(err)
}

type AddressArgs struct {
	Address string `json:"address"`
}

type GetBalanceReply struct {
	Balance json.Uint64 `json:"balance"`
}

func (s *Service) GetBalance(_ *http.Request, a *AddressArgs, reply *GetBalanceReply) error {
	s.logCall("getBalance")

	addr, err := args.Address(a.Address)
	if err != nil {
		return RPCError(err)
	}
	balance, err := s.backend.Balance(addr)
	reply.Balance = json.Uint64(balance)
	return RPCError(err)
}

type GetTotalSupplyReply struct {
	Supply json.Uint64 `json:"supply"`
}

func (s *Service) GetTotalSupply(_ *http.Request, _ *struct{}, reply *GetTotalSupplyReply) error {
	s.logCall("getTotalSupply")

	supply, err := s.backend.TotalSupply()
	reply.Supply = json.Uint64(supply)
	return RPCError(err)
}

type GetVaultBalancesReply struct {
	Balances map[string]json.Uint64 `json:"balances"`
}

func (s *Service) GetVaultBalances(_ *http.Request, _ *struct{}, reply *GetVaultBalancesReply) error {
	s.logCall("getVaultBalances")

	balances, err := s.backend.VaultBalances()
	if err != nil {
		return RPCError(err)
	}
	reply.Balances = make(map[string]json.Uint64, len(balances))
	for name, balance := range balances {
		reply.Balances[name.String()] = json.Uint64(balance)
	}
	return nil
}

type GetSettingsReply struct {
	Settings *access.Settings `json:"settings"`
}

func (s *Service) GetSettings(_ *http.Request, _ *struct{}, reply *GetSettingsReply) error {
	s.logCall("getSettings")

	var err error
	reply.Settings, err = s.backend.GetSettings()
	return RPCError(err)
}

type GetUserAccessReply struct {
	Address     ids.ShortID `json:"address"`
	IsAdmin     bool        `json:"isAdmin"`
	Permissions []string    `json:"permissions"`
	Flags       []string    `json:"flags"`
}

func (s *Service) GetUserAccess(_ *http.Request, a *AddressArgs, reply *GetUserAccessReply) error {
	s.logCall("getUserAccess")

	addr, err := args.Address(a.Address)
	if err != nil {
		return RPCError(err)
	}
	ua, err := s.backend.GetUserAccess(addr)
	if err != nil {
		return RPCError(err)
	}
	reply.Address = ua.Address
	reply.IsAdmin = ua.IsAdmin
	reply.Permissions = access.Permissions(ua.Permissions)
	reply.Flags = access.Flags(ua.Flags)
	return nil
}

type GetFeeConfigReply struct {
	Config fee.Config `json:"config"`
}

func (s *Service) GetFeeConfig(_ *http.Request, _ *struct{}, reply *GetFeeConfigReply) error {
	s.logCall("getFeeConfig")

	var err error
	reply.Config, err = s.backend.GetFeeConfig()
	return RPCError(err)
}

type SplitArgs struct {
	Amount json.Uint64 `json:"amount"`
}

type SplitReply struct {
	Split fee.Split `json:"split"`
}

// Split previews the fee charged on amount.
func (s *Service) Split(_ *http.Request, a *SplitArgs, reply *SplitReply) error {
	s.logCall("split")

	var err error
	reply.Split, err = s.backend.Split(uint64(a.Amount))
	return RPCError(err)
}

type GetStakingPlansReply struct {
	Plans []*staking.Plan `json:"plans"`
}

func (s *Service) GetStakingPlans(_ *http.Request, _ *struct{}, reply *GetStakingPlansReply) error {
	s.logCall("getStakingPlans")

	var err error
	reply.Plans, err = s.backend.GetStakingPlans()
	return RPCError(err)
}

type GetStakeArgs struct {
	Participant string      `json:"participant"`
	StakeID     json.Uint64 `json:"stakeID"`
}

type GetStakeReply struct {
	Stake     *staking.Stake `json:"stake"`
	Claimable json.Uint64    `json:"claimable"`
}

func (s *Service) GetStake(_ *http.Request, a *GetStakeArgs, reply *GetStakeReply) error {
	s.logCall("getStake")

	participant, err := args.Address(a.Participant)
	if err != nil {
		return RPCError(err)
	}
	reply.Stake, err = s.backend.GetStake(participant, uint64(a.StakeID))
	if err != nil {
		return RPCError(err)
	}
	claimable, err := s.backend.ClaimableReward(participant, uint64(a.StakeID))
	reply.Claimable = json.Uint64(claimable)
	return RPCError(err)
}

type GetStakesReply struct {
	Stakes []*staking.Stake `json:"stakes"`
}

func (s *Service) GetStakes(_ *http.Request, a *AddressArgs, reply *GetStakesReply) error {
	s.logCall("getStakes")

	participant, err := args.Address(a.Address)
	if err != nil {
		return RPCError(err)
	}
	reply.Stakes, err = s.backend.GetStakes(participant)
	return RPCError(err)
}

type IDArgs struct {
	ID json.Uint64 `json:"id"`
}

type GetVestingScheduleReply struct {
	Schedule   *vesting.Schedule `json:"schedule"`
	Releasable json.Uint64       `json:"releasable"`
}

func (s *Service) GetVestingSchedule(_ *http.Request, a *IDArgs, reply *GetVestingScheduleReply) error {
	s.logCall("getVestingSchedule")

	var err error
	reply.Schedule, err = s.backend.GetVestingSchedule(uint64(a.ID))
	if err != nil {
		return RPCError(err)
	}
	releasable, err := s.backend.Releasable(uint64(a.ID))
	reply.Releasable = json.Uint64(releasable)
	return RPCError(err)
}

type GetGovernanceParamsReply struct {
	Params *governance.Params `json:"params"`
}

func (s *Service) GetGovernanceParams(_ *http.Request, _ *struct{}, reply *GetGovernanceParamsReply) error {
	s.logCall("getGovernanceParams")

	var err error
	reply.Params, err = s.backend.GetGovernanceParams()
	return RPCError(err)
}

type GetProposalReply struct {
	Proposal *governance.Proposal `json:"proposal"`
}

func (s *Service) GetProposal(_ *http.Request, a *IDArgs, reply *GetProposalReply) error {
	s.logCall("getProposal")

	var err error
	reply.Proposal, err = s.backend.GetProposal(uint64(a.ID))
	return RPCError(err)
}

type GetVoteArgs struct {
	ProposalID json.Uint64 `json:"proposalID"`
	Voter      string      `json:"voter"`
}

type GetVoteReply struct {
	Vote *governance.Vote `json:"vote"`
}

func (s *Service) GetVote(_ *http.Request, a *GetVoteArgs, reply *GetVoteReply) error {
	s.logCall("getVote")

	voter, err := args.Address(a.Voter)
	if err != nil {
		return RPCError(err)
	}
	reply.Vote, err = s.backend.GetVote(uint64(a.ProposalID), voter)
	return RPCError(err)
}

func (s *Service) logCall(method string) {
	s.log.Debug("API called",
		log.String("service", ServiceName),
		log.String("method", method),
	)
}

// RPCError carries the taxonomy code and kind of err to the client. Errors
// outside the taxonomy are returned unchanged.
func RPCError(err error) error {
	if err == nil {
		return nil
	}
	code := errs.CodeOf(err)
	if code == 0 {
		return err
	}
	return &json2.Error{
		Code:    json2.ErrorCode(code),
		Message: err.Error(),
		Data:    errs.KindOf(err).String(),
	}
}
