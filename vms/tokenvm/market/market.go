// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package market implements the fee-bearing operations that move tokens to
// and between users.
package market

import (
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/vault"
)

type Engine struct {
	auth    *access.Authorizer
	vaults  *vault.Ledger
	staking *staking.Engine
	log     log.Logger
}

func NewEngine(
	auth *access.Authorizer,
	vaults *vault.Ledger,
	staking *staking.Engine,
	logger log.Logger,
) *Engine {
	return &Engine{
		auth:    auth,
		vaults:  vaults,
		staking: staking,
		log:     logger,
	}
}

// Buy sells amount from the liquidity vault to buyer. The buyer receives the
// amount net of the market fee.
func (e *Engine) Buy(caller, buyer ids.ShortID, amount uint64) (fee.Split, error) {
	if err := e.authorize(caller); err != nil {
		return fee.Split{}, err
	}
	split, err := e.buy(buyer, amount)
	if err != nil {
		return fee.Split{}, err
	}

	e.log.Info("tokens bought",
		log.Stringer("caller", caller),
		log.Stringer("buyer", buyer),
		log.Uint64("net", split.Net),
		log.Uint64("fee", split.Fee),
	)
	return split, nil
}

// BuyAndStake buys amount for buyer and stakes the net proceeds under plan.
func (e *Engine) BuyAndStake(caller, buyer ids.ShortID, planID uint8, amount uint64) (fee.Split, *staking.Stake, error) {
	if err := e.authorize(caller); err != nil {
		return fee.Split{}, nil, err
	}
	split, err := e.buy(buyer, amount)
	if err != nil {
		return fee.Split{}, nil, err
	}
	stake, err := e.staking.StakeFor(buyer, planID, split.Net)
	if err != nil {
		return fee.Split{}, nil, err
	}

	e.log.Info("tokens bought and staked",
		log.Stringer("caller", caller),
		log.Stringer("buyer", buyer),
		log.Uint64("stakeID", stake.ID),
		log.Uint64("staked", split.Net),
		log.Uint64("fee", split.Fee),
	)
	return split, stake, nil
}

// Transfer sends amount of the caller's tokens to another user. The
// recipient receives the amount net of the market fee.
func (e *Engine) Transfer(caller, to ids.ShortID, amount uint64) (fee.Split, error) {
	if err := e.verifyRecipient(to); err != nil {
		return fee.Split{}, err
	}
	if to == caller {
		return fee.Split{}, fmt.Errorf("%w: transfer to self", errs.ErrInvalidArgument)
	}
	if amount == 0 {
		return fee.Split{}, errs.ErrInvalidAmount
	}
	split, err := e.vaults.ChargeFee(amount)
	if err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.RequireUserBalance(caller, amount); err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.Send(caller, to, split.Net); err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.Distribute(caller, split); err != nil {
		return fee.Split{}, err
	}

	e.log.Info("tokens transferred",
		log.Stringer("from", caller),
		log.Stringer("to", to),
		log.Uint64("net", split.Net),
		log.Uint64("fee", split.Fee),
	)
	return split, nil
}

func (e *Engine) buy(buyer ids.ShortID, amount uint64) (fee.Split, error) {
	if err := e.verifyRecipient(buyer); err != nil {
		return fee.Split{}, err
	}
	if amount == 0 {
		return fee.Split{}, errs.ErrInvalidAmount
	}
	split, err := e.vaults.ChargeFee(amount)
	if err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.RequireBalance(vault.Liquidity, amount); err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.Pay(vault.Liquidity, buyer, split.Net); err != nil {
		return fee.Split{}, err
	}
	if err := e.vaults.Distribute(vault.Liquidity.Address(), split); err != nil {
		return fee.Split{}, err
	}
	return split, nil
}

// authorize admits the API authority and holders of manage_market.
func (e *Engine) authorize(caller ids.ShortID) error {
	settings, err := e.auth.Settings()
	if err != nil {
		return err
	}
	if settings.APIAuthority != ids.ShortEmpty && caller == settings.APIAuthority {
		return nil
	}
	return e.auth.Authorize(caller, access.ManageMarket, true)
}

func (*Engine) verifyRecipient(addr ids.ShortID) error {
	switch {
	case addr == ids.ShortEmpty:
		return fmt.Errorf("%w: empty recipient", errs.ErrInvalidArgument)
	case vault.IsVault(addr):
		return fmt.Errorf("%w: recipient %s is a vault", errs.ErrInvalidArgument, addr)
	}
	return nil
}
