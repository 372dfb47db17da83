// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault manages the fixed catalogue of reserve pools. A vault is a
// token holder; its balance is whatever the token ledger reports for its
// address.
package vault

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/access"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/token"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

// FeeSource supplies the fee configuration applied to fee-bearing moves.
type FeeSource interface {
	GetFeeConfig() (fee.Config, error)
}

type Ledger struct {
	auth          *access.Authorizer
	tokens        token.Transferer
	fees          FeeSource
	maxMemoLength int
	log           log.Logger
}

func NewLedger(
	auth *access.Authorizer,
	tokens token.Transferer,
	fees FeeSource,
	maxMemoLength int,
	logger log.Logger,
) *Ledger {
	return &Ledger{
		auth:          auth,
		tokens:        tokens,
		fees:          fees,
		maxMemoLength: maxMemoLength,
		log:           logger,
	}
}

// Deposit moves amount of the caller's own tokens into vault. The market fee
// is taken from the gross amount and distributed; the vault receives the net.
func (l *Ledger) Deposit(caller ids.ShortID, vault Name, amount uint64, memo string) (fee.Split, error) {
	if err := l.validate(vault, amount, memo); err != nil {
		return fee.Split{}, err
	}
	split, err := l.ChargeFee(amount)
	if err != nil {
		return fee.Split{}, err
	}
	if err := l.RequireUserBalance(caller, amount); err != nil {
		return fee.Split{}, err
	}
	if err := l.transfer(caller, vault.Address(), split.Net); err != nil {
		return fee.Split{}, err
	}
	if err := l.Distribute(caller, split); err != nil {
		return fee.Split{}, err
	}

	l.log.Info("vault deposit",
		log.Stringer("caller", caller),
		log.Stringer("vault", vault),
		log.Uint64("net", split.Net),
		log.Uint64("fee", split.Fee),
		log.String("memo", memo),
	)
	return split, nil
}

// Withdraw pays amount from vault to the caller.
func (l *Ledger) Withdraw(caller ids.ShortID, vault Name, amount uint64, memo string) error {
	if err := l.auth.Authorize(caller, access.ManageVaults, true); err != nil {
		return err
	}
	if err := l.validate(vault, amount, memo); err != nil {
		return err
	}
	if err := l.Pay(vault, caller, amount); err != nil {
		return err
	}

	l.log.Info("vault withdrawal",
		log.Stringer("caller", caller),
		log.Stringer("vault", vault),
		log.Uint64("amount", amount),
		log.String("memo", memo),
	)
	return nil
}

// Transfer moves amount between two distinct vaults.
func (l *Ledger) Transfer(caller ids.ShortID, src, dst Name, amount uint64, memo string) error {
	if err := l.auth.Authorize(caller, access.ManageVaults, true); err != nil {
		return err
	}
	if err := l.validate(src, amount, memo); err != nil {
		return err
	}
	if !dst.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrUnknownVault, dst)
	}
	if src == dst {
		return fmt.Errorf("%w: %s", errs.ErrSameVault, src)
	}
	if err := l.Move(src, dst, amount); err != nil {
		return err
	}

	l.log.Info("vault transfer",
		log.Stringer("caller", caller),
		log.Stringer("src", src),
		log.Stringer("dst", dst),
		log.Uint64("amount", amount),
		log.String("memo", memo),
	)
	return nil
}

// MoveExternalToVault moves tokens the caller holds outside the vault
// system into vault without charging a fee.
func (l *Ledger) MoveExternalToVault(caller ids.ShortID, vault Name, amount uint64) error {
	if err := l.auth.Authorize(caller, access.ManageVaults, true); err != nil {
		return err
	}
	if err := l.validate(vault, amount, ""); err != nil {
		return err
	}
	if err := l.Collect(caller, vault, amount); err != nil {
		return err
	}

	l.log.Info("external tokens moved to vault",
		log.Stringer("caller", caller),
		log.Stringer("vault", vault),
		log.Uint64("amount", amount),
	)
	return nil
}

// Balance returns the balance of vault.
func (l *Ledger) Balance(vault Name) (uint64, error) {
	if !vault.Valid() {
		return 0, fmt.Errorf("%w: %s", errs.ErrUnknownVault, vault)
	}
	return l.tokens.Balance(vault.Address())
}

// Balances returns the balance of every vault.
func (l *Ledger) Balances() (map[Name]uint64, error) {
	balances := make(map[Name]uint64, numNames)
	for _, vault := range All() {
		balance, err := l.Balance(vault)
		if err != nil {
			return nil, err
		}
		balances[vault] = balance
	}
	return balances, nil
}

// RequireBalance fails with errs.ErrInsufficientVaultBalance unless vault
// holds at least amount.
func (l *Ledger) RequireBalance(vault Name, amount uint64) error {
	balance, err := l.Balance(vault)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", errs.ErrInsufficientVaultBalance, vault, balance, amount)
	}
	return nil
}

// RequireUserBalance fails with errs.ErrInsufficientUserBalance unless
// holder has at least amount.
func (l *Ledger) RequireUserBalance(holder ids.ShortID, amount uint64) error {
	balance, err := l.tokens.Balance(holder)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", errs.ErrInsufficientUserBalance, holder, balance, amount)
	}
	return nil
}

// Pay moves amount from vault to holder.
func (l *Ledger) Pay(vault Name, holder ids.ShortID, amount uint64) error {
	if err := l.RequireBalance(vault, amount); err != nil {
		return err
	}
	return l.transfer(vault.Address(), holder, amount)
}

// Collect moves amount from holder into vault.
func (l *Ledger) Collect(holder ids.ShortID, vault Name, amount uint64) error {
	if !vault.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrUnknownVault, vault)
	}
	if err := l.RequireUserBalance(holder, amount); err != nil {
		return err
	}
	return l.transfer(holder, vault.Address(), amount)
}

// Move moves amount from src to dst.
func (l *Ledger) Move(src, dst Name, amount uint64) error {
	if !dst.Valid() {
		return fmt.Errorf("%w: %s", errs.ErrUnknownVault, dst)
	}
	if err := l.RequireBalance(src, amount); err != nil {
		return err
	}
	return l.transfer(src.Address(), dst.Address(), amount)
}

// ChargeFee splits gross at the configured market rate.
func (l *Ledger) ChargeFee(gross uint64) (fee.Split, error) {
	cfg, err := l.fees.GetFeeConfig()
	if err != nil {
		return fee.Split{}, err
	}
	return fee.Calculate(gross, cfg.MarketFeeBps, cfg)
}

// Distribute moves the fee portions of split from source to the rewards,
// airdrop and revenue vaults.
func (l *Ledger) Distribute(source ids.ShortID, split fee.Split) error {
	for _, share := range []struct {
		vault  Name
		amount uint64
	}{
		{Rewards, split.ToRewards},
		{Airdrop, split.ToAirdrop},
		{Revenue, split.ToRevenue},
	} {
		if err := l.transfer(source, share.vault.Address(), share.amount); err != nil {
			return err
		}
	}
	return nil
}

// Send moves amount between two token holders outside the vault system.
func (l *Ledger) Send(from, to ids.ShortID, amount uint64) error {
	return l.transfer(from, to, amount)
}

// transfer skips empty moves; the token ledger rejects them.
func (l *Ledger) transfer(from, to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := l.tokens.Transfer(from, to, amount); err != nil {
		return fmt.Errorf("%w: transfer of %d from %s to %s failed: %w",
			transferCode(from, err), amount, from, to, err)
	}
	return nil
}

// transferCode classifies a failure of the token primitive.
func transferCode(from ids.ShortID, err error) *errs.Error {
	switch {
	case errors.Is(err, token.ErrInsufficientFunds) && IsVault(from):
		return errs.ErrInsufficientVaultBalance
	case errors.Is(err, token.ErrInsufficientFunds):
		return errs.ErrInsufficientUserBalance
	case errors.Is(err, token.ErrZeroAmount):
		return errs.ErrInvalidAmount
	case errors.Is(err, safemath.ErrOverflow):
		return errs.ErrAmountOutOfRange
	default:
		return errs.ErrTransferFailed
	}
}

func (l *Ledger) validate(vault Name, amount uint64, memo string) error {
	switch {
	case !vault.Valid():
		return fmt.Errorf("%w: %s", errs.ErrUnknownVault, vault)
	case amount == 0:
		return errs.ErrInvalidAmount
	case len(memo) > l.maxMemoLength:
		return fmt.Errorf("%w: %d > %d bytes", errs.ErrMemoTooLong, len(memo), l.maxMemoLength)
	}
	return nil
}
