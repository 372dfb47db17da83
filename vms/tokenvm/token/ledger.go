// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package token is the fungible-token transfer primitive that every engine
// moves value through.
package token

import (
	"errors"
	"fmt"

	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/ids"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrZeroAmount        = errors.New("zero amount")

	balancePrefix   = []byte("balance")
	singletonPrefix = []byte("singleton")

	totalSupplyKey = []byte("totalSupply")
)

// Transferer moves exactly amount from one holder to another or fails
// without effect.
type Transferer interface {
	Balance(holder ids.ShortID) (uint64, error)
	Transfer(from, to ids.ShortID, amount uint64) error
}

// Supplier reports the circulating supply.
type Supplier interface {
	TotalSupply() (uint64, error)
}

var (
	_ Transferer = (*Ledger)(nil)
	_ Supplier   = (*Ledger)(nil)
)

// Ledger keeps balances and total supply in db.
type Ledger struct {
	balances   database.Database
	singletons database.Database
}

func NewLedger(db database.Database) *Ledger {
	return &Ledger{
		balances:   prefixdb.New(balancePrefix, db),
		singletons: prefixdb.New(singletonPrefix, db),
	}
}

func (l *Ledger) Balance(holder ids.ShortID) (uint64, error) {
	return getUint64(l.balances, holder[:])
}

func (l *Ledger) TotalSupply() (uint64, error) {
	return getUint64(l.singletons, totalSupplyKey)
}

func (l *Ledger) Transfer(from, to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	fromBalance, err := l.Balance(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: %s holds %d, needs %d", ErrInsufficientFunds, from, fromBalance, amount)
	}
	if from == to {
		return nil
	}
	toBalance, err := l.Balance(to)
	if err != nil {
		return err
	}
	newToBalance, err := safemath.Add(toBalance, amount)
	if err != nil {
		return err
	}
	if err := l.setBalance(from, fromBalance-amount); err != nil {
		return err
	}
	return l.setBalance(to, newToBalance)
}

// Mint creates amount new tokens held by to.
func (l *Ledger) Mint(to ids.ShortID, amount uint64) error {
	if amount == 0 {
		return ErrZeroAmount
	}
	supply, err := l.TotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := safemath.Add(supply, amount)
	if err != nil {
		return err
	}
	balance, err := l.Balance(to)
	if err != nil {
		return err
	}
	if err := l.setBalance(to, balance+amount); err != nil {
		return err
	}
	return database.PutUInt64(l.singletons, totalSupplyKey, newSupply)
}

func (l *Ledger) setBalance(holder ids.ShortID, balance uint64) error {
	if balance == 0 {
		return l.balances.Delete(holder[:])
	}
	return database.PutUInt64(l.balances, holder[:], balance)
}

func getUint64(db database.KeyValueReader, key []byte) (uint64, error) {
	v, err := database.GetUInt64(db, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	return v, err
}
