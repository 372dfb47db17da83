// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package fee splits fee-bearing amounts between the recipient and the
// rewards, airdrop and revenue vaults.
package fee

import (
	"fmt"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

// BpsBase is 100% in basis points.
const BpsBase = 10_000

var (
	DefaultLimits = Limits{
		MinFeeBps:        0,
		MaxMarketFeeBps:  1_000,
		MaxRewardsFeeBps: 5_000,
		MaxAirdropFeeBps: 5_000,
	}

	DefaultConfig = Config{
		MarketFeeBps:  300,
		RewardsFeeBps: 500,
		AirdropFeeBps: 0,
	}
)

// Config is the token-level fee configuration. MarketFeeBps is the gross
// rate charged by fee-bearing operations; the two shares divide that fee.
type Config struct {
	MarketFeeBps  uint16 `serialize:"true" json:"marketFeeBps"`
	RewardsFeeBps uint16 `serialize:"true" json:"rewardsFeeBps"`
	AirdropFeeBps uint16 `serialize:"true" json:"airdropFeeBps"`
}

// Limits bound every rate in Config.
type Limits struct {
	MinFeeBps        uint16 `json:"minFeeBps"`
	MaxMarketFeeBps  uint16 `json:"maxMarketFeeBps"`
	MaxRewardsFeeBps uint16 `json:"maxRewardsFeeBps"`
	MaxAirdropFeeBps uint16 `json:"maxAirdropFeeBps"`
}

// Verify checks each rate against its category bounds and that the shares
// never exceed the fee they divide.
func (c Config) Verify(limits Limits) error {
	switch {
	case c.MarketFeeBps < limits.MinFeeBps || c.MarketFeeBps > limits.MaxMarketFeeBps:
		return fmt.Errorf("%w: market fee %d outside [%d, %d]",
			errs.ErrInvalidFeeValue, c.MarketFeeBps, limits.MinFeeBps, limits.MaxMarketFeeBps)
	case c.RewardsFeeBps < limits.MinFeeBps || c.RewardsFeeBps > limits.MaxRewardsFeeBps:
		return fmt.Errorf("%w: rewards fee %d outside [%d, %d]",
			errs.ErrInvalidFeeValue, c.RewardsFeeBps, limits.MinFeeBps, limits.MaxRewardsFeeBps)
	case c.AirdropFeeBps < limits.MinFeeBps || c.AirdropFeeBps > limits.MaxAirdropFeeBps:
		return fmt.Errorf("%w: airdrop fee %d outside [%d, %d]",
			errs.ErrInvalidFeeValue, c.AirdropFeeBps, limits.MinFeeBps, limits.MaxAirdropFeeBps)
	}
	return c.verifyShares()
}

func (c Config) verifyShares() error {
	if uint32(c.RewardsFeeBps)+uint32(c.AirdropFeeBps) > BpsBase {
		return fmt.Errorf("%w: rewards %d + airdrop %d exceeds %d",
			errs.ErrInvalidFeeValue, c.RewardsFeeBps, c.AirdropFeeBps, BpsBase)
	}
	return nil
}

// Split is the breakdown of a gross amount.
// Net + ToRewards + ToAirdrop + ToRevenue == Gross.
type Split struct {
	Gross     uint64 `json:"gross"`
	Fee       uint64 `json:"fee"`
	Net       uint64 `json:"net"`
	ToRewards uint64 `json:"toRewards"`
	ToAirdrop uint64 `json:"toAirdrop"`
	ToRevenue uint64 `json:"toRevenue"`
}

// Calculate splits gross at feeBps. Revenue absorbs all rounding.
func Calculate(gross uint64, feeBps uint16, cfg Config) (Split, error) {
	if feeBps > BpsBase {
		return Split{}, fmt.Errorf("%w: fee %d exceeds %d", errs.ErrInvalidFeeValue, feeBps, BpsBase)
	}
	if err := cfg.verifyShares(); err != nil {
		return Split{}, err
	}

	fee, err := safemath.MulDiv(gross, uint64(feeBps), BpsBase)
	if err != nil {
		return Split{}, err
	}
	toRewards, err := safemath.MulDiv(fee, uint64(cfg.RewardsFeeBps), BpsBase)
	if err != nil {
		return Split{}, err
	}
	toAirdrop, err := safemath.MulDiv(fee, uint64(cfg.AirdropFeeBps), BpsBase)
	if err != nil {
		return Split{}, err
	}
	return Split{
		Gross:     gross,
		Fee:       fee,
		Net:       gross - fee,
		ToRewards: toRewards,
		ToAirdrop: toAirdrop,
		ToRevenue: fee - toRewards - toAirdrop,
	}, nil
}
