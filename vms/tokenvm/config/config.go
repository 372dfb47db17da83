// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/fee"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/governance"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/staking"
)

var (
	errInvalidFeeLimits    = errors.New("invalid fee limits")
	errInvalidRewardPeriod = errors.New("reward period must be at least one second")
	errInvalidSize         = errors.New("size must be positive")

	Default = Config{
		FeeLimits:       fee.DefaultLimits,
		Staking:         staking.DefaultConfig,
		Governance:      governance.DefaultConfig,
		MaxMemoLength:   128,
		AccessCacheSize: 1024,
	}
)

// Config provides the execution parameters of the token VM
type Config struct {
	FeeLimits       fee.Limits        `json:"feeLimits"`
	Staking         staking.Config    `json:"staking"`
	Governance      governance.Config `json:"governance"`
	MaxMemoLength   int               `json:"maxMemoLength"`
	AccessCacheSize int               `json:"accessCacheSize"`
}

// GetConfig returns a Config
// input is unmarshalled into a Config previously
// initialized with default values
func GetConfig(b []byte) (*Config, error) {
	c := Default

	// if bytes are empty keep default values
	if len(b) == 0 {
		return &c, nil
	}

	return &c, json.Unmarshal(b, &c)
}

func (c *Config) Verify() error {
	limits := c.FeeLimits
	switch {
	case limits.MinFeeBps > limits.MaxMarketFeeBps,
		limits.MinFeeBps > limits.MaxRewardsFeeBps,
		limits.MinFeeBps > limits.MaxAirdropFeeBps:
		return fmt.Errorf("%w: minimum %d above a maximum", errInvalidFeeLimits, limits.MinFeeBps)
	case limits.MaxMarketFeeBps > fee.BpsBase:
		return fmt.Errorf("%w: market maximum %d above %d", errInvalidFeeLimits, limits.MaxMarketFeeBps, fee.BpsBase)
	case c.Staking.RewardPeriod < time.Second,
		c.Staking.RewardPeriod%time.Second != 0:
		return fmt.Errorf("%w: %s is not a whole number of seconds", errInvalidRewardPeriod, c.Staking.RewardPeriod)
	case c.MaxMemoLength <= 0:
		return fmt.Errorf("%w: maxMemoLength %d", errInvalidSize, c.MaxMemoLength)
	case c.AccessCacheSize <= 0:
		return fmt.Errorf("%w: accessCacheSize %d", errInvalidSize, c.AccessCacheSize)
	case c.Governance.MaxDescriptionLength <= 0:
		return fmt.Errorf("%w: maxDescriptionLength %d", errInvalidSize, c.Governance.MaxDescriptionLength)
	}
	return nil
}
