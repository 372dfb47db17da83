// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package staking manages staking plans and the positions locked under them.
//
// A position accrues reward linearly from its start time up to its lockup:
//
//	accrued(t) = staked * aprBps * min(t - start, lockup) / (10_000 * rewardPeriod)
//
// Claims pay the accrued reward not yet paid in the current cycle and leave
// the start time untouched. Reinforcing a position restarts the cycle and
// forfeits any unclaimed reward, releasing its reservation.
package staking

import (
	"fmt"
	"time"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

const bpsBase = 10_000

var DefaultConfig = Config{
	RewardPeriod:     365 * 24 * time.Hour,
	MinClaimInterval: 24 * time.Hour,
	MaxAprBps:        10_000,
}

type Config struct {
	// RewardPeriod is the period over which AprBps is earned.
	RewardPeriod time.Duration `json:"rewardPeriod"`
	// MinClaimInterval is the time a position must have been running before
	// rewards can be claimed.
	MinClaimInterval time.Duration `json:"minClaimInterval"`
	MaxAprBps        uint16        `json:"maxAprBps"`
}

// Plan is a rate and lockup that new positions can be opened under.
type Plan struct {
	ID             uint8  `serialize:"true" json:"id"`
	LockupDuration uint64 `serialize:"true" json:"lockupDuration"`
	AprBps         uint16 `serialize:"true" json:"aprBps"`
	Active         bool   `serialize:"true" json:"active"`
}

// Stake is a single locked position. LockupDuration and AprBps are copied
// from the plan when the cycle starts so later plan edits do not affect it.
type Stake struct {
	Participant    ids.ShortID `serialize:"true" json:"participant"`
	ID             uint64      `serialize:"true" json:"id"`
	PlanID         uint8       `serialize:"true" json:"planID"`
	StakedTokens   uint64      `serialize:"true" json:"stakedTokens"`
	StartTime      uint64      `serialize:"true" json:"startTime"`
	LockupDuration uint64      `serialize:"true" json:"lockupDuration"`
	AprBps         uint16      `serialize:"true" json:"aprBps"`
	RewardsClaimed uint64      `serialize:"true" json:"rewardsClaimed"`
}

// Matured reports whether the lockup has elapsed at now.
func (s *Stake) Matured(now uint64) bool {
	return now >= s.StartTime && now-s.StartTime >= s.LockupDuration
}

// Accrued returns the total reward earned in the current cycle at now.
func (s *Stake) Accrued(now uint64, rewardPeriod time.Duration) (uint64, error) {
	var elapsed uint64
	if now > s.StartTime {
		elapsed = min(now-s.StartTime, s.LockupDuration)
	}
	return reward(s.StakedTokens, s.AprBps, elapsed, rewardPeriod)
}

// Claimable returns the accrued reward not yet paid at now.
func (s *Stake) Claimable(now uint64, rewardPeriod time.Duration) (uint64, error) {
	accrued, err := s.Accrued(now, rewardPeriod)
	if err != nil {
		return 0, err
	}
	// accrual never decreases within a cycle
	claimable, err := safemath.Sub(accrued, s.RewardsClaimed)
	if err != nil {
		return 0, fmt.Errorf("%w: claimed %d exceeds accrued %d", errs.ErrAmountOutOfRange, s.RewardsClaimed, accrued)
	}
	return claimable, nil
}

// Unreserved returns the part of the cycle's full-lockup reservation that
// has not been paid out.
func (s *Stake) Unreserved(rewardPeriod time.Duration) (uint64, error) {
	reserved, err := reward(s.StakedTokens, s.AprBps, s.LockupDuration, rewardPeriod)
	if err != nil {
		return 0, err
	}
	unpaid, err := safemath.Sub(reserved, s.RewardsClaimed)
	if err != nil {
		return 0, fmt.Errorf("%w: claimed %d exceeds reserved %d", errs.ErrAmountOutOfRange, s.RewardsClaimed, reserved)
	}
	return unpaid, nil
}

// MaxReward is the reward a position of amount earns over a full lockup.
func (p *Plan) MaxReward(amount uint64, rewardPeriod time.Duration) (uint64, error) {
	return reward(amount, p.AprBps, p.LockupDuration, rewardPeriod)
}

func reward(amount uint64, aprBps uint16, elapsed uint64, rewardPeriod time.Duration) (uint64, error) {
	period := uint64(rewardPeriod / time.Second)
	if period == 0 {
		return 0, fmt.Errorf("%w: reward period %s is under a second", errs.ErrInvalidStakingPlan, rewardPeriod)
	}
	r, err := safemath.Fraction(
		[]uint64{amount, uint64(aprBps), elapsed},
		bpsBase,
		period,
	)
	if err != nil {
		return 0, fmt.Errorf("%w: reward on %d: %w", errs.ErrAmountOutOfRange, amount, err)
	}
	return r, nil
}
