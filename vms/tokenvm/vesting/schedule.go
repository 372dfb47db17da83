// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vesting releases granted tokens to participants over time.
//
// Nothing is released before StartTime+CliffDuration. At the cliff
// InitialTokens become releasable; the remainder unlocks over
// VestingDuration, either continuously (Cycles == 0) or in Cycles equal
// steps.
package vesting

import (
	"fmt"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"

	safemath "github.com/Soccial/soccial-token-sub000/utils/math"
)

// Terms are the parameters that immutability freezes.
type Terms struct {
	StartTime       uint64 `serialize:"true" json:"startTime"`
	CliffDuration   uint64 `serialize:"true" json:"cliffDuration"`
	Cycles          uint64 `serialize:"true" json:"cycles"`
	VestingDuration uint64 `serialize:"true" json:"vestingDuration"`
	InitialTokens   uint64 `serialize:"true" json:"initialTokens"`
	TotalTokens     uint64 `serialize:"true" json:"totalTokens"`
}

func (t *Terms) Verify() error {
	switch {
	case t.TotalTokens == 0:
		return fmt.Errorf("%w: zero total", errs.ErrInvalidSchedule)
	case t.InitialTokens > t.TotalTokens:
		return fmt.Errorf("%w: initial %d exceeds total %d", errs.ErrInvalidSchedule, t.InitialTokens, t.TotalTokens)
	case t.Cycles > 0 && t.VestingDuration < t.Cycles:
		return fmt.Errorf("%w: %d cycles do not fit in %ds", errs.ErrInvalidSchedule, t.Cycles, t.VestingDuration)
	}
	_, err := safemath.Add(t.StartTime, t.CliffDuration)
	if err != nil {
		return fmt.Errorf("%w: cliff overflows", errs.ErrInvalidSchedule)
	}
	return nil
}

// Vested returns the cumulative amount unlocked at now.
func (t *Terms) Vested(now uint64) (uint64, error) {
	cliff := t.StartTime + t.CliffDuration
	if now < cliff {
		return 0, nil
	}
	elapsed := now - cliff
	if t.VestingDuration == 0 || elapsed >= t.VestingDuration {
		return t.TotalTokens, nil
	}

	linear := t.TotalTokens - t.InitialTokens
	var unlocked uint64
	if t.Cycles == 0 {
		var err error
		unlocked, err = safemath.MulDiv(linear, elapsed, t.VestingDuration)
		if err != nil {
			return 0, err
		}
	} else {
		step := t.VestingDuration / t.Cycles
		var err error
		unlocked, err = safemath.MulDiv(linear, min(elapsed/step, t.Cycles), t.Cycles)
		if err != nil {
			return 0, err
		}
	}
	return t.InitialTokens + unlocked, nil
}

// Schedule is a grant to a single participant.
type Schedule struct {
	ID          uint64      `serialize:"true" json:"id"`
	Participant ids.ShortID `serialize:"true" json:"participant"`
	Terms       `serialize:"true"`

	ReleasedTokens uint64 `serialize:"true" json:"releasedTokens"`
	Immutable      bool   `serialize:"true" json:"immutable"`
	Cancelled      bool   `serialize:"true" json:"cancelled"`
}

// Releasable returns the vested amount not yet released at now.
func (s *Schedule) Releasable(now uint64) (uint64, error) {
	if s.Cancelled {
		return 0, nil
	}
	vested, err := s.Vested(now)
	if err != nil {
		return 0, err
	}
	if vested <= s.ReleasedTokens {
		return 0, nil
	}
	return vested - s.ReleasedTokens, nil
}

// Unreleased is the part of the grant still held in the vesting vault.
func (s *Schedule) Unreleased() uint64 {
	return s.TotalTokens - s.ReleasedTokens
}
