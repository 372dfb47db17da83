// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package errs defines the error taxonomy shared by every tokenvm engine.
//
// Each error carries a stable numeric code and a kind so callers can assert
// on exact failures and API clients can branch without string matching.
// Errors are compared with errors.Is and may be wrapped freely.
package errs

import "errors"

// Kind groups errors by the reason an operation was rejected.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAuthorization
	KindValidation
	KindStateConflict
	KindResource
	KindTiming
	KindPaused
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindAuthorization: "authorization",
	KindValidation:    "validation",
	KindStateConflict: "state_conflict",
	KindResource:      "resource",
	KindTiming:        "timing",
	KindPaused:        "paused",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Error is a taxonomy error. Instances are singletons, so errors.Is matches
// by identity.
type Error struct {
	Code uint16
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(code uint16, kind Kind, msg string) *Error {
	return &Error{Code: code, Kind: kind, msg: msg}
}

// Authorization
var (
	ErrUnauthorized   = newError(1000, KindAuthorization, "unauthorized")
	ErrAccessNotFound = newError(1001, KindAuthorization, "access record not found")
)

// Validation
var (
	ErrInvalidAmount         = newError(2000, KindValidation, "invalid amount")
	ErrInvalidFeeValue       = newError(2001, KindValidation, "invalid fee value")
	ErrInvalidStakingPlan    = newError(2002, KindValidation, "invalid staking plan")
	ErrInvalidPhase          = newError(2003, KindValidation, "invalid phase")
	ErrUnknownFlagName       = newError(2004, KindValidation, "unknown flag name")
	ErrUnknownPermissionName = newError(2005, KindValidation, "unknown permission name")
	ErrUnknownVault          = newError(2006, KindValidation, "unknown vault")
	ErrInvalidArgument       = newError(2007, KindValidation, "invalid argument")
	ErrMemoTooLong           = newError(2008, KindValidation, "memo too long")
	ErrInvalidSchedule       = newError(2009, KindValidation, "invalid vesting schedule")
	ErrInvalidProposal       = newError(2010, KindValidation, "invalid proposal")
	ErrInvalidVoteWeight     = newError(2011, KindValidation, "invalid vote weight")
	ErrSameVault             = newError(2012, KindValidation, "source and destination vault are the same")
	ErrAmountOutOfRange      = newError(2013, KindValidation, "amount out of range")
)

// State conflict
var (
	ErrFlagAlreadySet       = newError(3000, KindStateConflict, "flag already set")
	ErrFlagNotSet           = newError(3001, KindStateConflict, "flag not set")
	ErrPermissionNotSet     = newError(3002, KindStateConflict, "permission not set")
	ErrPlanAlreadyExists    = newError(3003, KindStateConflict, "staking plan already exists")
	ErrStakeNotFound        = newError(3004, KindStateConflict, "stake not found")
	ErrScheduleNotFound     = newError(3005, KindStateConflict, "vesting schedule not found")
	ErrScheduleImmutable    = newError(3006, KindStateConflict, "vesting schedule is immutable")
	ErrScheduleCancelled    = newError(3007, KindStateConflict, "vesting schedule is cancelled")
	ErrProposalNotFound     = newError(3008, KindStateConflict, "proposal not found")
	ErrProposalFinalized    = newError(3009, KindStateConflict, "proposal already finalized")
	ErrProposalAlreadyUsed  = newError(3010, KindStateConflict, "proposal approval already used")
	ErrAlreadyVoted         = newError(3011, KindStateConflict, "already voted")
	ErrAlreadyInitialized   = newError(3012, KindStateConflict, "already initialized")
	ErrPlanNotFound         = newError(3013, KindStateConflict, "staking plan not found")
	ErrNotInitialized       = newError(3014, KindStateConflict, "not initialized")
	ErrInvalidTransition    = newError(3015, KindStateConflict, "invalid state transition")
	ErrVoteNotFound         = newError(3016, KindStateConflict, "vote not found")
)

// Resource
var (
	ErrInsufficientUserBalance  = newError(4000, KindResource, "insufficient user balance")
	ErrInsufficientVaultBalance = newError(4001, KindResource, "insufficient vault balance")
	ErrTransferFailed           = newError(4002, KindResource, "token transfer failed")
)

// Timing
var (
	ErrStakingPeriodNotOver = newError(5000, KindTiming, "staking period not over")
	ErrNoTokensToRelease    = newError(5001, KindTiming, "no tokens to release")
	ErrNoRewardsToClaim     = newError(5002, KindTiming, "no rewards to claim")
	ErrVotingClosed         = newError(5003, KindTiming, "voting closed")
	ErrVotingNotEnded       = newError(5004, KindTiming, "voting not ended")
	ErrProposalNotFinalized = newError(5005, KindTiming, "proposal not finalized")
	ErrProposalNotApproved  = newError(5006, KindTiming, "proposal not approved")
	ErrProposalTypeMismatch = newError(5007, KindTiming, "proposal does not authorize this action")
)

var ErrContractPaused = newError(6000, KindPaused, "contract paused")

// CodeOf returns the taxonomy code of err, or 0 if err is not a taxonomy
// error.
func CodeOf(err error) uint16 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// KindOf returns the taxonomy kind of err.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
