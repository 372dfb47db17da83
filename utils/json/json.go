// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package json provides integer types that are encoded as decimal strings so
// that clients limited to float64 numbers do not lose precision.
package json

import (
	"errors"
	"strconv"
)

const Null = "null"

var errEmptyNumber = errors.New("empty number")

// Uint64 is a uint64 that is marshaled as a quoted decimal string and
// accepts either a quoted or a bare number when unmarshaled.
type Uint64 uint64

func (u Uint64) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, strconv.FormatUint(uint64(u), 10)), nil
}

func (u *Uint64) UnmarshalJSON(b []byte) error {
	str, err := unquote(b)
	if err != nil || str == Null {
		return err
	}
	val, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return err
	}
	*u = Uint64(val)
	return nil
}

func (u Uint64) String() string {
	return strconv.FormatUint(uint64(u), 10)
}

func unquote(b []byte) (string, error) {
	str := string(b)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	if str == "" {
		return "", errEmptyNumber
	}
	return str, nil
}
