// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package args

import (
	"testing"

	"github.com/luxfi/ids"
	"github.com/stretchr/testify/require"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

func TestUint(t *testing.T) {
	tests := []struct {
		in       string
		bits     int
		expected uint64
		err      error
	}{
		{in: "0", bits: 64, expected: 0},
		{in: "18446744073709551615", bits: 64, expected: 18446744073709551615},
		{in: "18446744073709551616", bits: 64, err: errs.ErrInvalidArgument},
		{in: "65535", bits: 16, expected: 65535},
		{in: "65536", bits: 16, err: errs.ErrInvalidArgument},
		{in: "255", bits: 8, expected: 255},
		{in: "256", bits: 8, err: errs.ErrInvalidArgument},
		{in: "", bits: 64, err: errs.ErrInvalidArgument},
		{in: "007", bits: 64, err: errs.ErrInvalidArgument},
		{in: "+7", bits: 64, err: errs.ErrInvalidArgument},
		{in: "-1", bits: 64, err: errs.ErrInvalidArgument},
		{in: " 7", bits: 64, err: errs.ErrInvalidArgument},
		{in: "1e3", bits: 64, err: errs.ErrInvalidArgument},
		{in: "0x10", bits: 64, err: errs.ErrInvalidArgument},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			v, err := parseUint(test.in, test.bits)
			require.ErrorIs(t, err, test.err)
			require.Equal(t, test.expected, v)
		})
	}
}

func TestBool(t *testing.T) {
	require := require.New(t)

	v, err := Bool("true")
	require.NoError(err)
	require.True(v)

	_, err = Bool("TRUE")
	require.ErrorIs(err, errs.ErrInvalidArgument)
	_, err = Bool("1")
	require.ErrorIs(err, errs.ErrInvalidArgument)
}

func TestAddress(t *testing.T) {
	require := require.New(t)

	addr := ids.GenerateTestShortID()
	parsed, err := Address(addr.String())
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = Address("not-an-address")
	require.ErrorIs(err, errs.ErrInvalidArgument)
	_, err = Address(ids.ShortEmpty.String())
	require.ErrorIs(err, errs.ErrInvalidArgument)
}

func TestKeyValues(t *testing.T) {
	require := require.New(t)

	kvs, err := KeyValues([]string{"min_tokens=100", "voting_period=a=b"})
	require.NoError(err)
	require.Equal([]KeyValue{
		{Key: "min_tokens", Value: "100"},
		{Key: "voting_period", Value: "a=b"},
	}, kvs)

	_, err = KeyValues(nil)
	require.ErrorIs(err, errs.ErrInvalidArgument)
	_, err = KeyValues([]string{"novalue"})
	require.ErrorIs(err, errs.ErrInvalidArgument)
	_, err = KeyValues([]string{"=5"})
	require.ErrorIs(err, errs.ErrInvalidArgument)
	_, err = KeyValues([]string{"a=1", "a=2"})
	require.ErrorIs(err, errs.ErrInvalidArgument)
}

func TestReader(t *testing.T) {
	require := require.New(t)

	addr := ids.GenerateTestShortID()
	r := NewReader([]string{addr.String(), "7", "300", "true", "liquidity", "x=1", "y=2"})
	require.Equal(addr, r.Address("participant"))
	require.Equal(uint8(7), r.Uint8("plan"))
	require.Equal(uint16(300), r.Uint16("bps"))
	require.True(r.Bool("support"))
	require.Equal("liquidity", r.String("vault"))
	require.Equal([]string{"x=1", "y=2"}, r.Rest())
	require.NoError(r.Done())
}

func TestReaderArity(t *testing.T) {
	require := require.New(t)

	r := NewReader([]string{"1"})
	r.Uint64("amount")
	r.String("memo")
	require.ErrorIs(r.Done(), errs.ErrInvalidArgument)

	r = NewReader([]string{"1", "2"})
	r.Uint64("amount")
	require.ErrorIs(r.Done(), errs.ErrInvalidArgument)

	r = NewReader([]string{"300", "5"})
	r.Uint8("plan")
	r.Uint64("amount")
	err := r.Done()
	require.ErrorIs(err, errs.ErrInvalidArgument)
	require.ErrorContains(err, "argument 0 (plan)")
}
