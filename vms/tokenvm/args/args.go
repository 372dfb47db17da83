// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package args decodes the string arguments of an operation into typed
// values. Only canonical encodings are accepted: numbers are unsigned
// decimal without sign, whitespace or leading zeros.
package args

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luxfi/ids"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/errs"
)

func Uint64(s string) (uint64, error) {
	return parseUint(s, 64)
}

func Uint32(s string) (uint32, error) {
	v, err := parseUint(s, 32)
	return uint32(v), err
}

func Uint16(s string) (uint16, error) {
	v, err := parseUint(s, 16)
	return uint16(v), err
}

func Uint8(s string) (uint8, error) {
	v, err := parseUint(s, 8)
	return uint8(v), err
}

func parseUint(s string, bitSize int) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty number", errs.ErrInvalidArgument)
	}
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("%w: leading zero in %q", errs.ErrInvalidArgument, s)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q is not a decimal number", errs.ErrInvalidArgument, s)
		}
	}
	v, err := strconv.ParseUint(s, 10, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q does not fit in %d bits", errs.ErrInvalidArgument, s, bitSize)
	}
	return v, nil
}

// Bool accepts exactly "true" or "false".
func Bool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a bool", errs.ErrInvalidArgument, s)
	}
}

// Address parses a cb58 encoded short id.
func Address(s string) (ids.ShortID, error) {
	addr, err := ids.ShortFromString(s)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("%w: address %q: %w", errs.ErrInvalidArgument, s, err)
	}
	if addr == ids.ShortEmpty {
		return ids.ShortEmpty, fmt.Errorf("%w: empty address", errs.ErrInvalidArgument)
	}
	return addr, nil
}

// KeyValue is one entry of a key=value update list.
type KeyValue struct {
	Key   string
	Value string
}

// KeyValues splits each entry at its first '='. Keys must be non-empty and
// unique.
func KeyValues(entries []string) ([]KeyValue, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no updates", errs.ErrInvalidArgument)
	}
	kvs := make([]KeyValue, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", errs.ErrInvalidArgument, entry)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", errs.ErrInvalidArgument, key)
		}
		seen[key] = struct{}{}
		kvs = append(kvs, KeyValue{Key: key, Value: value})
	}
	return kvs, nil
}

// Reader consumes an ordered argument list.
type Reader struct {
	args []string
	pos  int
	err  error
}

func NewReader(args []string) *Reader {
	return &Reader{args: args}
}

// Err returns the first decoding error.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) next(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	if r.pos >= len(r.args) {
		r.err = fmt.Errorf("%w: missing argument %d (%s)", errs.ErrInvalidArgument, r.pos, name)
		return "", false
	}
	s := r.args[r.pos]
	r.pos++
	return s, true
}

func (r *Reader) fail(name string, err error) {
	r.err = fmt.Errorf("argument %d (%s): %w", r.pos-1, name, err)
}

func (r *Reader) String(name string) string {
	s, _ := r.next(name)
	return s
}

func (r *Reader) Uint64(name string) uint64 {
	s, ok := r.next(name)
	if !ok {
		return 0
	}
	v, err := Uint64(s)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Uint16(name string) uint16 {
	s, ok := r.next(name)
	if !ok {
		return 0
	}
	v, err := Uint16(s)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Uint8(name string) uint8 {
	s, ok := r.next(name)
	if !ok {
		return 0
	}
	v, err := Uint8(s)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Bool(name string) bool {
	s, ok := r.next(name)
	if !ok {
		return false
	}
	v, err := Bool(s)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

func (r *Reader) Address(name string) ids.ShortID {
	s, ok := r.next(name)
	if !ok {
		return ids.ShortEmpty
	}
	v, err := Address(s)
	if err != nil {
		r.fail(name, err)
	}
	return v
}

// Rest consumes every remaining argument.
func (r *Reader) Rest() []string {
	if r.err != nil {
		return nil
	}
	rest := r.args[r.pos:]
	r.pos = len(r.args)
	return rest
}

// Done fails if arguments remain unconsumed and returns the first error.
func (r *Reader) Done() error {
	if r.err == nil && r.pos < len(r.args) {
		r.err = fmt.Errorf("%w: %d unexpected arguments", errs.ErrInvalidArgument, len(r.args)-r.pos)
	}
	return r.err
}
