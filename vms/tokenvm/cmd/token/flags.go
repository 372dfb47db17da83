// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"errors"
	"time"

	"github.com/luxfi/ids"
	"github.com/spf13/pflag"
)

const (
	JWTSecretKey = "jwt-secret"
	AddressKey   = "address"
	TTLKey       = "ttl"
)

var errMissingSecret = errors.New("--" + JWTSecretKey + " is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(JWTSecretKey, "", "Secret the node verifies tokens with (required)")
	flags.String(AddressKey, "", "Address the token authenticates as (required)")
	flags.Duration(TTLKey, 24*time.Hour, "Lifetime of the token. Zero never expires")
}

type Config struct {
	JWTSecret string
	Address   ids.ShortID
	TTL       time.Duration
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	secret, err := flags.GetString(JWTSecretKey)
	if err != nil {
		return nil, err
	}
	if secret == "" {
		return nil, errMissingSecret
	}

	addrStr, err := flags.GetString(AddressKey)
	if err != nil {
		return nil, err
	}

	addr, err := ids.ShortFromString(addrStr)
	if err != nil {
		return nil, err
	}

	ttl, err := flags.GetDuration(TTLKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		JWTSecret: secret,
		Address:   addr,
		TTL:       ttl,
	}, nil
}
