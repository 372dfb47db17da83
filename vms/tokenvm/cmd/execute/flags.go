// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package execute

import (
	"errors"

	"github.com/spf13/pflag"
)

const (
	URIKey   = "uri"
	TokenKey = "token"
)

var errMissingOperation = errors.New("an operation is required")

func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, "http://127.0.0.1:9650", "URI of the token node")
	flags.String(TokenKey, "", "Caller token issued by the token command")
}

type Config struct {
	URI       string
	Token     string
	Operation string
	Args      []string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}

	token, err := flags.GetString(TokenKey)
	if err != nil {
		return nil, err
	}

	positional := flags.Args()
	if len(positional) == 0 {
		return nil, errMissingOperation
	}

	return &Config{
		URI:       uri,
		Token:     token,
		Operation: positional[0],
		Args:      positional[1:],
	}, nil
}
