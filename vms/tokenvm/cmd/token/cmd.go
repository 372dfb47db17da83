// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/api"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "token",
		Short: "Issues a caller token for the token API",
		RunE:  tokenFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func tokenFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	auth, err := api.NewAuthenticator([]byte(config.JWTSecret))
	if err != nil {
		return err
	}
	token, err := auth.NewToken(config.Address, config.TTL)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.OutOrStdout(), token)
	return err
}
