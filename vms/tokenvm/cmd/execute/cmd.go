// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package execute

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/api"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "execute [operation] [args...]",
		Short: "Executes an operation on a token node",
		RunE:  executeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func executeFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	client := api.NewClient(config.URI, config.Token)
	result, err := client.Execute(c.Context(), config.Operation, config.Args...)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, result, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.OutOrStdout(), out.String())
	return err
}
