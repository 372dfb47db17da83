// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/cmd/execute"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/cmd/run"
	"github.com/Soccial/soccial-token-sub000/vms/tokenvm/cmd/token"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:   "tokenvm",
		Short: "Runs and operates a token node",
	}
	cmd.AddCommand(
		run.Command(),
		token.Command(),
		execute.Command(),
	)
	cmd.SilenceUsage = true

	ctx := context.Background()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "command failed %v\n", err)
		os.Exit(1)
	}
}
