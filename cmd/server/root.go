package main

import (
	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "encounter-architect",
		Short:         "Encounter XP calculator and record store",
		Long:          `encounter-architect balances 2024-rules encounters against a party's XP budget and keeps saved parties, adversary lists and encounters in a local store. It serves MCP over stdio or HTTP.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newCalcCmd(), newRecordsCmd())
	return root
}
