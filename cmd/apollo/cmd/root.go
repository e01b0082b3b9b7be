package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "apollo",
	Short: "A loss-recovery staking session simulator",
	Long: `Apollo simulates sequential wagering sessions under a loss-streak-driven
staking policy and reports the step-by-step ledger.

It provides tools for:
  - Probing how deep a loss run goes before the stop loss fires
  - Comparing conservative and aggressive recovery margins
  - Replaying fixed outcome sequences against a session config
  - Recording session ledgers to CSV or SQLite journals`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
