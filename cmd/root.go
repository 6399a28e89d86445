/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "clubhouse",
	Short: "Membership-gated message board server",
	Long: `Clubhouse is a small membership-gated message board: users sign up,
log in with session cookies, unlock member status with a shared passphrase,
and post short messages. Admins may delete messages.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
