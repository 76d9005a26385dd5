// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Evination back-office is a multi-tenant administration service",
	Long: `Evination back-office is a multi-tenant administration service
that manages organizations, branches, departments, users and roles,
and keeps UI menu rights synchronized with fine grained permissions.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
