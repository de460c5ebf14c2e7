// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-todo-api",
	Short: "GoTodoAPI is a todo-management REST service",
	Long: `GoTodoAPI is a todo-management REST service with per-user ownership
and role-based access control. Clients authenticate with signed bearer
tokens and may only touch their own todos unless they hold the admin role.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
