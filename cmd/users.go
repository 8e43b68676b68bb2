/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/diabros/apiserver/config"
	"github.com/diabros/apiserver/internal/db"
	"github.com/diabros/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// usersCmd represents the users command.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

// Registration always creates regular users; the first admin is minted here.
var usersPromoteCmd = &cobra.Command{
	Use:   "promote <username>",
	Short: "Grant the admin role to an existing user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(args[0])
		if username == "" {
			return errors.New("username is required")
		}

		cfg := config.LoadConfig()
		dbConn, err := db.Open(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer func() {
			_ = dbConn.Close()
		}()

		userRepo := store.NewUserRepository(dbConn)
		if err := userRepo.SetRole(cmd.Context(), username, "admin"); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("user %q does not exist", username)
			}
			return fmt.Errorf("promote user: %w", err)
		}

		fmt.Printf("user %q is now an admin\n", username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersPromoteCmd)
}
