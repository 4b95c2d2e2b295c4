/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/mflix-users/apiserver/config"
	"github.com/mflix-users/apiserver/internal/db"
	"github.com/mflix-users/apiserver/internal/store"
	"github.com/spf13/cobra"
)

// indexesCmd represents the indexes command.
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Manage MongoDB indexes",
}

var indexesEnsureCmd = &cobra.Command{
	Use:   "ensure",
	Short: "Create the unique email index on the users collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()

		conn, err := db.Connect(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("connect failed: %w", err)
		}
		defer func() {
			_ = conn.Disconnect(context.Background())
		}()

		repo := store.NewUserRepository(conn.Collection(store.UsersCollection))
		if err := repo.EnsureIndexes(cmd.Context()); err != nil {
			return fmt.Errorf("ensure indexes failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexesCmd)
	indexesCmd.AddCommand(indexesEnsureCmd)
}
