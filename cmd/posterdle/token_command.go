package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"posterdle/internal/tmdb"
)

func newTokenCommand(ctx *commandContext) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the TMDB API credential",
	}

	tokenCmd.AddCommand(newTokenSetCommand(ctx))
	tokenCmd.AddCommand(newTokenCheckCommand(ctx))

	return tokenCmd
}

func newTokenSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <api-key>",
		Short: "Validate and store a TMDB API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.TrimSpace(args[0])
			if key == "" {
				return errors.New("api key must not be empty")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			client, err := tmdb.New(key, cfg.TMDB.BaseURL, cfg.TMDB.Language)
			if err != nil {
				return err
			}
			if err := client.ValidateToken(cmd.Context(), key); err != nil {
				return fmt.Errorf("key rejected by TMDB: %w", err)
			}

			logger, err := ctx.newLogger(cfg)
			if err != nil {
				return err
			}
			store, led, err := ctx.openStore(cfg, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := led.SetToken(key); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "API key validated and stored")
			return nil
		},
	}
}

func newTokenCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the stored credential against TMDB",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := ctx.openEngine()
			if err != nil {
				return err
			}
			defer eng.Close()

			key, ok := eng.ledger.Token()
			if !ok {
				key = ""
			}
			if key == "" {
				cfg, _ := ctx.ensureConfig()
				key = cfg.TMDB.APIKey
			}
			if err := eng.client.ValidateToken(cmd.Context(), key); err != nil {
				return fmt.Errorf("credential check failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Credential accepted by TMDB")
			return nil
		},
	}
}
