// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pure-import CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pure-import/internal/config"
	"github.com/pdiddy/pure-import/internal/logging"
	"github.com/pdiddy/pure-import/internal/secrets"
	"github.com/pdiddy/pure-import/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by the root command before any subcommand runs.
var (
	cfg       *types.Config
	logger    zerolog.Logger
	logCloser io.Closer
)

// rootCmd is the base command for the pure-import CLI.
var rootCmd = &cobra.Command{
	Use:   "pure-import",
	Short: "Import research outputs into Pure",
	Long: `pure-import creates research outputs in a Pure research information system
from harvested publication records.

Records are harvested from OpenAlex by DOI (harvest), then imported (import).
Import resolves every contributor against the local person directory, creates
external persons for the rest, resolves journals by ISSN and submits one
research output per record. Records without any internal contributor are
skipped. The person directory is seeded with "persons load".`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pure-import.yaml or ~/.config/pure-import/pure-import.yaml)")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets", "directory of secret files (pure-api-key, openalex-email)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file with PURE_API_KEY and OPENALEX_EMAIL")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output", "", "log output override (stderr, stdout, file, discard)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	c, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	secretsDir, _ := cmd.Flags().GetString("secrets-dir")
	envFile, _ := cmd.Flags().GetString("env-file")
	s, err := secrets.Load(secretsDir, envFile)
	if err != nil {
		return err
	}
	secrets.Apply(c, s)

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.Log.Level = lvl
	}
	if out, _ := cmd.Flags().GetString("log-output"); out != "" {
		c.Log.Output = out
	}

	l, closer, err := logging.New(c.Log)
	if err != nil {
		return err
	}
	cfg, logger, logCloser = c, l, closer

	if len(s) > 0 {
		keys := make([]string, 0, len(s))
		for k := range s {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		logger.Debug().Strs("keys", keys).Msg("loaded secrets")
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
