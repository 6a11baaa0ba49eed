// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pure-import/internal/pure"
)

var showCmd = &cobra.Command{
	Use:   "show <uuid>",
	Short: "Print a research output from Pure as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if cfg.Pure.BaseURL == "" || cfg.Pure.APIKey == "" {
		return errors.New("pure.base_url and pure.api_key are required")
	}

	client := pure.NewClient(cfg.Pure, nil, logger)
	raw, err := client.GetResearchOutput(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, pure.ErrNotFound) {
			return fmt.Errorf("research output %s not found", args[0])
		}
		return err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("formatting response: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(cmd.OutOrStdout())
	return err
}
