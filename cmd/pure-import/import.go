// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pure-import/internal/config"
	"github.com/pdiddy/pure-import/internal/directory"
	"github.com/pdiddy/pure-import/internal/enrich"
	"github.com/pdiddy/pure-import/internal/payload"
	"github.com/pdiddy/pure-import/internal/pipeline"
	"github.com/pdiddy/pure-import/internal/pure"
	"github.com/pdiddy/pure-import/internal/reconcile"
	"github.com/pdiddy/pure-import/internal/records"
	"github.com/pdiddy/pure-import/internal/report"
)

var importCmd = &cobra.Command{
	Use:   "import <records.yaml>",
	Short: "Create research outputs in Pure from a records file",
	Long: `Import processes each record of a records file in order: contributors are
resolved against the person directory as of the publication date, external
persons are created for the remaining contributors, organizations are
aggregated, articles get their journal resolved by ISSN, and the research
output is submitted.

A record with no internal contributor is skipped before anything is created
in Pure. A failing record is reported and the batch continues.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("payload-dir", "", "write each assembled payload as JSON to this directory")
	importCmd.Flags().String("report", "", "write an .xlsx batch report to this path")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	payloadDir, _ := cmd.Flags().GetString("payload-dir")
	if payloadDir == "" {
		payloadDir = cfg.Import.PayloadDir
	}
	reportPath, _ := cmd.Flags().GetString("report")

	recs, err := records.Read(args[0])
	if err != nil {
		return err
	}

	store, err := directory.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer store.Close()

	client := pure.NewClient(cfg.Pure, nil, logger)
	p := pipeline.New(
		reconcile.New(reconcile.NewDirectoryResolver(store, logger), client, logger),
		enrich.New(client, logger),
		payload.NewAssembler(cfg.Import, logger),
		client,
		pipeline.Options{PayloadDir: payloadDir},
		logger,
	)

	result := p.Run(cmd.Context(), recs)

	w := cmd.OutOrStdout()
	for _, o := range result.Outcomes {
		switch o.Status {
		case pipeline.StatusSubmitted:
			fmt.Fprintf(w, "submitted: %s -> %s\n", o.RecordID, o.ResearchOutputUUID)
		case pipeline.StatusSkipped:
			fmt.Fprintf(w, "skipped:   %s (%v)\n", o.RecordID, o.Err)
		default:
			fmt.Fprintf(w, "failed:    %s at %s (%v)\n", o.RecordID, o.Stage, o.Err)
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d submitted, %d skipped, %d failed (total: %d, run %s)\n",
		result.Submitted, result.Skipped, result.Failed, result.Total(), result.RunID)

	if reportPath != "" {
		if err := report.WriteXLSX(reportPath, result); err != nil {
			return err
		}
		fmt.Fprintf(w, "Report written to %s\n", reportPath)
	}

	if err := cmd.Context().Err(); err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d research output(s) failed", result.Failed)
	}
	return nil
}
