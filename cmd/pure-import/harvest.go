// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pure-import/internal/openalex"
	"github.com/pdiddy/pure-import/internal/records"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest [dois...]",
	Short: "Harvest records from OpenAlex by DOI",
	Long: `Harvest fetches each DOI from the OpenAlex works API and writes the mapped
records to a records file for import. DOIs may be bare (10.1002/ijc.34742) or
prefixed (doi.org/..., https://doi.org/...). Failed DOIs are reported and
listed in the file's summary; the rest are written.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().StringP("out", "o", "records.yaml", "records file to write")
	harvestCmd.Flags().String("from-file", "", "read DOIs from a file, one per line")
	harvestCmd.Flags().Duration("delay", 0, "delay between requests (default from config, 1s)")

	rootCmd.AddCommand(harvestCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	dois := args
	if path, _ := cmd.Flags().GetString("from-file"); path != "" {
		fromFile, err := readLines(path)
		if err != nil {
			return err
		}
		dois = append(dois, fromFile...)
	}
	if len(dois) == 0 {
		return fmt.Errorf("provide one or more DOIs or --from-file")
	}

	oaCfg := cfg.OpenAlex
	if d, _ := cmd.Flags().GetDuration("delay"); d > 0 {
		oaCfg.Delay = d
	}
	out, _ := cmd.Flags().GetString("out")

	h := openalex.NewHarvester(oaCfg, nil, logger)
	recs, summary, err := h.Harvest(cmd.Context(), dois)
	if err != nil {
		return err
	}
	if err := records.Write(out, recs, summary); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, e := range summary.Errors {
		fmt.Fprintf(w, "failed:  %s\n", e)
	}
	fmt.Fprintf(w, "\nHarvested %d of %d DOI(s) into %s\n", summary.Harvested, summary.Requested, out)
	return nil
}

// readLines returns the non-blank, non-comment lines of path.
func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}
