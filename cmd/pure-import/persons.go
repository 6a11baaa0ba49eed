// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pure-import/internal/directory"
	"github.com/pdiddy/pure-import/pkg/types"
)

var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "Manage the local person directory",
	Long: `The person directory holds the institution's internal persons with their
identifiers, employment period and organization affiliations. Import uses it
to decide which contributors are internal.`,
}

var personsLoadCmd = &cobra.Command{
	Use:   "load <persons.yaml>",
	Short: "Load or update persons from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonsLoad,
}

var personsLookupCmd = &cobra.Command{
	Use:   "lookup <name>",
	Short: "Look up a contributor the way import does",
	Args:  cobra.ExactArgs(1),
	RunE:  runPersonsLookup,
}

func init() {
	personsLookupCmd.Flags().StringSlice("id", nil, "contributor identifier (ORCID, OpenAlex id); repeatable")
	personsLookupCmd.Flags().String("date", "", "reference date YYYY-MM-DD (default: any date)")
	personsLookupCmd.Flags().String("first-name", "", "contributor first name, matched before the display name")
	personsLookupCmd.Flags().String("last-name", "", "contributor last name, matched before the display name")

	personsCmd.AddCommand(personsLoadCmd, personsLookupCmd)
	rootCmd.AddCommand(personsCmd)
}

func runPersonsLoad(cmd *cobra.Command, args []string) error {
	persons, err := directory.ReadPersonsFile(args[0])
	if err != nil {
		return err
	}

	store, err := directory.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(cmd.Context(), persons)
	if err != nil {
		return fmt.Errorf("loaded %d of %d persons: %w", n, len(persons), err)
	}
	total, err := store.Count(cmd.Context())
	if err != nil {
		return err
	}
	logger.Info().Int("loaded", n).Int("total", total).Str("file", args[0]).Msg("persons loaded")
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d person(s); directory holds %d\n", n, total)
	return nil
}

func runPersonsLookup(cmd *cobra.Command, args []string) error {
	ids, _ := cmd.Flags().GetStringSlice("id")
	var asOf time.Time
	if d, _ := cmd.Flags().GetString("date"); d != "" {
		t, err := time.Parse(types.DateLayout, d)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", d, err)
		}
		asOf = t
	}

	store, err := directory.Open(cfg.Directory)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	first, _ := cmd.Flags().GetString("first-name")
	last, _ := cmd.Flags().GetString("last-name")
	c := types.Contributor{Name: args[0], FirstName: first, LastName: last, IDs: ids}

	p, err := store.Lookup(cmd.Context(), c, asOf)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		fmt.Fprintf(w, "%s: external (no internal person)\n", args[0])
		return nil
	case errors.Is(err, directory.ErrAmbiguous):
		fmt.Fprintf(w, "%s: external (%v)\n", args[0], err)
		return nil
	case err != nil:
		return err
	}

	fmt.Fprintf(w, "%s: internal\n", args[0])
	fmt.Fprintf(w, "  person:       %s (%s %s)\n", p.UUID, p.FirstName, p.LastName)
	for _, a := range p.Affiliations {
		fmt.Fprintf(w, "  organization: %s\n", a.OrganizationUUID)
	}
	return nil
}
