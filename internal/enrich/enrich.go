// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich adds type-specific metadata to a research output before it
// is assembled. Articles get their journal resolved by ISSN; the other output
// types have no enrichment yet.
package enrich

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/internal/pure"
	"github.com/pdiddy/pure-import/pkg/types"
)

// JournalSearcher finds journals by ISSN. *pure.Client implements it.
type JournalSearcher interface {
	SearchJournals(ctx context.Context, issn string) ([]pure.Journal, error)
}

// LookupError reports a failed remote lookup during enrichment.
type LookupError struct {
	Type types.OutputType
	Key  string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("enriching %s (%s): %v", e.Type, e.Key, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Enricher dispatches enrichment on the output type.
type Enricher struct {
	journals JournalSearcher
	log      zerolog.Logger
}

// New returns an Enricher.
func New(journals JournalSearcher, log zerolog.Logger) *Enricher {
	return &Enricher{journals: journals, log: log}
}

// Enrich fills the type-specific fields of out. A failed lookup returns a
// *LookupError; a lookup that finds nothing is not an error.
func (e *Enricher) Enrich(ctx context.Context, out *types.ResearchOutput) error {
	switch out.Record.Type {
	case types.OutputArticle:
		return e.enrichArticle(ctx, out)
	case types.OutputDissertation, types.OutputBook, types.OutputConferenceProceeding:
		return nil
	default:
		e.log.Debug().Str("type", string(out.Record.Type)).Msg("no enrichment for output type")
		return nil
	}
}

// enrichArticle sets the journal UUID from the ISSN. When the search returns
// several journals the last one wins.
func (e *Enricher) enrichArticle(ctx context.Context, out *types.ResearchOutput) error {
	issn := out.Record.JournalISSN
	if issn == "" {
		e.log.Warn().Str("record", out.Record.ID).Msg("article has no ISSN, journal left empty")
		return nil
	}

	journals, err := e.journals.SearchJournals(ctx, issn)
	if err != nil {
		return &LookupError{Type: out.Record.Type, Key: issn, Err: err}
	}

	switch len(journals) {
	case 0:
		e.log.Warn().Str("record", out.Record.ID).Str("issn", issn).Msg("no journal found for ISSN")
		return nil
	case 1:
	default:
		e.log.Warn().Str("record", out.Record.ID).Str("issn", issn).Int("matches", len(journals)).
			Msg("several journals match ISSN, using the last")
	}
	out.JournalUUID = journals[len(journals)-1].UUID
	e.log.Debug().Str("record", out.Record.ID).Str("journal", out.JournalUUID).Msg("journal resolved")
	return nil
}
