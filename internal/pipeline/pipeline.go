// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline imports a batch of records into Pure, one record at a time.
// Each record is validated, reconciled, aggregated, enriched, assembled and
// submitted; a failure in one record never stops the batch.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/internal/affiliation"
	"github.com/pdiddy/pure-import/internal/enrich"
	"github.com/pdiddy/pure-import/internal/payload"
	"github.com/pdiddy/pure-import/internal/reconcile"
	"github.com/pdiddy/pure-import/internal/records"
	"github.com/pdiddy/pure-import/pkg/types"
)

// Submitter creates research outputs. *pure.Client implements it.
type Submitter interface {
	CreateResearchOutput(ctx context.Context, p *types.SubmissionPayload) (string, error)
}

// Options tune a pipeline run.
type Options struct {
	// PayloadDir, when set, receives each assembled payload before
	// submission, named by PayloadFileName.
	PayloadDir string
}

// Pipeline runs records through every import stage.
type Pipeline struct {
	reconciler *reconcile.Reconciler
	enricher   *enrich.Enricher
	assembler  *payload.Assembler
	submitter  Submitter
	opts       Options
	log        zerolog.Logger
}

// New returns a Pipeline.
func New(r *reconcile.Reconciler, e *enrich.Enricher, a *payload.Assembler, s Submitter, opts Options, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		reconciler: r,
		enricher:   e,
		assembler:  a,
		submitter:  s,
		opts:       opts,
		log:        log,
	}
}

// Run processes recs in order and returns the batch summary. Cancelling ctx
// stops the batch before the next record.
func (p *Pipeline) Run(ctx context.Context, recs []types.Record) BatchResult {
	result := BatchResult{RunID: uuid.NewString(), Started: time.Now().UTC()}
	log := p.log.With().Str("run_id", result.RunID).Logger()
	log.Info().Int("records", len(recs)).Msg("import started")

	for _, rec := range recs {
		if ctx.Err() != nil {
			log.Warn().Err(ctx.Err()).Msg("import interrupted")
			break
		}
		result.add(p.process(ctx, rec, log))
	}

	result.Finished = time.Now().UTC()
	log.Info().
		Int("submitted", result.Submitted).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Dur("elapsed", result.Finished.Sub(result.Started)).
		Msg("import finished")
	return result
}

// Process runs a single record through the pipeline.
func (p *Pipeline) Process(ctx context.Context, rec types.Record) Outcome {
	return p.process(ctx, rec, p.log)
}

func (p *Pipeline) process(ctx context.Context, rec types.Record, log zerolog.Logger) Outcome {
	o := Outcome{RecordID: rec.ID, Title: rec.Title, Type: rec.Type}
	log = log.With().Str("record", rec.ID).Logger()

	fail := func(stage Stage, err error) Outcome {
		o.Status = StatusFailed
		o.Stage = stage
		o.Err = err
		log.Error().Err(err).Str("stage", string(stage)).Msg("research output failed")
		return o
	}

	if err := records.Validate(rec); err != nil {
		return fail(StageValidate, err)
	}
	if !payload.Supported(rec.Type) {
		return fail(StageValidate, fmt.Errorf("%w: %q", payload.ErrUnsupportedType, rec.Type))
	}
	asOf, err := rec.ReferenceDate()
	if err != nil {
		return fail(StageValidate, err)
	}

	m, err := p.reconciler.Reconcile(ctx, rec.Contributors, asOf)
	if errors.Is(err, reconcile.ErrNoInternalContributors) {
		o.Status = StatusSkipped
		o.Stage = StageReconcile
		o.Err = err
		log.Warn().Msg("skipped research output: no internal contributors")
		return o
	}
	if err != nil {
		return fail(StageReconcile, err)
	}
	o.Internal = m.Count(types.Internal)
	o.External = m.Count(types.External)
	o.Dropped = m.Count(types.Dropped)

	out := types.NewResearchOutput(rec)
	out.Contributors = m
	agg := affiliation.Aggregate(m)
	out.Organizations = agg.Organizations
	out.ManagingOrganization = agg.ManagingOrganization
	o.Organizations = len(agg.Organizations)
	if agg.ManagingOrganization == "" {
		log.Warn().Msg("no managing organization")
	}

	if err := p.enricher.Enrich(ctx, out); err != nil {
		return fail(StageEnrich, err)
	}
	o.JournalUUID = out.JournalUUID

	doc, err := p.assembler.Assemble(out)
	if err != nil {
		return fail(StageAssemble, err)
	}
	if p.opts.PayloadDir != "" {
		path, err := writePayload(p.opts.PayloadDir, rec.ID, doc)
		if err != nil {
			return fail(StageAssemble, err)
		}
		o.PayloadPath = path
	}

	id, err := p.submitter.CreateResearchOutput(ctx, doc)
	if err != nil {
		return fail(StageSubmit, err)
	}
	o.Status = StatusSubmitted
	o.ResearchOutputUUID = id
	log.Info().
		Str("uuid", id).
		Int("internal", o.Internal).
		Int("external", o.External).
		Int("dropped", o.Dropped).
		Msg("research output created")
	return o
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// PayloadFileName returns the file name a record's payload is written to.
// The readable part is sanitized; the hash suffix keeps IDs that sanitize to
// the same text apart.
func PayloadFileName(recordID string) string {
	name := unsafeFileChars.ReplaceAllString(recordID, "_")
	if name == "" || name == "_" {
		name = "record"
	}
	h := fnv.New32a()
	h.Write([]byte(recordID))
	return fmt.Sprintf("%s-%08x.json", name, h.Sum32())
}

func writePayload(dir, recordID string, doc *types.SubmissionPayload) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating payload dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	path := filepath.Join(dir, PayloadFileName(recordID))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing payload: %w", err)
	}
	return path, nil
}
