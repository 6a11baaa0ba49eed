// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex harvests research-output records from the OpenAlex works
// API by DOI.
package openalex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/internal/httputil"
	"github.com/pdiddy/pure-import/internal/records"
	"github.com/pdiddy/pure-import/pkg/types"
)

// worksAPIBase is the OpenAlex works endpoint. Declared as a var so tests
// can substitute an httptest server.
var worksAPIBase = "https://api.openalex.org/works/"

const doiResolver = "https://doi.org/"

// ErrNotFound is returned when OpenAlex has no work for a DOI.
var ErrNotFound = errors.New("work not found")

// doiPattern matches bare DOIs: "10.1145/1234567.1234568".
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// NormalizeDOI strips resolver prefixes and returns the bare DOI.
// Accepted forms: "10.1/x", "doi:10.1/x", "doi.org/10.1/x", "https://doi.org/10.1/x".
func NormalizeDOI(s string) (string, error) {
	doi := strings.TrimSpace(s)
	for _, prefix := range []string{"https://", "http://", "dx.doi.org/", "doi.org/", "doi:"} {
		if len(doi) >= len(prefix) && strings.EqualFold(doi[:len(prefix)], prefix) {
			doi = doi[len(prefix):]
		}
	}
	if !doiPattern.MatchString(doi) {
		return "", fmt.Errorf("not a DOI: %q", s)
	}
	return doi, nil
}

// Harvester fetches works from OpenAlex and maps them to records.
type Harvester struct {
	client *http.Client
	cfg    types.OpenAlexConfig
	log    zerolog.Logger
}

// NewHarvester returns a harvester. A nil client gets one with cfg.Timeout.
func NewHarvester(cfg types.OpenAlexConfig, client *http.Client, log zerolog.Logger) *Harvester {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Harvester{
		client: client,
		cfg:    cfg,
		log:    log.With().Str("component", "openalex").Logger(),
	}
}

// FetchWork returns the OpenAlex work for doi.
func (h *Harvester) FetchWork(ctx context.Context, doi string) (*Work, error) {
	doi, err := NormalizeDOI(doi)
	if err != nil {
		return nil, err
	}

	apiURL := worksAPIBase + doiResolver + doi
	if h.cfg.Email != "" {
		apiURL += "?mailto=" + url.QueryEscape(h.cfg.Email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", h.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, h.client, req, 0, h.log)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w", doi, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d for %s", resp.StatusCode, doi)
	}

	var w Work
	if err := json.NewDecoder(resp.Body).Decode(&w); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return &w, nil
}

// Harvest fetches every DOI and maps the works to records, pausing
// cfg.Delay between requests. Failures are collected in the summary and do
// not stop the batch; only context cancellation does.
func (h *Harvester) Harvest(ctx context.Context, dois []string) ([]types.Record, *records.Summary, error) {
	summary := &records.Summary{Requested: len(dois)}
	var recs []types.Record

	for i, doi := range dois {
		if i > 0 && h.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
				return recs, summary, ctx.Err()
			case <-time.After(h.cfg.Delay):
			}
		}

		w, err := h.FetchWork(ctx, doi)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return recs, summary, ctxErr
			}
			h.log.Error().Err(err).Str("doi", doi).Msg("harvest failed")
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", doi, err))
			continue
		}

		rec := ToRecord(w, h.cfg.PeerReview)
		h.log.Info().Str("doi", doi).Str("record", rec.ID).Int("contributors", len(rec.Contributors)).Msg("harvested")
		recs = append(recs, rec)
	}

	summary.Harvested = len(recs)
	summary.Timestamp = time.Now().UTC()
	return recs, summary, nil
}
