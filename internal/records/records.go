// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records reads and writes the records file that feeds an import.
// A records file is produced by harvest or by hand and looks like:
//
//	records:
//	  - research_output_id: https://openalex.org/W4386...
//	    title: Tumour heterogeneity in ...
//	    doi: 10.1002/ijc.34742
//	    type: article
//	    publication_date: "2023-10-02"
//	    publication_year: 2023
//	    publication_month: 10
//	    journal_issn: 0020-7136
//	    contributors:
//	      - name: Ada Lovelace
//	        first_name: Ada
//	        last_name: Lovelace
//	        ids: [https://orcid.org/0000-0002-1825-0097]
package records

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pure-import/pkg/types"
)

// File is the on-disk representation of a batch of records.
type File struct {
	Records []types.Record `yaml:"records"`
	Summary *Summary       `yaml:"summary,omitempty"`
}

// Summary describes how a harvested records file was produced.
type Summary struct {
	Requested int       `yaml:"requested"`
	Harvested int       `yaml:"harvested"`
	Errors    []string  `yaml:"errors,omitempty"`
	Timestamp time.Time `yaml:"timestamp"`
}

// Read loads the records of a records file. JSON files parse as well.
func Read(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing records file %s: %w", path, err)
	}
	return f.Records, nil
}

// Write saves records to path, with an optional summary.
func Write(path string, recs []types.Record, summary *Summary) error {
	data, err := yaml.Marshal(&File{Records: recs, Summary: summary})
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks the fields the import cannot do without.
func Validate(rec types.Record) error {
	var errs []error
	if rec.ID == "" {
		errs = append(errs, errors.New("research_output_id is required"))
	}
	if rec.Title == "" {
		errs = append(errs, errors.New("title is required"))
	}
	if rec.Type == "" {
		errs = append(errs, errors.New("type is required"))
	}
	if _, err := rec.ReferenceDate(); err != nil {
		errs = append(errs, err)
	}
	for i, c := range rec.Contributors {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("contributor %d has no name", i))
		}
	}
	return errors.Join(errs...)
}
