// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pure-import/pkg/types"
)

// PersonsFile is the on-disk format for seeding the directory, e.g. an export
// of the Pure persons API:
//
//	persons:
//	  - uuid: 7a1c...
//	    first_name: Ada
//	    last_name: Lovelace
//	    identifiers: [https://orcid.org/0000-0002-1825-0097]
//	    employed_from: 2019-09-01
//	    affiliations:
//	      - organization_uuid: org-1
//	        valid_from: 2019-09-01
type PersonsFile struct {
	Persons []types.PersonRecord `yaml:"persons"`
}

// ReadPersonsFile loads persons from a YAML (or JSON) file.
func ReadPersonsFile(path string) ([]types.PersonRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persons file: %w", err)
	}
	var pf PersonsFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing persons file: %w", err)
	}
	return pf.Persons, nil
}

// Import upserts persons and returns how many were written. It stops at the
// first failure.
func (s *Store) Import(ctx context.Context, persons []types.PersonRecord) (int, error) {
	for i, p := range persons {
		if err := s.Upsert(ctx, p); err != nil {
			return i, err
		}
	}
	return len(persons), nil
}
