// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pdiddy/pure-import/pkg/types"
)

// Lookup finds the person a contributor refers to, as of asOf.
//
// Identifier matches are tried first, then the folded first and last name,
// then the folded display name. A candidate only counts when employed at asOf;
// the zero asOf accepts any employment period.
// The returned record lists only the affiliations active at asOf, in stored
// order, duplicates included.
//
// ErrNotFound means no internal person matched. ErrAmbiguous means a name
// matched several internal persons and no identifier matched.
func (s *Store) Lookup(ctx context.Context, c types.Contributor, asOf time.Time) (*types.PersonRecord, error) {
	byID, err := s.uuidsByIdentifier(ctx, c.IDs)
	if err != nil {
		return nil, err
	}
	for _, uuid := range byID {
		p, err := s.Get(ctx, uuid)
		if err != nil {
			return nil, err
		}
		if p.EmployedAt(asOf) {
			return activeAt(p, asOf), nil
		}
	}

	tried := map[string]bool{"": true}
	for _, key := range []string{FullNameKey(c.FirstName, c.LastName), NameKey(c.Name)} {
		if tried[key] {
			continue
		}
		tried[key] = true

		matches, err := s.employedByName(ctx, key, asOf)
		if err != nil {
			return nil, err
		}
		switch len(matches) {
		case 0:
			continue
		case 1:
			return activeAt(matches[0], asOf), nil
		default:
			return nil, fmt.Errorf("%w: %q matches %d persons", ErrAmbiguous, key, len(matches))
		}
	}
	return nil, ErrNotFound
}

func (s *Store) employedByName(ctx context.Context, key string, asOf time.Time) ([]*types.PersonRecord, error) {
	uuids, err := s.uuidsByName(ctx, key)
	if err != nil {
		return nil, err
	}
	var matches []*types.PersonRecord
	for _, uuid := range uuids {
		p, err := s.Get(ctx, uuid)
		if err != nil {
			return nil, err
		}
		if p.EmployedAt(asOf) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

func (s *Store) uuidsByIdentifier(ctx context.Context, ids []string) ([]string, error) {
	var norm []string
	for _, id := range ids {
		if n := NormalizeIdentifier(id); n != "" {
			norm = append(norm, n)
		}
	}
	if len(norm) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT DISTINCT person_uuid FROM person_identifiers WHERE identifier IN (?) ORDER BY person_uuid`, norm)
	if err != nil {
		return nil, fmt.Errorf("building identifier query: %w", err)
	}
	var uuids []string
	if err := s.db.SelectContext(ctx, &uuids, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("looking up identifiers: %w", err)
	}
	return uuids, nil
}

func (s *Store) uuidsByName(ctx context.Context, key string) ([]string, error) {
	if key == "" {
		return nil, nil
	}
	var uuids []string
	if err := s.db.SelectContext(ctx, &uuids, s.db.Rebind(
		`SELECT uuid FROM persons WHERE name_key = ? ORDER BY uuid`), key); err != nil {
		return nil, fmt.Errorf("looking up name: %w", err)
	}
	return uuids, nil
}

func activeAt(p *types.PersonRecord, asOf time.Time) *types.PersonRecord {
	out := *p
	out.Affiliations = nil
	for _, a := range p.Affiliations {
		if a.ActiveAt(asOf) {
			out.Affiliations = append(out.Affiliations, a)
		}
	}
	return &out
}
