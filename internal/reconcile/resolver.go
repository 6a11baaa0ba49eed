// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/internal/directory"
	"github.com/pdiddy/pure-import/pkg/types"
)

// Directory looks up internal persons. *directory.Store implements it.
type Directory interface {
	Lookup(ctx context.Context, c types.Contributor, asOf time.Time) (*types.PersonRecord, error)
}

// Resolver decides whether a contributor is an internal person as of a date.
// A nil identity with a nil error means "not internal".
type Resolver interface {
	Resolve(ctx context.Context, c types.Contributor, asOf time.Time) (*types.Identity, error)
}

// DirectoryResolver resolves contributors against the person directory.
type DirectoryResolver struct {
	dir Directory
	log zerolog.Logger
}

// NewDirectoryResolver returns a resolver over dir.
func NewDirectoryResolver(dir Directory, log zerolog.Logger) *DirectoryResolver {
	return &DirectoryResolver{dir: dir, log: log}
}

// Resolve returns an Internal identity, or nil when the directory has no
// internal person for c at asOf. Ambiguous name matches count as no match.
func (r *DirectoryResolver) Resolve(ctx context.Context, c types.Contributor, asOf time.Time) (*types.Identity, error) {
	p, err := r.dir.Lookup(ctx, c, asOf)
	switch {
	case errors.Is(err, directory.ErrNotFound):
		return nil, nil
	case errors.Is(err, directory.ErrAmbiguous):
		r.log.Warn().Err(err).Str("contributor", c.Name).Msg("ambiguous directory match, treating as external")
		return nil, nil
	case err != nil:
		return nil, err
	}

	id := &types.Identity{
		State:      types.Internal,
		PersonUUID: p.UUID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		AsOf:       asOf,
	}
	for _, a := range p.Affiliations {
		id.Affiliations = append(id.Affiliations, a.OrganizationUUID)
	}
	return id, nil
}
