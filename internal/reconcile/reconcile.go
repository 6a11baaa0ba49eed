// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile resolves the contributor roster of one research output.
//
// Resolution runs in two passes. The first pass asks the Resolver about every
// contributor. Only if it found at least one internal person does it hand out
// an Anchor, and only an Anchor unlocks the second pass, which provisions an
// external person for every contributor still unresolved. An output whose
// roster has no internal person is rejected before anything is created in Pure.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/pkg/types"
)

// ErrNoInternalContributors rejects an output whose roster has no internal person.
var ErrNoInternalContributors = errors.New("no internal contributors")

// Provisioner creates external-person placeholders. *pure.Client implements it.
type Provisioner interface {
	CreateExternalPerson(ctx context.Context, firstName, lastName string) (string, error)
}

// Anchor is issued by the first pass for a roster with at least one internal
// contributor. It is the only way into the provisioning pass.
type Anchor struct {
	roster   *types.ContributorMap
	internal int
}

// Internal returns how many contributors resolved internally.
func (a *Anchor) Internal() int { return a.internal }

// Reconciler runs both passes for one roster at a time.
type Reconciler struct {
	resolver    Resolver
	provisioner Provisioner
	log         zerolog.Logger
}

// New returns a Reconciler.
func New(resolver Resolver, provisioner Provisioner, log zerolog.Logger) *Reconciler {
	return &Reconciler{resolver: resolver, provisioner: provisioner, log: log}
}

// Reconcile resolves every contributor. The returned map has one entry per
// contributor, each Internal, External or Dropped. It returns
// ErrNoInternalContributors, and creates nothing, when no contributor is internal.
func (r *Reconciler) Reconcile(ctx context.Context, contributors []types.Contributor, asOf time.Time) (*types.ContributorMap, error) {
	m, anchor, err := r.ResolveInternal(ctx, contributors, asOf)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return nil, ErrNoInternalContributors
	}
	if err := r.ProvisionExternal(ctx, anchor); err != nil {
		return nil, err
	}
	return m, nil
}

// ResolveInternal is the first pass. Contributors the resolver does not know
// stay Unresolved. The anchor is nil when nobody resolved internally.
func (r *Reconciler) ResolveInternal(ctx context.Context, contributors []types.Contributor, asOf time.Time) (*types.ContributorMap, *Anchor, error) {
	m, err := types.NewContributorMap(contributors)
	if err != nil {
		return nil, nil, err
	}

	internal := 0
	for _, c := range contributors {
		id, err := r.resolver.Resolve(ctx, c, asOf)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %q: %w", c.Name, err)
		}
		if id == nil {
			r.log.Debug().Str("contributor", c.Name).Msg("no internal match")
			continue
		}
		if id.FirstName == "" && id.LastName == "" {
			id.FirstName, id.LastName = c.FirstName, c.LastName
		}
		if err := m.Resolve(c.Name, *id); err != nil {
			return nil, nil, err
		}
		internal++
		r.log.Debug().Str("contributor", c.Name).Str("person", id.PersonUUID).Msg("internal person")
	}

	if internal == 0 {
		return m, nil, nil
	}
	return m, &Anchor{roster: m, internal: internal}, nil
}

// ProvisionExternal is the second pass. Each Unresolved contributor of the
// anchored roster gets exactly one provisioning call: success makes it
// External, failure Dropped. Only context cancellation aborts the pass.
func (r *Reconciler) ProvisionExternal(ctx context.Context, anchor *Anchor) error {
	if anchor == nil || anchor.roster == nil || anchor.internal == 0 {
		return errors.New("provisioning requires an anchor from ResolveInternal")
	}
	m := anchor.roster

	var pending []string
	m.Each(func(name string, id types.Identity) {
		if id.State == types.Unresolved {
			pending = append(pending, name)
		}
	})

	for _, name := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		cur, _ := m.Get(name)

		r.log.Info().Str("contributor", name).Msg("creating external person")
		uuid, err := r.provisioner.CreateExternalPerson(ctx, cur.FirstName, cur.LastName)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			r.log.Error().Err(err).Str("contributor", name).Msg("failed to create external person, dropping contributor")
			if err := m.Resolve(name, types.Identity{State: types.Dropped, FirstName: cur.FirstName, LastName: cur.LastName}); err != nil {
				return err
			}
			continue
		}

		r.log.Info().Str("contributor", name).Str("external_person", uuid).Msg("created external person")
		if err := m.Resolve(name, types.Identity{
			State:              types.External,
			ExternalPersonUUID: uuid,
			FirstName:          cur.FirstName,
			LastName:           cur.LastName,
		}); err != nil {
			return err
		}
	}
	return nil
}
