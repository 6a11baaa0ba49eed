// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pure-import/internal/directory"
	"github.com/pdiddy/pure-import/internal/logging"
	"github.com/pdiddy/pure-import/mocks"
	"github.com/pdiddy/pure-import/pkg/types"
)

var asOf = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)

var (
	ada   = types.Contributor{Name: "Ada Lovelace", FirstName: "Ada", LastName: "Lovelace"}
	bob   = types.Contributor{Name: "Bob Builder", FirstName: "Bob", LastName: "Builder"}
	carol = types.Contributor{Name: "Carol Danvers", FirstName: "Carol", LastName: "Danvers"}
)

func internalID(uuid string, orgs ...string) *types.Identity {
	return &types.Identity{State: types.Internal, PersonUUID: uuid, Affiliations: orgs, AsOf: asOf}
}

func TestReconcileInternalAndExternal(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)
	res.On("Resolve", mock.Anything, ada, asOf).Return(internalID("p-ada", "org1", "org1", "org2"), nil)
	res.On("Resolve", mock.Anything, bob, asOf).Return(nil, nil)
	prov.On("CreateExternalPerson", mock.Anything, "Bob", "Builder").Return("ext-bob", nil).Once()

	m, err := New(res, prov, zerolog.Nop()).Reconcile(context.Background(), []types.Contributor{ada, bob}, asOf)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"Ada Lovelace", "Bob Builder"}, m.Names())

	a, _ := m.Get("Ada Lovelace")
	assert.Equal(t, types.Internal, a.State)
	assert.Equal(t, "p-ada", a.PersonUUID)
	assert.Equal(t, []string{"org1", "org1", "org2"}, a.Affiliations)

	b, _ := m.Get("Bob Builder")
	assert.Equal(t, types.External, b.State)
	assert.Equal(t, "ext-bob", b.ExternalPersonUUID)
	assert.Equal(t, "Bob", b.FirstName)

	assert.Zero(t, m.Count(types.Unresolved))
	res.AssertExpectations(t)
	prov.AssertExpectations(t)
}

func TestReconcileNoInternalCreatesNothing(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)
	res.On("Resolve", mock.Anything, mock.Anything, asOf).Return(nil, nil)

	m, err := New(res, prov, zerolog.Nop()).Reconcile(context.Background(), []types.Contributor{bob, carol}, asOf)
	assert.ErrorIs(t, err, ErrNoInternalContributors)
	assert.Nil(t, m)
	res.AssertNumberOfCalls(t, "Resolve", 2)
	prov.AssertNotCalled(t, "CreateExternalPerson", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileEmptyRoster(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)

	_, err := New(res, prov, zerolog.Nop()).Reconcile(context.Background(), nil, asOf)
	assert.ErrorIs(t, err, ErrNoInternalContributors)
	prov.AssertNotCalled(t, "CreateExternalPerson", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileProvisioningFailureDrops(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)
	res.On("Resolve", mock.Anything, ada, asOf).Return(internalID("p-ada", "org1"), nil)
	res.On("Resolve", mock.Anything, bob, asOf).Return(nil, nil)
	res.On("Resolve", mock.Anything, carol, asOf).Return(nil, nil)
	prov.On("CreateExternalPerson", mock.Anything, "Bob", "Builder").Return("", errors.New("pure: 500")).Once()
	prov.On("CreateExternalPerson", mock.Anything, "Carol", "Danvers").Return("ext-carol", nil).Once()

	tl := logging.NewTestLogger(t)
	m, err := New(res, prov, tl.Logger).Reconcile(context.Background(), []types.Contributor{ada, bob, carol}, asOf)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	b, _ := m.Get("Bob Builder")
	assert.Equal(t, types.Dropped, b.State)
	assert.Empty(t, b.ExternalPersonUUID)

	c, _ := m.Get("Carol Danvers")
	assert.Equal(t, types.External, c.State)

	assert.Equal(t, 1, m.Count(types.Internal))
	assert.Equal(t, 1, m.Count(types.External))
	assert.Equal(t, 1, m.Count(types.Dropped))
	assert.True(t, tl.Contains("dropping contributor"))
	prov.AssertExpectations(t)
}

func TestReconcileResolverErrorAborts(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)
	res.On("Resolve", mock.Anything, ada, asOf).Return(nil, errors.New("database is locked"))

	_, err := New(res, prov, zerolog.Nop()).Reconcile(context.Background(), []types.Contributor{ada, bob}, asOf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.NotErrorIs(t, err, ErrNoInternalContributors)
	prov.AssertNotCalled(t, "CreateExternalPerson", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileDuplicateNames(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)

	_, err := New(res, prov, zerolog.Nop()).Reconcile(context.Background(), []types.Contributor{ada, ada}, asOf)
	require.Error(t, err)
	res.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcileCanceledContext(t *testing.T) {
	res := new(mocks.MockResolver)
	prov := new(mocks.MockProvisioner)
	res.On("Resolve", mock.Anything, ada, asOf).Return(internalID("p-ada"), nil)
	res.On("Resolve", mock.Anything, bob, asOf).Return(nil, nil)

	r := New(res, prov, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	_, anchor, err := r.ResolveInternal(ctx, []types.Contributor{ada, bob}, asOf)
	require.NoError(t, err)
	require.NotNil(t, anchor)
	cancel()

	assert.ErrorIs(t, r.ProvisionExternal(ctx, anchor), context.Canceled)
	prov.AssertNotCalled(t, "CreateExternalPerson", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveInternalAnchor(t *testing.T) {
	res := new(mocks.MockResolver)
	res.On("Resolve", mock.Anything, ada, asOf).Return(internalID("p-ada"), nil)
	res.On("Resolve", mock.Anything, bob, asOf).Return(nil, nil)
	r := New(res, new(mocks.MockProvisioner), zerolog.Nop())

	m, anchor, err := r.ResolveInternal(context.Background(), []types.Contributor{ada, bob}, asOf)
	require.NoError(t, err)
	require.NotNil(t, anchor)
	assert.Equal(t, 1, anchor.Internal())
	assert.Equal(t, 1, m.Count(types.Unresolved))

	m, anchor, err = r.ResolveInternal(context.Background(), []types.Contributor{bob}, asOf)
	require.NoError(t, err)
	assert.Nil(t, anchor)
	assert.Equal(t, 1, m.Count(types.Unresolved))
}

func TestProvisionExternalRequiresAnchor(t *testing.T) {
	prov := new(mocks.MockProvisioner)
	r := New(new(mocks.MockResolver), prov, zerolog.Nop())

	assert.Error(t, r.ProvisionExternal(context.Background(), nil))
	assert.Error(t, r.ProvisionExternal(context.Background(), &Anchor{}))
	prov.AssertNotCalled(t, "CreateExternalPerson", mock.Anything, mock.Anything, mock.Anything)
}

func TestDirectoryResolver(t *testing.T) {
	adaByID := types.Contributor{Name: "A. Lovelace", FirstName: "Ada", LastName: "Lovelace", IDs: []string{"orcid"}}
	johnSmith := types.Contributor{Name: "John Smith"}
	broken := types.Contributor{Name: "Broken"}

	dir := new(mocks.MockDirectory)
	dir.On("Lookup", mock.Anything, adaByID, asOf).Return(&types.PersonRecord{
		UUID:      "p-ada",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Affiliations: []types.Affiliation{
			{OrganizationUUID: "org1"},
			{OrganizationUUID: "org1"},
			{OrganizationUUID: "org2"},
		},
	}, nil)
	dir.On("Lookup", mock.Anything, bob, asOf).Return(nil, directory.ErrNotFound)
	dir.On("Lookup", mock.Anything, johnSmith, asOf).
		Return(nil, fmt.Errorf("%w: 2 persons", directory.ErrAmbiguous))
	dir.On("Lookup", mock.Anything, broken, asOf).Return(nil, errors.New("disk I/O error"))

	tl := logging.NewTestLogger(t)
	r := NewDirectoryResolver(dir, tl.Logger)
	ctx := context.Background()

	id, err := r.Resolve(ctx, adaByID, asOf)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, types.Internal, id.State)
	assert.Equal(t, "p-ada", id.PersonUUID)
	assert.Equal(t, []string{"org1", "org1", "org2"}, id.Affiliations)
	assert.Equal(t, asOf, id.AsOf)

	id, err = r.Resolve(ctx, bob, asOf)
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = r.Resolve(ctx, johnSmith, asOf)
	assert.NoError(t, err)
	assert.Nil(t, id)
	assert.True(t, tl.Contains("ambiguous directory match"))

	_, err = r.Resolve(ctx, broken, asOf)
	assert.Error(t, err)

	dir.AssertExpectations(t)
}
