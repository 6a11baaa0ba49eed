// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pure-import/pkg/types"
)

func roster(t *testing.T, ids map[string]types.Identity, names ...string) *types.ContributorMap {
	t.Helper()
	var cs []types.Contributor
	for _, n := range names {
		cs = append(cs, types.Contributor{Name: n})
	}
	m, err := types.NewContributorMap(cs)
	require.NoError(t, err)
	for _, n := range names {
		if id, ok := ids[n]; ok {
			require.NoError(t, m.Resolve(n, id))
		}
	}
	return m
}

func TestAggregate(t *testing.T) {
	m := roster(t, map[string]types.Identity{
		"A": {State: types.Internal, PersonUUID: "p-a", Affiliations: []string{"org1", "org1", "org2"}},
		"B": {State: types.External, ExternalPersonUUID: "ext-b"},
	}, "A", "B")

	res := Aggregate(m)
	assert.Equal(t, []string{"org1", "org2"}, res.Organizations)
	assert.Equal(t, "org1", res.ManagingOrganization)

	a, _ := m.Get("A")
	assert.Equal(t, []string{"org1", "org2"}, a.Affiliations)
}

func TestAggregateManagingFromFirstWithAffiliations(t *testing.T) {
	m := roster(t, map[string]types.Identity{
		"A": {State: types.Internal, PersonUUID: "p-a"},
		"B": {State: types.Internal, PersonUUID: "p-b", Affiliations: []string{"org3", "org1"}},
		"C": {State: types.Internal, PersonUUID: "p-c", Affiliations: []string{"org1", "org2", "org3"}},
		"D": {State: types.Dropped},
	}, "A", "B", "C", "D")

	res := Aggregate(m)
	assert.Equal(t, "org3", res.ManagingOrganization)
	assert.Equal(t, []string{"org3", "org1", "org2"}, res.Organizations)
}

func TestAggregateNoAffiliations(t *testing.T) {
	m := roster(t, map[string]types.Identity{
		"A": {State: types.Internal, PersonUUID: "p-a"},
		"B": {State: types.External, ExternalPersonUUID: "ext-b"},
	}, "A", "B")

	res := Aggregate(m)
	assert.Empty(t, res.Organizations)
	assert.Empty(t, res.ManagingOrganization)
}

func TestAggregateIdempotent(t *testing.T) {
	m := roster(t, map[string]types.Identity{
		"A": {State: types.Internal, PersonUUID: "p-a", Affiliations: []string{"org2", "org1", "org2"}},
		"B": {State: types.Internal, PersonUUID: "p-b", Affiliations: []string{"org1", "org4"}},
	}, "A", "B")

	first := Aggregate(m)
	second := Aggregate(m)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"org2", "org1", "org4"}, second.Organizations)
}

func TestDedup(t *testing.T) {
	assert.Nil(t, Dedup(nil))
	assert.Equal(t, []string{}, Dedup([]string{}))
	assert.Equal(t, []string{"a", "b", "c"}, Dedup([]string{"a", "b", "a", "c", "b"}))
}
