// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation derives the organizations credited on a research output
// from the affiliations of its internal contributors.
package affiliation

import (
	"github.com/pdiddy/pure-import/pkg/types"
)

// Result holds the aggregated organizations of one output.
type Result struct {
	// Organizations lists each organization once, in first-seen order.
	Organizations []string

	// ManagingOrganization is the first affiliation of the first internal
	// contributor that has any. Empty when no internal contributor does.
	ManagingOrganization string
}

// Aggregate deduplicates every internal contributor's affiliations in place
// (keeping the first occurrence) and returns the output-level organizations.
// External and dropped contributors contribute nothing. Calling it twice on the
// same map yields the same result.
func Aggregate(m *types.ContributorMap) Result {
	var res Result
	seen := make(map[string]bool)

	var names []string
	m.Each(func(name string, id types.Identity) {
		if id.State == types.Internal {
			names = append(names, name)
		}
	})

	for _, name := range names {
		id, _ := m.Get(name)
		orgs := Dedup(id.Affiliations)
		m.SetAffiliations(name, orgs)

		if res.ManagingOrganization == "" && len(orgs) > 0 {
			res.ManagingOrganization = orgs[0]
		}
		for _, org := range orgs {
			if !seen[org] {
				seen[org] = true
				res.Organizations = append(res.Organizations, org)
			}
		}
	}
	return res
}

// Dedup returns orgs without repeats, first occurrence wins.
func Dedup(orgs []string) []string {
	if orgs == nil {
		return nil
	}
	seen := make(map[string]bool, len(orgs))
	out := make([]string, 0, len(orgs))
	for _, org := range orgs {
		if seen[org] {
			continue
		}
		seen[org] = true
		out = append(out, org)
	}
	return out
}
