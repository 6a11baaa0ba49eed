// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// IdentityState is the resolution state of one contributor.
// Transitions: Unresolved -> Internal | External | Dropped. Nothing else.
type IdentityState int

// Identity states.
const (
	Unresolved IdentityState = iota
	Internal
	External
	Dropped
)

func (s IdentityState) String() string {
	switch s {
	case Internal:
		return "internal"
	case External:
		return "external"
	case Dropped:
		return "dropped"
	default:
		return "unresolved"
	}
}

// Identity is the resolved identity of a contributor.
type Identity struct {
	State IdentityState

	// PersonUUID is set for Internal identities.
	PersonUUID string

	// ExternalPersonUUID is set for External identities.
	ExternalPersonUUID string

	FirstName string
	LastName  string

	// Affiliations holds organization UUIDs of an Internal identity, in the
	// order the directory returned them.
	Affiliations []string

	// AsOf is the reference date the Internal identity was resolved for.
	AsOf time.Time
}

// Affiliation is a time-scoped association between a person and an organization.
// Zero ValidFrom or ValidTo means the period is open on that side.
type Affiliation struct {
	OrganizationUUID string    `json:"organization_uuid" yaml:"organization_uuid"`
	ValidFrom        time.Time `json:"valid_from,omitempty" yaml:"valid_from,omitempty"`
	ValidTo          time.Time `json:"valid_to,omitempty" yaml:"valid_to,omitempty"`
}

// ActiveAt reports whether the affiliation covers t. The zero t matches every period.
func (a Affiliation) ActiveAt(t time.Time) bool {
	return periodCovers(a.ValidFrom, a.ValidTo, t)
}

// PersonRecord is an internal person as held by the person directory.
type PersonRecord struct {
	UUID        string   `json:"uuid" yaml:"uuid"`
	FirstName   string   `json:"first_name" yaml:"first_name"`
	LastName    string   `json:"last_name" yaml:"last_name"`
	Identifiers []string `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`

	// EmployedFrom and EmployedTo bound the period the person counts as internal.
	EmployedFrom time.Time `json:"employed_from,omitempty" yaml:"employed_from,omitempty"`
	EmployedTo   time.Time `json:"employed_to,omitempty" yaml:"employed_to,omitempty"`

	Affiliations []Affiliation `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// EmployedAt reports whether the person is internal at t.
func (p PersonRecord) EmployedAt(t time.Time) bool {
	return periodCovers(p.EmployedFrom, p.EmployedTo, t)
}

func periodCovers(from, to, t time.Time) bool {
	if t.IsZero() {
		return true
	}
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// ContributorMap maps contributor names to identities, preserving roster order.
// Entries are created Unresolved and may change state exactly once.
type ContributorMap struct {
	order   []string
	entries map[string]Identity
}

// NewContributorMap creates an Unresolved entry per contributor. Names must be
// unique within the roster.
func NewContributorMap(contributors []Contributor) (*ContributorMap, error) {
	m := &ContributorMap{
		order:   make([]string, 0, len(contributors)),
		entries: make(map[string]Identity, len(contributors)),
	}
	for _, c := range contributors {
		if _, dup := m.entries[c.Name]; dup {
			return nil, fmt.Errorf("duplicate contributor name %q", c.Name)
		}
		m.order = append(m.order, c.Name)
		m.entries[c.Name] = Identity{State: Unresolved, FirstName: c.FirstName, LastName: c.LastName}
	}
	return m, nil
}

// Len returns the number of entries, which equals the roster size.
func (m *ContributorMap) Len() int { return len(m.order) }

// Names returns contributor names in roster order.
func (m *ContributorMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Get returns the identity for name.
func (m *ContributorMap) Get(name string) (Identity, bool) {
	id, ok := m.entries[name]
	return id, ok
}

// Resolve moves an Unresolved entry to its final state.
func (m *ContributorMap) Resolve(name string, id Identity) error {
	cur, ok := m.entries[name]
	if !ok {
		return fmt.Errorf("unknown contributor %q", name)
	}
	if cur.State != Unresolved {
		return fmt.Errorf("contributor %q already %s", name, cur.State)
	}
	if id.State == Unresolved {
		return fmt.Errorf("contributor %q: cannot resolve to %s", name, id.State)
	}
	m.entries[name] = id
	return nil
}

// SetAffiliations replaces the affiliation list of an Internal entry.
func (m *ContributorMap) SetAffiliations(name string, orgs []string) {
	id, ok := m.entries[name]
	if !ok || id.State != Internal {
		return
	}
	id.Affiliations = orgs
	m.entries[name] = id
}

// Each calls fn for every entry in roster order.
func (m *ContributorMap) Each(fn func(name string, id Identity)) {
	for _, name := range m.order {
		fn(name, m.entries[name])
	}
}

// Count returns the number of entries in state s.
func (m *ContributorMap) Count(s IdentityState) int {
	n := 0
	for _, id := range m.entries {
		if id.State == s {
			n++
		}
	}
	return n
}
