// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package payload renders a reconciled research output into the document
// submitted to the Pure research-outputs API.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/pkg/types"
)

// ErrUnsupportedType is returned for output types without a classification.
var ErrUnsupportedType = errors.New("unsupported output type")

// Assembler builds submission payloads. It performs no I/O.
type Assembler struct {
	cfg types.ImportConfig
	log zerolog.Logger
}

// NewAssembler returns an Assembler using cfg for values a record leaves empty.
func NewAssembler(cfg types.ImportConfig, log zerolog.Logger) *Assembler {
	return &Assembler{cfg: cfg, log: log}
}

// Assemble renders out. The contributor map must be fully resolved.
// Dropped contributors are left out of the contributor list but still count
// toward totalNumberOfContributors.
func (a *Assembler) Assemble(out *types.ResearchOutput) (*types.SubmissionPayload, error) {
	rec := out.Record
	cls, ok := classifications[rec.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, rec.Type)
	}
	if out.Contributors == nil {
		return nil, errors.New("research output has no resolved contributors")
	}

	contributors, err := a.contributors(out.Contributors, cls)
	if err != nil {
		return nil, err
	}

	p := &types.SubmissionPayload{
		TypeDiscriminator:         cls.discriminator,
		PeerReview:                rec.PeerReview,
		Title:                     types.FormattedString{Value: rec.Title},
		Type:                      types.ClassificationRef{URI: cls.typeURI},
		Category:                  types.ClassificationRef{URI: categoryAcademic},
		PublicationStatuses:       []types.PublicationStatus{publicationStatus(rec)},
		Language:                  types.ClassificationRef{URI: or(rec.LanguageURI, a.cfg.DefaultLanguageURI)},
		Contributors:              contributors,
		Organizations:             organizations(out.Organizations),
		TotalNumberOfContributors: out.Contributors.Len(),
		ManagingOrganization:      types.NewSystemRef(SystemOrganization, out.ManagingOrganization),
		ElectronicVersions:        []types.ElectronicVersion{},
		Links:                     []types.Link{},
		Visibility:                types.Visibility{Key: or(rec.VisibilityKey, a.cfg.VisibilityKey)},
		Workflow:                  types.Workflow{Step: or(rec.WorkflowStep, a.cfg.WorkflowStep)},
		Identifiers:               []any{},
		KeywordGroups:             keywordGroups(rec.Keywords),
		SystemName:                SystemResearchOutput,
	}

	if rec.DOI != "" {
		p.ElectronicVersions = append(p.ElectronicVersions, types.ElectronicVersion{
			TypeDiscriminator: "DoiElectronicVersion",
			AccessType:        types.ClassificationRef{URI: accessUnknown},
			DOI:               rec.DOI,
			VersionType:       types.ClassificationRef{URI: versionPublishers},
		})
		p.Links = append(p.Links, types.Link{URL: doiResolver + rec.DOI})
	}

	if cls.journal {
		p.JournalAssociation = &types.JournalAssociation{
			Journal: types.NewSystemRef(SystemJournal, out.JournalUUID),
		}
	}

	if e := a.log.Debug(); e.Enabled() {
		if doc, err := json.Marshal(p); err == nil {
			e.Str("record", rec.ID).RawJSON("payload", doc).Msg("assembled payload")
		}
	}
	return p, nil
}

func (a *Assembler) contributors(m *types.ContributorMap, cls classification) ([]types.ContributorAssociation, error) {
	role := types.Role{URI: cls.roleURI, Term: map[string]string{defaultLocale: "Author"}}
	list := make([]types.ContributorAssociation, 0, m.Len())

	var err error
	m.Each(func(name string, id types.Identity) {
		if err != nil {
			return
		}
		assoc := types.ContributorAssociation{
			Name: types.PersonName{FirstName: id.FirstName, LastName: id.LastName},
			Role: role,
		}
		switch id.State {
		case types.Internal:
			person := types.NewSystemRef(SystemPerson, id.PersonUUID)
			assoc.TypeDiscriminator = "InternalContributorAssociation"
			assoc.Person = &person
			assoc.Organizations = organizations(id.Affiliations)
		case types.External:
			ext := types.NewSystemRef(SystemExternalPerson, id.ExternalPersonUUID)
			assoc.TypeDiscriminator = "ExternalContributorAssociation"
			assoc.ExternalPerson = &ext
		case types.Dropped:
			a.log.Debug().Str("contributor", name).Msg("dropped contributor left out of payload")
			return
		default:
			err = fmt.Errorf("contributor %q is %s", name, id.State)
			return
		}
		list = append(list, assoc)
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func publicationStatus(rec types.Record) types.PublicationStatus {
	date := types.CompoundDate{Year: rec.PublicationYear, Month: rec.PublicationMonth}
	if date.Year == 0 {
		if t, err := rec.ReferenceDate(); err == nil && !t.IsZero() {
			date = types.CompoundDate{Year: t.Year(), Month: int(t.Month())}
		}
	}
	return types.PublicationStatus{
		Current:           true,
		PublicationStatus: types.ClassificationRef{URI: statusPublished},
		PublicationDate:   date,
	}
}

func organizations(uuids []string) []types.SystemRef {
	refs := make([]types.SystemRef, 0, len(uuids))
	for _, uuid := range uuids {
		refs = append(refs, types.NewSystemRef(SystemOrganization, uuid))
	}
	return refs
}

func keywordGroups(keywords []string) []types.KeywordGroup {
	if len(keywords) == 0 {
		return nil
	}
	return []types.KeywordGroup{{
		TypeDiscriminator: "FreeKeywordsKeywordGroup",
		LogicalName:       "keywordContainers",
		Name:              map[string]string{defaultLocale: "Keywords"},
		Keywords:          []types.KeywordContainer{{Locale: defaultLocale, FreeKeywords: keywords}},
	}}
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
