// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// OutputType classifies a research output. The value drives type-specific
// enrichment and the classification URIs of the submitted document.
type OutputType string

const (
	OutputArticle              OutputType = "article"
	OutputDissertation         OutputType = "dissertation"
	OutputBook                 OutputType = "book"
	OutputConferenceProceeding OutputType = "conference proceeding"
)

// Contributor is one author of a research output as harvested.
// Name is unique within a single output's roster.
type Contributor struct {
	Name      string   `json:"name" yaml:"name"`
	FirstName string   `json:"first_name" yaml:"first_name"`
	LastName  string   `json:"last_name" yaml:"last_name"`
	IDs       []string `json:"ids,omitempty" yaml:"ids,omitempty"`
}

// Record is one harvested and normalized research output row.
type Record struct {
	// ID identifies the record in logs and reports (typically the DOI or an OpenAlex id).
	ID string `json:"research_output_id" yaml:"research_output_id"`

	Title string     `json:"title" yaml:"title"`
	DOI   string     `json:"doi" yaml:"doi"`
	Type  OutputType `json:"type" yaml:"type"`

	// PublicationDate (YYYY-MM-DD) is the reference date for contributor resolution.
	PublicationDate  string `json:"publication_date" yaml:"publication_date"`
	PublicationYear  int    `json:"publication_year" yaml:"publication_year"`
	PublicationMonth int    `json:"publication_month,omitempty" yaml:"publication_month,omitempty"`

	LanguageURI string   `json:"language_uri,omitempty" yaml:"language_uri,omitempty"`
	PeerReview  bool     `json:"peer_review" yaml:"peer_review"`
	JournalISSN string   `json:"journal_issn,omitempty" yaml:"journal_issn,omitempty"`
	Keywords    []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	VisibilityKey string `json:"visibility_key,omitempty" yaml:"visibility_key,omitempty"`
	WorkflowStep  string `json:"workflow_step,omitempty" yaml:"workflow_step,omitempty"`

	// Contributors lists authors in source order.
	Contributors []Contributor `json:"contributors" yaml:"contributors"`
}

// DateLayout is the on-disk layout of Record.PublicationDate.
const DateLayout = "2006-01-02"

// ReferenceDate parses PublicationDate. An empty date yields the zero time,
// which the person directory treats as "any date".
func (r Record) ReferenceDate() (time.Time, error) {
	if r.PublicationDate == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, r.PublicationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid publication_date %q: %w", r.PublicationDate, err)
	}
	return t, nil
}

// ResearchOutput is a Record plus everything the pipeline derives for it.
// The pipeline owns one ResearchOutput per record and fills it in stage by stage.
type ResearchOutput struct {
	Record Record

	// Contributors is the finalized resolution of Record.Contributors.
	Contributors *ContributorMap

	// Organizations is the deduplicated affiliation set across internal contributors.
	Organizations []string

	// ManagingOrganization is empty when no internal contributor has an affiliation.
	ManagingOrganization string

	// JournalUUID is empty when the journal could not be found.
	JournalUUID string
}

// NewResearchOutput wraps a record for processing.
func NewResearchOutput(rec Record) *ResearchOutput {
	return &ResearchOutput{Record: rec}
}
