// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// SubmissionPayload is the research-output document accepted by the Pure
// web API (PUT research-outputs). Field names are fixed by that API.
type SubmissionPayload struct {
	TypeDiscriminator         string                   `json:"typeDiscriminator"`
	PeerReview                bool                     `json:"peerReview"`
	Title                     FormattedString          `json:"title"`
	Type                      ClassificationRef        `json:"type"`
	Category                  ClassificationRef        `json:"category"`
	PublicationStatuses       []PublicationStatus      `json:"publicationStatuses"`
	Language                  ClassificationRef        `json:"language"`
	Contributors              []ContributorAssociation `json:"contributors"`
	Organizations             []SystemRef              `json:"organizations"`
	TotalNumberOfContributors int                      `json:"totalNumberOfContributors"`
	ManagingOrganization      SystemRef                `json:"managingOrganization"`
	ElectronicVersions        []ElectronicVersion      `json:"electronicVersions"`
	Links                     []Link                   `json:"links"`
	Visibility                Visibility               `json:"visibility"`
	Workflow                  Workflow                 `json:"workflow"`
	Identifiers               []any                    `json:"identifiers"`
	KeywordGroups             []KeywordGroup           `json:"keywordGroups,omitempty"`
	JournalAssociation        *JournalAssociation      `json:"journalAssociation,omitempty"`
	SystemName                string                   `json:"systemName"`
}

// FormattedString is a plain text value.
type FormattedString struct {
	Value string `json:"value"`
}

// ClassificationRef points at a Pure classification by URI.
type ClassificationRef struct {
	URI string `json:"uri"`
}

// SystemRef references another Pure content item. UUID is null when unknown.
type SystemRef struct {
	SystemName string  `json:"systemName"`
	UUID       *string `json:"uuid"`
}

// NewSystemRef returns a reference with a null UUID when uuid is empty.
func NewSystemRef(systemName, uuid string) SystemRef {
	ref := SystemRef{SystemName: systemName}
	if uuid != "" {
		ref.UUID = &uuid
	}
	return ref
}

// PublicationStatus is one entry of the publication status history.
type PublicationStatus struct {
	Current           bool              `json:"current"`
	PublicationStatus ClassificationRef `json:"publicationStatus"`
	PublicationDate   CompoundDate      `json:"publicationDate"`
}

// CompoundDate is a partial date. Month is omitted when unknown.
type CompoundDate struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// PersonName is the name block on a contributor association.
type PersonName struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Role is the contributor role classification.
type Role struct {
	URI  string            `json:"uri"`
	Term map[string]string `json:"term"`
}

// ContributorAssociation is either an internal or an external contributor.
// Internal associations set Person and Organizations; external ones set
// ExternalPerson. An internal association always carries an organizations
// list, empty when the person had no affiliation at the reference date.
type ContributorAssociation struct {
	TypeDiscriminator   string      `json:"typeDiscriminator"`
	Hidden              bool        `json:"hidden"`
	CorrespondingAuthor bool        `json:"correspondingAuthor"`
	Name                PersonName  `json:"name"`
	Role                Role        `json:"role"`
	Person              *SystemRef  `json:"person,omitempty"`
	ExternalPerson      *SystemRef  `json:"externalPerson,omitempty"`
	Organizations       []SystemRef `json:"organizations,omitempty"`
}

// MarshalJSON emits organizations for internal associations only.
func (c ContributorAssociation) MarshalJSON() ([]byte, error) {
	type plain ContributorAssociation
	if c.Person == nil {
		return json.Marshal(plain(c))
	}
	orgs := c.Organizations
	if orgs == nil {
		orgs = []SystemRef{}
	}
	return json.Marshal(struct {
		plain
		Organizations []SystemRef `json:"organizations"`
	}{plain(c), orgs})
}

// ElectronicVersion is a DOI electronic version.
type ElectronicVersion struct {
	TypeDiscriminator string            `json:"typeDiscriminator"`
	AccessType        ClassificationRef `json:"accessType"`
	DOI               string            `json:"doi"`
	VersionType       ClassificationRef `json:"versionType"`
}

// Link is an external link on the research output.
type Link struct {
	URL string `json:"url"`
}

// Visibility is the portal visibility key.
type Visibility struct {
	Key string `json:"key"`
}

// Workflow is the workflow step the output is created in.
type Workflow struct {
	Step string `json:"step"`
}

// KeywordGroup carries free keywords.
type KeywordGroup struct {
	TypeDiscriminator string             `json:"typeDiscriminator"`
	LogicalName       string             `json:"logicalName"`
	Name              map[string]string  `json:"name"`
	Keywords          []KeywordContainer `json:"keywords"`
}

// KeywordContainer holds the free keywords of one locale.
type KeywordContainer struct {
	Locale       string   `json:"locale"`
	FreeKeywords []string `json:"freeKeywords"`
}

// JournalAssociation links an article to its journal.
type JournalAssociation struct {
	Journal SystemRef `json:"journal"`
}
