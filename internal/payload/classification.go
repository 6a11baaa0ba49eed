// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package payload

import "github.com/pdiddy/pure-import/pkg/types"

const (
	uriPrefixTypes = "/dk/atira/pure/researchoutput/researchoutputtypes/"
	uriPrefixRoles = "/dk/atira/pure/researchoutput/roles/"

	categoryAcademic  = "/dk/atira/pure/researchoutput/category/academic"
	statusPublished   = "/dk/atira/pure/researchoutput/status/published"
	accessUnknown     = "/dk/atira/pure/core/openaccesspermission/unknown"
	versionPublishers = "/dk/atira/pure/researchoutput/electronicversion/versiontype/publishersversion"
	doiResolver       = "https://doi.org/"
	defaultLocale     = "en_GB"
)

// Pure system names used in content references.
const (
	SystemOrganization   = "Organization"
	SystemPerson         = "Person"
	SystemExternalPerson = "ExternalPerson"
	SystemJournal        = "Journal"
	SystemResearchOutput = "ResearchOutput"
)

// classification is the Pure type information for one output type.
type classification struct {
	discriminator string
	typeURI       string
	roleURI       string
	journal       bool
}

var classifications = map[types.OutputType]classification{
	types.OutputArticle: {
		discriminator: "ContributionToJournal",
		typeURI:       uriPrefixTypes + "contributiontojournal/article",
		roleURI:       uriPrefixRoles + "contributiontojournal/author",
		journal:       true,
	},
	types.OutputBook: {
		discriminator: "BookAnthology",
		typeURI:       uriPrefixTypes + "bookanthology/book",
		roleURI:       uriPrefixRoles + "bookanthology/author",
	},
	types.OutputDissertation: {
		discriminator: "Thesis",
		typeURI:       uriPrefixTypes + "thesis/doc",
		roleURI:       uriPrefixRoles + "thesis/author",
	},
	types.OutputConferenceProceeding: {
		discriminator: "ContributionToBookAnthology",
		typeURI:       uriPrefixTypes + "contributiontobookanthology/conference",
		roleURI:       uriPrefixRoles + "contributiontobookanthology/author",
	},
}

// Supported reports whether t can be assembled.
func Supported(t types.OutputType) bool {
	_, ok := classifications[t]
	return ok
}
