// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/pure-import/pkg/types"
)

// languageURIs maps OpenAlex ISO 639-1 codes to Pure language classifications.
// Unknown languages map to "", leaving the configured default in effect.
var languageURIs = map[string]string{
	"en": "/dk/atira/pure/core/languages/en_GB",
	"nl": "/dk/atira/pure/core/languages/nl_NL",
	"de": "/dk/atira/pure/core/languages/de_DE",
	"fr": "/dk/atira/pure/core/languages/fr_FR",
	"es": "/dk/atira/pure/core/languages/es_ES",
	"it": "/dk/atira/pure/core/languages/it_IT",
	"pt": "/dk/atira/pure/core/languages/pt_PT",
}

// outputTypes maps OpenAlex and Crossref work types to output types.
var outputTypes = map[string]types.OutputType{
	"article":             types.OutputArticle,
	"journal-article":     types.OutputArticle,
	"review":              types.OutputArticle,
	"letter":              types.OutputArticle,
	"editorial":           types.OutputArticle,
	"book":                types.OutputBook,
	"monograph":           types.OutputBook,
	"edited-book":         types.OutputBook,
	"dissertation":        types.OutputDissertation,
	"proceedings-article": types.OutputConferenceProceeding,
	"proceedings":         types.OutputConferenceProceeding,
}

// OutputTypeFor returns the output type of w. Crossref's type wins because it
// distinguishes proceedings articles, which OpenAlex reports as "article".
// Unmapped types pass through unchanged and fail later at assembly.
func OutputTypeFor(w *Work) types.OutputType {
	if t, ok := outputTypes[w.TypeCrossref]; ok {
		return t
	}
	if t, ok := outputTypes[w.Type]; ok {
		return t
	}
	if w.Type != "" {
		return types.OutputType(w.Type)
	}
	return types.OutputType(w.TypeCrossref)
}

// ToRecord maps an OpenAlex work to an import record.
func ToRecord(w *Work, peerReview bool) types.Record {
	rec := types.Record{
		ID:              w.ID,
		Title:           w.Title,
		DOI:             strings.TrimPrefix(strings.ToLower(w.DOI), doiResolver),
		Type:            OutputTypeFor(w),
		PublicationYear: w.PublicationYear,
		LanguageURI:     languageURIs[strings.ToLower(w.Language)],
		PeerReview:      peerReview,
		JournalISSN:     issn(w.PrimaryLocation),
	}
	if rec.Title == "" {
		rec.Title = w.DisplayName
	}
	if rec.ID == "" {
		rec.ID = rec.DOI
	}

	if t, err := time.Parse(types.DateLayout, w.PublicationDate); err == nil {
		rec.PublicationDate = w.PublicationDate
		rec.PublicationYear = t.Year()
		rec.PublicationMonth = int(t.Month())
	} else if w.PublicationYear > 0 {
		rec.PublicationDate = fmt.Sprintf("%04d-01-01", w.PublicationYear)
	}

	for _, kw := range w.Keywords {
		if kw.DisplayName != "" {
			rec.Keywords = append(rec.Keywords, kw.DisplayName)
		}
	}

	rec.Contributors = contributors(w.Authorships)
	return rec
}

func issn(loc *Location) string {
	if loc == nil || loc.Source == nil {
		return ""
	}
	if loc.Source.ISSNL != "" {
		return loc.Source.ISSNL
	}
	if len(loc.Source.ISSN) > 0 {
		return loc.Source.ISSN[0]
	}
	return ""
}

// contributors maps authorships in author order. Contributor names must be
// unique within a roster, so a repeated display name gets a numeric suffix.
func contributors(authorships []Authorship) []types.Contributor {
	var out []types.Contributor
	seen := make(map[string]int)
	for _, a := range authorships {
		display := a.Author.DisplayName
		if display == "" {
			display = a.RawAuthorName
		}
		if display == "" {
			continue
		}

		first, last := SplitName(display)
		name := display
		seen[display]++
		if n := seen[display]; n > 1 {
			name = fmt.Sprintf("%s (%d)", display, n)
		}

		c := types.Contributor{Name: name, FirstName: first, LastName: last}
		if a.Author.ID != "" {
			c.IDs = append(c.IDs, a.Author.ID)
		}
		if a.Author.ORCID != "" {
			c.IDs = append(c.IDs, a.Author.ORCID)
		}
		out = append(out, c)
	}
	return out
}
