// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

// OpenAlex works API JSON structures. Only the fields the import maps are kept.

// Work is a single OpenAlex work.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationDate string       `json:"publication_date"`
	PublicationYear int          `json:"publication_year"`
	Language        string       `json:"language"`
	Type            string       `json:"type"`
	TypeCrossref    string       `json:"type_crossref"`
	PrimaryLocation *Location    `json:"primary_location"`
	Authorships     []Authorship `json:"authorships"`
	Keywords        []Keyword    `json:"keywords"`
}

// Location is where a work is hosted.
type Location struct {
	Source *Source `json:"source"`
}

// Source is the venue of a location, typically a journal.
type Source struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	ISSNL       string   `json:"issn_l"`
	ISSN        []string `json:"issn"`
	Type        string   `json:"type"`
}

// Authorship links a work to one author.
type Authorship struct {
	AuthorPosition string `json:"author_position"`
	Author         Author `json:"author"`
	RawAuthorName  string `json:"raw_author_name"`
}

// Author is an OpenAlex author.
type Author struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	ORCID       string `json:"orcid"`
}

// Keyword is a keyword OpenAlex assigned to a work.
type Keyword struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}
