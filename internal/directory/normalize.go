// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// identifierPrefixes are stripped so that "https://orcid.org/0000-..." and
// "0000-..." match the same person.
var identifierPrefixes = []string{
	"https://orcid.org/",
	"http://orcid.org/",
	"orcid:",
	"https://openalex.org/",
	"http://openalex.org/",
}

// NameKey folds a personal name for matching: "Last, First" is reordered,
// diacritics and case are folded, and punctuation collapses to single spaces.
// "Grote Beverborg, Dávid" and "david grote-beverborg" yield the same key.
func NameKey(name string) string {
	if i := strings.Index(name, ","); i >= 0 {
		name = strings.TrimSpace(name[i+1:]) + " " + strings.TrimSpace(name[:i])
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, name); err == nil {
		name = folded
	}
	name = cases.Fold().String(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, name)
	return strings.Join(strings.Fields(name), " ")
}

// FullNameKey is NameKey of "first last".
func FullNameKey(first, last string) string {
	return NameKey(strings.TrimSpace(first + " " + last))
}

// NormalizeIdentifier lower-cases an identifier and strips resolver prefixes.
func NormalizeIdentifier(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, p := range identifierPrefixes {
		if strings.HasPrefix(id, p) {
			return strings.TrimPrefix(id, p)
		}
	}
	return id
}
