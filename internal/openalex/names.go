// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"strings"
)

// particles are lowercase name particles that belong to the family name.
var particles = map[string]bool{
	"van": true, "von": true, "de": true, "del": true, "della": true, "di": true,
	"da": true, "le": true, "la": true, "du": true, "des": true, "den": true,
	"der": true, "het": true, "ter": true, "ten": true, "op": true, "ibn": true,
	"bin": true, "dos": true, "das": true,
}

// SplitName splits a display name into first and last name. It accepts
// "Last, First" and "First Middle Last" and keeps particles with the family
// name, so "Dávid van der Berg" splits into "Dávid" and "van der Berg".
// A single word is treated as the last name.
func SplitName(name string) (first, last string) {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "", ""
	}

	if family, given, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(given), strings.TrimSpace(family)
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return "", parts[0]
	}

	start := len(parts) - 1
	for start > 1 && particles[strings.ToLower(parts[start-1])] {
		start--
	}
	return strings.Join(parts[:start], " "), strings.Join(parts[start:], " ")
}
