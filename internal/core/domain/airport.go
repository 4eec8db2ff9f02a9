package domain

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Airport is an entry in the airport directory. Records are built once per
// catalog load and never mutated in place.
type Airport struct {
	// Code is the stable identifier issued by the upstream catalog.
	Code string `json:"code"`

	// Title is the canonical station name, e.g. "Шереметьево".
	Title string `json:"title"`

	// Settlement is the city the station belongs to, e.g. "Москва".
	Settlement string `json:"settlement"`

	Region  string `json:"region"`
	Country string `json:"country"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Aliases are alternate names the station is known under: the settlement
	// name, the station title, combined forms and the IATA code. The same
	// alias may legitimately appear on multiple records.
	Aliases []string `json:"aliases"`
}

// Matches reports whether query is an exact (case-insensitive) match on the
// settlement, the title, or any alias.
func (a Airport) Matches(query string) bool {
	q := normalizeQuery(query)

	if q == strings.ToLower(a.Settlement) {
		return true
	}
	if q == strings.ToLower(a.Title) {
		return true
	}
	for _, alias := range a.Aliases {
		if q == strings.ToLower(alias) {
			return true
		}
	}
	return false
}

// SimilarityScore computes how well the record matches query, in [0, 1].
// Exact matches score 1.0; otherwise the score is the maximum normalized
// string similarity across the settlement, the title and every alias.
func (a Airport) SimilarityScore(query string) float64 {
	if a.Matches(query) {
		return 1.0
	}

	q := normalizeQuery(query)

	best := similarity(q, strings.ToLower(a.Settlement))
	if s := similarity(q, strings.ToLower(a.Title)); s > best {
		best = s
	}
	for _, alias := range a.Aliases {
		if s := similarity(q, strings.ToLower(alias)); s > best {
			best = s
		}
	}
	return best
}

// similarity is a symmetric normalized similarity in [0, 1] based on
// Levenshtein distance over runes.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}
