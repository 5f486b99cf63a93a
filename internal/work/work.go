// Package work defines the normalized work record and its projection
// from raw CrossRef records.
package work

import (
	"github.com/matsen/citebridge/internal/crossref"
)

// DefaultTitle is used when a record carries no title at all.
const DefaultTitle = "Untitled"

// Known work types. Unrecognized registry types are kept verbatim for
// display; formatting treats them as articles.
const (
	TypeArticle            = "article"
	TypeBook               = "book"
	TypeBookChapter        = "book-chapter"
	TypeProceedingsArticle = "proceedings-article"
	TypeReport             = "report"
	TypeThesis             = "thesis"
)

// Work is the canonical projection of a raw registry record.
//
// Title and Type are always populated (with defaults); every other field
// is optional and stays absent in JSON when the source record has no
// value, so callers can tell missing data from real empty strings.
type Work struct {
	DOI       string            `json:"doi"`
	Title     string            `json:"title"`
	Type      string            `json:"type"`
	Authors   []crossref.Author `json:"authors"` // citation order, significant
	Year      int               `json:"year,omitempty"`
	Venue     Venue             `json:"venue"`
	Volume    string            `json:"volume,omitempty"`
	Issue     string            `json:"issue,omitempty"`
	Pages     string            `json:"pages,omitempty"`
	Publisher string            `json:"publisher,omitempty"`
	URL       string            `json:"url,omitempty"`
	Counts    Counts            `json:"counts"`
}

// Venue describes where a work was published.
type Venue struct {
	FullName    string   `json:"full_name,omitempty"`
	Abbreviated string   `json:"abbreviated,omitempty"`
	ISSN        []string `json:"issn,omitempty"`
}

// Counts holds the citation counters reported by the registry.
type Counts struct {
	References int `json:"references_count"`
	CitedBy    int `json:"cited_by_count"`
}
