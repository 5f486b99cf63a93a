// Package refs extracts cited-reference lists from raw work records.
package refs

import (
	"github.com/matsen/citebridge/internal/crossref"
)

// NoReferencesNote explains a zero-length result caused by the record
// carrying no reference list at all, as opposed to an explicitly empty one.
const NoReferencesNote = "No references available for this DOI"

// Stub is one cited reference. Every field is optional; the registry
// populates references unevenly and missing values stay absent rather
// than becoming empty-string placeholders.
type Stub struct {
	Key     string `json:"key,omitempty"`
	DOI     string `json:"doi,omitempty"`
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Year    string `json:"year,omitempty"`
	Journal string `json:"journal,omitempty"`
	Volume  string `json:"volume,omitempty"`
	Issue   string `json:"issue,omitempty"`
	Pages   string `json:"pages,omitempty"`
}

// List is the reference list of one work. References is always present,
// possibly empty. Note is set only when the source record has no
// reference field at all, so callers can tell "none recorded" from
// "recorded as empty".
type List struct {
	DOI        string `json:"doi"`
	Count      int    `json:"references_count"`
	References []Stub `json:"references"`
	Note       string `json:"note,omitempty"`
}

// Extract maps the reference list of a raw work record.
func Extract(raw *crossref.Work) List {
	list := List{
		DOI:        crossref.NormalizeDOI(raw.DOI),
		References: []Stub{},
	}

	if raw.Reference == nil {
		list.Note = NoReferencesNote
		return list
	}

	list.Count = len(raw.Reference)
	list.References = make([]Stub, len(raw.Reference))
	for i, r := range raw.Reference {
		list.References[i] = mapReference(r)
	}
	return list
}

// mapReference maps one registry reference entry. The title prefers
// article-title over volume-title; everything else maps one to one.
func mapReference(r crossref.Reference) Stub {
	title := r.ArticleTitle
	if title == "" {
		title = r.VolumeTitle
	}
	return Stub{
		Key:     r.Key,
		DOI:     r.DOI,
		Title:   title,
		Authors: r.Author,
		Year:    r.Year,
		Journal: r.JournalTitle,
		Volume:  r.Volume,
		Issue:   r.Issue,
		Pages:   r.FirstPage,
	}
}
