// Package crossref provides a client for the CrossRef works API.
package crossref

// response is the envelope CrossRef wraps every single-work payload in.
type response struct {
	Status  string `json:"status"`
	Message Work   `json:"message"`
}

// Work is a work record as returned by the CrossRef API. Fields not listed
// here are ignored; CrossRef records are sparsely populated and any field
// may be absent.
type Work struct {
	DOI                 string      `json:"DOI"`
	Type                string      `json:"type,omitempty"`
	Title               []string    `json:"title,omitempty"`
	ContainerTitle      []string    `json:"container-title,omitempty"`
	ShortContainerTitle []string    `json:"short-container-title,omitempty"`
	ISSN                []string    `json:"ISSN,omitempty"`
	Author              []Author    `json:"author,omitempty"`
	PublishedPrint      *DateParts  `json:"published-print,omitempty"`
	PublishedOnline     *DateParts  `json:"published-online,omitempty"`
	Volume              string      `json:"volume,omitempty"`
	Issue               string      `json:"issue,omitempty"`
	Page                string      `json:"page,omitempty"`
	Publisher           string      `json:"publisher,omitempty"`
	URL                 string      `json:"URL,omitempty"`
	ReferencesCount     int         `json:"references-count,omitempty"`
	IsReferencedByCount int         `json:"is-referenced-by-count,omitempty"`
	Reference           []Reference `json:"reference,omitempty"`
}

// Author is one contributor entry on a work. Institutional authors carry
// only Name; personal authors carry Given/Family and sometimes an ORCID URL.
type Author struct {
	Given    string `json:"given,omitempty"`
	Family   string `json:"family,omitempty"`
	Name     string `json:"name,omitempty"`
	ORCID    string `json:"ORCID,omitempty"`
	Sequence string `json:"sequence,omitempty"`
}

// DateParts is CrossRef's nested date encoding: [[year, month, day]] with
// the inner components optional from the right.
type DateParts struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the year component, or 0 if the record has none.
func (d *DateParts) Year() int {
	if d == nil || len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}

// Reference is one cited-reference entry on a work. CrossRef reports the
// author field as a single string (usually the first author's family name)
// and the year as a string.
type Reference struct {
	Key          string `json:"key,omitempty"`
	DOI          string `json:"DOI,omitempty"`
	ArticleTitle string `json:"article-title,omitempty"`
	VolumeTitle  string `json:"volume-title,omitempty"`
	Author       string `json:"author,omitempty"`
	Year         string `json:"year,omitempty"`
	JournalTitle string `json:"journal-title,omitempty"`
	Volume       string `json:"volume,omitempty"`
	Issue        string `json:"issue,omitempty"`
	FirstPage    string `json:"first-page,omitempty"`
}
