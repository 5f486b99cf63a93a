package work

import (
	"errors"

	"github.com/matsen/citebridge/internal/crossref"
)

// ErrMissingDOI is returned for records without a DOI. The DOI is the
// lookup key, so a DOI-less record means the input is malformed rather
// than merely sparse.
var ErrMissingDOI = errors.New("work record has no DOI")

// Normalize projects a raw CrossRef record into a Work. It is pure: no
// network calls, no clock reads. A missing year stays absent here; the
// current-year default belongs to the formatting step only.
func Normalize(raw *crossref.Work) (*Work, error) {
	if raw == nil || raw.DOI == "" {
		return nil, ErrMissingDOI
	}

	w := &Work{
		DOI:       crossref.NormalizeDOI(raw.DOI),
		Title:     firstOrDefault(raw.Title, DefaultTitle),
		Type:      workType(raw.Type),
		Authors:   raw.Author,
		Year:      year(raw),
		Venue:     venue(raw),
		Volume:    raw.Volume,
		Issue:     raw.Issue,
		Pages:     raw.Page,
		Publisher: raw.Publisher,
		URL:       raw.URL,
		Counts: Counts{
			References: raw.ReferencesCount,
			CitedBy:    raw.IsReferencedByCount,
		},
	}
	return w, nil
}

// workType keeps the registry's type string for display, defaulting to
// article when the record carries none.
func workType(t string) string {
	if t == "" {
		return TypeArticle
	}
	return t
}

// year resolves the publication year, preferring the print date over the
// online date. Returns 0 when neither is present.
func year(raw *crossref.Work) int {
	if y := raw.PublishedPrint.Year(); y != 0 {
		return y
	}
	return raw.PublishedOnline.Year()
}

// venue builds the venue record. The abbreviation falls back to the full
// container title when the record has no distinct short form.
func venue(raw *crossref.Work) Venue {
	v := Venue{
		FullName: firstOrDefault(raw.ContainerTitle, ""),
		ISSN:     raw.ISSN,
	}
	v.Abbreviated = firstOrDefault(raw.ShortContainerTitle, v.FullName)
	return v
}

func firstOrDefault(list []string, def string) string {
	if len(list) == 0 || list[0] == "" {
		return def
	}
	return list[0]
}
