// Package bibtex generates citation keys and BibTeX entries from
// normalized work records, and sanitizes registry-exported entries.
package bibtex

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/matsen/citebridge/internal/author"
	"github.com/matsen/citebridge/internal/work"
)

// Kind identifies how an entry was produced.
type Kind string

const (
	// KindDirect marks an entry obtained from the registry's own
	// content-negotiated export.
	KindDirect Kind = "direct"
	// KindGenerated marks an entry generated locally from the
	// normalized record.
	KindGenerated Kind = "generated"
)

// Result is the two-variant outcome of the enhance-then-fallback branch:
// either the upstream serialization or the inputs to generate one.
type Result struct {
	Kind    Kind
	Text    string // direct only
	Work    *work.Work
	Authors []author.Resolved
}

// Render produces the final entry text for either variant. The direct
// variant is never trusted as-is: it passes through the same abstract
// stripping and title bracing invariants the generator guarantees.
func Render(r Result) string {
	if r.Kind == KindDirect {
		return Sanitize(r.Text)
	}
	return Format(r.Work, r.Authors)
}

// entryTypes maps normalized work types to BibTeX entry types. Anything
// not listed formats as an article.
var entryTypes = map[string]string{
	work.TypeArticle:            "article",
	work.TypeBook:               "book",
	work.TypeBookChapter:        "incollection",
	work.TypeProceedingsArticle: "inproceedings",
	work.TypeReport:             "techreport",
	work.TypeThesis:             "phdthesis",
	"dissertation":              "phdthesis",
}

// EntryType returns the BibTeX entry type for a work type.
func EntryType(workType string) string {
	if t, ok := entryTypes[workType]; ok {
		return t
	}
	return "article"
}

// nonAlphanumeric matches everything stripped from citation keys.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CiteKey builds a citation key from the first author's family name and
// the year: "LeCun2015". Non-alphanumerics are stripped so the key is
// always safe inside a BibTeX key position. A missing year defaults to
// the current calendar year here, and only here.
func CiteKey(w *work.Work, authors []author.Resolved) string {
	family := "Unknown"
	if len(authors) > 0 && authors[0].Family != "" {
		family = authors[0].Family
	}
	family = nonAlphanumeric.ReplaceAllString(family, "")
	if family == "" {
		family = "Unknown"
	}

	year := w.Year
	if year == 0 {
		year = time.Now().Year()
	}

	return fmt.Sprintf("%s%d", family, year)
}

// Format generates a BibTeX entry for a work and its resolved authors.
// The title is always double-brace-wrapped to force case preservation in
// consuming typesetting tools. Optional fields are emitted only when
// non-empty, and the last field line carries no trailing comma.
func Format(w *work.Work, authors []author.Resolved) string {
	entryType := EntryType(w.Type)
	year := w.Year
	if year == 0 {
		year = time.Now().Year()
	}

	fields := []string{
		fmt.Sprintf("title = {{%s}}", escapeLatex(w.Title)),
		fmt.Sprintf("author = {%s}", formatAuthors(authors)),
		fmt.Sprintf("year = {%d}", year),
	}

	// journal for articles, booktitle for collection/proceedings papers,
	// no venue field for anything else even when one exists.
	if w.Venue.FullName != "" {
		switch entryType {
		case "article":
			fields = append(fields, fmt.Sprintf("journal = {%s}", escapeLatex(w.Venue.FullName)))
		case "incollection", "inproceedings":
			fields = append(fields, fmt.Sprintf("booktitle = {%s}", escapeLatex(w.Venue.FullName)))
		}
	}
	if w.Publisher != "" {
		fields = append(fields, fmt.Sprintf("publisher = {%s}", escapeLatex(w.Publisher)))
	}
	if w.Volume != "" {
		fields = append(fields, fmt.Sprintf("volume = {%s}", w.Volume))
	}
	if w.Issue != "" {
		fields = append(fields, fmt.Sprintf("number = {%s}", w.Issue))
	}
	if w.Pages != "" {
		fields = append(fields, fmt.Sprintf("pages = {%s}", w.Pages))
	}
	if w.DOI != "" {
		fields = append(fields, fmt.Sprintf("doi = {%s}", w.DOI))
	}
	if w.URL != "" {
		fields = append(fields, fmt.Sprintf("url = {%s}", w.URL))
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("@%s{%s,\n", entryType, CiteKey(w, authors)))
	b.WriteString("  " + strings.Join(fields, ",\n  "))
	b.WriteString("\n}")
	return b.String()
}

// formatAuthors joins full names with " and ". An empty author list still
// yields a usable value.
func formatAuthors(authors []author.Resolved) string {
	if len(authors) == 0 {
		return author.Unknown
	}
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = escapeLatex(a.FullName)
	}
	return strings.Join(names, " and ")
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	// Order matters: & must be first (before other escapes that might produce &)
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
