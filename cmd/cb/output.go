package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/matsen/citebridge/internal/author"
	"github.com/matsen/citebridge/internal/refs"
	"github.com/matsen/citebridge/internal/service"
)

// Title truncation length for human-readable listings.
const refTitleMaxLen = 70

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// exitWithError outputs an error in the appropriate format (human or JSON)
// and exits with the code the error class maps to.
func exitWithError(err error) {
	code := ExitError
	if service.IsValidation(err) {
		code = ExitDataError
	}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	} else {
		outputJSON(ErrorResponse{Error: err.Error()})
	}
	os.Exit(code)
}

// printMetadataHuman prints a metadata response in human-readable format.
func printMetadataHuman(m *service.Metadata) {
	fmt.Println(m.Title)
	fmt.Println(strings.Repeat("═", 70))
	fmt.Printf("DOI:     %s\n", m.DOI)
	fmt.Printf("Type:    %s\n", m.Type)
	if m.Year != 0 {
		fmt.Printf("Year:    %d\n", m.Year)
	}
	if m.Venue.FullName != "" {
		fmt.Printf("Venue:   %s\n", m.Venue.FullName)
	}
	if len(m.Authors) > 0 {
		fmt.Printf("Authors: %s\n", formatResolvedAuthors(m.Authors))
	}
	fmt.Printf("Cited:   %d times, cites %d references\n", m.Counts.CitedBy, m.Counts.References)
	fmt.Println()
	fmt.Println(m.BibTeX)
}

// printReferencesHuman prints a reference list in human-readable format.
func printReferencesHuman(list *refs.List) {
	if list.Note != "" {
		fmt.Println(list.Note)
		return
	}
	fmt.Printf("%d references for %s\n\n", list.Count, list.DOI)
	for i, r := range list.References {
		title := r.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%d. %s\n", i+1, truncateString(title, refTitleMaxLen))
		var details []string
		if r.Authors != "" {
			details = append(details, r.Authors)
		}
		if r.Journal != "" {
			details = append(details, r.Journal)
		}
		if r.Year != "" {
			details = append(details, r.Year)
		}
		if r.DOI != "" {
			details = append(details, "doi:"+r.DOI)
		}
		if len(details) > 0 {
			fmt.Printf("   %s\n", strings.Join(details, ", "))
		}
	}
}

// printAuthorsHuman prints a resolved author list in human-readable format.
func printAuthorsHuman(list *service.AuthorList) {
	for i, a := range list.Authors {
		line := fmt.Sprintf("%d. %s", i+1, a.FullName)
		if a.ORCID != "" {
			line += " <" + a.ORCID + ">"
		}
		fmt.Printf("%s [%s]\n", line, a.Source)
	}
}

// formatResolvedAuthors joins resolved author names with commas.
func formatResolvedAuthors(authors []author.Resolved) string {
	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = a.FullName
	}
	return strings.Join(names, ", ")
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
