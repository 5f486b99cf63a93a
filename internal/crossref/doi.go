package crossref

import (
	"regexp"
	"strings"
)

// doiPattern matches a plausible DOI: a "10." prefix, a registrant code,
// a slash, and a non-empty suffix.
var doiPattern = regexp.MustCompile(`^10\.\d+/\S+$`)

// NormalizeDOI normalizes a DOI to a consistent format for lookups.
// It removes common URL prefixes (https://doi.org/, doi:) and converts
// to lowercase.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	doi = strings.TrimPrefix(doi, "http://doi.org/")
	doi = strings.TrimPrefix(doi, "doi.org/")
	if len(doi) >= 4 && strings.EqualFold(doi[:4], "doi:") {
		doi = doi[4:]
	}
	return strings.ToLower(doi)
}

// IsValidDOI reports whether the string looks like a DOI after normalization.
func IsValidDOI(doi string) bool {
	return doiPattern.MatchString(NormalizeDOI(doi))
}
