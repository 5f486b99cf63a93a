// Package author resolves contributor name fragments into canonical names,
// optionally consulting the ORCID identity registry.
package author

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc/iter"

	"github.com/matsen/citebridge/internal/crossref"
	"github.com/matsen/citebridge/internal/orcid"
)

// Unknown is the name used when a record carries no name fragment at all.
const Unknown = "Unknown Author"

// Source records where a resolved name came from.
type Source string

const (
	// SourcePrimary means the name came from the work record itself.
	SourcePrimary Source = "primary"
	// SourceRegistry means the name was expanded via an ORCID lookup.
	SourceRegistry Source = "identity-registry"
	// SourceFallback means no name fragment was available at all.
	SourceFallback Source = "fallback"
)

// Resolved is a canonical author name. FullName is never empty.
type Resolved struct {
	Given    string `json:"given,omitempty"`
	Family   string `json:"family,omitempty"`
	FullName string `json:"full_name"`
	ORCID    string `json:"id,omitempty"`
	Source   Source `json:"name_source"`
}

// Registry is the identity lookup consumed by the resolver. *orcid.Client
// satisfies it; tests substitute their own.
type Registry interface {
	GetPerson(ctx context.Context, id string) (*orcid.Person, error)
}

// Resolver resolves raw author fragments. A nil registry disables identity
// lookups entirely; every name then resolves from the record alone.
type Resolver struct {
	registry Registry
	logger   *log.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithLogger sets the logger used for degraded-lookup diagnostics.
func WithLogger(logger *log.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver backed by the given identity registry.
func NewResolver(registry Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAll resolves every author of a work. Lookups run concurrently;
// results keep the original citation order regardless of which lookups
// finish first. A single failed lookup degrades that one author to its
// baseline name and never fails the batch.
func (r *Resolver) ResolveAll(ctx context.Context, authors []crossref.Author) []Resolved {
	if len(authors) == 0 {
		return []Resolved{}
	}
	return iter.Map(authors, func(a *crossref.Author) Resolved {
		return r.Resolve(ctx, *a)
	})
}

// Resolve resolves a single author fragment.
func (r *Resolver) Resolve(ctx context.Context, a crossref.Author) Resolved {
	out := Resolved{
		Given:    a.Given,
		Family:   a.Family,
		FullName: baselineName(a),
		Source:   SourcePrimary,
	}
	if a.ORCID != "" {
		out.ORCID = orcid.NormalizeID(a.ORCID)
	}
	if out.FullName == Unknown {
		out.Source = SourceFallback
	}

	if r.registry == nil || out.ORCID == "" || !isAbbreviated(a.Given) {
		return out
	}

	person, err := r.registry.GetPerson(ctx, out.ORCID)
	if err != nil {
		r.logger.Debug("identity lookup failed, keeping baseline name",
			"orcid", out.ORCID, "name", out.FullName, "err", err)
		return out
	}

	full := strings.TrimSpace(strings.TrimSpace(person.Given) + " " + strings.TrimSpace(person.Family))
	if full == "" {
		return out
	}

	out.Given, out.Family = splitFullName(full)
	out.FullName = full
	out.Source = SourceRegistry
	return out
}

// baselineName computes the name available from the record alone:
// "Given Family" when both parts exist, then family only, then the
// unstructured name field, then Unknown.
func baselineName(a crossref.Author) string {
	switch {
	case a.Given != "" && a.Family != "":
		return a.Given + " " + a.Family
	case a.Family != "":
		return a.Family
	case a.Name != "":
		return a.Name
	default:
		return Unknown
	}
}

// isAbbreviated reports whether a given name looks like a bare initial
// (e.g. "J.", "J.P"): at most three characters including a period.
// Only such names are worth an identity lookup; anything longer is
// already a usable given name.
//
// TODO: "Md." and similar honorific abbreviations also trip this check.
func isAbbreviated(given string) bool {
	return given != "" && utf8.RuneCountInString(given) <= 3 && strings.Contains(given, ".")
}

// splitFullName splits a full name on its last whitespace boundary.
// Everything before the final token is the given name, which keeps
// multi-word given names intact ("Jean Pierre Dupont" splits into
// "Jean Pierre" + "Dupont"). A single token is a family name.
func splitFullName(full string) (given, family string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	if len(parts) == 1 {
		return "", parts[0]
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
}
