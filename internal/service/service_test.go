package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matsen/citebridge/internal/author"
	"github.com/matsen/citebridge/internal/bibtex"
	"github.com/matsen/citebridge/internal/crossref"
	"github.com/matsen/citebridge/internal/orcid"
	"github.com/matsen/citebridge/internal/refs"
)

const testWorkJSON = `{
  "status": "ok",
  "message": {
    "DOI": "10.1038/nature14539",
    "type": "article",
    "title": ["Deep Learning"],
    "container-title": ["Nature"],
    "author": [
      {"given": "Y.", "family": "LeCun", "ORCID": "http://orcid.org/0000-0002-1825-0097"},
      {"given": "Yoshua", "family": "Bengio"}
    ],
    "published-print": {"date-parts": [[2015]]},
    "references-count": 2,
    "reference": [
      {"key": "r1", "article-title": "First", "year": "1998"},
      {"key": "r2", "volume-title": "Second"}
    ]
  }
}`

const testPersonJSON = `{"name": {"given-names": {"value": "Yann"}, "family-name": {"value": "LeCun"}}}`

const testDirectBibTeX = "@article{LeCun_2015, title={Deep Learning}, " +
	"abstract={A long abstract.}, journal={Nature}, year={2015}}"

// newTestService wires a Service against fake CrossRef and ORCID servers.
// transformStatus controls the direct BibTeX export endpoint.
func newTestService(t *testing.T, transformStatus int) (*Service, func()) {
	t.Helper()

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/transform/application/x-bibtex") {
			if transformStatus != http.StatusOK {
				http.Error(w, "no transform", transformStatus)
				return
			}
			io.WriteString(w, testDirectBibTeX)
			return
		}
		io.WriteString(w, testWorkJSON)
	}))

	identity := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, testPersonJSON)
	}))

	quiet := log.New(io.Discard)
	resolver := author.NewResolver(
		orcid.NewClient(orcid.WithBaseURL(identity.URL)),
		author.WithLogger(quiet),
	)
	svc := New(
		crossref.NewClient(crossref.WithBaseURL(registry.URL)),
		resolver,
		WithLogger(quiet),
	)

	return svc, func() {
		registry.Close()
		identity.Close()
	}
}

func TestFetchMetadata_DirectBibTeX(t *testing.T) {
	svc, cleanup := newTestService(t, http.StatusOK)
	defer cleanup()

	got, err := svc.FetchMetadata(context.Background(), "10.1038/nature14539")
	if err != nil {
		t.Fatalf("FetchMetadata() error = %v", err)
	}

	if got.Title != "Deep Learning" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Year != 2015 {
		t.Errorf("Year = %d, want 2015", got.Year)
	}
	if got.BibTeXSource != bibtex.KindDirect {
		t.Errorf("BibTeXSource = %q, want direct", got.BibTeXSource)
	}

	// The direct export is sanitized, never passed through as-is.
	if strings.Contains(got.BibTeX, "abstract") {
		t.Errorf("BibTeX should have the abstract stripped, got:\n%s", got.BibTeX)
	}
	if !strings.Contains(got.BibTeX, "title={{Deep Learning}}") {
		t.Errorf("BibTeX title should be double-braced, got:\n%s", got.BibTeX)
	}

	// First author expanded through the identity registry, second kept.
	if len(got.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(got.Authors))
	}
	if got.Authors[0].FullName != "Yann LeCun" || got.Authors[0].Source != author.SourceRegistry {
		t.Errorf("Authors[0] = %+v, want registry-expanded Yann LeCun", got.Authors[0])
	}
	if got.Authors[1].FullName != "Yoshua Bengio" || got.Authors[1].Source != author.SourcePrimary {
		t.Errorf("Authors[1] = %+v, want primary Yoshua Bengio", got.Authors[1])
	}
}

func TestFetchMetadata_FallsBackToGenerated(t *testing.T) {
	svc, cleanup := newTestService(t, http.StatusNotFound)
	defer cleanup()

	got, err := svc.FetchMetadata(context.Background(), "10.1038/nature14539")
	if err != nil {
		t.Fatalf("FetchMetadata() error = %v", err)
	}

	if got.BibTeXSource != bibtex.KindGenerated {
		t.Errorf("BibTeXSource = %q, want generated", got.BibTeXSource)
	}
	if !strings.HasPrefix(got.BibTeX, "@article{LeCun2015,") {
		t.Errorf("generated entry should use the resolved family name, got:\n%s", got.BibTeX)
	}
	if !strings.Contains(got.BibTeX, "title = {{Deep Learning}},") {
		t.Errorf("generated entry should double-brace the title, got:\n%s", got.BibTeX)
	}
	if !strings.Contains(got.BibTeX, "author = {Yann LeCun and Yoshua Bengio},") {
		t.Errorf("generated entry should list resolved authors, got:\n%s", got.BibTeX)
	}
}

func TestFetchMetadata_EmptyDOI(t *testing.T) {
	// No servers: validation must fail before any network call.
	quiet := log.New(io.Discard)
	svc := New(crossref.NewClient(), author.NewResolver(nil), WithLogger(quiet))

	_, err := svc.FetchMetadata(context.Background(), "  ")
	if err == nil {
		t.Fatal("FetchMetadata() expected a validation error")
	}
	if !IsValidation(err) {
		t.Errorf("IsValidation(%v) = false, want true", err)
	}
	if IsUpstream(err) {
		t.Errorf("IsUpstream(%v) = true for a validation error", err)
	}
}

func TestFetchMetadata_UpstreamNotFound(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Resource not found.", http.StatusNotFound)
	}))
	defer registry.Close()

	quiet := log.New(io.Discard)
	svc := New(
		crossref.NewClient(crossref.WithBaseURL(registry.URL)),
		author.NewResolver(nil, author.WithLogger(quiet)),
		WithLogger(quiet),
	)

	_, err := svc.FetchMetadata(context.Background(), "10.9999/missing")
	if err == nil {
		t.Fatal("FetchMetadata() expected an upstream error")
	}
	if !IsUpstream(err) {
		t.Errorf("IsUpstream(%v) = false, want true", err)
	}
	if !errors.Is(err, crossref.ErrNotFound) {
		t.Errorf("error should wrap crossref.ErrNotFound, got %v", err)
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) && upstream.DOI != "10.9999/missing" {
		t.Errorf("UpstreamError.DOI = %q, want the requested DOI", upstream.DOI)
	}
}

func TestFetchReferences(t *testing.T) {
	svc, cleanup := newTestService(t, http.StatusOK)
	defer cleanup()

	got, err := svc.FetchReferences(context.Background(), "10.1038/nature14539")
	if err != nil {
		t.Fatalf("FetchReferences() error = %v", err)
	}

	if got.Count != 2 {
		t.Errorf("Count = %d, want 2", got.Count)
	}
	if got.Note != "" {
		t.Errorf("Note = %q, want empty", got.Note)
	}
	if got.References[0].Title != "First" || got.References[1].Title != "Second" {
		t.Errorf("References = %+v", got.References)
	}
}

func TestFetchReferences_NoReferenceField(t *testing.T) {
	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"ok","message":{"DOI":"10.1/x","title":["T"]}}`)
	}))
	defer registry.Close()

	quiet := log.New(io.Discard)
	svc := New(
		crossref.NewClient(crossref.WithBaseURL(registry.URL)),
		author.NewResolver(nil, author.WithLogger(quiet)),
		WithLogger(quiet),
	)

	got, err := svc.FetchReferences(context.Background(), "10.1/x")
	if err != nil {
		t.Fatalf("FetchReferences() error = %v", err)
	}
	if got.Note != refs.NoReferencesNote {
		t.Errorf("Note = %q, want %q", got.Note, refs.NoReferencesNote)
	}
	if got.Count != 0 || len(got.References) != 0 {
		t.Errorf("got %+v, want an explicit zero-length result", got)
	}
}

func TestEnhanceAuthors(t *testing.T) {
	svc, cleanup := newTestService(t, http.StatusOK)
	defer cleanup()

	got, err := svc.EnhanceAuthors(context.Background(), "10.1038/nature14539")
	if err != nil {
		t.Fatalf("EnhanceAuthors() error = %v", err)
	}

	if got.DOI != "10.1038/nature14539" {
		t.Errorf("DOI = %q", got.DOI)
	}
	if len(got.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(got.Authors))
	}
	if got.Authors[0].FullName != "Yann LeCun" {
		t.Errorf("Authors[0].FullName = %q, want Yann LeCun", got.Authors[0].FullName)
	}
}
