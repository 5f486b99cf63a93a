// Package service composes the registry clients, normalizer, resolver and
// formatter into the three operations exposed to callers.
package service

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/sourcegraph/conc"

	"github.com/matsen/citebridge/internal/author"
	"github.com/matsen/citebridge/internal/bibtex"
	"github.com/matsen/citebridge/internal/crossref"
	"github.com/matsen/citebridge/internal/refs"
	"github.com/matsen/citebridge/internal/work"
)

// Service implements the boundary operations. It holds no per-request
// state; every record is built fresh and discarded with the response.
type Service struct {
	registry *crossref.Client
	resolver *author.Resolver
	logger   *log.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for degraded-lookup diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a Service. The resolver owns the identity-registry policy;
// pass one built with a nil registry to disable ORCID lookups.
func New(registry *crossref.Client, resolver *author.Resolver, opts ...Option) *Service {
	s := &Service{
		registry: registry,
		resolver: resolver,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metadata is the full response of FetchMetadata: the normalized work with
// its authors replaced by resolved names, plus the BibTeX serialization.
type Metadata struct {
	work.Work
	Authors      []author.Resolved `json:"authors"`
	BibTeX       string            `json:"bibtex"`
	BibTeXSource bibtex.Kind       `json:"bibtex_source"`
}

// AuthorList is the response of EnhanceAuthors.
type AuthorList struct {
	DOI     string            `json:"doi"`
	Authors []author.Resolved `json:"authors"`
}

// FetchMetadata fetches and normalizes the work record for a DOI, resolves
// its authors and attaches a BibTeX entry. The raw-record fetch is the one
// mandatory lookup; the direct BibTeX export and the per-author identity
// lookups run concurrently after it and degrade to local fallbacks when
// they fail.
func (s *Service) FetchMetadata(ctx context.Context, doi string) (*Metadata, error) {
	raw, err := s.fetchWork(ctx, doi)
	if err != nil {
		return nil, err
	}

	w, err := work.Normalize(raw)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var (
		direct    string
		directErr error
		resolved  []author.Resolved
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		direct, directErr = s.registry.GetBibTeX(ctx, w.DOI)
	})
	wg.Go(func() {
		resolved = s.resolver.ResolveAll(ctx, w.Authors)
	})
	wg.Wait()

	result := bibtex.Result{Kind: bibtex.KindDirect, Text: direct}
	if directErr != nil {
		s.logger.Debug("direct BibTeX export failed, generating locally",
			"doi", w.DOI, "err", directErr)
		result = bibtex.Result{Kind: bibtex.KindGenerated, Work: w, Authors: resolved}
	}

	return &Metadata{
		Work:         *w,
		Authors:      resolved,
		BibTeX:       bibtex.Render(result),
		BibTeXSource: result.Kind,
	}, nil
}

// FetchReferences fetches the cited-reference list for a DOI.
func (s *Service) FetchReferences(ctx context.Context, doi string) (*refs.List, error) {
	raw, err := s.fetchWork(ctx, doi)
	if err != nil {
		return nil, err
	}
	list := refs.Extract(raw)
	return &list, nil
}

// EnhanceAuthors fetches the work record for a DOI and resolves its
// author list.
func (s *Service) EnhanceAuthors(ctx context.Context, doi string) (*AuthorList, error) {
	raw, err := s.fetchWork(ctx, doi)
	if err != nil {
		return nil, err
	}
	return &AuthorList{
		DOI:     crossref.NormalizeDOI(raw.DOI),
		Authors: s.resolver.ResolveAll(ctx, raw.Author),
	}, nil
}

// fetchWork validates the DOI and performs the mandatory registry lookup.
func (s *Service) fetchWork(ctx context.Context, doi string) (*crossref.Work, error) {
	doi = crossref.NormalizeDOI(doi)
	if doi == "" {
		return nil, &ValidationError{Reason: "doi is required"}
	}

	raw, err := s.registry.GetWork(ctx, doi)
	if err != nil {
		return nil, &UpstreamError{DOI: doi, Err: err}
	}
	return raw, nil
}
