package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matsen/citebridge/internal/author"
	"github.com/matsen/citebridge/internal/config"
	"github.com/matsen/citebridge/internal/crossref"
	"github.com/matsen/citebridge/internal/orcid"
	"github.com/matsen/citebridge/internal/service"
)

// newService wires the registry clients and resolver from global config.
// Exits with ExitConfigError if the config file exists but is unreadable.
func newService() *service.Service {
	cfg, err := config.Load()
	if err != nil {
		if humanOutput {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			outputJSON(ErrorResponse{Error: err.Error()})
		}
		os.Exit(ExitConfigError)
	}

	var crOpts []crossref.ClientOption
	if cfg.Mailto != "" {
		crOpts = append(crOpts, crossref.WithMailto(cfg.Mailto))
	}
	if cfg.CrossrefURL != "" {
		crOpts = append(crOpts, crossref.WithBaseURL(cfg.CrossrefURL))
	}
	registry := crossref.NewClient(crOpts...)

	var identity author.Registry
	if !cfg.DisableORCID {
		var orOpts []orcid.ClientOption
		if cfg.ORCIDToken != "" {
			orOpts = append(orOpts, orcid.WithToken(cfg.ORCIDToken))
		}
		if cfg.ORCIDURL != "" {
			orOpts = append(orOpts, orcid.WithBaseURL(cfg.ORCIDURL))
		}
		identity = orcid.NewClient(orOpts...)
	}

	resolver := author.NewResolver(identity, author.WithLogger(log.Default()))
	return service.New(registry, resolver, service.WithLogger(log.Default()))
}
