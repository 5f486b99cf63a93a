package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metadataCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <doi>",
	Short: "Fetch normalized metadata and a BibTeX entry for a DOI",
	Long: `Fetch the work record for a DOI from CrossRef, normalize it, resolve
author names (via ORCID for abbreviated given names), and attach a BibTeX
entry.

Example:
  cb metadata 10.1038/nature14539`,
	Args: cobra.ExactArgs(1),
	RunE: runMetadata,
}

func runMetadata(cmd *cobra.Command, args []string) error {
	svc := newService()

	meta, err := svc.FetchMetadata(cmd.Context(), args[0])
	if err != nil {
		exitWithError(err)
	}

	if humanOutput {
		printMetadataHuman(meta)
		return nil
	}
	return outputJSON(meta)
}
