package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

var bibtexCmd = &cobra.Command{
	Use:   "bibtex <doi>",
	Short: "Print just the BibTeX entry for a DOI",
	Long: `Fetch metadata for a DOI and print only the BibTeX entry text, for
piping straight into a .bib file.

Example:
  cb bibtex 10.1038/nature14539 >> refs.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runBibtex,
}

func runBibtex(cmd *cobra.Command, args []string) error {
	svc := newService()

	meta, err := svc.FetchMetadata(cmd.Context(), args[0])
	if err != nil {
		exitWithError(err)
	}

	// Raw text on stdout regardless of --human; this command exists for
	// redirection into .bib files.
	fmt.Println(meta.BibTeX)
	return nil
}
