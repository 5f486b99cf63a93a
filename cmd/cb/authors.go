package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(authorsCmd)
}

var authorsCmd = &cobra.Command{
	Use:   "authors <doi>",
	Short: "Resolve the author list of a DOI via the identity registry",
	Long: `Fetch the work record for a DOI and resolve each author to a canonical
name. Authors listed with an abbreviated given name and an ORCID iD are
expanded through the ORCID public API; everything else keeps the name from
the record.

Example:
  cb authors 10.1038/nature14539`,
	Args: cobra.ExactArgs(1),
	RunE: runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	svc := newService()

	list, err := svc.EnhanceAuthors(cmd.Context(), args[0])
	if err != nil {
		exitWithError(err)
	}

	if humanOutput {
		printAuthorsHuman(list)
		return nil
	}
	return outputJSON(list)
}
