package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(referencesCmd)
}

var referencesCmd = &cobra.Command{
	Use:   "references <doi>",
	Short: "Fetch the cited-reference list for a DOI",
	Long: `Fetch the work record for a DOI from CrossRef and extract its list of
cited references. Works without a reference list report a note instead.

Example:
  cb references 10.1038/nature14539`,
	Args: cobra.ExactArgs(1),
	RunE: runReferences,
}

func runReferences(cmd *cobra.Command, args []string) error {
	svc := newService()

	list, err := svc.FetchReferences(cmd.Context(), args[0])
	if err != nil {
		exitWithError(err)
	}

	if humanOutput {
		printReferencesHuman(list)
		return nil
	}
	return outputJSON(list)
}
