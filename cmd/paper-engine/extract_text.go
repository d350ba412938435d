package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-engine/internal/convert"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text <file.pdf>",
	Short: "Print the plain text of a local PDF",
	Long: `Extract-text decodes a PDF from disk with the same decoder used for
full-text enrichment and prints the text of every page in page order.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := convert.ConvertFile(convert.PDFConverter{}, args[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	},
}

func init() {
	rootCmd.AddCommand(extractTextCmd)
}
