package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-engine/internal/paper"
	"github.com/pdiddy/paper-engine/pkg/types"
)

var paperCmd = &cobra.Command{
	Use:   "paper <arxiv-id>",
	Short: "Fetch and enrich a single paper by arXiv identifier",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaper,
}

func init() {
	paperCmd.Flags().String("format", paper.FormatNameJSON, "output format: table, json, or yaml")
	paperCmd.Flags().Bool("no-full-text", false, "skip PDF download and text extraction")

	rootCmd.AddCommand(paperCmd)
}

func runPaper(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	svc := newService(applyFullTextFlag(cmd, appConfig))
	rec, err := svc.Paper(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return paper.Format(format, []types.PaperRecord{rec}, 1, cmd.OutOrStdout())
}
