package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutriscan/nutriscan/internal/score"
)

var citationsCmd = &cobra.Command{
	Use:   "citations",
	Short: "List the public health sources behind the scoring rules",
	RunE:  runCitations,
}

func runCitations(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, c := range score.NewRegistry().AllCitations() {
		fmt.Fprintln(out, titleStyle.Render(c.Title))
		fmt.Fprintln(out, dimStyle.Render("  "+c.URL))
		fmt.Fprintln(out, "  "+c.Explanation)
		fmt.Fprintln(out)
	}
	return nil
}
