package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/balkashynov/examtt/internal/parser"
)

var splitCmd = &cobra.Command{
	Use:   "split <split> [surname...]",
	Short: "Check which surnames a timetable split covers",
	Long: `Show how a last-name split from the timetable is read and whether
each given surname falls in it.
  examtt split "A-L, N-Z" Smith Adams`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		renderSplit(cmd.OutOrStdout(), parser.ParseSplit(args[0]), args[1:])
	},
}

func renderSplit(w io.Writer, split parser.Split, surnames []string) {
	fmt.Fprintf(w, "Split:  %q\n", split.Raw)
	fmt.Fprintf(w, "Kind:   %s\n", split.Kind)
	fmt.Fprintf(w, "Reads:  %s\n", split)

	if split.Kind == parser.SplitMulti {
		for _, part := range split.Parts {
			fmt.Fprintf(w, "  part: %-8s (%s)\n", part, part.Kind)
		}
	}

	if len(surnames) == 0 {
		return
	}

	fmt.Fprintln(w)
	for _, surname := range surnames {
		mark := "✗"
		if split.Contains(surname) {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s %s\n", mark, surname)
	}
}
