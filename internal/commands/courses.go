package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
)

var coursesCmd = &cobra.Command{
	Use:     "courses",
	Aliases: []string{"course"},
	Short:   "Manage your saved courses",
}

var coursesAddCmd = &cobra.Command{
	Use:   "add <COURSE[:SECTION]>...",
	Short: "Save one or more courses",
	Long: `Save courses used by lookup when none are given.
  examtt courses add CSC108H1F MAT137Y1Y:L5101`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		parsed := parser.ParseDecisions(strings.Join(args, ","))
		for _, msg := range parsed.Errors {
			fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %s\n", msg)
		}

		for _, d := range parsed.Decisions {
			decision, err := db.AddDecision(d.Course, d.Section)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
				continue
			}
			if !parser.IsValidCourseFormat(decision.Course) {
				fmt.Fprintf(cmd.OutOrStdout(), "⚠️  %s doesn't look like a course code\n", decision.Course)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Added #%d %s\n", decision.ID, formatDecision(*decision))
		}
	},
}

var coursesRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a saved course",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		id, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: invalid course ID '%s'\n", args[0])
			return
		}

		decision, err := db.RemoveDecision(uint(id))
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
			return
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %s\n", formatDecision(*decision))
	},
}

var coursesListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List saved courses",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		decisions, err := db.GetDecisions()
		if err != nil {
			fail(err)
		}
		renderDecisions(cmd.OutOrStdout(), decisions)
	},
}

var coursesClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved courses",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		removed, err := db.ClearDecisions()
		if err != nil {
			fail(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed %d course(s)\n", removed)
	},
}

var surnameCmd = &cobra.Command{
	Use:   "surname [name]",
	Short: "Show or set your saved last name",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		if len(args) == 0 {
			surname, err := db.GetSurname()
			if err != nil {
				fail(err)
			}
			if surname == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No surname saved. Use 'examtt surname <name>'.")
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), surname)
			return
		}

		surname := args[0]
		if strings.TrimSpace(surname) == "" {
			fail(errors.New("surname cannot be empty"))
		}
		if err := db.SetSurname(surname); err != nil {
			fail(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Surname set to %s\n", surname)
	},
}

func renderDecisions(w io.Writer, decisions []models.Decision) {
	if len(decisions) == 0 {
		fmt.Fprintln(w, "No courses saved. Use 'examtt courses add <COURSE[:SECTION]>'.")
		return
	}

	fmt.Fprintf(w, "%-4s %-11s %s\n", "ID", "COURSE", "SECTION")
	for _, d := range decisions {
		section := d.Section
		if section == "" {
			section = "-"
		}
		fmt.Fprintf(w, "%-4d %-11s %s\n", d.ID, d.Course, section)
	}
}

func init() {
	coursesCmd.AddCommand(coursesAddCmd)
	coursesCmd.AddCommand(coursesRemoveCmd)
	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesClearCmd)
}
