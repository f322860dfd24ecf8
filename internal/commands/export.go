package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/balkashynov/examtt/internal/calendar"
	"github.com/balkashynov/examtt/internal/timetable"
)

var exportCmd = &cobra.Command{
	Use:   "export [COURSE[:SECTION]...]",
	Short: "Export your exams to an iCalendar file",
	Long: `Write the exams from a lookup to an .ics file that calendar apps can import.
Courses, --surname and --session work the same as for lookup.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		sessionFlag, _ := cmd.Flags().GetString("session")
		surnameFlag, _ := cmd.Flags().GetString("surname")
		out, _ := cmd.Flags().GetString("out")

		req, err := resolveLookup(sessionFlag, surnameFlag, args)
		if err != nil {
			fail(err)
		}
		if !req.complete() {
			fail(errors.New("a surname and at least one course are required"))
		}

		now := examNow()
		matched := timetable.Lookup(req.timings, req.decisions, req.surname, now)

		body, err := calendar.Build(req.session, matched, now, timetableLocation())
		if err != nil {
			fail(err)
		}

		if out == "" {
			out = fmt.Sprintf("exams-%s.ics", req.session)
		}
		if out == "-" {
			cmd.OutOrStdout().Write(body) //nolint:errcheck
			return
		}
		if err := os.WriteFile(out, body, 0o644); err != nil {
			fail(fmt.Errorf("failed to write %s: %w", out, err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d exam(s) to %s\n", len(matched), out)
	},
}

func init() {
	exportCmd.Flags().StringP("surname", "s", "", "Last name (default: saved surname)")
	exportCmd.Flags().String("session", "", "Exam session code (default: active session)")
	exportCmd.Flags().StringP("out", "o", "", "Output file, - for stdout (default exams-<session>.ics)")
}
