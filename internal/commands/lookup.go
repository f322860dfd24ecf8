package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/parser"
	"github.com/balkashynov/examtt/internal/timetable"
	"github.com/balkashynov/examtt/internal/tui"
)

var errNoSession = errors.New("no exam session selected; import one with `examtt sessions import` or pass --session")

var lookupCmd = &cobra.Command{
	Use:   "lookup [COURSE[:SECTION]...]",
	Short: "Show your exam times",
	Long: `Look up the exam times for your courses.

Courses are given as COURSE or COURSE:SECTION, e.g.
  examtt lookup CSC108H1F MAT137Y1Y:L5101 --surname Smith

Without arguments the saved courses and surname are used
(see 'examtt courses' and 'examtt surname'). If either is missing,
or with -i, the interactive lookup opens instead.`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		sessionFlag, _ := cmd.Flags().GetString("session")
		surnameFlag, _ := cmd.Flags().GetString("surname")
		interactive, _ := cmd.Flags().GetBool("interactive")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		req, err := resolveLookup(sessionFlag, surnameFlag, args)
		if err != nil {
			fail(err)
		}

		if interactive || (!jsonOutput && !req.complete()) {
			err := tui.RunLookupTUI(tui.LookupOptions{
				Session: req.session,
				Timings: req.timings,
				Surname: req.surname,
				Courses: req.decisions,
				Save:    saveLookup,
				Now:     examNow,
			})
			if err != nil {
				fail(err)
			}
			return
		}

		if !req.complete() {
			fail(errors.New("a surname and at least one course are required"))
		}

		now := examNow()
		matched := timetable.Lookup(req.timings, req.decisions, req.surname, now)
		result := newLookupResult(req, matched, now)

		if jsonOutput {
			err = renderLookupJSON(cmd.OutOrStdout(), result)
		} else {
			renderLookupTable(cmd.OutOrStdout(), result)
		}
		if err != nil {
			fail(err)
		}
	},
}

// lookupRequest is a lookup with every input resolved
type lookupRequest struct {
	session   string
	timings   []models.ExamTiming
	surname   string
	decisions []models.Decision
}

func (r lookupRequest) complete() bool {
	return strings.TrimSpace(r.surname) != "" && len(r.decisions) > 0
}

// resolveLookup fills in whatever the flags and args leave out from saved state
func resolveLookup(sessionFlag, surnameFlag string, args []string) (lookupRequest, error) {
	var req lookupRequest

	session, err := resolveSession(sessionFlag)
	if err != nil {
		return req, err
	}
	req.session = session

	req.timings, err = db.GetTimings(session)
	if err != nil {
		return req, err
	}

	req.surname = surnameFlag
	if req.surname == "" {
		if req.surname, err = db.GetSurname(); err != nil {
			return req, err
		}
	}

	if len(args) > 0 {
		parsed := parser.ParseDecisions(strings.Join(args, ","))
		if len(parsed.Errors) > 0 {
			return req, errors.New(strings.Join(parsed.Errors, "; "))
		}
		req.decisions = parsed.Decisions
	} else {
		if req.decisions, err = db.GetDecisions(); err != nil {
			return req, err
		}
	}

	return req, nil
}

// resolveSession picks the session: flag, then the active session, then config
func resolveSession(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	active, err := db.GetActiveSession()
	if err != nil {
		return "", err
	}
	if active != "" {
		return active, nil
	}

	if cfg != nil && cfg.Session != "" {
		return cfg.Session, nil
	}
	return "", errNoSession
}

// saveLookup stores what was entered in the interactive lookup
func saveLookup(surname string, decisions []models.Decision) error {
	if err := db.SetSurname(surname); err != nil {
		return err
	}
	return db.ReplaceDecisions(decisions)
}

type lookupResult struct {
	Session   string            `json:"session"`
	Surname   string            `json:"surname"`
	Count     int               `json:"count"`
	Exams     []timetable.Match `json:"exams"`
	NotFound  []string          `json:"not_found,omitempty"`
	Requested int               `json:"requested"`
}

func newLookupResult(req lookupRequest, matched []models.ExamTiming, now time.Time) lookupResult {
	result := lookupResult{
		Session:   req.session,
		Surname:   req.surname,
		Count:     len(matched),
		Exams:     timetable.Present(matched, now),
		Requested: len(req.decisions),
	}

	for _, decision := range req.decisions {
		if _, ok := timetable.FindTiming(req.timings, decision, req.surname); !ok {
			result.NotFound = append(result.NotFound, formatDecision(decision))
		}
	}

	return result
}

// renderLookupJSON outputs lookup results as JSON
func renderLookupJSON(w io.Writer, result lookupResult) error {
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(jsonBytes))
	return nil
}

// renderLookupTable outputs lookup results as a formatted table
func renderLookupTable(w io.Writer, result lookupResult) {
	headerStyle := lipgloss.NewStyle().Bold(true)
	mutedStyle := lipgloss.NewStyle().Faint(true)

	fmt.Fprintf(w, "Exams for %s in session %s (%d of %d found):\n", result.Surname, result.Session, result.Count, result.Requested)

	if len(result.Exams) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-11s %-7s %-16s %-13s %-10s %s", "COURSE", "SECTION", "DATE", "TIME", "SPLIT", "LOCATION")))
		fmt.Fprintln(w, strings.Repeat("-", 80))

		for _, exam := range result.Exams {
			timeRange := exam.Start
			if exam.End != "" {
				timeRange += "-" + exam.End
			}
			fmt.Fprintf(w, "%-11s %-7s %-16s %-13s %-10s %s\n",
				exam.Timing.Course,
				exam.Timing.Section,
				exam.Date,
				timeRange,
				truncate(exam.Timing.Split, 10),
				exam.Timing.Location)
		}
	}

	if len(result.NotFound) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, mutedStyle.Render("No exam found for: "+strings.Join(result.NotFound, ", ")))
	}
}

func formatDecision(d models.Decision) string {
	if d.Section != "" {
		return d.Course + ":" + d.Section
	}
	return d.Course
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func init() {
	lookupCmd.Flags().StringP("surname", "s", "", "Last name (default: saved surname)")
	lookupCmd.Flags().String("session", "", "Exam session code, e.g. 20231 (default: active session)")
	lookupCmd.Flags().Bool("json", false, "Output as JSON")
	lookupCmd.Flags().BoolP("interactive", "i", false, "Interactive lookup with TUI")
}
