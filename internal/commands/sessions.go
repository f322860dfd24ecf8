package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/loader"
	"github.com/balkashynov/examtt/internal/models"
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session"},
	Short:   "Manage imported exam timetables",
}

var sessionsImportCmd = &cobra.Command{
	Use:   "import <file|url>",
	Short: "Import a session's exam timetable",
	Long: `Import one exam session from a JSON file or URL.
The file looks like {"session": "20231", "examTimes": [...]}.
Importing a session again replaces its timetable.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		code, _ := cmd.Flags().GetString("code")
		name, _ := cmd.Flags().GetString("name")

		session, count, err := importSession(cmd.Context(), newLoader(), args[0], code, name)
		if err != nil {
			fail(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported session %s (%d exams)\n", session.Code, count)
		activateIfFirst(cmd.OutOrStdout(), session.Code)
	},
}

var sessionsIndexCmd = &cobra.Command{
	Use:   "index [file|url]",
	Short: "Import every session listed in an index",
	Long: `Import every session listed in an index file such as
{"examTerms": [{"session": "20231", "path": "exams_20231.json"}]}.
Paths are relative to the index. Without an argument EXAMTT_INDEX_URL is used.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		location := cfg.Data.IndexURL
		if len(args) == 1 {
			location = args[0]
		}
		if location == "" {
			fail(errors.New("no index given and EXAMTT_INDEX_URL is not set"))
		}

		imported, err := importIndex(cmd.Context(), newLoader(), location, cmd.OutOrStdout())
		if err != nil {
			fail(err)
		}
		if len(imported) > 0 {
			activateIfFirst(cmd.OutOrStdout(), imported[0])
		}
	},
}

var sessionsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List imported sessions",
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		sessions, err := db.GetSessions()
		if err != nil {
			fail(err)
		}
		active, err := db.GetActiveSession()
		if err != nil {
			fail(err)
		}

		renderSessions(cmd.OutOrStdout(), sessions, active)
	},
}

var sessionsUseCmd = &cobra.Command{
	Use:   "use <code>",
	Short: "Select the session used by lookup",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		if err := db.SetActiveSession(args[0]); err != nil {
			fail(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Using session %s\n", args[0])
	},
}

var sessionsRemoveCmd = &cobra.Command{
	Use:     "rm <code>",
	Aliases: []string{"remove"},
	Short:   "Remove an imported session",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		initDB()
		if err := db.DeleteSession(args[0]); err != nil {
			fail(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed session %s\n", args[0])
	},
}

func newLoader() *loader.Loader {
	return loader.New(loader.NewSourceFetcher(cfg.Data.HTTPTimeout, cfg.Data.MaxResponseBytes))
}

// importSession loads a session file and stores it.
// code and name override what the file says.
func importSession(ctx context.Context, l *loader.Loader, location, code, name string) (*models.ExamSession, int, error) {
	file, err := l.LoadSession(ctx, location)
	if err != nil {
		return nil, 0, err
	}

	if code == "" {
		code = file.Session
	}
	if strings.TrimSpace(code) == "" {
		return nil, 0, fmt.Errorf("%s has no session code; pass --code", location)
	}

	session, err := db.ImportSession(db.ImportSessionRequest{
		Code:    code,
		Name:    name,
		Source:  location,
		Timings: file.ExamTimes,
	})
	if err != nil {
		return nil, 0, err
	}

	zap.L().Info("session imported",
		zap.String("session", session.Code),
		zap.String("source", location),
		zap.Int("exams", len(file.ExamTimes)))

	return session, len(file.ExamTimes), nil
}

// importIndex imports each session in the index, carrying on past failures.
// It returns the codes that were imported.
func importIndex(ctx context.Context, l *loader.Loader, location string, out io.Writer) ([]string, error) {
	index, err := l.LoadIndex(ctx, location)
	if err != nil {
		return nil, err
	}

	var imported []string
	failed := 0
	for _, entry := range index.ExamTerms {
		session, count, err := importSession(ctx, l, entry.Path, entry.Session, entry.Name)
		if err != nil {
			failed++
			fmt.Fprintf(out, "❌ %s: %v\n", entry.Session, err)
			continue
		}
		imported = append(imported, session.Code)
		fmt.Fprintf(out, "✅ Imported session %s (%d exams)\n", session.Code, count)
	}

	if failed > 0 && len(imported) == 0 {
		return nil, fmt.Errorf("all %d sessions failed to import", failed)
	}
	return imported, nil
}

// activateIfFirst selects code when no session is active yet
func activateIfFirst(out io.Writer, code string) {
	active, err := db.GetActiveSession()
	if err != nil || active != "" {
		return
	}
	if err := db.SetActiveSession(code); err != nil {
		zap.L().Warn("failed to set active session", zap.String("session", code), zap.Error(err))
		return
	}
	fmt.Fprintf(out, "Session %s is now active\n", code)
}

func renderSessions(w io.Writer, sessions []models.ExamSession, active string) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions imported. Use 'examtt sessions import <file|url>'.")
		return
	}

	fmt.Fprintf(w, "  %-8s %-24s %-6s %s\n", "CODE", "NAME", "EXAMS", "IMPORTED")
	for _, session := range sessions {
		marker := " "
		if session.Code == active {
			marker = "*"
		}

		count, err := db.CountTimings(session.ID)
		if err != nil {
			zap.L().Warn("failed to count timings", zap.String("session", session.Code), zap.Error(err))
		}

		fmt.Fprintf(w, "%s %-8s %-24s %-6d %s\n",
			marker,
			session.Code,
			truncate(session.Name, 24),
			count,
			session.ImportedAt.Format("2006-01-02 15:04"))
	}
}

func init() {
	sessionsImportCmd.Flags().String("code", "", "Session code (default: from the file)")
	sessionsImportCmd.Flags().String("name", "", "Display name, e.g. \"April 2023\"")

	sessionsCmd.AddCommand(sessionsImportCmd)
	sessionsCmd.AddCommand(sessionsIndexCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsUseCmd)
	sessionsCmd.AddCommand(sessionsRemoveCmd)
}
