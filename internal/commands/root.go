package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/config"
	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfg *config.Config

	// Persistent flag overrides
	dbPathFlag   string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "examtt",
	Short: "Find your exam times",
	Long: `examtt looks up your final exam times from the published exam timetable.
Import a session's timetable, save your last name and courses, and see when
and where each of your exams is. Results can be exported to a calendar or
served over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// setup loads configuration and installs the global logger
func setup() error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if dbPathFlag != "" {
		loaded.DBPath = dbPathFlag
	}
	if logLevelFlag != "" {
		loaded.Log.Level = strings.ToLower(logLevelFlag)
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevelFlag, err)
		}
	}

	l, err := logger.New(loaded)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	cfg = loaded
	return nil
}

// timetableLocation is the timezone exam times are published in
func timetableLocation() *time.Location {
	if cfg == nil || cfg.Timezone == "" {
		return time.Local
	}
	return cfg.Location()
}

// examNow is the current time in the timetable's timezone
func examNow() time.Time {
	return time.Now().In(timetableLocation())
}

// initDB opens the database and exits on failure
func initDB() {
	if err := db.Initialize(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to open database: %v\n", err)
		os.Exit(1)
	}
}

// fail prints an error and exits
func fail(err error) {
	fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
	os.Exit(1)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "examtt %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	defer zap.L().Sync() //nolint:errcheck
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "SQLite database path (default ~/.examtt/examtt.db)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(surnameCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
