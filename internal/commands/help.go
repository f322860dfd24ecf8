package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help [command]",
	Short: "Show help for examtt",
	Long:  `Display an overview of every examtt command, or help for one command.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
				target.Help() //nolint:errcheck
				return
			}
		}
		showCustomHelp(cmd.OutOrStdout())
	},
}

func showCustomHelp(w io.Writer) {
	fmt.Fprint(w, `
examtt - exam timetable lookup

GETTING STARTED:

  examtt sessions import exams_20231.json
  examtt surname Smith
  examtt courses add CSC108H1F MAT137Y1Y:L5101
  examtt lookup

COMMANDS:

  lookup [COURSE[:SECTION]...]   Show your exam times
    -s, --surname               Last name (default: saved)
    --session                   Session code (default: active)
    --json                      JSON output
    -i, --interactive           Interactive lookup

  sessions import <file|url>     Import a session's timetable
    --code, --name              Override the session code and name
  sessions index [file|url]      Import every session in an index
  sessions ls                    List imported sessions (* = active)
  sessions use <code>            Select the active session
  sessions rm <code>             Remove a session

  courses add <COURSE[:SECTION]...>
  courses rm <id>
  courses ls
  courses clear

  surname [name]                 Show or set your last name
  split <split> [surname...]     Check how a split like "A-L, N-Z" is read
  export [COURSE...] -o file     Write your exams to an .ics calendar
  serve --addr host:port         Serve lookups over HTTP
  version                        Print version

GLOBAL FLAGS:

  --db <path>                    Database file (default ~/.examtt/examtt.db)
  --log-level <level>            debug, info, warn, error

Environment variables use the EXAMTT_ prefix (EXAMTT_SESSION, EXAMTT_INDEX_URL, ...)
and may be placed in a .env file.

`)
}
