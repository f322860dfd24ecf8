package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/config"
	"github.com/balkashynov/examtt/internal/db"
	"github.com/balkashynov/examtt/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long: `Start a read-only HTTP API over the imported sessions.

  GET /api/sessions
  GET /api/sessions/:code/lookup?surname=Smith&course=CSC108H1F
  GET /api/sessions/:code/calendar.ics?surname=Smith&course=CSC108H1F
  GET /health
  GET /metrics`,
	Run: func(cmd *cobra.Command, args []string) {
		initDB()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		if cfg.Env == config.EnvProduction {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := server.New(db.Store{}, zap.L(), timetableLocation()).Start(ctx, addr); err != nil {
			fail(err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default EXAMTT_SERVER_ADDR or 127.0.0.1:8080)")
}
