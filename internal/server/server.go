// Package server exposes timetable lookups over a read-only HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/balkashynov/examtt/internal/logger"
	"github.com/balkashynov/examtt/internal/models"
	"github.com/balkashynov/examtt/internal/timetable"
)

const shutdownTimeout = 5 * time.Second

// Store is the read side of the session store
type Store interface {
	Sessions() ([]models.ExamSession, error)
	Session(code string) (*models.ExamSession, error)
	Timings(code string) ([]models.ExamTiming, error)
}

type Server struct {
	store   Store
	matcher *timetable.Matcher
	metrics *Metrics
	log     *zap.Logger
	loc     *time.Location
	now     func() time.Time
}

// New creates a Server reading from store. loc is the timezone exam times
// are published in; nil means the host's local zone.
func New(store Store, log *zap.Logger, loc *time.Location) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Server{
		store:   store,
		matcher: timetable.NewMatcher(),
		metrics: NewMetrics(),
		log:     log,
		loc:     loc,
		now:     time.Now,
	}
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Router builds the gin engine with every route registered
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(s.log))
	r.Use(s.metrics.Middleware())

	r.GET("/health", s.health)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.GET("/sessions", s.listSessions)
	api.GET("/sessions/:code", s.getSession)
	api.GET("/sessions/:code/lookup", s.lookup)
	api.GET("/sessions/:code/calendar.ics", s.exportCalendar)

	return r
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
