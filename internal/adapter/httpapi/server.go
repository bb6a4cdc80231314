package httpapi

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"student-relief/internal/domain"
	"student-relief/internal/usecase/comfort"
)

const (
	serviceName  = "student-relief"
	maxBodyBytes = 100 << 10
)

//go:embed web
var webFS embed.FS

type Comforter interface {
	Comfort(ctx context.Context, message string) (string, error)
}

// Recorder persists diagnostic detail for operators.
type Recorder interface {
	Record(err error) error
}

type Server struct {
	comfort Comforter
	errs    Recorder
	logger  zerolog.Logger
	engine  *gin.Engine
}

func NewServer(comforter Comforter, errs Recorder, logger zerolog.Logger) *Server {
	s := &Server{
		comfort: comforter,
		errs:    errs,
		logger:  logger,
	}

	r := gin.New()
	r.Use(requestID(), accessLog(logger), gin.Recovery(), cors.Default())

	r.GET("/health", s.handleHealth)
	r.POST("/api/comfort", s.handleComfort)

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		logger.Fatal().Err(err).Msg("embedded frontend missing")
	}
	files := http.FileServer(http.FS(static))
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})

	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("✨ student relief listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleComfort(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req struct {
		Message *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, domain.ComfortReply{Error: "Message is too long"})
			return
		}
		c.JSON(http.StatusBadRequest, domain.ComfortReply{Error: "Message is required"})
		return
	}
	if req.Message == nil {
		c.JSON(http.StatusBadRequest, domain.ComfortReply{Error: "Message is required"})
		return
	}

	reply, err := s.comfort.Comfort(c.Request.Context(), *req.Message)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, domain.ComfortReply{ComfortMessage: reply})
	case errors.Is(err, comfort.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, domain.ComfortReply{Error: "Message is required"})
	case errors.Is(err, comfort.ErrNotConfigured):
		s.logger.Warn().Str("request_id", c.GetString(requestIDKey)).Msg("comfort requested without provider key")
		c.JSON(http.StatusInternalServerError, domain.ComfortReply{
			Error:          "API key not configured",
			ComfortMessage: domain.FallbackUnconfigured,
		})
	default:
		s.logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("error calling provider")
		if s.errs != nil {
			if rerr := s.errs.Record(err); rerr != nil {
				s.logger.Error().Err(rerr).Msg("failed to write diagnostic log")
			}
		}
		c.JSON(http.StatusInternalServerError, domain.ComfortReply{
			Error:          "Failed to get comfort message",
			ComfortMessage: domain.Fallback,
		})
	}
}
