package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/toyz/jsonctx/internal/cli"
	"github.com/toyz/jsonctx/internal/errors"
	"github.com/toyz/jsonctx/internal/utils"
)

const (
	// MaxRequestBytes bounds the body of a generate request
	MaxRequestBytes = 32 << 20

	// ShutdownTimeout is how long in-flight requests get once the server is stopped
	ShutdownTimeout = 10 * time.Second
)

// GenerateRequest is the body of POST /v1/generate
type GenerateRequest struct {
	Files []cli.Source `json:"files" binding:"required,min=1"`
}

// GenerateResponse is the answer to a successful generate request
type GenerateResponse struct {
	RunID  string           `json:"run_id"`
	Count  int              `json:"count"`
	Types  []string         `json:"types"`
	Output string           `json:"output"`
	Files  []cli.FileReport `json:"files"`
}

// Server exposes declaration generation over HTTP
type Server struct {
	engine      *gin.Engine
	generator   *cli.Generator
	diagnostics *utils.DiagnosticSystem
}

// New creates a server generating through gen
func New(gen *cli.Generator) *Server {
	s := &Server{
		engine:      gin.New(),
		generator:   gen,
		diagnostics: gen.Diagnostics(),
	}

	s.engine.Use(gin.Recovery(), s.logRequests())
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/v1")
	v1.POST("/generate", s.handle(s.generate))

	return s
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(errors.ConfigurationErrorCode, err, "failed to listen on %s", addr).
			WithSuggestions(
				"choose a free address with --addr or server.addr",
				"use the host:port form, for example :8080",
			)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		s.diagnostics.Info("Listening on %s", listener.Addr())
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.diagnostics.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.UnknownErrorCode, "server forced to shutdown", err)
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) generate(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestBytes)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return bindError(err)
	}

	result, err := s.generator.GenerateSources(c.Request.Context(), req.Files)
	if err != nil {
		return err
	}

	types := result.Names
	if types == nil {
		types = []string{}
	}
	c.JSON(http.StatusOK, GenerateResponse{
		RunID:  uuid.NewString(),
		Count:  len(types),
		Types:  types,
		Output: result.Output,
		Files:  result.Summary.Files,
	})
	return nil
}

func bindError(err error) *HttpError {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return ErrRequestTooLarge("request body exceeds the size limit")
	}

	var invalid validator.ValidationErrors
	if stderrors.As(err, &invalid) {
		return ErrBadRequest("files must contain at least one source file")
	}
	return ErrBadRequest("malformed request body: " + err.Error())
}

// handle converts an error-returning handler into a gin handler
func (s *Server) handle(handler func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := handler(c)
		if err == nil {
			return
		}

		var httpErr *HttpError
		if !stderrors.As(err, &httpErr) {
			s.diagnostics.Error("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			httpErr = ErrInternalServerError(err.Error())
		}
		c.AbortWithStatusJSON(httpErr.StatusCode, httpErr)
	}
}

func (s *Server) logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.diagnostics.Verbose("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
	}
}
