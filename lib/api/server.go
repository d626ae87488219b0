package api

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
)

// Server wraps http.Server with access logging on every request.
type Server struct {
	bind string
	core *http.Server
}

func NewServer(bind string, handler http.Handler, logOutput io.Writer) *Server {
	if logOutput == nil {
		logOutput = os.Stdout
	}

	core := &http.Server{
		Addr:        bind,
		Handler:     handlers.CombinedLoggingHandler(logOutput, handler),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
		// WriteTimeout stays zero: the proposal stream holds its response
		// open for the lifetime of the subscription.
	}

	return &Server{
		bind: bind,
		core: core,
	}
}

func (s *Server) Start() error {
	log.Info("api server started", "bind", s.bind)
	if err := s.core.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.core.Shutdown(ctx); err != nil {
		s.core.Close()
	}
}
