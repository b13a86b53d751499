package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	"gitlab.com/algotutor.net/internal/core/services/solve"
	"gitlab.com/algotutor.net/internal/handlers"
	solvehandler "gitlab.com/algotutor.net/internal/handlers/solve"
)

type ServiceProvider struct {
	solveService   solve.ISolveService
	metricsHandler http.Handler
}

func NewServiceProvider(solveService solve.ISolveService, metricsHandler http.Handler) *ServiceProvider {
	return &ServiceProvider{
		solveService:   solveService,
		metricsHandler: metricsHandler,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	WriteTimeout    time.Duration
	logger          primary.Logger
}

// NewServer builds the server. writeTimeout must cover every outbound call a
// single request can make.
func NewServer(port int, serviceName string, serviceProvider ServiceProvider, writeTimeout time.Duration, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		WriteTimeout:    writeTimeout,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	if s.ServiceProvider.solveService == nil {
		return errors.New("solve service is required")
	}

	r := mux.NewRouter()
	mw := handlers.New(s.logger)
	r.Use(mw.RequestID, mw.Logging, mw.Recover)

	handlers.NewHealthHandler(s.ServiceName).RegisterRoutes(r)
	solvehandler.
		NewSolveHandler(s.ServiceProvider.solveService, s.logger).
		RegisterRoutes(r)
	if s.ServiceProvider.metricsHandler != nil {
		r.Handle("/metrics", s.ServiceProvider.metricsHandler).Methods("GET")
	}

	s.router = r
	return nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves in the background; listen failures are reported on the returned channel
func (s *Server) Start() <-chan error {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
