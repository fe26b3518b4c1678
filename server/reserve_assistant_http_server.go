package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/ternarybob/arbor"
)

type ReserveAssistantHttpServer struct {
	router          *Router
	muxRouter       *mux.Router
	addr            string
	shutdownTimeout time.Duration
	logger          arbor.ILogger

	ready      chan struct{}
	listenAddr string
}

func NewReserveAssistantHttpServer(router *Router, muxRouter *mux.Router, addr string, shutdownTimeout time.Duration, logger arbor.ILogger) *ReserveAssistantHttpServer {
	return &ReserveAssistantHttpServer{
		router:          router,
		muxRouter:       muxRouter,
		addr:            addr,
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
		ready:           make(chan struct{}),
	}
}

// Ready is closed once the server is listening.
func (s *ReserveAssistantHttpServer) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the address the server listens on; valid after Ready.
func (s *ReserveAssistantHttpServer) Addr() string {
	return s.listenAddr
}

// Start serves until ctx is done or the process receives SIGINT/SIGTERM,
// then shuts down gracefully.
func (s *ReserveAssistantHttpServer) Start(ctx context.Context) error {
	s.router.RegisterRoutes()

	srv := &http.Server{
		Handler:           s.muxRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listenAddr = ln.Addr().String()

	// Channel to listen for interrupt or termination signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.listenAddr).Msg("[HttpServer] Starting server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	close(s.ready)

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-stop:
	case <-ctx.Done():
	}

	s.logger.Info().Msg("[HttpServer] Shutting down the server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info().Msg("[HttpServer] Server exiting")
	return nil
}
