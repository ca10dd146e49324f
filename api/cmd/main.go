package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/tunelink/auth-service/internal/bootstrap"
	"github.com/tunelink/auth-service/internal/logger"
)

// shutdownGrace is how long in-flight requests get to finish once a
// stop signal arrives. After that the listener is torn down hard.
const shutdownGrace = 10 * time.Second

// httpServer is the slice of *http.Server that Run actually touches,
// narrowed so tests can substitute a fake.
type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
	Close() error
	Addr() string
}

type realServer struct{ *http.Server }

func (r realServer) Addr() string { return r.Server.Addr }

// serverBuilder produces the wired server and its cleanup. Production
// uses buildFromBootstrap.
type serverBuilder func() (httpServer, func(), error)

// Run drives the server lifecycle and returns the process exit code:
// 0 for a clean stop, 1 when bootstrap fails or the listener dies.
func Run(build serverBuilder, sigCh <-chan os.Signal, lg zerolog.Logger) int {
	srv, cleanup, err := build()
	if err != nil {
		lg.Error().Err(err).Msg("could not assemble server")
		return 1
	}
	defer cleanup()

	crashed := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", srv.Addr()).Msg("auth service up")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			crashed <- err
		}
	}()

	select {
	case sig := <-sigCh:
		lg.Info().Str("signal", sig.String()).Msg("stopping")
	case err := <-crashed:
		lg.Error().Err(err).Msg("listener died")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error().Err(err).Msg("drain timed out, closing connections")
		_ = srv.Close()
	}

	lg.Info().Msg("stopped")
	return 0
}

func buildFromBootstrap() (httpServer, func(), error) {
	srv, cleanup, err := bootstrap.NewServer()
	if err != nil {
		return nil, nil, err
	}
	return realServer{srv}, cleanup, nil
}

func main() {
	// .env is a local-dev convenience, absent in deployed environments.
	_ = godotenv.Load()
	logger.Init()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	os.Exit(Run(buildFromBootstrap, sigCh, zlog.Logger))
}
