package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/config"
	"github.com/dokzlo13/smarthome/internal/driver"
	"github.com/dokzlo13/smarthome/internal/shell"
)

// App is the main application container that manages all services and their lifecycle.
type App struct {
	cfg      *config.Config
	services *Services
}

// New creates a new App instance with the home installed and all services wired.
func New(cfg *config.Config) (*App, error) {
	services, err := NewServices(cfg)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		services: services,
	}, nil
}

// SessionID identifies this run in the event ledger
func (a *App) SessionID() string {
	return a.services.SessionID
}

// Driver returns the boundary both entry points go through
func (a *App) Driver() *driver.Driver {
	return a.services.Driver
}

// RunShell runs the interactive shell until input ends, "quit" or ctx is cancelled.
func (a *App) RunShell(ctx context.Context, in io.Reader, out io.Writer) error {
	sh := shell.New(a.services.Driver, in, out, shell.Options{
		Prompt:     a.cfg.Shell.Prompt,
		EchoEvents: a.cfg.Shell.IsEchoEnabled(),
	})

	log.Debug().Msg("Shell started")
	return sh.Run(ctx)
}

// RunScript executes a Lua scenario against the home.
func (a *App) RunScript(path string) error {
	return a.services.Lua.RunFile(path)
}

// Close releases all resources, waiting at most the configured shutdown timeout.
func (a *App) Close() error {
	done := make(chan error, 1)
	go func() {
		done <- a.services.Close()
	}()

	timeout := a.cfg.ShutdownTimeout.Duration()
	if timeout <= 0 {
		return <-done
	}

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return ErrShutdownTimeout
	}
}

// SignalContext creates a context that is cancelled when SIGINT or SIGTERM is received.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Warn().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	return ctx
}
