package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/futig/scholar-backend/internal/repository"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App is the HTTP server together with the in-memory state it serves
type App struct {
	server    *http.Server
	documents repository.DocumentRepository
	logger    *zap.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then drains in-flight requests
func (a *App) Run() error {
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		a.logger.Error("HTTP server failed", zap.Error(err))
		return err
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	// uploaded documents are not persisted
	a.logger.Info("Application stopped gracefully",
		zap.Int("documents_dropped", a.documents.Count(shutdownCtx)),
	)
	return nil
}
