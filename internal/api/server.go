package api

import (
	"net/http"
	"time"

	"github.com/futig/scholar-backend/internal/api/docs"
	documentapi "github.com/futig/scholar-backend/internal/api/document"
	"github.com/futig/scholar-backend/internal/api/middleware"
	qaapi "github.com/futig/scholar-backend/internal/api/qa"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	qaHandler *qaapi.Handler,
	documentHandler *documentapi.Handler,
	logger *zap.Logger,
	handlerTimeout time.Duration,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS)
	r.Use(chimiddleware.Timeout(handlerTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	docs.RegisterRoutes(r)

	qaapi.RegisterRoutes(r, qaHandler)
	documentapi.RegisterRoutes(r, documentHandler)

	return r
}
