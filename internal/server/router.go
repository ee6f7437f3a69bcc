package server

import (
	"context"
	"net/http"

	"guardian-beam/internal/constants"
	"guardian-beam/internal/middleware"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewRouter serves the moderation service next to /healthz and /metrics.
func NewRouter(
	moderation *ModerationServer,
	interceptor connect.UnaryInterceptorFunc,
	reg *prometheus.Registry,
	db Pinger,
	logger zerolog.Logger,
) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(c.Handler)

	r.Get("/healthz", healthHandler(db, logger))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	path, handler := NewHandler(moderation, connect.WithInterceptors(interceptor))
	r.Handle(path+"*", handler)

	return r
}

func healthHandler(db Pinger, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
		defer cancel()

		status := http.StatusOK
		resp := healthResponse{Status: "ok"}
		if err := db.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("health check failed")
			status = http.StatusServiceUnavailable
			resp = healthResponse{Status: "unavailable", Error: err.Error()}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Warn().Err(err).Msg("failed to write health response")
		}
	}
}
