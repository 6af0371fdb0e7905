// Package httptransport assembles the public HTTP surface: auth routes,
// health, and the Prometheus endpoint.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warden/internal/auth/handler"
	"warden/internal/platform/middleware"
	"warden/pkg/platform/httputil"
)

// HealthCheck probes one backend dependency.
type HealthCheck func(ctx context.Context) error

// NewRouter wires all public endpoints behind the shared middleware stack.
// checks maps dependency names to their probes; an empty map means the
// process is healthy whenever it can answer.
func NewRouter(auth *handler.Handler, logger *slog.Logger, checks map[string]HealthCheck) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))

	auth.Register(r)

	r.Get("/health", handleHealth(checks))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func handleHealth(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		status := http.StatusOK
		body := map[string]string{"status": "ok"}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body[name] = err.Error()
			} else {
				body[name] = "ok"
			}
		}
		httputil.WriteJSON(w, status, body)
	}
}
