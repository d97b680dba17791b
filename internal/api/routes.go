// Route registration and go-chi router setup.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matiasleandrokruk/agentrelay/internal/api/handlers"
	apmiddleware "github.com/matiasleandrokruk/agentrelay/internal/api/middleware"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/agent"
	"github.com/matiasleandrokruk/agentrelay/internal/domain/audit"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/config"
	"github.com/matiasleandrokruk/agentrelay/internal/infra/logging"
)

// NewRouter wires the relay's two routes.
//   - GET /ping is public: load balancers and runtime health probes hit it.
//   - POST /invocations carries Bearer auth when a JWT secret is configured.
func NewRouter(agentClient agent.Client, auditSvc *audit.Service, logger *logging.Logger, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on all routes)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apmiddleware.RequestLog(logger))
	r.Use(middleware.Recoverer)

	pingHandler := handlers.NewPingHandler()
	r.Get("/ping", pingHandler.Ping)

	invocationsHandler := handlers.NewInvocationsHandler(agentClient, auditSvc, logger, cfg.ModelID)
	r.Group(func(r chi.Router) {
		r.Use(apmiddleware.AuthMiddleware([]byte(cfg.JWTSecret)))
		r.Post("/invocations", invocationsHandler.Invoke)
	})

	return r
}
