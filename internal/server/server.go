// Package server exposes the forecast engine over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/andiescott-hub/personal-finance-calculator/internal/calculation"
	"github.com/andiescott-hub/personal-finance-calculator/internal/config"
	"github.com/andiescott-hub/personal-finance-calculator/internal/domain"
	"github.com/andiescott-hub/personal-finance-calculator/internal/logging"
	"github.com/andiescott-hub/personal-finance-calculator/internal/market"
	"github.com/andiescott-hub/personal-finance-calculator/internal/store"
)

// Handler holds all dependencies for the HTTP handlers.
type Handler struct {
	Store  *store.Store
	Market *market.Client
	Parser *config.Parser
	Logger *zap.SugaredLogger

	// baseConfig is served when no snapshot has been saved yet.
	baseConfig *domain.ForecastConfig
}

// NewHandler creates a handler. The store may be nil, in which case the
// persistence endpoints report storage as unconfigured and the base
// configuration is always used.
func NewHandler(st *store.Store, mkt *market.Client, base *domain.ForecastConfig, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		Store:      st,
		Market:     mkt,
		Parser:     config.NewParser(),
		Logger:     logger,
		baseConfig: base,
	}
}

func (h *Handler) calcLogger() calculation.Logger {
	return logging.ZapLogger{S: h.Logger}
}

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/forecast", h.GetForecast)
		r.Get("/income", h.GetIncome)
		r.Get("/price", h.GetPrice)
		r.Get("/context", h.GetAssistantContext)
		r.Route("/data", func(r chi.Router) {
			r.Get("/", h.GetData)
			r.Post("/", h.PostData)
		})
	})

	return r
}

// ListenAndServe runs the HTTP server on the given address.
func ListenAndServe(addr string, h *Handler) error {
	h.Logger.Infow("starting server", "addr", addr)
	return http.ListenAndServe(addr, NewRouter(h))
}
