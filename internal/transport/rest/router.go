package rest

import (
	"log/slog"

	"github.com/frahmantamala/moneymappr/internal/budget"
	"github.com/frahmantamala/moneymappr/internal/category"
	"github.com/frahmantamala/moneymappr/internal/summary"
	"github.com/frahmantamala/moneymappr/internal/transaction"
	"github.com/frahmantamala/moneymappr/internal/transport/middleware"
	"github.com/frahmantamala/moneymappr/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// Handlers groups the HTTP handlers mounted by RegisterAllRoutes.
type Handlers struct {
	Health      *HealthHandler
	Transaction *transaction.Handler
	Budget      *budget.Handler
	Summary     *summary.Handler
	Category    *category.Handler
}

func RegisterAllRoutes(router chi.Router, h Handlers, allowedOrigins string, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	// The API answers at the root and under /api/v1.
	router.Group(func(r chi.Router) {
		registerAPIRoutes(r, h)
	})
	router.Route("/api/v1", func(r chi.Router) {
		registerAPIRoutes(r, h)
	})
}

func registerAPIRoutes(r chi.Router, h Handlers) {
	if h.Health != nil {
		r.Get("/health", h.Health.Health)
		r.Get("/ping", h.Health.Ping)
	}

	if h.Category != nil {
		r.Get("/categories", h.Category.GetCategories)
	}

	r.Route("/transactions", func(tr chi.Router) {
		if h.Transaction != nil {
			tr.Get("/", h.Transaction.ListTransactions)
			tr.Post("/", h.Transaction.CreateTransaction)
			tr.Get("/{id}", h.Transaction.GetTransaction)
			tr.Put("/{id}", h.Transaction.UpdateTransaction)
			tr.Delete("/{id}", h.Transaction.DeleteTransaction)
		}

		if h.Summary != nil {
			tr.Get("/summary", h.Summary.GetSummary)
			tr.Get("/summary/monthly.png", h.Summary.MonthlyChart)
			tr.Get("/summary/categories.png", h.Summary.CategoryChart)
		}
	})

	if h.Budget != nil {
		r.Route("/budgets", func(br chi.Router) {
			br.Get("/", h.Budget.ListBudgets)
			br.Post("/", h.Budget.SaveBudget)
			br.Get("/comparison", h.Budget.CompareBudgets)
		})
	}
}
