// Package expensetracker собирает HTTP-приложение учёта расходов.
package expensetracker

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/create"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/remove"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/expense/search"
	"github.com/magabrotheeeer/expense-tracker/internal/http/handlers/health"
	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	authservice "github.com/magabrotheeeer/expense-tracker/internal/services/auth"
	ledgerservice "github.com/magabrotheeeer/expense-tracker/internal/services/ledger"
)

// Deps — зависимости обработчиков.
type Deps struct {
	Auth    *authservice.AuthService
	Ledger  *ledgerservice.LedgerService
	Storage health.Pinger
	View    *view.Renderer
	Cookies middlewarectx.CookieConfig
	RPS     float64
	Burst   int
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.NoCache,
		middlewarectx.Metrics,
		middlewarectx.Session(d.Auth, logger),
	)

	loginHandler := login.New(logger, d.Auth, d.View, d.Cookies)
	registerHandler := register.New(logger, d.Auth, d.View)
	authLimit := middlewarectx.RateLimitMiddleware(logger, d.View, d.RPS, d.Burst)

	// Открытые конечные точки
	r.Get("/login", loginHandler.Form)
	r.With(authLimit).Post("/login", loginHandler.ServeHTTP)
	r.Get("/register", registerHandler.Form)
	r.With(authLimit).Post("/register", registerHandler.ServeHTTP)
	r.Get("/logout", logout.New(logger, d.View, d.Cookies).ServeHTTP)

	// Группа с обязательной сессией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireUser(logger))

		createHandler := create.New(logger, d.Ledger, d.View)
		r.Get("/", createHandler.Form)
		r.Post("/", createHandler.ServeHTTP)

		searchHandler := search.New(logger, d.Ledger, d.View)
		r.Get("/search", searchHandler.Form)
		r.Post("/search", searchHandler.ServeHTTP)

		r.Post("/delete", remove.New(logger, d.Ledger, d.View).ServeHTTP)
	})

	r.Get("/health", health.New(logger, d.Storage).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
