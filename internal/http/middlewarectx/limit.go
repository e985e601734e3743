package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
)

// Apologizer отвечает страницей-извинением.
type Apologizer interface {
	Apology(w http.ResponseWriter, r *http.Request, status int, msg string, loggedIn bool)
}

// RateLimitMiddleware ограничивает частоту запросов общим для всех клиентов
// лимитом rps с запасом burst.
func RateLimitMiddleware(log *slog.Logger, v Apologizer, rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests",
					sl.Op("middlewarectx.RateLimit"),
					sl.RequestID(middleware.GetReqID(r.Context())),
				)
				_, loggedIn := UserIDFrom(r.Context())
				v.Apology(w, r, http.StatusTooManyRequests, "too many requests", loggedIn)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
