// Package middlewarectx содержит HTTP middleware приложения: сессию
// пользователя, проверку входа, заголовки против кеширования, ограничение
// частоты запросов и метрики.
//
// Session читает токен сессии из cookie (или заголовка Authorization: Bearer
// для JSON-клиентов) и, если токен валиден, кладёт ID пользователя в контекст.
// RequireUser пропускает дальше только запросы с пользователем в контексте.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserID — ключ для ID пользователя в контексте.
const UserID Key = "user_id"

// CookieName — имя cookie сессии.
const CookieName = "session"

// Identifier проверяет токен сессии.
type Identifier interface {
	Identify(token string) (int64, error)
}

// UserIDFrom возвращает ID пользователя текущего запроса.
func UserIDFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserID).(int64)
	return id, ok && id > 0
}

// WithUserID возвращает контекст с ID пользователя.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, UserID, id)
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// Session определяет пользователя по токену. Запрос без токена или
// с невалидным токеном проходит дальше анонимным.
func Session(identifier Identifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"

			token := tokenFrom(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			id, err := identifier.Identify(token)
			if err != nil {
				log.Debug("session token rejected",
					sl.Op(op),
					sl.RequestID(middleware.GetReqID(r.Context())),
					sl.Err(err),
				)
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

// RequireUser пропускает только запросы с пользователем в контексте.
// Браузер перенаправляется на /login, JSON-клиент получает 401.
func RequireUser(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireUser"

			if _, ok := UserIDFrom(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			log.Info("login required",
				sl.Op(op),
				sl.RequestID(middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
			)
			if view.WantsJSON(r) {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("login required"))
				return
			}
			http.Redirect(w, r, "/login", http.StatusFound)
		})
	}
}

// CookieConfig — параметры cookie сессии.
type CookieConfig struct {
	TTL    time.Duration
	Secure bool
}

// SetSession записывает токен в cookie сессии.
func (c CookieConfig) SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession удаляет cookie сессии.
func (c CookieConfig) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
