// Package logout завершает сессию пользователя.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
)

type Handler struct {
	log     *slog.Logger
	view    *view.Renderer
	cookies middlewarectx.CookieConfig
}

func New(log *slog.Logger, v *view.Renderer, cookies middlewarectx.CookieConfig) *Handler {
	return &Handler{
		log:     log,
		view:    v,
		cookies: cookies,
	}
}

// ServeHTTP сбрасывает cookie сессии безусловно.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.cookies.ClearSession(w)
	if id, ok := middlewarectx.UserIDFrom(r.Context()); ok {
		h.log.Info("user logged out",
			sl.Op(op),
			sl.RequestID(middleware.GetReqID(r.Context())),
			slog.Int64("user_id", id),
		)
	}
	h.view.Redirect(w, r, "/", nil)
}
