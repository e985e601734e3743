// Package login реализует вход пользователя.
//
// GET /login сбрасывает текущую сессию и показывает форму входа.
// POST /login проверяет учётные данные, выдаёт cookie сессии и перенаправляет
// на главную страницу; JSON-клиент получает токен в теле ответа.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/request"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, creds models.Credentials) (string, error)
}

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service
	view    *view.Renderer
	cookies middlewarectx.CookieConfig
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, v *view.Renderer, cookies middlewarectx.CookieConfig) *Handler {
	return &Handler{
		log:     log,
		service: service,
		view:    v,
		cookies: cookies,
	}
}

// Form показывает форму входа. Текущая сессия сбрасывается.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w)
	h.view.Respond(w, r, http.StatusOK, view.PageLogin, view.Page{Title: "Log In"}, nil)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		sl.RequestID(middleware.GetReqID(r.Context())),
	)

	h.cookies.ClearSession(w)

	var req models.Credentials
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Apology(w, r, http.StatusBadRequest, "invalid request body", false)
		return
	}

	token, err := h.service.Login(r.Context(), req)
	if err != nil {
		log.Info("login failed", slog.String("username", req.Username), sl.Err(err))
		h.view.Fail(w, r, err, false)
		return
	}

	h.cookies.SetSession(w, token)
	log.Info("login success", slog.String("username", req.Username))
	h.view.Redirect(w, r, "/", map[string]any{
		"token": token,
	})
}
