// Package register реализует регистрацию пользователя.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/expense-tracker/internal/http/request"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Service описывает регистрацию пользователя.
type Service interface {
	Register(ctx context.Context, reg models.Registration) (int64, error)
}

// Handler обрабатывает HTTP-запросы регистрации.
type Handler struct {
	log     *slog.Logger
	service Service
	view    *view.Renderer
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, v *view.Renderer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		view:    v,
	}
}

// Form показывает форму регистрации.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.view.Respond(w, r, http.StatusOK, view.PageRegister, view.Page{Title: "Register"}, nil)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		sl.Op(op),
		sl.RequestID(middleware.GetReqID(r.Context())),
	)

	var req models.Registration
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Apology(w, r, http.StatusBadRequest, "invalid request body", false)
		return
	}

	id, err := h.service.Register(r.Context(), req)
	if err != nil {
		log.Info("registration rejected", slog.String("username", req.Username), sl.Err(err))
		h.view.Fail(w, r, err, false)
		return
	}

	log.Info("user registered", slog.Int64("id", id))
	h.view.Redirect(w, r, "/login", map[string]any{
		"id": id,
	})
}
