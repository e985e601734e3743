// Package create добавляет запись в журнал расходов.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/request"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/calendar"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// Service описывает добавление записи.
type Service interface {
	Create(ctx context.Context, userID int64, req models.ExpenseRequest) (int64, error)
}

// Handler обрабатывает GET и POST на главной странице.
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

// Form показывает форму добавления со списками категорий и месяцев.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.view.Respond(w, r, http.StatusOK, view.PageIndex, view.Form("Add Expense", true), view.FormData{
		Categories: calendar.Categories,
		Months:     calendar.Months,
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.create"

	log := h.log.With(
		sl.Op(op),
		sl.RequestID(middleware.GetReqID(r.Context())),
	)

	userID, _ := middlewarectx.UserIDFrom(r.Context())

	var req models.ExpenseRequest
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Apology(w, r, http.StatusBadRequest, "invalid request body", true)
		return
	}

	id, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to insert expense", sl.Err(err))
		h.view.Fail(w, r, err, true)
		return
	}

	log.Info("expense inserted", slog.Int64("id", id))
	h.view.Redirect(w, r, "/", map[string]any{
		"id": id,
	})
}
