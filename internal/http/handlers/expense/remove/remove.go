// Package remove удаляет запись журнала по ID.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/expense-tracker/internal/http/request"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
	view    *view.Renderer
}

// Service описывает удаление записи.
type Service interface {
	Remove(ctx context.Context, id int64) (int, error)
}

func New(log *slog.Logger, service Service, v *view.Renderer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		view:    v,
	}
}

// ServeHTTP удаляет запись и возвращает на страницу поиска.
// Нечисловой или несуществующий ID ничего не удаляет и ошибкой не считается.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.remove"

	log := h.log.With(
		sl.Op(op),
		sl.RequestID(middleware.GetReqID(r.Context())),
	)

	var req models.RemoveRequest
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Apology(w, r, http.StatusBadRequest, "invalid request body", true)
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(req.ID), 10, 64)
	if err != nil {
		log.Info("ignoring delete with invalid id", slog.String("id", req.ID))
		h.view.Redirect(w, r, "/search", map[string]any{"deleted_count": 0})
		return
	}

	res, err := h.service.Remove(r.Context(), id)
	if err != nil {
		log.Error("failed to delete expense", sl.Err(err))
		h.view.Fail(w, r, err, true)
		return
	}

	log.Info("delete handled", slog.Int64("id", id), slog.Int("deleted", res))
	h.view.Redirect(w, r, "/search", map[string]any{
		"deleted_count": res,
	})
}
