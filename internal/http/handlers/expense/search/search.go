// Package search ищет записи журнала пользователя и строит сводку за год.
package search

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

// Service описывает поиск по журналу.
type Service interface {
	Search(ctx context.Context, userID int64, req models.SearchRequest) (*models.SearchResult, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
	view    *view.Renderer
}

func New(log *slog.Logger, service Service, v *view.Renderer) *Handler {
	return &Handler{
		log:     log,
		service: service,
		view:    v,
	}
}

// Form показывает форму поиска.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.view.Respond(w, r, http.StatusOK, view.PageSearch, view.Form("Search", true), view.FormData{
		Categories: calendar.Categories,
		Months:     calendar.Months,
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.expense.search"

	log := h.log.With(
		sl.Op(op),
		sl.RequestID(middleware.GetReqID(r.Context())),
	)

	userID, _ := middlewarectx.UserIDFrom(r.Context())

	var req models.SearchRequest
	if err := request.Decode(r, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		h.view.Apology(w, r, http.StatusBadRequest, "invalid request body", true)
		return
	}

	result, err := h.service.Search(r.Context(), userID, req)
	if err != nil {
		log.Error("search failed", sl.Err(err))
		h.view.Fail(w, r, err, true)
		return
	}

	page := view.PageListing
	if result.Mode == models.ModeAggregate {
		page = view.PageAggregate
	}
	log.Debug("search done", slog.String("mode", result.Mode), slog.Int64("total", result.Total))
	h.view.Respond(w, r, http.StatusOK, page, view.Page{
		Title:    "Search",
		LoggedIn: true,
		Result:   result,
	}, result)
}
