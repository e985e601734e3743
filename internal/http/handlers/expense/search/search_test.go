package search

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Search(ctx context.Context, userID int64, req models.SearchRequest) (*models.SearchResult, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SearchResult), args.Error(1)
}

func newHandler(t *testing.T, svc Service) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	v, err := view.New(logger)
	require.NoError(t, err)
	return New(logger, svc, v)
}

func searchRequest(form url.Values, accept string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req.WithContext(middlewarectx.WithUserID(req.Context(), 5))
}

func TestSearchHandler_Aggregate(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, int64(5), models.SearchRequest{Year: "2024"}).
		Return(&models.SearchResult{
			Mode:   models.ModeAggregate,
			Months: []models.MonthTotal{{Month: "January", Total: 150}, {Month: "February", Total: 30}},
			Total:  180,
		}, nil).Once()

	form := url.Values{"categry": {""}, "day": {""}, "months": {""}, "year": {"2024"}}
	rr := httptest.NewRecorder()
	newHandler(t, svc).ServeHTTP(rr, searchRequest(form, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "January")
	assert.Contains(t, body, "180")
	assert.Less(t, strings.Index(body, "January"), strings.Index(body, "February"))
}

func TestSearchHandler_ListingJSON(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, int64(5), models.SearchRequest{Category: "Food"}).
		Return(&models.SearchResult{
			Mode:     models.ModeListing,
			Expenses: []*models.Expense{{ID: 1, UserID: 5, Category: "Food", Amount: 12}},
			Total:    12,
		}, nil).Once()

	rr := httptest.NewRecorder()
	newHandler(t, svc).ServeHTTP(rr, searchRequest(url.Values{"categry": {"Food"}}, "application/json"))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, models.ModeListing, data["mode"])
	assert.InDelta(t, 12, data["total"], 0)
}

func TestSearchHandler_Listing(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, int64(5), models.SearchRequest{Month: "May"}).
		Return(&models.SearchResult{
			Mode:     models.ModeListing,
			Expenses: []*models.Expense{{ID: 44, Day: 2, Month: "May", Year: 2024, Category: "Bills", Amount: 60}},
			Total:    60,
		}, nil).Once()

	rr := httptest.NewRecorder()
	newHandler(t, svc).ServeHTTP(rr, searchRequest(url.Values{"months": {"May"}}, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="id" type="hidden" value="44"`)
}

func TestSearchHandler_ValidationError(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, int64(5), models.SearchRequest{Day: "31", Month: "February", Year: "2023"}).
		Return(nil, apperr.Validation("Invalid date!!")).Once()

	form := url.Values{"day": {"31"}, "months": {"February"}, "year": {"2023"}}
	rr := httptest.NewRecorder()
	newHandler(t, svc).ServeHTTP(rr, searchRequest(form, ""))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Invalid date!!")
}

func TestSearchHandler_Form(t *testing.T) {
	rr := httptest.NewRecorder()
	newHandler(t, new(MockService)).Form(rr, httptest.NewRequest(http.MethodGet, "/search", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="months"`)
}

func TestSearchHandler_IgnoresExtraFormFields(t *testing.T) {
	svc := new(MockService)
	svc.On("Search", mock.Anything, int64(5), models.SearchRequest{Year: "2024"}).
		Return(&models.SearchResult{
			Mode:   models.ModeAggregate,
			Months: []models.MonthTotal{{Month: "March", Total: 20}},
			Total:  20,
		}, nil).Once()

	form := url.Values{"year": {"2024"}, "submit": {"Search"}}
	rr := httptest.NewRecorder()
	newHandler(t, svc).ServeHTTP(rr, searchRequest(form, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<td>March</td><td>20</td>")
	svc.AssertExpectations(t)
}
