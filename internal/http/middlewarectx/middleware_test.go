package middlewarectx_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/expense-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/expense-tracker/internal/http/view"
)

type IdentifierMock struct {
	mock.Mock
}

func (m *IdentifierMock) Identify(token string) (int64, error) {
	args := m.Called(token)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// echoUser отвечает ID пользователя из контекста или "anonymous".
func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middlewarectx.UserIDFrom(r.Context()); ok {
			_, _ = io.WriteString(w, "user")
			return
		}
		_, _ = io.WriteString(w, "anonymous")
	})
}

func TestSession(t *testing.T) {
	tests := []struct {
		name      string
		cookie    string
		bearer    string
		setupMock func(m *IdentifierMock)
		wantBody  string
	}{
		{
			name:   "valid cookie",
			cookie: "good",
			setupMock: func(m *IdentifierMock) {
				m.On("Identify", "good").Return(int64(5), nil).Once()
			},
			wantBody: "user",
		},
		{
			name:   "valid bearer token",
			bearer: "good",
			setupMock: func(m *IdentifierMock) {
				m.On("Identify", "good").Return(int64(5), nil).Once()
			},
			wantBody: "user",
		},
		{
			name:   "invalid token",
			cookie: "bad",
			setupMock: func(m *IdentifierMock) {
				m.On("Identify", "bad").Return(int64(0), errors.New("expired")).Once()
			},
			wantBody: "anonymous",
		},
		{
			name:      "no token",
			setupMock: func(*IdentifierMock) {},
			wantBody:  "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := new(IdentifierMock)
			tt.setupMock(ident)

			h := middlewarectx.Session(ident, newNoopLogger())(echoUser())

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewarectx.CookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantBody, rr.Body.String())
			ident.AssertExpectations(t)
		})
	}
}

func TestRequireUser(t *testing.T) {
	h := middlewarectx.RequireUser(newNoopLogger())(echoUser())

	t.Run("browser is redirected to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusFound, rr.Code)
		assert.Equal(t, "/login", rr.Header().Get("Location"))
	})

	t.Run("json client gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req.Header.Set("Accept", "application/json")
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"status":"Error","error":"login required"}`, rr.Body.String())
	})

	t.Run("user passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/search", nil)
		req = req.WithContext(middlewarectx.WithUserID(req.Context(), 3))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user", rr.Body.String())
	})
}

func TestNoCache(t *testing.T) {
	h := middlewarectx.NoCache(echoUser())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "no-cache, no-store, must-revalidate", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "0", rr.Header().Get("Expires"))
	assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
}

func TestRateLimitMiddleware(t *testing.T) {
	v, err := view.New(newNoopLogger())
	require.NoError(t, err)

	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), v, 0.001, 2)(echoUser())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCookieConfig(t *testing.T) {
	c := middlewarectx.CookieConfig{TTL: time.Hour, Secure: true}

	rr := httptest.NewRecorder()
	c.SetSession(rr, "tok")
	set := rr.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, middlewarectx.CookieName, set[0].Name)
	assert.Equal(t, "tok", set[0].Value)
	assert.Equal(t, 3600, set[0].MaxAge)
	assert.True(t, set[0].HttpOnly)
	assert.True(t, set[0].Secure)

	rr = httptest.NewRecorder()
	c.ClearSession(rr)
	set = rr.Result().Cookies()
	require.Len(t, set, 1)
	assert.Empty(t, set[0].Value)
	assert.Negative(t, set[0].MaxAge)
}

func TestMetrics(t *testing.T) {
	r := chi.NewRouter()
	r.Use(middlewarectx.Metrics)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
}
