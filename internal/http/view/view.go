// Package view отрисовывает HTML-страницы приложения и выбирает формат
// ответа: HTML по умолчанию, JSON-конверт для клиентов с Accept: application/json.
package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/expense-tracker/internal/http/response"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/calendar"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц.
const (
	PageIndex     = "index"
	PageSearch    = "search"
	PageAggregate = "aggregate"
	PageListing   = "listing"
	PageLogin     = "login"
	PageRegister  = "register"
	PageApology   = "apology"
)

// MsgInternal показывается при ошибках, не предназначенных пользователю.
const MsgInternal = "internal server error"

// Page — данные для шаблона страницы.
type Page struct {
	Title      string
	LoggedIn   bool
	Categories []string
	Months     []string
	Result     *models.SearchResult
	Code       int
	Message    string
}

// FormData — JSON-представление данных формы добавления и поиска.
type FormData struct {
	Categories []string `json:"categories"`
	Months     []string `json:"months"`
}

// Form возвращает страницу формы со списками категорий и месяцев.
func Form(title string, loggedIn bool) Page {
	return Page{
		Title:      title,
		LoggedIn:   loggedIn,
		Categories: calendar.Categories,
		Months:     calendar.Months,
	}
}

// Renderer выполняет шаблоны из встроенной файловой системы.
type Renderer struct {
	tmpl *template.Template
	log  *slog.Logger
}

// New разбирает встроенные шаблоны.
func New(log *slog.Logger) (*Renderer, error) {
	const op = "view.New"
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Renderer{tmpl: t, log: log}, nil
}

// WantsJSON сообщает, что клиент просит JSON.
func WantsJSON(r *http.Request) bool {
	return render.GetAcceptedContentType(r) == render.ContentTypeJSON
}

// HTML отрисовывает страницу name со статусом status.
// Шаблон выполняется в буфер, чтобы ошибка не оставила наполовину записанный ответ.
func (v *Renderer) HTML(w http.ResponseWriter, status int, name string, page Page) {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		v.log.Error("failed to execute template", slog.String("template", name), sl.Err(err))
		http.Error(w, MsgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Respond отвечает страницей name или, для JSON-клиента, конвертом с data.
func (v *Renderer) Respond(w http.ResponseWriter, r *http.Request, status int, name string, page Page, data any) {
	if WantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, response.OK(data))
		return
	}
	v.HTML(w, status, name, page)
}

// Redirect перенаправляет браузер на url; JSON-клиент получает 200 и data.
func (v *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url string, data any) {
	if WantsJSON(r) {
		render.JSON(w, r, response.OK(data))
		return
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// Apology отвечает страницей-извинением с кодом status и сообщением msg.
func (v *Renderer) Apology(w http.ResponseWriter, r *http.Request, status int, msg string, loggedIn bool) {
	if WantsJSON(r) {
		render.Status(r, status)
		render.JSON(w, r, response.Error(msg))
		return
	}
	v.HTML(w, status, PageApology, Page{
		Title:    "Apology",
		LoggedIn: loggedIn,
		Code:     status,
		Message:  msg,
	})
}

// Fail отвечает на ошибку операции: пользовательские ошибки показываются
// с их сообщением, остальные — как внутренняя ошибка.
func (v *Renderer) Fail(w http.ResponseWriter, r *http.Request, err error, loggedIn bool) {
	status, msg := StatusFor(err)
	v.Apology(w, r, status, msg, loggedIn)
}

// StatusFor возвращает HTTP-статус и сообщение для ошибки.
func StatusFor(err error) (int, string) {
	msg, ok := apperr.Message(err)
	if !ok {
		return http.StatusInternalServerError, MsgInternal
	}
	switch {
	case errors.Is(err, apperr.ErrAuth):
		return http.StatusForbidden, msg
	default:
		return http.StatusBadRequest, msg
	}
}
