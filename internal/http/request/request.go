// Package request разбирает тело запроса в структуру.
package request

import (
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/render"
)

// Decode разбирает тело запроса в v. Формы разбираются по тегам form,
// лишние поля формы (кнопка submit, токены) пропускаются; остальные
// типы содержимого передаются render.Decode.
func Decode(r *http.Request, v any) error {
	if render.GetRequestContentType(r) != render.ContentTypeForm {
		return render.Decode(r, v)
	}
	d := form.NewDecoder(r.Body)
	d.IgnoreUnknownKeys(true)
	return d.Decode(v)
}
