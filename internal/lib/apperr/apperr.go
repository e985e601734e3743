// Package apperr описывает ошибки, которые показываются пользователю.
//
// Каждая ошибка несёт короткое сообщение для страницы-извинения и вид
// (ErrValidation, ErrAuth, ErrConflict), проверяемый через errors.Is.
package apperr

import "errors"

var (
	// ErrValidation — некорректное или отсутствующее поле формы.
	ErrValidation = errors.New("validation error")
	// ErrAuth — неудачный вход; сообщение намеренно не уточняет причину.
	ErrAuth = errors.New("authentication error")
	// ErrConflict — имя пользователя уже занято.
	ErrConflict = errors.New("conflict")
)

// Error — ошибка с пользовательским сообщением.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Unwrap возвращает вид ошибки.
func (e *Error) Unwrap() error { return e.kind }

// Validation создаёт ошибку валидации.
func Validation(msg string) error { return &Error{kind: ErrValidation, msg: msg} }

// Auth создаёт ошибку аутентификации.
func Auth(msg string) error { return &Error{kind: ErrAuth, msg: msg} }

// Conflict создаёт ошибку конфликта.
func Conflict(msg string) error { return &Error{kind: ErrConflict, msg: msg} }

// Message возвращает пользовательское сообщение, если err (или обёрнутая
// в ней ошибка) — *Error.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.msg, true
	}
	return "", false
}
