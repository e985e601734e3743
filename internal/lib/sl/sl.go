// Package sl содержит вспомогательные функции для работы с логгером slog:
// единообразные атрибуты для ошибок, имени операции и идентификатора запроса.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
// Для nil-ошибки значение пустое, чтобы вызов в defer-блоках был безопасен.
//
// Пример:
//
//	log.Error("failed to insert expense", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает атрибут с именем операции ("handlers.expense.create" и т.п.).
func Op(op string) slog.Attr {
	return slog.String("op", op)
}

// RequestID возвращает атрибут с идентификатором HTTP-запроса.
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}
