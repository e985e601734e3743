// Package models содержит доменные структуры приложения: пользователя,
// запись журнала расходов и входные/выходные данные операций над журналом.
package models

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           int64  // Уникальный идентификатор пользователя
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // bcrypt-хеш пароля
}

// Credentials — данные формы входа.
type Credentials struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// Registration — данные формы регистрации.
type Registration struct {
	Username     string `json:"username" form:"username" validate:"required"`
	Password     string `json:"password" form:"password" validate:"required"`
	Confirmation string `json:"confirmation" form:"confirmation" validate:"eqfield=Password"`
}
