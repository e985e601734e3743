// Package password хеширует и проверяет пароли пользователей.
//
// Hash создаёт bcrypt-хеш (соль встроена в сам хеш), Compare сверяет
// сохранённый хеш с введённым паролем. Открытый пароль нигде не сохраняется.
//
// bcrypt принимает не больше 72 байт, поэтому более длинный пароль
// перед хешированием сводится к base64(SHA-256).
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch возвращается, если пароль не соответствует хешу.
var ErrMismatch = errors.New("password does not match hash")

// maxInputLen — предел длины входа bcrypt.
const maxInputLen = 72

func prepare(password string) []byte {
	if len(password) <= maxInputLen {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash возвращает bcrypt-хеш пароля со стоимостью bcrypt.DefaultCost.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword(prepare(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt-хеш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при несовпадении
// и обёрнутую ошибку bcrypt, если хеш повреждён.
func Compare(hash, password string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), prepare(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
