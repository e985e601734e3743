// Package services содержит логику регистрации, входа и проверки сессии.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/metrics"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/password"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/magabrotheeeer/expense-tracker/internal/storage"
)

// Сообщения, которые видит пользователь.
const (
	MsgProvideName        = "Provide a name."
	MsgProvidePassword    = "Provide a password."
	MsgPasswordMismatch   = "Password did not match."
	MsgUsernameExists     = "Username already exists."
	MsgMustProvideName    = "must provide username"
	MsgMustProvidePass    = "must provide password"
	MsgInvalidCredentials = "invalid username and/or password"
	MsgInvalidSession     = "invalid session"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	// Занятое имя сообщается ошибкой storage.ErrUserExists.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUsersByUsername возвращает всех пользователей с данным именем.
	GetUsersByUsername(ctx context.Context, username string) ([]*models.User, error)
}

// AuthService отвечает за регистрацию, вход и проверку токена сессии.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	validate *validator.Validate
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		validate: validator.New(),
	}
}

// Register создает пользователя с bcrypt-хешем пароля и возвращает его ID.
func (s *AuthService) Register(ctx context.Context, reg models.Registration) (int64, error) {
	const op = "services.Register"

	if err := s.validate.Struct(reg); err != nil {
		return 0, registrationError(err)
	}

	hashed, err := password.Hash(reg.Password)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	id, err := s.users.CreateUser(ctx, models.User{Username: reg.Username, PasswordHash: hashed})
	if errors.Is(err, storage.ErrUserExists) {
		return 0, apperr.Conflict(MsgUsernameExists)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// registrationError переводит первую ошибку валидации в сообщение формы регистрации.
func registrationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation(MsgProvideName)
	}
	switch verrs[0].Field() {
	case "Username":
		return apperr.Validation(MsgProvideName)
	case "Password":
		return apperr.Validation(MsgProvidePassword)
	default:
		return apperr.Validation(MsgPasswordMismatch)
	}
}

// Login проверяет пароль и выдаёт токен сессии.
// Неизвестное имя и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (string, error) {
	const op = "services.Login"

	if err := s.validate.Struct(creds); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Field() == "Password" {
			return "", apperr.Auth(MsgMustProvidePass)
		}
		return "", apperr.Auth(MsgMustProvideName)
	}

	users, err := s.users.GetUsersByUsername(ctx, creds.Username)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(users) != 1 {
		metrics.LoginFailures.Inc()
		return "", apperr.Auth(MsgInvalidCredentials)
	}
	if err := password.Compare(users[0].PasswordHash, creds.Password); err != nil {
		metrics.LoginFailures.Inc()
		return "", apperr.Auth(MsgInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(users[0].ID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Identify возвращает ID пользователя, которому принадлежит токен.
func (s *AuthService) Identify(token string) (int64, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return 0, apperr.Auth(MsgInvalidSession)
	}
	return claims.UserID, nil
}
