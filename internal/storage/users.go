package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

// CreateUser сохраняет нового пользователя и возвращает его ID.
// Занятое имя даёт ErrUserExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`INSERT INTO users (username, hash) VALUES (?, ?) RETURNING id`)
	var newID int64
	if err := s.DB.QueryRowContext(ctx, query, user.Username, user.PasswordHash).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUsersByUsername возвращает всех пользователей с указанным именем.
// Схема допускает не более одного, но вызывающий код проверяет количество сам.
func (s *Storage) GetUsersByUsername(ctx context.Context, username string) ([]*models.User, error) {
	const op = "storage.GetUsersByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`SELECT id, username, hash FROM users WHERE username = ?`)
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
