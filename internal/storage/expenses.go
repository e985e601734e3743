package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/expense-tracker/internal/lib/filter"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
)

const expenseColumns = `id, user_id, day, month, year, category, description, amount`

// CreateExpense вставляет запись журнала и возвращает её ID.
func (s *Storage) CreateExpense(ctx context.Context, e models.Expense) (int64, error) {
	const op = "storage.CreateExpense"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`INSERT INTO expense (user_id, day, month, year, category, description, amount)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  RETURNING id`)
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		e.UserID, e.Day, e.Month, e.Year, e.Category, e.Description, e.Amount).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// SearchExpenses возвращает записи, подходящие под фильтр, в порядке ID.
// Фильтр обязан содержать условие по user_id.
func (s *Storage) SearchExpenses(ctx context.Context, f *filter.Filter) ([]*models.Expense, error) {
	const op = "storage.SearchExpenses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if f == nil || !f.Has(filter.UserID) {
		return nil, fmt.Errorf("%s: %w", op, ErrMissingUserScope)
	}
	where, args, err := f.SQL()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := s.rebind(`SELECT ` + expenseColumns + ` FROM expense WHERE ` + where + ` ORDER BY id`)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Day, &e.Month, &e.Year,
			&e.Category, &e.Description, &e.Amount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveExpense удаляет запись по ID независимо от владельца и возвращает
// удалённую строку. Если записи нет, возвращает nil без ошибки.
func (s *Storage) RemoveExpense(ctx context.Context, id int64) (*models.Expense, error) {
	const op = "storage.RemoveExpense"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := s.rebind(`DELETE FROM expense WHERE id = ? RETURNING ` + expenseColumns)
	var e models.Expense
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.UserID, &e.Day, &e.Month,
		&e.Year, &e.Category, &e.Description, &e.Amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &e, nil
}
