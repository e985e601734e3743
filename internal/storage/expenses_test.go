package storage

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/magabrotheeeer/expense-tracker/internal/lib/filter"
	"github.com/magabrotheeeer/expense-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_ExpenseRoundTrip(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	rows := []models.Expense{
		{UserID: alice, Day: 3, Month: "January", Year: 2024, Category: "Food", Description: "lunch", Amount: 100},
		{UserID: alice, Day: 9, Month: "January", Year: 2024, Category: "Travel", Amount: 50},
		{UserID: alice, Day: 1, Month: "February", Year: 2024, Category: "Food", Amount: 30},
		{UserID: bob, Day: 1, Month: "January", Year: 2024, Category: "Food", Amount: 999},
	}
	var ids []int64
	for _, e := range rows {
		id, err := s.CreateExpense(ctx, e)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	t.Run("scoped to user in id order", func(t *testing.T) {
		got, err := s.SearchExpenses(ctx, filter.New().Eq(filter.UserID, alice))
		require.NoError(t, err)
		require.Len(t, got, 3)
		for i, e := range got {
			assert.Equal(t, ids[i], e.ID)
			assert.Equal(t, alice, e.UserID)
		}
		assert.Equal(t, "lunch", got[0].Description)
		assert.Equal(t, "", got[1].Description)
	})

	t.Run("category and year", func(t *testing.T) {
		got, err := s.SearchExpenses(ctx, filter.New().
			Eq(filter.UserID, alice).
			Eq(filter.Category, "Food").
			Eq(filter.Year, 2024))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, int64(100), got[0].Amount)
		assert.Equal(t, int64(30), got[1].Amount)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.SearchExpenses(ctx, filter.New().Eq(filter.UserID, alice).Eq(filter.Year, 1999))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("remove returns the deleted row", func(t *testing.T) {
		removed, err := s.RemoveExpense(ctx, ids[3])
		require.NoError(t, err)
		require.NotNil(t, removed)
		assert.Equal(t, bob, removed.UserID)
		assert.Equal(t, 2024, removed.Year)

		again, err := s.RemoveExpense(ctx, ids[3])
		require.NoError(t, err)
		assert.Nil(t, again)
	})
}

func TestStorage_CreateExpense_RejectsInvalidRows(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()
	alice := createUser(t, s, "alice")

	_, err := s.CreateExpense(ctx, models.Expense{UserID: alice, Day: 1, Month: "January", Year: 2024, Category: "Food", Amount: 0})
	assert.Error(t, err, "amount must be positive")

	_, err = s.CreateExpense(ctx, models.Expense{UserID: alice + 100, Day: 1, Month: "January", Year: 2024, Category: "Food", Amount: 1})
	assert.Error(t, err, "user must exist")
}

func TestStorage_SearchExpenses_RequiresUserScope(t *testing.T) {
	s := setupSQLite(t)

	_, err := s.SearchExpenses(context.Background(), filter.New().Eq(filter.Year, 2024))
	assert.ErrorIs(t, err, ErrMissingUserScope)

	_, err = s.SearchExpenses(context.Background(), nil)
	assert.ErrorIs(t, err, ErrMissingUserScope)
}

func TestStorage_SearchExpenses_Postgres(t *testing.T) {
	s, mock := newPostgresWithMock(t)
	q := `(?s)^SELECT\s+id,\s*user_id,\s*day,\s*month,\s*year,\s*category,\s*description,\s*amount\s+` +
		`FROM\s+expense\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+month\s*=\s*\$2\s+ORDER\s+BY\s+id$`

	cols := []string{"id", "user_id", "day", "month", "year", "category", "description", "amount"}
	mock.ExpectQuery(q).
		WithArgs(int64(1), "March").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(5), int64(1), 2, "March", 2023, "Bills", "power", int64(70)))

	got, err := s.SearchExpenses(context.Background(), filter.New().
		Eq(filter.UserID, int64(1)).
		Eq(filter.Month, "March"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &models.Expense{
		ID: 5, UserID: 1, Day: 2, Month: "March", Year: 2023,
		Category: "Bills", Description: "power", Amount: 70,
	}, got[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorage_RemoveExpense_Postgres(t *testing.T) {
	s, mock := newPostgresWithMock(t)
	q := `(?s)^DELETE\s+FROM\s+expense\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+id,.*amount$`
	cols := []string{"id", "user_id", "day", "month", "year", "category", "description", "amount"}

	mock.ExpectQuery(q).WithArgs(int64(42)).WillReturnRows(sqlmock.NewRows(cols))
	got, err := s.RemoveExpense(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, got)

	mock.ExpectQuery(q).WithArgs(int64(43)).WillReturnRows(sqlmock.NewRows(cols).
		AddRow(int64(43), int64(2), 1, "May", 2022, "Others", "", int64(5)))
	got, err = s.RemoveExpense(context.Background(), 43)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(2), got.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
