package models

// Режимы поиска.
const (
	ModeAggregate = "aggregate"
	ModeListing   = "listing"
)

// MonthTotal — сумма расходов за месяц.
type MonthTotal struct {
	Month string `json:"month"`
	Total int64  `json:"total"`
}

// SearchResult — результат поиска.
//
// В режиме ModeAggregate заполнено Months (порядок — первое появление месяца
// в выборке), в режиме ModeListing — Expenses. Total — общая сумма в обоих режимах.
type SearchResult struct {
	Mode     string       `json:"mode"`
	Expenses []*Expense   `json:"expenses,omitempty"`
	Months   []MonthTotal `json:"months,omitempty"`
	Total    int64        `json:"total"`
}

// LedgerEvent — событие изменения журнала, публикуемое в брокер.
type LedgerEvent struct {
	Type      string `json:"type"`
	ExpenseID int64  `json:"expense_id"`
	UserID    int64  `json:"user_id"`
	Year      int    `json:"year"`
	Month     string `json:"month,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
}

// Типы событий журнала (используются и как ключи маршрутизации).
const (
	EventExpenseCreated = "expense.created"
	EventExpenseDeleted = "expense.deleted"
)
