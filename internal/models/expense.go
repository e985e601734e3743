package models

// Expense — строка журнала расходов.
type Expense struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Day         int    `json:"day"`
	Month       string `json:"month"`
	Year        int    `json:"year"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Amount      int64  `json:"amount"`
}

// ExpenseRequest — данные формы добавления расхода до валидации.
// Числа приходят строками, чтобы ошибки разбора превращались
// в сообщения для пользователя, а не в ошибки декодирования.
//
// Поле категории в форме исторически называется "categry", сумма — "expense";
// JSON-клиенты используют "category" и "amount".
type ExpenseRequest struct {
	Day         string `json:"day" form:"day"`
	Month       string `json:"month" form:"month"`
	Year        string `json:"year" form:"year"`
	Category    string `json:"category" form:"categry"`
	Description string `json:"description" form:"description"`
	Amount      string `json:"amount" form:"expense"`
}

// SearchRequest — необязательные фильтры поиска. Пустая строка — фильтра нет.
type SearchRequest struct {
	Category string `json:"category" form:"categry"`
	Day      string `json:"day" form:"day"`
	Month    string `json:"month" form:"months"`
	Year     string `json:"year" form:"year"`
}

// RemoveRequest — данные формы удаления.
type RemoveRequest struct {
	ID string `json:"id" form:"id"`
}
