// Package filter строит типизированный фильтр по таблице расходов.
//
// Фильтр — это список условий {поле, оператор, значение}. Поля и операторы
// ограничены фиксированными наборами, значения всегда передаются
// параметрами запроса, поэтому текст SQL не зависит от пользовательского ввода.
package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Field — колонка таблицы expense, по которой разрешена фильтрация.
type Field string

const (
	UserID   Field = "user_id"
	Category Field = "category"
	Day      Field = "day"
	Month    Field = "month"
	Year     Field = "year"
)

// Op — оператор сравнения.
type Op string

const (
	Eq  Op = "="
	Gte Op = ">="
	Lte Op = "<="
)

var (
	// ErrUnknownField возвращается для поля вне белого списка.
	ErrUnknownField = errors.New("unknown filter field")
	// ErrUnknownOp возвращается для неподдерживаемого оператора.
	ErrUnknownOp = errors.New("unknown filter operator")
)

var knownFields = map[Field]struct{}{
	UserID: {}, Category: {}, Day: {}, Month: {}, Year: {},
}

var knownOps = map[Op]struct{}{
	Eq: {}, Gte: {}, Lte: {},
}

// Clause — одно условие фильтра.
type Clause struct {
	Field Field
	Op    Op
	Value any
}

// Filter — конъюнкция условий. Нулевое значение — пустой фильтр.
type Filter struct {
	clauses []Clause
}

// New создаёт пустой фильтр.
func New() *Filter {
	return &Filter{}
}

// Where добавляет условие и возвращает тот же фильтр для цепочки вызовов.
func (f *Filter) Where(field Field, op Op, value any) *Filter {
	f.clauses = append(f.clauses, Clause{Field: field, Op: op, Value: value})
	return f
}

// Eq — сокращение для Where(field, Eq, value).
func (f *Filter) Eq(field Field, value any) *Filter {
	return f.Where(field, Eq, value)
}

// Has сообщает, есть ли в фильтре условие по полю.
func (f *Filter) Has(field Field) bool {
	for _, c := range f.clauses {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Value возвращает значение первого условия по полю.
func (f *Filter) Value(field Field) (any, bool) {
	for _, c := range f.clauses {
		if c.Field == field {
			return c.Value, true
		}
	}
	return nil, false
}

// Clauses возвращает копию списка условий.
func (f *Filter) Clauses() []Clause {
	out := make([]Clause, len(f.clauses))
	copy(out, f.clauses)
	return out
}

// SQL переводит фильтр в тело WHERE с плейсхолдерами "?" и список аргументов.
// Пустой фильтр даёт "TRUE" без аргументов.
func (f *Filter) SQL() (string, []any, error) {
	const op = "filter.SQL"
	if len(f.clauses) == 0 {
		return "TRUE", nil, nil
	}

	parts := make([]string, 0, len(f.clauses))
	args := make([]any, 0, len(f.clauses))
	for _, c := range f.clauses {
		if _, ok := knownFields[c.Field]; !ok {
			return "", nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownField, c.Field)
		}
		if _, ok := knownOps[c.Op]; !ok {
			return "", nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownOp, c.Op)
		}
		parts = append(parts, string(c.Field)+" "+string(c.Op)+" ?")
		args = append(args, c.Value)
	}
	return strings.Join(parts, " AND "), args, nil
}
