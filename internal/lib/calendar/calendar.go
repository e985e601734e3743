// Package calendar содержит фиксированные справочники приложения
// (категории расходов и названия месяцев) и проверку календарных дат.
package calendar

import "time"

// Categories — допустимые категории расходов в порядке отображения в формах.
var Categories = []string{
	"Food",
	"Travel",
	"Bills",
	"Shopping",
	"Grocery",
	"Stationary",
	"Cosmetics",
	"Borrowings",
	"Lendings",
	"Others",
}

// Months — названия месяцев в календарном порядке.
var Months = []string{
	"January",
	"February",
	"March",
	"April",
	"May",
	"June",
	"July",
	"August",
	"September",
	"October",
	"November",
	"December",
}

// IsCategory сообщает, входит ли значение в список категорий.
// Сравнение чувствительно к регистру.
func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// MonthNumber возвращает номер месяца по его названию.
func MonthNumber(name string) (time.Month, bool) {
	for i, m := range Months {
		if m == name {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

// IsMonth сообщает, является ли значение названием месяца.
func IsMonth(s string) bool {
	_, ok := MonthNumber(s)
	return ok
}

// Границы допустимого года.
const (
	MinYear = 1
	MaxYear = 9999
)

// ValidDate проверяет, что тройка (год, месяц, день) образует существующую дату
// с годом из [MinYear, MaxYear].
// time.Date нормализует переполнение (31 февраля -> 3 марта), поэтому
// достаточно сравнить компоненты результата с исходными.
func ValidDate(year int, month time.Month, day int) bool {
	if year < MinYear || year > MaxYear {
		return false
	}
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return d.Year() == year && d.Month() == month && d.Day() == day
}
