package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsCategory(t *testing.T) {
	assert.Len(t, Categories, 10)
	for _, c := range Categories {
		assert.True(t, IsCategory(c), c)
	}
	assert.False(t, IsCategory(""))
	assert.False(t, IsCategory("food"))
	assert.False(t, IsCategory("Rent"))
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Month
		wantOK bool
	}{
		{name: "January", want: time.January, wantOK: true},
		{name: "February", want: time.February, wantOK: true},
		{name: "December", want: time.December, wantOK: true},
		{name: "december", wantOK: false},
		{name: "Feb", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MonthNumber(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, IsMonth(tt.name))
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  bool
	}{
		{name: "regular date", year: 2023, month: time.March, day: 15, want: true},
		{name: "february 31", year: 2023, month: time.February, day: 31, want: false},
		{name: "february 29 non-leap", year: 2023, month: time.February, day: 29, want: false},
		{name: "february 29 leap", year: 2024, month: time.February, day: 29, want: true},
		{name: "april 31", year: 2023, month: time.April, day: 31, want: false},
		{name: "december 31", year: 2023, month: time.December, day: 31, want: true},
		{name: "day zero", year: 2023, month: time.January, day: 0, want: false},
		{name: "month zero", year: 2023, month: 0, day: 1, want: false},
		{name: "year zero", year: 0, month: time.January, day: 1, want: false},
		{name: "negative year", year: -5, month: time.January, day: 1, want: false},
		{name: "first year", year: 1, month: time.January, day: 1, want: true},
		{name: "last year", year: 9999, month: time.December, day: 31, want: true},
		{name: "year 10000", year: 10000, month: time.February, day: 28, want: false},
		{name: "month thirteen", year: 2023, month: 13, day: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDate(tt.year, tt.month, tt.day))
		})
	}
}
