package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClampsToMonthEnd(t *testing.T) {
	start := date(2024, time.January, 31)

	assert.Equal(t, date(2024, time.January, 31), AddMonths(start, 0))
	assert.Equal(t, date(2024, time.February, 29), AddMonths(start, 1)) // leap year
	assert.Equal(t, date(2024, time.March, 31), AddMonths(start, 2))
	assert.Equal(t, date(2024, time.April, 30), AddMonths(start, 3))
}

func TestAddMonthsNonLeapFebruary(t *testing.T) {
	assert.Equal(t, date(2025, time.February, 28), AddMonths(date(2025, time.January, 30), 1))
}

func TestAddMonthsPlainDays(t *testing.T) {
	start := date(2024, time.May, 10)
	assert.Equal(t, date(2024, time.June, 10), AddMonths(start, 1))
	assert.Equal(t, date(2025, time.May, 10), AddMonths(start, 12))
}

func TestAddMonthsYearRollover(t *testing.T) {
	assert.Equal(t, date(2025, time.January, 15), AddMonths(date(2024, time.November, 15), 2))
}

func TestBuildSchedule(t *testing.T) {
	first := date(2024, time.January, 31)
	schedule := BuildSchedule(d("3000.00"), 3, first, "Boleto/Pix")
	require.Len(t, schedule, 3)

	assert.Equal(t, 1, schedule[0].Sequence)
	assert.Equal(t, "1/3", schedule[0].Label)
	assert.Equal(t, "3/3", schedule[2].Label)

	assert.Equal(t, date(2024, time.January, 31), schedule[0].DueDate)
	assert.Equal(t, date(2024, time.February, 29), schedule[1].DueDate)
	assert.Equal(t, date(2024, time.March, 31), schedule[2].DueDate)

	for _, row := range schedule {
		assert.True(t, row.Amount.Equal(d("1000.00")))
		assert.Equal(t, "Boleto/Pix", row.Method)
	}
}

func TestBuildScheduleFromAmounts(t *testing.T) {
	amounts := Recompute(d("900.00"), Split(d("900.00"), 3), 0, d("500.00"))
	schedule := BuildScheduleFromAmounts(amounts, date(2024, time.June, 5), "Cartão")
	require.Len(t, schedule, 3)
	assert.True(t, schedule[0].Amount.Equal(d("500.00")))
	assert.True(t, schedule[1].Amount.Equal(d("200.00")))
	assert.Equal(t, date(2024, time.August, 5), schedule[2].DueDate)
}
