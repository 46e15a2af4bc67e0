package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

// AddMonths advances t by n calendar months, clamping the day-of-month to the
// target month's last day (Jan 31 + 1 month = Feb 28/29). time.AddDate would
// normalize overflow into the next month instead.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, t.Location())
}

// BuildSchedule attaches the monthly cadence and payment-method tag to a
// split, producing the rows that feed the document tables.
func BuildSchedule(total decimal.Decimal, count int, firstDue time.Time, method string) []models.Installment {
	amounts := Split(total, count)
	schedule := make([]models.Installment, 0, len(amounts))
	for i, amount := range amounts {
		schedule = append(schedule, models.Installment{
			Sequence: i + 1,
			Label:    fmt.Sprintf("%d/%d", i+1, count),
			DueDate:  AddMonths(firstDue, i),
			Amount:   amount,
			Method:   method,
		})
	}
	return schedule
}

// BuildScheduleFromAmounts is BuildSchedule for an already-resolved split
// (the wizard's hand-edited entry installments).
func BuildScheduleFromAmounts(amounts []decimal.Decimal, firstDue time.Time, method string) []models.Installment {
	schedule := make([]models.Installment, 0, len(amounts))
	for i, amount := range amounts {
		schedule = append(schedule, models.Installment{
			Sequence: i + 1,
			Label:    fmt.Sprintf("%d/%d", i+1, len(amounts)),
			DueDate:  AddMonths(firstDue, i),
			Amount:   amount,
			Method:   method,
		})
	}
	return schedule
}
