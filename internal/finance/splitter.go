// Package finance implements the installment calculator: rounding-safe
// splitting of a total into N parts, the interactive cascade recompute, and
// the monthly payment schedule builder.
package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Split divides total into count installments of 2-decimal amounts that sum
// exactly to total rounded to 2 decimals. Every installment gets the rounded
// quotient except the last one, which absorbs the rounding residue.
//
// A non-positive count yields an empty sequence, not an error: the entry
// schedule is legitimately empty when no upfront payment was negotiated.
func Split(total decimal.Decimal, count int) []decimal.Decimal {
	if count <= 0 {
		return nil
	}

	total = total.Round(2)
	if count == 1 {
		return []decimal.Decimal{total}
	}

	base := total.DivRound(decimal.NewFromInt(int64(count)), 2)
	amounts := make([]decimal.Decimal, count)
	for i := 0; i < count-1; i++ {
		amounts[i] = base
	}
	amounts[count-1] = total.Sub(base.Mul(decimal.NewFromInt(int64(count - 1)))).Round(2)
	return amounts
}

// Recompute is the cascade rule behind the wizard's editable installments:
// the operator fixes installment edited to value, everything before it is
// kept, and the remaining slots are re-split over whatever is left of total.
// It is a pure function; calling it again with the same inputs returns the
// same sequence.
func Recompute(total decimal.Decimal, amounts []decimal.Decimal, edited int, value decimal.Decimal) []decimal.Decimal {
	if len(amounts) == 0 || edited < 0 || edited >= len(amounts) {
		return amounts
	}

	result := make([]decimal.Decimal, len(amounts))
	copy(result, amounts)
	result[edited] = value.Round(2)

	fixed := decimal.Zero
	for i := 0; i <= edited; i++ {
		fixed = fixed.Add(result[i])
	}

	remaining := total.Round(2).Sub(fixed)
	rest := Split(remaining, len(amounts)-edited-1)
	for i, amount := range rest {
		result[edited+1+i] = amount
	}
	return result
}

// Sum adds a sequence of installment amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
