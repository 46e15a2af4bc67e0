package finance

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSplitReconcilesExactly(t *testing.T) {
	totals := []string{"0", "0.01", "10", "100.10", "857.13", "6000", "9999.99", "123456.78"}
	for _, raw := range totals {
		total := d(raw)
		for count := 1; count <= 60; count++ {
			amounts := Split(total, count)
			require.Len(t, amounts, count)
			assert.True(t, Sum(amounts).Equal(total.Round(2)),
				"total=%s count=%d sum=%s", raw, count, Sum(amounts))
			for i, a := range amounts {
				assert.True(t, a.Equal(a.Round(2)), "total=%s count=%d installment %d not 2dp", raw, count, i)
			}
		}
	}
}

func TestSplitSingleInstallment(t *testing.T) {
	amounts := Split(d("5000.00"), 1)
	require.Len(t, amounts, 1)
	assert.True(t, amounts[0].Equal(d("5000.00")))
}

func TestSplitNonPositiveCount(t *testing.T) {
	assert.Empty(t, Split(d("100"), 0))
	assert.Empty(t, Split(d("100"), -3))
}

func TestSplitLastAbsorbsResidue(t *testing.T) {
	// 6000 / 7 = 857.142857...; six at 857.14, the last picks up the cents.
	amounts := Split(d("6000.00"), 7)
	require.Len(t, amounts, 7)
	for i := 0; i < 6; i++ {
		assert.True(t, amounts[i].Equal(d("857.14")), "installment %d = %s", i, amounts[i])
	}
	assert.True(t, amounts[6].Equal(d("857.16")))
	assert.True(t, Sum(amounts).Equal(d("6000.00")))
}

func TestRecomputeCascade(t *testing.T) {
	total := d("3000.00")
	amounts := Split(total, 3)

	edited := Recompute(total, amounts, 0, d("1500.00"))
	require.Len(t, edited, 3)
	assert.True(t, edited[0].Equal(d("1500.00")))
	assert.True(t, edited[1].Equal(d("750.00")))
	assert.True(t, edited[2].Equal(d("750.00")))
	assert.True(t, Sum(edited).Equal(total))
}

func TestRecomputeIdempotent(t *testing.T) {
	total := d("1000.00")
	amounts := Split(total, 4)

	first := Recompute(total, amounts, 0, d("333.33"))
	second := Recompute(total, first, 0, d("333.33"))
	require.Len(t, second, 4)
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "slot %d drifted: %s vs %s", i, first[i], second[i])
	}
	assert.True(t, Sum(second).Equal(total))
}

func TestRecomputeMiddleEdit(t *testing.T) {
	total := d("900.00")
	amounts := Split(total, 3) // 300 / 300 / 300

	edited := Recompute(total, amounts, 1, d("100.00"))
	assert.True(t, edited[0].Equal(d("300.00")))
	assert.True(t, edited[1].Equal(d("100.00")))
	assert.True(t, edited[2].Equal(d("500.00")))
}

func TestRecomputeLastSlotEdit(t *testing.T) {
	total := d("900.00")
	amounts := Split(total, 3)

	// Editing the last installment leaves nothing to cascade into.
	edited := Recompute(total, amounts, 2, d("123.45"))
	assert.True(t, edited[2].Equal(d("123.45")))
	assert.True(t, edited[0].Equal(d("300.00")))
}

func TestRecomputeOutOfRange(t *testing.T) {
	total := d("900.00")
	amounts := Split(total, 3)
	assert.Equal(t, amounts, Recompute(total, amounts, 5, d("1")))
	assert.Equal(t, amounts, Recompute(total, amounts, -1, d("1")))
}

func ExampleSplit() {
	for _, a := range Split(decimal.RequireFromString("100.00"), 3) {
		fmt.Println(a.StringFixed(2))
	}
	// Output:
	// 33.33
	// 33.33
	// 33.34
}
