package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusmededucacao/nexusmed-contratos/pkg/config"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

func TestNewPlanDerivedValues(t *testing.T) {
	plan := NewPlan(d("10000.00"), d("10"),
		PartConfig{Total: d("2000.00"), Count: 2, FirstDue: date(2024, time.March, 10)},
		PartConfig{Count: 12, FirstDue: date(2024, time.May, 10)})

	assert.True(t, plan.DiscountAmount.Equal(d("1000.00")))
	assert.True(t, plan.FinalValue.Equal(d("9000.00")))
	assert.True(t, plan.MaterialFee.Equal(d("3000.00")), "material fee is 30%% of gross")
	// Balance total left implicit: completed as final - entry.
	assert.True(t, plan.Balance.Total.Equal(d("7000.00")))
}

func TestNewPlanKeepsExplicitBalance(t *testing.T) {
	plan := NewPlan(d("5000.00"), decimal.Zero,
		PartConfig{},
		PartConfig{Total: d("5000.00"), Count: 1, FirstDue: date(2024, time.July, 1)})
	assert.True(t, plan.Balance.Total.Equal(d("5000.00")))
	assert.True(t, plan.Entry.Total.IsZero())
}

func TestValidateAcceptsBalancedPlan(t *testing.T) {
	plan := NewPlan(d("9000.00"), decimal.Zero,
		PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.January, 10)},
		PartConfig{Total: d("6000.00"), Count: 7, FirstDue: date(2024, time.April, 10)})

	warnings, err := plan.Validate(config.BalancePolicyWarn)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateRejectsReconciliationMismatch(t *testing.T) {
	plan := NewPlan(d("9000.00"), decimal.Zero,
		PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.January, 10)},
		PartConfig{Total: d("5000.00"), Count: 6, FirstDue: date(2024, time.April, 10)})

	_, err := plan.Validate(config.BalancePolicyWarn)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrReconciliation.Code, appErr.Code)
}

func TestValidateToleratesOneCent(t *testing.T) {
	plan := NewPlan(d("9000.00"), decimal.Zero,
		PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.January, 10)},
		PartConfig{Total: d("5999.99"), Count: 6, FirstDue: date(2024, time.April, 10)})

	_, err := plan.Validate(config.BalancePolicyOff)
	assert.NoError(t, err)
}

func TestValidateRejectsNegativeValues(t *testing.T) {
	plan := NewPlan(d("1000.00"), decimal.Zero,
		PartConfig{Total: d("-10.00"), Count: 1, FirstDue: date(2024, time.January, 10)},
		PartConfig{Total: d("1010.00"), Count: 1, FirstDue: date(2024, time.February, 10)})
	_, err := plan.Validate(config.BalancePolicyOff)
	assert.Error(t, err)
}

func TestValidateEntryCountBounds(t *testing.T) {
	plan := NewPlan(d("4000.00"), decimal.Zero,
		PartConfig{Total: d("1000.00"), Count: 4, FirstDue: date(2024, time.January, 10)},
		PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.June, 10)})
	_, err := plan.Validate(config.BalancePolicyOff)
	assert.Error(t, err)
}

func TestValidateBalanceCountBounds(t *testing.T) {
	plan := NewPlan(d("4000.00"), decimal.Zero,
		PartConfig{},
		PartConfig{Total: d("4000.00"), Count: 61, FirstDue: date(2024, time.June, 10)})
	_, err := plan.Validate(config.BalancePolicyOff)
	assert.Error(t, err)
}

func TestValidateEditedAmountsMustReconcile(t *testing.T) {
	plan := NewPlan(d("3000.00"), decimal.Zero,
		PartConfig{Total: d("1000.00"), Count: 2, FirstDue: date(2024, time.January, 10),
			Amounts: []decimal.Decimal{d("600.00"), d("600.00")}},
		PartConfig{Total: d("2000.00"), Count: 2, FirstDue: date(2024, time.April, 10)})

	_, err := plan.Validate(config.BalancePolicyOff)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrReconciliation.Code, appErrors.FromError(err).Code)
}

func TestValidateBalanceDatePolicy(t *testing.T) {
	// Balance starts one month before the entry schedule finishes.
	mkPlan := func() Plan {
		return NewPlan(d("6000.00"), decimal.Zero,
			PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.January, 10)},
			PartConfig{Total: d("3000.00"), Count: 3, FirstDue: date(2024, time.February, 10)})
	}

	warnings, err := mkPlan().Validate(config.BalancePolicyWarn)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "before the entry schedule ends")

	_, err = mkPlan().Validate(config.BalancePolicyEnforce)
	assert.Error(t, err)

	warnings, err = mkPlan().Validate(config.BalancePolicyOff)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestEntryScheduleUsesEditedAmounts(t *testing.T) {
	plan := NewPlan(d("3000.00"), decimal.Zero,
		PartConfig{Total: d("1000.00"), Count: 2, FirstDue: date(2024, time.January, 10),
			Amounts: []decimal.Decimal{d("700.00"), d("300.00")}},
		PartConfig{Total: d("2000.00"), Count: 2, FirstDue: date(2024, time.April, 10)})

	schedule := plan.EntrySchedule()
	require.Len(t, schedule, 2)
	assert.True(t, schedule[0].Amount.Equal(d("700.00")))
	assert.True(t, schedule[1].Amount.Equal(d("300.00")))
}

func TestSchedulesEmptyWhenPartAbsent(t *testing.T) {
	plan := NewPlan(d("5000.00"), decimal.Zero,
		PartConfig{},
		PartConfig{Total: d("5000.00"), Count: 1, FirstDue: date(2024, time.July, 1)})

	assert.Empty(t, plan.EntrySchedule())
	require.Len(t, plan.BalanceSchedule(), 1)
	assert.True(t, plan.BalanceSchedule()[0].Amount.Equal(d("5000.00")))
}
