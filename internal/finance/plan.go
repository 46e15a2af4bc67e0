package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/config"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

// Reconciliation tolerance: one cent.
var tolerance = decimal.RequireFromString("0.01")

// materialFeeRate is fixed at 30% of the gross price by business rule.
var materialFeeRate = decimal.RequireFromString("0.30")

// PartConfig describes one side of the payment plan (entry or balance).
// Amounts, when set, carries hand-edited installment values from the wizard
// and overrides the uniform split.
type PartConfig struct {
	Total    decimal.Decimal
	Count    int
	Method   string
	FirstDue time.Time
	Amounts  []decimal.Decimal
}

// Plan is the fully computed financial configuration of a contract.
type Plan struct {
	Gross           decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	FinalValue      decimal.Decimal
	MaterialFee     decimal.Decimal
	Entry           PartConfig
	Balance         PartConfig
}

// NewPlan derives the discount, final value and material fee from the gross
// price and completes the balance total when the caller left it implicit
// (balance = final - entry, the wizard default).
func NewPlan(gross, discountPercent decimal.Decimal, entry, balance PartConfig) Plan {
	discountAmount := gross.Mul(discountPercent).Div(hundred).Round(2)
	final := gross.Round(2).Sub(discountAmount)
	if balance.Total.IsZero() && final.Sub(entry.Total).IsPositive() {
		balance.Total = final.Sub(entry.Total)
	}
	return Plan{
		Gross:           gross.Round(2),
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		FinalValue:      final,
		MaterialFee:     gross.Mul(materialFeeRate).Round(2),
		Entry:           entry,
		Balance:         balance,
	}
}

// Validate enforces the financial invariants before any document is rendered.
// It returns non-fatal warnings (depending on the balance-date policy) plus a
// hard error when the plan must not proceed.
func (p Plan) Validate(balancePolicy string) ([]string, error) {
	var warnings []string

	if p.Gross.IsNegative() || p.Entry.Total.IsNegative() || p.Balance.Total.IsNegative() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "monetary values must not be negative")
	}
	if p.Entry.Total.IsPositive() && (p.Entry.Count < 1 || p.Entry.Count > 3) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "entry must be split into 1 to 3 installments")
	}
	if p.Balance.Total.IsPositive() && (p.Balance.Count < 1 || p.Balance.Count > 60) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "balance must be split into 1 to 60 installments")
	}

	diff := p.Entry.Total.Add(p.Balance.Total).Sub(p.FinalValue).Abs()
	if diff.GreaterThan(tolerance) {
		return nil, appErrors.Clone(appErrors.ErrReconciliation,
			fmt.Sprintf("entry (%s) + balance (%s) differs from final value (%s) by %s",
				p.Entry.Total.StringFixed(2), p.Balance.Total.StringFixed(2), p.FinalValue.StringFixed(2), diff.StringFixed(2)))
	}

	if len(p.Entry.Amounts) > 0 {
		if len(p.Entry.Amounts) != p.Entry.Count {
			return nil, appErrors.Clone(appErrors.ErrValidation, "edited entry installments do not match the installment count")
		}
		if Sum(p.Entry.Amounts).Sub(p.Entry.Total).Abs().GreaterThan(tolerance) {
			return nil, appErrors.Clone(appErrors.ErrReconciliation, "edited entry installments do not sum to the entry total")
		}
	}

	if p.Entry.Total.IsPositive() && p.Balance.Total.IsPositive() && balancePolicy != config.BalancePolicyOff {
		entryEnd := AddMonths(p.Entry.FirstDue, p.Entry.Count-1)
		if p.Balance.FirstDue.Before(entryEnd) {
			msg := fmt.Sprintf("balance schedule starts (%s) before the entry schedule ends (%s)",
				p.Balance.FirstDue.Format("2006-01-02"), entryEnd.Format("2006-01-02"))
			if balancePolicy == config.BalancePolicyEnforce {
				return nil, appErrors.Clone(appErrors.ErrValidation, msg)
			}
			warnings = append(warnings, msg)
		}
	}

	return warnings, nil
}

// EntrySchedule materializes the upfront installment rows. Empty when no
// entry payment was negotiated.
func (p Plan) EntrySchedule() []models.Installment {
	if !p.Entry.Total.IsPositive() {
		return nil
	}
	if len(p.Entry.Amounts) > 0 {
		return BuildScheduleFromAmounts(p.Entry.Amounts, p.Entry.FirstDue, p.Entry.Method)
	}
	return BuildSchedule(p.Entry.Total, p.Entry.Count, p.Entry.FirstDue, p.Entry.Method)
}

// BalanceSchedule materializes the remaining-balance installment rows.
func (p Plan) BalanceSchedule() []models.Installment {
	if !p.Balance.Total.IsPositive() {
		return nil
	}
	return BuildSchedule(p.Balance.Total, p.Balance.Count, p.Balance.FirstDue, p.Balance.Method)
}
