// Package format holds the pt-BR presentation helpers. Values are stored
// normalized (digits-only CPF/phone, ISO dates, plain decimals) and formatted
// only at presentation time.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DigitsOnly strips every non-digit rune.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF applies the display mask 000.000.000-00. Inputs that are not 11 digits
// after normalization come back digits-only, unmasked.
func CPF(cpf string) string {
	digits := DigitsOnly(cpf)
	if len(digits) != 11 {
		return digits
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
}

// Phone formats (00) 00000-0000 or (00) 0000-0000 depending on length.
func Phone(phone string) string {
	digits := DigitsOnly(phone)
	switch len(digits) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:6], digits[6:])
	default:
		return digits
	}
}

// Currency renders the Brazilian monetary format: R$ 1.234,56.
func Currency(value decimal.Decimal) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, strings.Join(groups, "."), fracPart)
}

// ParseCurrency accepts what Currency emits and plain decimal strings.
func ParseCurrency(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "-R$ ")
	negative := strings.HasPrefix(raw, "-")
	cleaned = strings.TrimPrefix(cleaned, "R$ ")
	cleaned = strings.TrimPrefix(cleaned, "-")
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse currency %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// DateBR renders DD/MM/YYYY.
func DateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FullDatePTBR spells the date out for the contract signature line,
// e.g. "5 de março de 2026".
func FullDatePTBR(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), ptMonths[t.Month()-1], t.Year())
}
