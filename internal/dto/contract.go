package dto

import (
	"github.com/shopspring/decimal"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

// PartRequest configures one side of the payment plan (entry or balance).
// Amounts carries the hand-edited installment values from the wizard and, when
// present, must match Count and sum to Total within one cent.
type PartRequest struct {
	Total    decimal.Decimal   `json:"total"`
	Count    int               `json:"count"`
	Method   string            `json:"method"`
	FirstDue string            `json:"first_due" validate:"omitempty,datetime=2006-01-02"`
	Amounts  []decimal.Decimal `json:"amounts,omitempty"`
}

// CreateContractRequest is the wizard's final submission: the parties, the
// financial plan and the course flags rendered into the document.
type CreateContractRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	CourseID  string `json:"course_id" validate:"required,uuid"`
	CohortID  string `json:"cohort_id" validate:"required,uuid"`

	GrossValue      decimal.Decimal `json:"gross_value" validate:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`

	Entry   PartRequest `json:"entry"`
	Balance PartRequest `json:"balance"`

	PatientCare bool `json:"patient_care"`
	Scholarship bool `json:"scholarship"`
}

// PreviewScheduleRequest asks for the computed plan without persisting
// anything: the wizard calls it on every financial-step change.
type PreviewScheduleRequest struct {
	GrossValue      decimal.Decimal `json:"gross_value" validate:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Entry           PartRequest     `json:"entry"`
	Balance         PartRequest     `json:"balance"`
}

// PreviewScheduleResponse returns the derived values and both installment
// schedules, plus any policy warnings.
type PreviewScheduleResponse struct {
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	FinalValue     decimal.Decimal      `json:"final_value"`
	MaterialFee    decimal.Decimal      `json:"material_fee"`
	Entry          []models.Installment `json:"entry"`
	Balance        []models.Installment `json:"balance"`
	Warnings       []string             `json:"warnings,omitempty"`
}

// ContractCreatedResponse reports the outcome of a generation: the persisted
// contract plus the signing link and any non-fatal pipeline warnings (template
// gaps, email failures).
type ContractCreatedResponse struct {
	Contract    models.ContractDetail `json:"contract"`
	SigningLink string                `json:"signing_link"`
	Warnings    []string              `json:"warnings,omitempty"`
}
