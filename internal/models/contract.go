package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContractStatus is persisted verbatim. The Portuguese values are load-bearing:
// existing rows and the documents already rendered carry them.
type ContractStatus string

const (
	ContractStatusPending ContractStatus = "Pendente"
	ContractStatusSigned  ContractStatus = "Assinado"
)

// Contract is the financial agreement between a student and a course cohort,
// including the rendered document location and, once countersigned, the
// signature audit trail.
type Contract struct {
	ID        string         `db:"id" json:"id"`
	StudentID string         `db:"student_id" json:"student_id"`
	CourseID  string         `db:"course_id" json:"course_id"`
	CohortID  string         `db:"cohort_id" json:"cohort_id"`
	Status    ContractStatus `db:"status" json:"status"`

	// AccessToken gates the public signing page. Never serialized in list
	// or detail payloads; the signing link is built server-side.
	AccessToken string `db:"access_token" json:"-"`

	GrossValue      decimal.Decimal `db:"gross_value" json:"gross_value"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	DiscountAmount  decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	FinalValue      decimal.Decimal `db:"final_value" json:"final_value"`
	MaterialFee     decimal.Decimal `db:"material_fee" json:"material_fee"`

	EntryTotal    decimal.Decimal `db:"entry_total" json:"entry_total"`
	EntryCount    int             `db:"entry_count" json:"entry_count"`
	EntryMethod   string          `db:"entry_method" json:"entry_method"`
	EntryFirstDue *time.Time      `db:"entry_first_due" json:"entry_first_due,omitempty"`

	BalanceTotal    decimal.Decimal `db:"balance_total" json:"balance_total"`
	BalanceCount    int             `db:"balance_count" json:"balance_count"`
	BalanceMethod   string          `db:"balance_method" json:"balance_method"`
	BalanceFirstDue *time.Time      `db:"balance_first_due" json:"balance_first_due,omitempty"`

	PatientCare bool `db:"patient_care" json:"patient_care"`
	Scholarship bool `db:"scholarship" json:"scholarship"`

	FilePath       string  `db:"file_path" json:"file_path"`
	SignedFilePath *string `db:"signed_file_path" json:"signed_file_path,omitempty"`

	SignedAt          *time.Time `db:"signed_at" json:"signed_at,omitempty"`
	SignerName        *string    `db:"signer_name" json:"signer_name,omitempty"`
	SignerIP          *string    `db:"signer_ip" json:"signer_ip,omitempty"`
	SignatureHash     *string    `db:"signature_hash" json:"signature_hash,omitempty"`
	AcceptanceReceipt *string    `db:"acceptance_receipt" json:"acceptance_receipt,omitempty"`

	EmailSentAt *time.Time `db:"email_sent_at" json:"email_sent_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// ContractDetail joins the contract with the names the UI and the documents
// need alongside it.
type ContractDetail struct {
	Contract
	StudentName  string `db:"student_name" json:"student_name"`
	StudentCPF   string `db:"student_cpf" json:"student_cpf"`
	StudentEmail string `db:"student_email" json:"student_email"`
	CourseName   string `db:"course_name" json:"course_name"`
	CohortCode   string `db:"cohort_code" json:"cohort_code"`
}

// ContractFilter encapsulates search parameters for listing contracts.
type ContractFilter struct {
	Status    ContractStatus
	StudentID string
	CourseID  string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
