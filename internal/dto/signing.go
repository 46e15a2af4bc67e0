package dto

import "github.com/shopspring/decimal"

// SigningView is everything the public signing page shows. Deliberately a
// projection: no access token, no internal IDs beyond the contract reference,
// no operator data.
type SigningView struct {
	ContractID  string `json:"contract_id"`
	Status      string `json:"status"`
	StudentName string `json:"student_name"`
	StudentCPF  string `json:"student_cpf"`
	CourseName  string `json:"course_name"`
	CohortCode  string `json:"cohort_code"`

	FinalValue   decimal.Decimal `json:"final_value"`
	EntryTotal   decimal.Decimal `json:"entry_total"`
	BalanceTotal decimal.Decimal `json:"balance_total"`
	BalanceCount int             `json:"balance_count"`

	DocumentURL string `json:"document_url"`
}

// SignRequest is the countersignature submission from the public page.
type SignRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	CPF         string `json:"cpf" validate:"required"`
	AcceptTerms bool   `json:"accept_terms"`
	IP          string `json:"-"`
	UserAgent   string `json:"-"`
}

// SignResponse confirms the signature and points at the stamped document.
type SignResponse struct {
	ContractID    string `json:"contract_id"`
	Status        string `json:"status"`
	SignedAt      string `json:"signed_at"`
	SignatureHash string `json:"signature_hash"`
	DocumentURL   string `json:"document_url"`
}
