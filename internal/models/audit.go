package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionContractCreate = "CONTRACT_CREATE"
	AuditActionContractSign   = "CONTRACT_SIGN"
	AuditActionEmailResend    = "EMAIL_RESEND"
	AuditActionStudentUpsert  = "STUDENT_UPSERT"
	AuditActionUserCreate     = "USER_CREATE"
	AuditActionUserStatus     = "USER_STATUS"
)

// AuditLog represents an audit trail record. Signing events are recorded
// with a nil UserID: the signer is not an operator.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	UserID     *string   `db:"user_id" json:"user_id,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Detail     string    `db:"detail" json:"detail"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
