package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

const contractColumns = `c.id, c.student_id, c.course_id, c.cohort_id, c.status, c.access_token,
        c.gross_value, c.discount_percent, c.discount_amount, c.final_value, c.material_fee,
        c.entry_total, c.entry_count, c.entry_method, c.entry_first_due,
        c.balance_total, c.balance_count, c.balance_method, c.balance_first_due,
        c.patient_care, c.scholarship, c.file_path, c.signed_file_path,
        c.signed_at, c.signer_name, c.signer_ip, c.signature_hash, c.acceptance_receipt,
        c.email_sent_at, c.created_at, c.updated_at,
        s.full_name AS student_name, s.cpf AS student_cpf, s.email AS student_email,
        co.name AS course_name, ch.code AS cohort_code`

const contractJoins = `FROM contracts c
        JOIN students s ON s.id = c.student_id
        JOIN courses co ON co.id = c.course_id
        JOIN cohorts ch ON ch.id = c.cohort_id`

// ContractRepository manages persistence for contracts.
type ContractRepository struct {
	db *sqlx.DB
}

// NewContractRepository constructs a ContractRepository.
func NewContractRepository(db *sqlx.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create inserts a contract row.
func (r *ContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = now
	}
	contract.UpdatedAt = now
	const query = `INSERT INTO contracts (id, student_id, course_id, cohort_id, status, access_token,
            gross_value, discount_percent, discount_amount, final_value, material_fee,
            entry_total, entry_count, entry_method, entry_first_due,
            balance_total, balance_count, balance_method, balance_first_due,
            patient_care, scholarship, file_path, email_sent_at, created_at, updated_at)
        VALUES (:id, :student_id, :course_id, :cohort_id, :status, :access_token,
            :gross_value, :discount_percent, :discount_amount, :final_value, :material_fee,
            :entry_total, :entry_count, :entry_method, :entry_first_due,
            :balance_total, :balance_count, :balance_method, :balance_first_due,
            :patient_care, :scholarship, :file_path, :email_sent_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, contract); err != nil {
		return fmt.Errorf("create contract: %w", err)
	}
	return nil
}

// List returns contract details matching the provided filters.
func (r *ContractRepository) List(ctx context.Context, filter models.ContractFilter) ([]models.ContractDetail, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("c.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("c.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.full_name) LIKE $%d OR s.cpf LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	where := strings.Join(conditions, " AND ")

	allowedSorts := map[string]string{
		"created_at": "c.created_at",
		"signed_at":  "c.signed_at",
		"status":     "c.status",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "c.created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		contractColumns, contractJoins, where, column, order, size, offset)

	var contracts []models.ContractDetail
	if err := r.db.SelectContext(ctx, &contracts, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list contracts: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", contractJoins, where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count contracts: %w", err)
	}
	return contracts, total, nil
}

// FindByID fetches a contract detail by ID.
func (r *ContractRepository) FindByID(ctx context.Context, id string) (*models.ContractDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE c.id = $1`, contractColumns, contractJoins)
	var detail models.ContractDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByToken fetches a contract detail by public access token.
func (r *ContractRepository) FindByToken(ctx context.Context, token string) (*models.ContractDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE c.access_token = $1`, contractColumns, contractJoins)
	var detail models.ContractDetail
	if err := r.db.GetContext(ctx, &detail, query, token); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Signature carries the audit fields persisted when a contract is signed.
type Signature struct {
	SignedAt          time.Time
	SignerName        string
	SignerIP          string
	Hash              string
	AcceptanceReceipt string
	SignedFilePath    string
}

// MarkSigned atomically flips a pending contract to signed. The status guard
// in the WHERE clause makes concurrent signings of the same contract resolve
// to exactly one winner; it returns false when the contract was already
// signed (or does not exist).
func (r *ContractRepository) MarkSigned(ctx context.Context, id string, sig Signature) (bool, error) {
	const query = `UPDATE contracts SET status = $2, signed_at = $3, signer_name = $4, signer_ip = $5,
            signature_hash = $6, acceptance_receipt = $7, signed_file_path = $8, updated_at = $9
        WHERE id = $1 AND status = $10`
	result, err := r.db.ExecContext(ctx, query, id, models.ContractStatusSigned,
		sig.SignedAt, sig.SignerName, sig.SignerIP, sig.Hash, sig.AcceptanceReceipt, sig.SignedFilePath,
		time.Now().UTC(), models.ContractStatusPending)
	if err != nil {
		return false, fmt.Errorf("mark contract signed: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark contract signed: %w", err)
	}
	return affected == 1, nil
}

// UpdateFilePath repoints the draft document after a regeneration.
func (r *ContractRepository) UpdateFilePath(ctx context.Context, id, path string) error {
	const query = `UPDATE contracts SET file_path = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, path, time.Now().UTC()); err != nil {
		return fmt.Errorf("update contract file path: %w", err)
	}
	return nil
}

// SetEmailSent stamps the signing-link delivery time.
func (r *ContractRepository) SetEmailSent(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE contracts SET email_sent_at = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, at, time.Now().UTC()); err != nil {
		return fmt.Errorf("set contract email sent: %w", err)
	}
	return nil
}
