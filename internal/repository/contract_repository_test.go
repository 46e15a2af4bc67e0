package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

func contractDetailRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "student_id", "course_id", "cohort_id", "status", "access_token",
		"gross_value", "discount_percent", "discount_amount", "final_value", "material_fee",
		"entry_total", "entry_count", "entry_method", "entry_first_due",
		"balance_total", "balance_count", "balance_method", "balance_first_due",
		"patient_care", "scholarship", "file_path", "signed_file_path",
		"signed_at", "signer_name", "signer_ip", "signature_hash", "acceptance_receipt",
		"email_sent_at", "created_at", "updated_at",
		"student_name", "student_cpf", "student_email", "course_name", "cohort_code",
	}).AddRow(
		"c1", "s1", "cr1", "ch1", "Pendente", "aabbccdd",
		"10000.00", "10", "1000.00", "9000.00", "3000.00",
		"3000.00", 3, "Boleto/Pix", now,
		"6000.00", 7, "Boleto/Pix", now,
		true, false, "minutas/Minuta_Maria_Orto.pdf", nil,
		nil, nil, nil, nil, nil,
		nil, now, now,
		"Maria da Silva", "12345678901", "maria@example.com", "Ortodontia", "ORTO-2026-1",
	)
}

func TestContractRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectExec("(?s)INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(0, 1))

	contract := &models.Contract{
		StudentID:   "s1",
		CourseID:    "cr1",
		CohortID:    "ch1",
		Status:      models.ContractStatusPending,
		AccessToken: "aabbccdd",
	}
	err := repo.Create(context.Background(), contract)
	require.NoError(t, err)
	assert.NotEmpty(t, contract.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryFindByToken(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectQuery(`(?s)SELECT c\.id, .* WHERE c\.access_token = \$1`).
		WithArgs("aabbccdd").
		WillReturnRows(contractDetailRows())

	detail, err := repo.FindByToken(context.Background(), "aabbccdd")
	require.NoError(t, err)
	assert.Equal(t, "Maria da Silva", detail.StudentName)
	assert.Equal(t, models.ContractStatusPending, detail.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryListFiltersByStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	mock.ExpectQuery(`(?s)SELECT c\.id, .* WHERE 1=1 AND c\.status = \$1 ORDER BY c\.created_at DESC`).
		WithArgs(models.ContractStatusPending).
		WillReturnRows(contractDetailRows())
	mock.ExpectQuery(`(?s)SELECT COUNT\(\*\) FROM contracts`).
		WithArgs(models.ContractStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	contracts, total, err := repo.List(context.Background(), models.ContractFilter{Status: models.ContractStatusPending})
	require.NoError(t, err)
	assert.Len(t, contracts, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryMarkSigned(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	sig := Signature{
		SignedAt:       time.Now().UTC(),
		SignerName:     "Maria da Silva",
		SignerIP:       "203.0.113.9",
		Hash:           "ABCDEF0123456789",
		SignedFilePath: "minutas/Minuta_Maria_Orto_assinado.pdf",
	}

	mock.ExpectExec(`(?s)UPDATE contracts SET status = .* AND status = \$10`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.MarkSigned(context.Background(), "c1", sig)
	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractRepositoryMarkSignedLosesRace(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContractRepository(db)

	// A second signer hits the status guard: zero rows updated.
	mock.ExpectExec(`(?s)UPDATE contracts SET status = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.MarkSigned(context.Background(), "c1", Signature{SignedAt: time.Now().UTC()})
	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}
