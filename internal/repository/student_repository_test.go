package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func studentRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "full_name", "cpf", "email", "phone", "birth_date", "street", "number", "complement", "district", "city", "state", "zip_code", "created_at", "updated_at"}).
		AddRow("s1", "Maria da Silva", "12345678901", "maria@example.com", "11999990000", nil, "Rua das Flores", "100", "", "Centro", "São Paulo", "SP", "01000000", now, now)
}

func TestStudentRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, full_name, cpf, .* FROM students WHERE 1=1 ORDER BY created_at DESC LIMIT 20 OFFSET 0").
		WillReturnRows(studentRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	students, total, err := repo.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(`LOWER\(full_name\) LIKE \$1 OR cpf LIKE \$1`).
		WithArgs("%maria%").
		WillReturnRows(studentRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students`).
		WithArgs("%maria%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.List(context.Background(), models.StudentFilter{Search: "Maria"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByCPFMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("FROM students WHERE cpf = ").
		WithArgs("12345678901").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	student, err := repo.FindByCPF(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Nil(t, student, "unknown CPF is not an error, it means new registration")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec(`(?s)INSERT INTO students.*ON CONFLICT \(cpf\) DO UPDATE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	student := &models.Student{FullName: "Maria da Silva", CPF: "12345678901", Email: "maria@example.com"}
	err := repo.Upsert(context.Background(), student)
	require.NoError(t, err)
	assert.NotEmpty(t, student.ID, "upsert assigns an ID to new records")
	assert.NoError(t, mock.ExpectationsWereMet())
}
