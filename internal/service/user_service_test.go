package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

type mockUserRepo struct {
	users map[string]models.User
	logs  []models.AuditLog
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-new"
	}
	if m.users == nil {
		m.users = map[string]models.User{}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *mockUserRepo) SetActive(_ context.Context, id string, active bool) error {
	user, ok := m.users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Active = active
	m.users[id] = user
	return nil
}

func (m *mockUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

func validUserRequest() dto.CreateUserRequest {
	return dto.CreateUserRequest{
		FullName: "Carlos Pereira",
		Email:    "Carlos.Pereira@nexusmed.org",
		Password: "provisoria123",
		Role:     "OPERATOR",
	}
}

func TestCreateUserHashesProvisionalPassword(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Create(context.Background(), validUserRequest(), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "carlos.pereira@nexusmed.org", user.Email)
	assert.True(t, user.Active)
	assert.NotEqual(t, "provisoria123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("provisoria123")))

	require.Len(t, repo.logs, 1)
	assert.Equal(t, models.AuditActionUserCreate, repo.logs[0].Action)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{
		"user-1": {ID: "user-1", Email: "carlos.pereira@nexusmed.org"},
	}}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Create(context.Background(), validUserRequest(), "admin-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	req := validUserRequest()
	req.Role = "SUPERVISOR"
	_, err := svc.Create(context.Background(), req, "admin-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSetStatusDeactivates(t *testing.T) {
	repo := &mockUserRepo{users: map[string]models.User{
		"user-1": {ID: "user-1", Email: "carlos.pereira@nexusmed.org", Active: true},
	}}
	svc := NewUserService(repo, nil, nil)

	require.NoError(t, svc.SetStatus(context.Background(), "user-1", false, "admin-1"))
	assert.False(t, repo.users["user-1"].Active)
	require.Len(t, repo.logs, 1)
	assert.Equal(t, models.AuditActionUserStatus, repo.logs[0].Action)
}

func TestSetStatusUnknownUser(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	err := svc.SetStatus(context.Background(), "ghost", false, "admin-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
