package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/pdf"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/repository"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

type mockSigningRepo struct {
	byToken    map[string]models.ContractDetail
	signatures map[string]repository.Signature
	loseRace   bool
}

func (m *mockSigningRepo) FindByToken(ctx context.Context, token string) (*models.ContractDetail, error) {
	if detail, ok := m.byToken[token]; ok {
		return &detail, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockSigningRepo) MarkSigned(ctx context.Context, id string, sig repository.Signature) (bool, error) {
	if m.loseRace {
		return false, nil
	}
	if m.signatures == nil {
		m.signatures = make(map[string]repository.Signature)
	}
	m.signatures[id] = sig
	return true, nil
}

type mockURLSigner struct{}

func (m *mockURLSigner) Generate(contractID, relPath string) (string, time.Time, error) {
	return fmt.Sprintf("https://portal.example.com/Assinatura/documento?d=%s:%s", contractID, relPath), time.Now().Add(time.Hour), nil
}

func (m *mockURLSigner) Parse(token string) (string, string, time.Time, error) {
	return "", "", time.Time{}, fmt.Errorf("not used")
}

func pendingDetail() models.ContractDetail {
	detail := models.ContractDetail{
		StudentName:  "José da Silva",
		StudentCPF:   "12345678901",
		StudentEmail: "jose@example.com",
		CourseName:   "Implantodontia",
		CohortCode:   "IMPL-2026-1",
	}
	detail.ID = "contract-1"
	detail.Status = models.ContractStatusPending
	detail.AccessToken = "aabbccddeeff00112233445566778899"
	detail.FilePath = "minutas/Minuta_Jose_da_Silva_Implantodontia.pdf"
	return detail
}

func newSigningService(repo *mockSigningRepo, store *mockStore, nameMatch string) (*SigningService, *mockAudit) {
	audit := &mockAudit{}
	svc := NewSigningService(repo, audit, store, &mockURLSigner{}, NewMetricsService(), nil, SigningConfig{
		BaseURL:   "https://portal.example.com",
		NameMatch: nameMatch,
	})
	svc.stamp = func(data []byte, stamp pdf.Stamp) ([]byte, error) {
		return append(data, []byte("\n%stamp "+stamp.Hash)...), nil
	}
	return svc, audit
}

func signRequest() dto.SignRequest {
	return dto.SignRequest{
		FullName:    "jose da silva", // unaccented on purpose
		CPF:         "123.456.789-01",
		AcceptTerms: true,
		IP:          "203.0.113.9",
		UserAgent:   "test-agent",
	}
}

func TestSigningViewProjection(t *testing.T) {
	detail := pendingDetail()
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	svc, _ := newSigningService(repo, &mockStore{}, "fold")

	view, err := svc.View(context.Background(), detail.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "José da Silva", view.StudentName)
	assert.Equal(t, "123.456.789-01", view.StudentCPF)
	assert.Equal(t, string(models.ContractStatusPending), view.Status)
	assert.Contains(t, view.DocumentURL, detail.FilePath)
}

func TestSigningViewUnknownToken(t *testing.T) {
	svc, _ := newSigningService(&mockSigningRepo{}, &mockStore{}, "fold")

	_, err := svc.View(context.Background(), "deadbeef")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInvalidToken.Code, appErr.Code)
	assert.Equal(t, 404, appErr.Status, "an invalid token looks exactly like a missing contract")
}

func TestSignHappyPath(t *testing.T) {
	detail := pendingDetail()
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	store := &mockStore{files: map[string][]byte{detail.FilePath: []byte("%PDF-draft")}}
	svc, audit := newSigningService(repo, store, "fold")

	res, err := svc.Sign(context.Background(), detail.AccessToken, signRequest())
	require.NoError(t, err)

	assert.Equal(t, string(models.ContractStatusSigned), res.Status)
	assert.Len(t, res.SignatureHash, 16)

	sig, ok := repo.signatures[detail.ID]
	require.True(t, ok)
	assert.Equal(t, "minutas/Minuta_Jose_da_Silva_Implantodontia_assinado.pdf", sig.SignedFilePath)
	assert.Equal(t, "203.0.113.9", sig.SignerIP)
	assert.Contains(t, sig.AcceptanceReceipt, "Assinado via Portal NexusMed")

	stamped, err := store.Get(sig.SignedFilePath)
	require.NoError(t, err)
	assert.Contains(t, string(stamped), sig.Hash, "stamped copy carries the authenticity hash")

	require.Len(t, audit.logs, 1)
	assert.Equal(t, models.AuditActionContractSign, audit.logs[0].Action)
	assert.Nil(t, audit.logs[0].UserID, "the signer is not an operator")
}

func TestSignRejectsIdentityMismatch(t *testing.T) {
	detail := pendingDetail()
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	store := &mockStore{files: map[string][]byte{detail.FilePath: []byte("%PDF-draft")}}

	cases := map[string]func(*dto.SignRequest){
		"wrong name":     func(r *dto.SignRequest) { r.FullName = "Outro Nome" },
		"wrong cpf":      func(r *dto.SignRequest) { r.CPF = "10987654321" },
		"terms declined": func(r *dto.SignRequest) { r.AcceptTerms = false },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			svc, _ := newSigningService(repo, store, "fold")
			req := signRequest()
			mutate(&req)

			_, err := svc.Sign(context.Background(), detail.AccessToken, req)
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrIdentityMismatch.Code, appErrors.FromError(err).Code)
			assert.Empty(t, repo.signatures)
		})
	}
}

func TestSignNameMatchModes(t *testing.T) {
	detail := pendingDetail()
	store := func() *mockStore {
		return &mockStore{files: map[string][]byte{detail.FilePath: []byte("%PDF-draft")}}
	}

	// Exact mode refuses the unaccented rendition of an accented name.
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	svc, _ := newSigningService(repo, store(), "exact")
	_, err := svc.Sign(context.Background(), detail.AccessToken, signRequest())
	require.Error(t, err)

	// Off mode checks CPF and terms only.
	repo = &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	svc, _ = newSigningService(repo, store(), "off")
	req := signRequest()
	req.FullName = "Qualquer Nome"
	_, err = svc.Sign(context.Background(), detail.AccessToken, req)
	require.NoError(t, err)
}

func TestSignAlreadySigned(t *testing.T) {
	detail := pendingDetail()
	detail.Status = models.ContractStatusSigned
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}}
	svc, _ := newSigningService(repo, &mockStore{}, "fold")

	_, err := svc.Sign(context.Background(), detail.AccessToken, signRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadySigned.Code, appErrors.FromError(err).Code)
}

func TestSignLosesConcurrentRace(t *testing.T) {
	detail := pendingDetail()
	repo := &mockSigningRepo{byToken: map[string]models.ContractDetail{detail.AccessToken: detail}, loseRace: true}
	store := &mockStore{files: map[string][]byte{detail.FilePath: []byte("%PDF-draft")}}
	svc, _ := newSigningService(repo, store, "fold")

	// The read saw a pending contract but another signer won the update.
	_, err := svc.Sign(context.Background(), detail.AccessToken, signRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadySigned.Code, appErrors.FromError(err).Code)
}
