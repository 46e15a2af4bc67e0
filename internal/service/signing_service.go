package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/format"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/pdf"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/repository"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/signing"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/storage"
)

type signingContractRepository interface {
	FindByToken(ctx context.Context, token string) (*models.ContractDetail, error)
	MarkSigned(ctx context.Context, id string, sig repository.Signature) (bool, error)
}

// URLSigner issues and verifies short-lived document download links.
type URLSigner interface {
	Generate(contractID, relPath string) (string, time.Time, error)
	Parse(token string) (contractID, relPath string, expiresAt time.Time, err error)
}

// SigningConfig governs identity checking on the public page.
type SigningConfig struct {
	BaseURL   string
	NameMatch string
}

// SigningService implements the public, token-gated countersignature flow.
// Everything here is reachable without operator credentials, so error
// responses stay deliberately vague.
type SigningService struct {
	contracts signingContractRepository
	audit     auditRecorder
	store     storage.BlobStore
	signer    URLSigner
	stamp     func([]byte, pdf.Stamp) ([]byte, error)
	metrics   *MetricsService
	logger    *zap.Logger
	config    SigningConfig
}

// NewSigningService wires the countersignature flow.
func NewSigningService(contracts signingContractRepository, audit auditRecorder, store storage.BlobStore, signer URLSigner, metrics *MetricsService, logger *zap.Logger, config SigningConfig) *SigningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SigningService{contracts: contracts, audit: audit, store: store, signer: signer, stamp: pdf.ApplyStamp, metrics: metrics, logger: logger, config: config}
}

// View resolves an access token into the signing-page projection.
func (s *SigningService) View(ctx context.Context, token string) (*dto.SigningView, error) {
	detail, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	docPath := detail.FilePath
	if detail.Status == models.ContractStatusSigned && detail.SignedFilePath != nil {
		docPath = *detail.SignedFilePath
	}
	docURL, _, err := s.signer.Generate(detail.ID, docPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign document link")
	}

	return &dto.SigningView{
		ContractID:   detail.ID,
		Status:       string(detail.Status),
		StudentName:  detail.StudentName,
		StudentCPF:   format.CPF(detail.StudentCPF),
		CourseName:   detail.CourseName,
		CohortCode:   detail.CohortCode,
		FinalValue:   detail.FinalValue,
		EntryTotal:   detail.EntryTotal,
		BalanceTotal: detail.BalanceTotal,
		BalanceCount: detail.BalanceCount,
		DocumentURL:  docURL,
	}, nil
}

// Sign validates the signer's identity and terms acceptance, stamps the PDF
// and flips the contract to signed. Concurrent submissions resolve to one
// winner through the conditional update; the loser gets an already-signed
// conflict.
func (s *SigningService) Sign(ctx context.Context, token string, req dto.SignRequest) (*dto.SignResponse, error) {
	detail, err := s.findByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if detail.Status == models.ContractStatusSigned {
		return nil, appErrors.Clone(appErrors.ErrAlreadySigned, "")
	}

	if !s.identityMatches(detail, req) {
		// One generic error for name, CPF and terms failures: the page is
		// public and must not reveal which check failed.
		return nil, appErrors.Clone(appErrors.ErrIdentityMismatch, "")
	}

	signedAt := time.Now().UTC()
	cpfDigits := format.DigitsOnly(req.CPF)
	hash := pdf.IntegrityHash(detail.AccessToken, signedAt, cpfDigits)

	draft, err := s.store.Get(detail.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load contract document")
	}

	stamped, err := s.stamp(draft, pdf.Stamp{
		SignedAt:   signedAt,
		SignerName: req.FullName,
		SignerCPF:  cpfDigits,
		SignerIP:   req.IP,
		Hash:       hash,
	})
	if err != nil {
		return nil, err
	}

	signedPath := storage.SignedPath(detail.FilePath)
	if _, err := s.store.Put(signedPath, stamped, "application/pdf"); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to store signed document")
	}

	receipt := fmt.Sprintf("Assinado via Portal NexusMed por %s", req.FullName)
	won, err := s.contracts.MarkSigned(ctx, detail.ID, repository.Signature{
		SignedAt:          signedAt,
		SignerName:        req.FullName,
		SignerIP:          req.IP,
		Hash:              hash,
		AcceptanceReceipt: receipt,
		SignedFilePath:    signedPath,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record signature")
	}
	if !won {
		return nil, appErrors.Clone(appErrors.ErrAlreadySigned, "")
	}
	s.metrics.RecordContractSigned()

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Action:     models.AuditActionContractSign,
		Resource:   "contracts",
		ResourceID: &detail.ID,
		Detail:     receipt,
		IPAddress:  req.IP,
		UserAgent:  req.UserAgent,
	}); err != nil {
		s.logger.Warn("failed to record signature audit log", zap.Error(err))
	}

	docURL, _, err := s.signer.Generate(detail.ID, signedPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign document link")
	}

	return &dto.SignResponse{
		ContractID:    detail.ID,
		Status:        string(models.ContractStatusSigned),
		SignedAt:      signedAt.Format(time.RFC3339),
		SignatureHash: hash,
		DocumentURL:   docURL,
	}, nil
}

// Document resolves a signed download link into the stored bytes.
func (s *SigningService) Document(urlToken string) ([]byte, string, error) {
	_, relPath, _, err := s.signer.Parse(urlToken)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	data, err := s.store.Get(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	return data, "application/pdf", nil
}

func (s *SigningService) findByToken(ctx context.Context, token string) (*models.ContractDetail, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
	}
	detail, err := s.contracts.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidToken, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve token")
	}
	return detail, nil
}

func (s *SigningService) identityMatches(detail *models.ContractDetail, req dto.SignRequest) bool {
	if !req.AcceptTerms {
		return false
	}
	if format.DigitsOnly(req.CPF) != detail.StudentCPF {
		return false
	}
	switch s.config.NameMatch {
	case "off":
		return true
	case "exact":
		return signing.ExactName(req.FullName) == signing.ExactName(detail.StudentName)
	default: // fold
		return signing.FoldName(req.FullName) == signing.FoldName(detail.StudentName)
	}
}
