package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/document"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/finance"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/format"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/pdf"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/signing"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/export"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/jobs"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/mailer"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/storage"
)

// SigningLinkEmailJob is the queue job type for signing-link delivery.
const SigningLinkEmailJob = "signing_link_email"

// SigningEmailPayload is the queue payload for one signing-link email.
type SigningEmailPayload struct {
	ContractID  string
	To          string
	StudentName string
	CourseName  string
	SigningLink string
}

type contractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	List(ctx context.Context, filter models.ContractFilter) ([]models.ContractDetail, int, error)
	FindByID(ctx context.Context, id string) (*models.ContractDetail, error)
	UpdateFilePath(ctx context.Context, id, path string) error
	SetEmailSent(ctx context.Context, id string, at time.Time) error
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type emailQueue interface {
	Enqueue(job jobs.Job) error
}

// ContractConfig carries the pipeline knobs the service needs.
type ContractConfig struct {
	PathPrefix     string
	RetryBackoff   time.Duration
	SigningBaseURL string
	BalancePolicy  string
}

// ContractService drives the wizard: plan preview, validation, document
// rendering, conversion, storage and the signing-link email.
type ContractService struct {
	contracts contractRepository
	students  studentRepository
	courses   courseRepository
	audit     auditRecorder

	converter pdf.Converter
	store     storage.BlobStore
	emails    emailQueue
	template  func() ([]byte, error)

	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	config    ContractConfig
}

// NewContractService wires the generation pipeline.
func NewContractService(
	contracts contractRepository,
	students studentRepository,
	courses courseRepository,
	audit auditRecorder,
	converter pdf.Converter,
	store storage.BlobStore,
	emails emailQueue,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	config ContractConfig,
) *ContractService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = 2 * time.Second
	}
	return &ContractService{
		contracts: contracts,
		students:  students,
		courses:   courses,
		audit:     audit,
		converter: converter,
		store:     store,
		emails:    emails,
		template:  document.BuildDefaultTemplate,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		config:    config,
	}
}

// PreviewSchedule computes the derived values and both installment schedules
// without persisting anything.
func (s *ContractService) PreviewSchedule(ctx context.Context, req dto.PreviewScheduleRequest) (*dto.PreviewScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview payload")
	}

	plan, warnings, err := s.buildPlan(req.GrossValue, req.DiscountPercent, req.Entry, req.Balance)
	if err != nil {
		return nil, err
	}

	return &dto.PreviewScheduleResponse{
		DiscountAmount: plan.DiscountAmount,
		FinalValue:     plan.FinalValue,
		MaterialFee:    plan.MaterialFee,
		Entry:          plan.EntrySchedule(),
		Balance:        plan.BalanceSchedule(),
		Warnings:       warnings,
	}, nil
}

// Generate runs the full pipeline: validate the plan, render the contract
// document, convert it, upload it, persist the contract row and dispatch the
// signing-link email. The upload happens before the insert so a stored row
// always points at an existing file; email dispatch is asynchronous and its
// failure never fails the generation.
func (s *ContractService) Generate(ctx context.Context, req dto.CreateContractRequest, operatorID string) (*dto.ContractCreatedResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contract payload")
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	course, err := s.courses.FindCourseByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	cohort, err := s.courses.FindCohortByID(ctx, req.CohortID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch cohort")
	}
	if cohort.CourseID != course.ID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cohort does not belong to the selected course")
	}
	if !course.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is no longer offered")
	}
	if !cohort.Active {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cohort is closed for enrollment")
	}

	plan, warnings, err := s.buildPlan(req.GrossValue, req.DiscountPercent, req.Entry, req.Balance)
	if err != nil {
		return nil, err
	}

	token, err := signing.NewAccessToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate access token")
	}

	template, err := s.template()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build template")
	}

	data := s.documentData(student, course, cohort, plan, req)
	rendered, err := document.Render(template, data, plan.EntrySchedule(), plan.BalanceSchedule())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render contract document")
	}
	warnings = append(warnings, rendered.Warnings...)

	conversionStart := time.Now()
	pdfBytes, err := s.converter.ToPDF(ctx, rendered.Docx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveConversion(time.Since(conversionStart))

	draftPath := storage.DraftPath(s.config.PathPrefix, student.FullName, course.Name)
	if err := s.upload(ctx, draftPath, pdfBytes); err != nil {
		return nil, err
	}

	contract := &models.Contract{
		StudentID:       student.ID,
		CourseID:        course.ID,
		CohortID:        cohort.ID,
		Status:          models.ContractStatusPending,
		AccessToken:     token,
		GrossValue:      plan.Gross,
		DiscountPercent: plan.DiscountPercent,
		DiscountAmount:  plan.DiscountAmount,
		FinalValue:      plan.FinalValue,
		MaterialFee:     plan.MaterialFee,
		EntryTotal:      plan.Entry.Total,
		EntryCount:      plan.Entry.Count,
		EntryMethod:     plan.Entry.Method,
		BalanceTotal:    plan.Balance.Total,
		BalanceCount:    plan.Balance.Count,
		BalanceMethod:   plan.Balance.Method,
		PatientCare:     req.PatientCare,
		Scholarship:     req.Scholarship,
		FilePath:        draftPath,
	}
	if !plan.Entry.FirstDue.IsZero() {
		due := plan.Entry.FirstDue
		contract.EntryFirstDue = &due
	}
	if !plan.Balance.FirstDue.IsZero() {
		due := plan.Balance.FirstDue
		contract.BalanceFirstDue = &due
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist contract")
	}
	s.metrics.RecordContractGenerated()

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &operatorID,
		Action:     models.AuditActionContractCreate,
		Resource:   "contracts",
		ResourceID: &contract.ID,
		Detail:     fmt.Sprintf("contract for %s / %s", student.FullName, course.Name),
	}); err != nil {
		s.logger.Warn("failed to record contract audit log", zap.Error(err))
	}

	link := s.signingLink(token)
	if warn := s.dispatchEmail(contract.ID, student, course, link); warn != "" {
		warnings = append(warnings, warn)
	}

	detail, err := s.contracts.FindByID(ctx, contract.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload contract")
	}

	return &dto.ContractCreatedResponse{
		Contract:    *detail,
		SigningLink: link,
		Warnings:    warnings,
	}, nil
}

// List returns contract details with pagination metadata.
func (s *ContractService) List(ctx context.Context, filter models.ContractFilter) ([]models.ContractDetail, *models.Pagination, error) {
	contracts, total, err := s.contracts.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contracts")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return contracts, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches a contract detail by ID.
func (s *ContractService) Get(ctx context.Context, id string) (*models.ContractDetail, error) {
	detail, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "contract not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch contract")
	}
	return detail, nil
}

// SigningLink rebuilds the public link for an existing contract.
func (s *ContractService) SigningLink(detail *models.ContractDetail) string {
	return s.signingLink(detail.AccessToken)
}

// ResendEmail re-dispatches the signing-link email for a pending contract.
func (s *ContractService) ResendEmail(ctx context.Context, id, operatorID string) error {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if detail.Status != models.ContractStatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "contract is not pending signature")
	}

	payload := SigningEmailPayload{
		ContractID:  detail.ID,
		To:          detail.StudentEmail,
		StudentName: detail.StudentName,
		CourseName:  detail.CourseName,
		SigningLink: s.signingLink(detail.AccessToken),
	}
	if err := s.emails.Enqueue(jobs.Job{ID: uuid.NewString(), Type: SigningLinkEmailJob, Payload: payload}); err != nil {
		return appErrors.Wrap(err, appErrors.ErrEmailDelivery.Code, appErrors.ErrEmailDelivery.Status, "failed to queue signing email")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &operatorID,
		Action:     models.AuditActionEmailResend,
		Resource:   "contracts",
		ResourceID: &detail.ID,
		Detail:     fmt.Sprintf("signing link resent to %s", detail.StudentEmail),
	}); err != nil {
		s.logger.Warn("failed to record resend audit log", zap.Error(err))
	}
	return nil
}

// RegenerateDocument re-renders and re-converts a pending contract's draft,
// picking up corrections made to the student record after generation. Signed
// contracts are immutable.
func (s *ContractService) RegenerateDocument(ctx context.Context, id, operatorID string) (*dto.ContractCreatedResponse, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail.Status != models.ContractStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "signed contracts are immutable")
	}

	student, err := s.students.FindByID(ctx, detail.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	course, err := s.courses.FindCourseByID(ctx, detail.CourseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	cohort, err := s.courses.FindCohortByID(ctx, detail.CohortID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch cohort")
	}

	entry := finance.PartConfig{Total: detail.EntryTotal, Count: detail.EntryCount, Method: detail.EntryMethod}
	if detail.EntryFirstDue != nil {
		entry.FirstDue = *detail.EntryFirstDue
	}
	balance := finance.PartConfig{Total: detail.BalanceTotal, Count: detail.BalanceCount, Method: detail.BalanceMethod}
	if detail.BalanceFirstDue != nil {
		balance.FirstDue = *detail.BalanceFirstDue
	}
	plan := finance.NewPlan(detail.GrossValue, detail.DiscountPercent, entry, balance)

	template, err := s.template()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to build template")
	}

	req := dto.CreateContractRequest{PatientCare: detail.PatientCare, Scholarship: detail.Scholarship}
	data := s.documentData(student, course, cohort, plan, req)
	rendered, err := document.Render(template, data, plan.EntrySchedule(), plan.BalanceSchedule())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render contract document")
	}
	warnings := rendered.Warnings

	conversionStart := time.Now()
	pdfBytes, err := s.converter.ToPDF(ctx, rendered.Docx)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveConversion(time.Since(conversionStart))

	// The student's name may have changed, which changes the storage path.
	draftPath := storage.DraftPath(s.config.PathPrefix, student.FullName, course.Name)
	if err := s.upload(ctx, draftPath, pdfBytes); err != nil {
		return nil, err
	}
	if err := s.contracts.UpdateFilePath(ctx, id, draftPath); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update contract file path")
	}

	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     &operatorID,
		Action:     models.AuditActionContractCreate,
		Resource:   "contracts",
		ResourceID: &detail.ID,
		Detail:     fmt.Sprintf("document regenerated for %s / %s", student.FullName, course.Name),
	}); err != nil {
		s.logger.Warn("failed to record regeneration audit log", zap.Error(err))
	}

	reloaded, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reload contract")
	}

	return &dto.ContractCreatedResponse{
		Contract:    *reloaded,
		SigningLink: s.signingLink(reloaded.AccessToken),
		Warnings:    warnings,
	}, nil
}

// ExportSchedule renders the contract's payment schedule as CSV or PDF.
func (s *ContractService) ExportSchedule(ctx context.Context, id, exportFormat string) ([]byte, string, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Title:    fmt.Sprintf("Cronograma de Pagamento - %s", detail.StudentName),
		Subtitle: fmt.Sprintf("%s / Turma %s", detail.CourseName, detail.CohortCode),
		Headers:  []string{"Etapa", "Parc", "Vencimento", "Valor", "Forma"},
	}
	appendRows := func(stage string, schedule []models.Installment) {
		for _, item := range schedule {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Etapa":      stage,
				"Parc":       item.Label,
				"Vencimento": format.DateBR(item.DueDate),
				"Valor":      format.Currency(item.Amount),
				"Forma":      item.Method,
			})
		}
	}
	appendRows("Entrada", s.entrySchedule(detail))
	appendRows("Saldo", s.balanceSchedule(detail))

	switch exportFormat {
	case "csv":
		data, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return data, "text/csv", nil
	case "pdf":
		data, err := export.NewPDFExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return data, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func (s *ContractService) entrySchedule(detail *models.ContractDetail) []models.Installment {
	if !detail.EntryTotal.IsPositive() || detail.EntryFirstDue == nil {
		return nil
	}
	return finance.BuildSchedule(detail.EntryTotal, detail.EntryCount, *detail.EntryFirstDue, detail.EntryMethod)
}

func (s *ContractService) balanceSchedule(detail *models.ContractDetail) []models.Installment {
	if !detail.BalanceTotal.IsPositive() || detail.BalanceFirstDue == nil {
		return nil
	}
	return finance.BuildSchedule(detail.BalanceTotal, detail.BalanceCount, *detail.BalanceFirstDue, detail.BalanceMethod)
}

func (s *ContractService) buildPlan(gross, discountPercent decimal.Decimal, entryReq, balanceReq dto.PartRequest) (finance.Plan, []string, error) {
	entry, err := partConfig(entryReq)
	if err != nil {
		return finance.Plan{}, nil, err
	}
	balance, err := partConfig(balanceReq)
	if err != nil {
		return finance.Plan{}, nil, err
	}

	plan := finance.NewPlan(gross, discountPercent, entry, balance)
	warnings, err := plan.Validate(s.config.BalancePolicy)
	if err != nil {
		return finance.Plan{}, nil, err
	}
	return plan, warnings, nil
}

func partConfig(req dto.PartRequest) (finance.PartConfig, error) {
	part := finance.PartConfig{
		Total:   req.Total,
		Count:   req.Count,
		Method:  req.Method,
		Amounts: req.Amounts,
	}
	if req.FirstDue != "" {
		due, err := time.Parse("2006-01-02", req.FirstDue)
		if err != nil {
			return finance.PartConfig{}, appErrors.Clone(appErrors.ErrValidation, "first_due must be YYYY-MM-DD")
		}
		part.FirstDue = due
	}
	return part, nil
}

// upload puts the draft into blob storage, retrying once after a backoff:
// transient bucket errors are common enough that a single retry pays for
// itself, and anything beyond that should fail loudly.
func (s *ContractService) upload(ctx context.Context, path string, data []byte) error {
	_, err := s.store.Put(path, data, "application/pdf")
	if err == nil {
		return nil
	}
	s.logger.Warn("contract upload failed, retrying", zap.String("path", path), zap.Error(err))
	select {
	case <-ctx.Done():
		return appErrors.Wrap(ctx.Err(), appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	case <-time.After(s.config.RetryBackoff):
	}
	if _, err = s.store.Put(path, data, "application/pdf"); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
	}
	return nil
}

func (s *ContractService) signingLink(token string) string {
	return fmt.Sprintf("%s/Assinatura?token=%s", s.config.SigningBaseURL, token)
}

func (s *ContractService) dispatchEmail(contractID string, student *models.Student, course *models.Course, link string) string {
	payload := SigningEmailPayload{
		ContractID:  contractID,
		To:          student.Email,
		StudentName: student.FullName,
		CourseName:  course.Name,
		SigningLink: link,
	}
	if err := s.emails.Enqueue(jobs.Job{ID: uuid.NewString(), Type: SigningLinkEmailJob, Payload: payload}); err != nil {
		s.logger.Warn("failed to queue signing email", zap.String("contract_id", contractID), zap.Error(err))
		return "signing email could not be queued; share the signing link manually"
	}
	return ""
}

func (s *ContractService) documentData(student *models.Student, course *models.Course, cohort *models.Cohort, plan finance.Plan, req dto.CreateContractRequest) document.Data {
	yesNo := func(b bool) string {
		if b {
			return "Sim"
		}
		return "Não"
	}
	return document.Data{
		"nome_aluno":     student.FullName,
		"cpf_aluno":      format.CPF(student.CPF),
		"endereco_aluno": fmt.Sprintf("%s, %s", student.Street, student.Number),
		"cidade_aluno":   fmt.Sprintf("%s - %s", student.City, student.State),
		"cep_aluno":      student.ZipCode,
		"nome_curso":     course.Name,
		"turma":          cohort.Code,
		"carga_horaria":  fmt.Sprintf("%d", course.WorkloadHours),
		"atendimento":    yesNo(req.PatientCare),
		"bolsista":       yesNo(req.Scholarship),
		"valor_bruto":    format.Currency(plan.Gross),
		"valor_desconto": format.Currency(plan.DiscountAmount),
		"desconto_perc":  fmt.Sprintf("%s%%", plan.DiscountPercent.StringFixed(0)),
		"valor_final":    format.Currency(plan.FinalValue),
		"entrada_total":  format.Currency(plan.Entry.Total),
		"saldo_total":    format.Currency(plan.Balance.Total),
		"saldo_qtd":      fmt.Sprintf("%d", plan.Balance.Count),
		"valor_material": format.Currency(plan.MaterialFee),
		"data_extenso":   format.FullDatePTBR(time.Now()),
	}
}

// NewSigningEmailHandler builds the queue handler that actually delivers the
// signing-link email and stamps the contract on success.
func NewSigningEmailHandler(sender mailer.Sender, contracts contractRepository, metrics *MetricsService, logger *zap.Logger) jobs.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(SigningEmailPayload)
		if !ok {
			logger.Error("unexpected signing email payload", zap.String("job_id", job.ID))
			return nil
		}

		subject := mailer.SigningLinkSubject(payload.CourseName)
		body := mailer.SigningLinkBody(payload.StudentName, payload.CourseName, payload.SigningLink)
		if err := sender.Send(ctx, payload.To, subject, body); err != nil {
			metrics.RecordEmailFailure()
			return err
		}

		if err := contracts.SetEmailSent(ctx, payload.ContractID, time.Now().UTC()); err != nil {
			logger.Warn("failed to stamp email delivery", zap.String("contract_id", payload.ContractID), zap.Error(err))
		}
		return nil
	}
}
