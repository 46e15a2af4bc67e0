package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/format"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	FindByCPF(ctx context.Context, cpf string) (*models.Student, error)
	Upsert(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
}

// StudentService implements the student registration step of the wizard.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns students with pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches a student by ID.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch student")
	}
	return student, nil
}

// FindByCPF looks up a student by CPF (masked or digits-only input). A nil
// result without error means the CPF is unknown: the wizard offers a blank
// registration form.
func (s *StudentService) FindByCPF(ctx context.Context, cpf string) (*models.Student, error) {
	digits := format.DigitsOnly(cpf)
	if len(digits) != 11 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CPF must have 11 digits")
	}
	student, err := s.repo.FindByCPF(ctx, digits)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to look up CPF")
	}
	return student, nil
}

// Upsert registers or updates a student keyed by CPF.
func (s *StudentService) Upsert(ctx context.Context, req dto.UpsertStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	digits := format.DigitsOnly(req.CPF)
	if len(digits) != 11 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CPF must have 11 digits")
	}

	student, err := studentFromRequest(req, digits)
	if err != nil {
		return nil, err
	}

	// Re-submitting a known CPF keeps the original row identity.
	if existing, err := s.repo.FindByCPF(ctx, digits); err == nil && existing != nil {
		student.ID = existing.ID
		student.CreatedAt = existing.CreatedAt
	}

	if err := s.repo.Upsert(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	s.logger.Info("student upserted", zap.String("student_id", student.ID))
	return student, nil
}

// Update rewrites a student identified by ID. Unlike Upsert, the row must
// already exist; changing the CPF to one held by another student is a
// database-level conflict.
func (s *StudentService) Update(ctx context.Context, id string, req dto.UpsertStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	digits := format.DigitsOnly(req.CPF)
	if len(digits) != 11 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CPF must have 11 digits")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	student, err := studentFromRequest(req, digits)
	if err != nil {
		return nil, err
	}
	student.ID = existing.ID
	student.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	s.logger.Info("student updated", zap.String("student_id", student.ID))
	return student, nil
}

func studentFromRequest(req dto.UpsertStudentRequest, cpfDigits string) (*models.Student, error) {
	student := &models.Student{
		FullName:   req.FullName,
		CPF:        cpfDigits,
		Email:      req.Email,
		Phone:      format.DigitsOnly(req.Phone),
		Street:     req.Street,
		Number:     req.Number,
		Complement: req.Complement,
		District:   req.District,
		City:       req.City,
		State:      req.State,
		ZipCode:    format.DigitsOnly(req.ZipCode),
	}
	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "birth_date must be YYYY-MM-DD")
		}
		student.BirthDate = &birth
	}
	return student, nil
}
