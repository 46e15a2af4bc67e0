package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

const catalogCacheKey = "catalog:courses"

type courseRepository interface {
	ListActiveWithCohorts(ctx context.Context) ([]models.CourseWithCohorts, error)
	FindCourseByID(ctx context.Context, id string) (*models.Course, error)
	FindCohortByID(ctx context.Context, id string) (*models.Cohort, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	CreateCohort(ctx context.Context, cohort *models.Cohort) error
	ListCohortsByCourse(ctx context.Context, courseID string) ([]models.Cohort, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	SetCourseActive(ctx context.Context, id string, active bool) error
	UpdateCohort(ctx context.Context, cohort *models.Cohort) error
	SetCohortActive(ctx context.Context, id string, active bool) error
}

type catalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CourseService serves the course/cohort catalog behind a short-lived cache.
type CourseService struct {
	repo      courseRepository
	cache     catalogCache
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService. cache may be nil.
func NewCourseService(repo courseRepository, cache catalogCache, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &CourseService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, validator: validate, logger: logger}
}

// Catalog returns active courses with their open cohorts, cache-first.
func (s *CourseService) Catalog(ctx context.Context) ([]models.CourseWithCohorts, error) {
	if s.cache != nil {
		var cached []models.CourseWithCohorts
		if err := s.cache.Get(ctx, catalogCacheKey, &cached); err == nil {
			s.metrics.RecordCacheLookup(true)
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.Error(err))
		}
		s.metrics.RecordCacheLookup(false)
	}

	catalog, err := s.repo.ListActiveWithCohorts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, catalogCacheKey, catalog, s.cacheTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return catalog, nil
}

// GetCourse fetches a course by ID.
func (s *CourseService) GetCourse(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch course")
	}
	return course, nil
}

// GetCohort fetches a cohort by ID.
func (s *CourseService) GetCohort(ctx context.Context, id string) (*models.Cohort, error) {
	cohort, err := s.repo.FindCohortByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch cohort")
	}
	return cohort, nil
}

// CreateCourse adds a course to the catalog and invalidates the cache.
func (s *CourseService) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.Name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "course name is required")
	}
	course.Active = true
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// CreateCohort adds a cohort under a course and invalidates the cache.
func (s *CourseService) CreateCohort(ctx context.Context, cohort *models.Cohort) error {
	if cohort.CourseID == "" || cohort.Code == "" {
		return appErrors.Clone(appErrors.ErrValidation, "cohort requires course_id and code")
	}
	if _, err := s.GetCourse(ctx, cohort.CourseID); err != nil {
		return err
	}
	cohort.Active = true
	if err := s.repo.CreateCohort(ctx, cohort); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cohort")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ListCohorts returns every cohort of a course, including closed ones.
func (s *CourseService) ListCohorts(ctx context.Context, courseID string) ([]models.Cohort, error) {
	if _, err := s.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}
	cohorts, err := s.repo.ListCohortsByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cohorts")
	}
	return cohorts, nil
}

// UpdateCourse rewrites a course's catalog data and invalidates the cache.
func (s *CourseService) UpdateCourse(ctx context.Context, id string, course *models.Course) (*models.Course, error) {
	if course.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course name is required")
	}
	existing, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Name = course.Name
	existing.Format = course.Format
	existing.WorkloadHours = course.WorkloadHours
	existing.Active = course.Active
	if err := s.repo.UpdateCourse(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}
	s.invalidateCatalog(ctx)
	return existing, nil
}

// DeactivateCourse removes a course from the wizard's catalog without
// touching its existing contracts.
func (s *CourseService) DeactivateCourse(ctx context.Context, id string) error {
	if err := s.repo.SetCourseActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate course")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// UpdateCohort rewrites a cohort's data and invalidates the cache.
func (s *CourseService) UpdateCohort(ctx context.Context, id string, cohort *models.Cohort) (*models.Cohort, error) {
	if cohort.Code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "cohort code is required")
	}
	existing, err := s.GetCohort(ctx, id)
	if err != nil {
		return nil, err
	}
	existing.Code = cohort.Code
	existing.StartDate = cohort.StartDate
	existing.Active = cohort.Active
	if err := s.repo.UpdateCohort(ctx, existing); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update cohort")
	}
	s.invalidateCatalog(ctx)
	return existing, nil
}

// DeactivateCohort closes a cohort to new contracts.
func (s *CourseService) DeactivateCohort(ctx context.Context, id string) error {
	if err := s.repo.SetCohortActive(ctx, id, false); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "cohort not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate cohort")
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
