package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

// CourseRepository manages the course and cohort catalog.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListActiveWithCohorts loads the catalog the wizard offers: active courses
// with their open cohorts attached.
func (r *CourseRepository) ListActiveWithCohorts(ctx context.Context) ([]models.CourseWithCohorts, error) {
	const courseQuery = `SELECT id, name, format, workload_hours, active, created_at, updated_at
        FROM courses WHERE active = true ORDER BY name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, courseQuery); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	if len(courses) == 0 {
		return []models.CourseWithCohorts{}, nil
	}

	const cohortQuery = `SELECT id, course_id, code, start_date, active, created_at, updated_at
        FROM cohorts WHERE active = true ORDER BY code ASC`
	var cohorts []models.Cohort
	if err := r.db.SelectContext(ctx, &cohorts, cohortQuery); err != nil {
		return nil, fmt.Errorf("list cohorts: %w", err)
	}

	byCourse := make(map[string][]models.Cohort, len(courses))
	for _, cohort := range cohorts {
		byCourse[cohort.CourseID] = append(byCourse[cohort.CourseID], cohort)
	}

	catalog := make([]models.CourseWithCohorts, 0, len(courses))
	for _, course := range courses {
		catalog = append(catalog, models.CourseWithCohorts{
			Course:  course,
			Cohorts: byCourse[course.ID],
		})
	}
	return catalog, nil
}

// FindCourseByID fetches a course by ID.
func (r *CourseRepository) FindCourseByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, format, workload_hours, active, created_at, updated_at FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// FindCohortByID fetches a cohort by ID.
func (r *CourseRepository) FindCohortByID(ctx context.Context, id string) (*models.Cohort, error) {
	const query = `SELECT id, course_id, code, start_date, active, created_at, updated_at FROM cohorts WHERE id = $1`
	var cohort models.Cohort
	if err := r.db.GetContext(ctx, &cohort, query, id); err != nil {
		return nil, err
	}
	return &cohort, nil
}

// CreateCourse inserts a course.
func (r *CourseRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	const query = `INSERT INTO courses (id, name, format, workload_hours, active, created_at, updated_at)
        VALUES (:id, :name, :format, :workload_hours, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// CreateCohort inserts a cohort under a course.
func (r *CourseRepository) CreateCohort(ctx context.Context, cohort *models.Cohort) error {
	if cohort.ID == "" {
		cohort.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if cohort.CreatedAt.IsZero() {
		cohort.CreatedAt = now
	}
	cohort.UpdatedAt = now
	const query = `INSERT INTO cohorts (id, course_id, code, start_date, active, created_at, updated_at)
        VALUES (:id, :course_id, :code, :start_date, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cohort); err != nil {
		return fmt.Errorf("create cohort: %w", err)
	}
	return nil
}

// ListCohortsByCourse returns every cohort of a course, active or not.
func (r *CourseRepository) ListCohortsByCourse(ctx context.Context, courseID string) ([]models.Cohort, error) {
	const query = `SELECT id, course_id, code, start_date, active, created_at, updated_at
        FROM cohorts WHERE course_id = $1 ORDER BY code ASC`
	var cohorts []models.Cohort
	if err := r.db.SelectContext(ctx, &cohorts, query, courseID); err != nil {
		return nil, fmt.Errorf("list cohorts by course: %w", err)
	}
	return cohorts, nil
}

// UpdateCourse rewrites a course's catalog data.
func (r *CourseRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, format = :format, workload_hours = :workload_hours,
        active = :active, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return requireAffected(result, "update course")
}

// SetCourseActive toggles a course in or out of the catalog.
func (r *CourseRepository) SetCourseActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE courses SET active = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set course active: %w", err)
	}
	return requireAffected(result, "set course active")
}

// UpdateCohort rewrites a cohort's data.
func (r *CourseRepository) UpdateCohort(ctx context.Context, cohort *models.Cohort) error {
	cohort.UpdatedAt = time.Now().UTC()
	const query = `UPDATE cohorts SET code = :code, start_date = :start_date, active = :active,
        updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, cohort)
	if err != nil {
		return fmt.Errorf("update cohort: %w", err)
	}
	return requireAffected(result, "update cohort")
}

// SetCohortActive toggles a cohort's availability to the wizard.
func (r *CourseRepository) SetCohortActive(ctx context.Context, id string, active bool) error {
	const query = `UPDATE cohorts SET active = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set cohort active: %w", err)
	}
	return requireAffected(result, "set cohort active")
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
