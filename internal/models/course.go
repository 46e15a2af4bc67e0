package models

import "time"

// Course represents a post-graduation course in the catalog.
type Course struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Format        string    `db:"format" json:"format"`
	WorkloadHours int       `db:"workload_hours" json:"workload_hours"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Cohort represents a course class intake (turma).
type Cohort struct {
	ID        string     `db:"id" json:"id"`
	CourseID  string     `db:"course_id" json:"course_id"`
	Code      string     `db:"code" json:"code"`
	StartDate *time.Time `db:"start_date" json:"start_date,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// CourseWithCohorts bundles a course and its open cohorts for the wizard's
// catalog endpoint.
type CourseWithCohorts struct {
	Course
	Cohorts []Cohort `json:"cohorts"`
}
