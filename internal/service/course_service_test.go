package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
)

type mockCatalogCache struct {
	entries map[string][]byte
	sets    int
	deletes int
}

func (m *mockCatalogCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockCatalogCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = raw
	m.sets++
	return nil
}

func (m *mockCatalogCache) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	m.deletes++
	return nil
}

type catalogCourseRepo struct {
	mockCourseRepo
	catalog []models.CourseWithCohorts
	loads   int
}

func (m *catalogCourseRepo) ListActiveWithCohorts(ctx context.Context) ([]models.CourseWithCohorts, error) {
	m.loads++
	return m.catalog, nil
}

func newCourseFixtures() (*catalogCourseRepo, *mockCatalogCache, *CourseService) {
	repo := &catalogCourseRepo{
		mockCourseRepo: mockCourseRepo{
			courses: map[string]models.Course{
				"course-1": {ID: "course-1", Name: "Ortodontia", Format: "Presencial", Active: true},
			},
			cohorts: map[string]models.Cohort{
				"cohort-1": {ID: "cohort-1", CourseID: "course-1", Code: "2026-A", Active: true},
			},
		},
		catalog: []models.CourseWithCohorts{
			{Course: models.Course{ID: "course-1", Name: "Ortodontia"}},
		},
	}
	cache := &mockCatalogCache{}
	svc := NewCourseService(repo, cache, time.Minute, NewMetricsService(), nil, nil)
	return repo, cache, svc
}

func TestCatalogCachesAfterFirstLoad(t *testing.T) {
	repo, cache, svc := newCourseFixtures()

	first, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.loads)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.loads, "second read must come from cache")
}

func TestCreateCohortUnknownCourse(t *testing.T) {
	_, _, svc := newCourseFixtures()

	err := svc.CreateCohort(context.Background(), &models.Cohort{CourseID: "missing", Code: "2026-B"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestUpdateCourseInvalidatesCatalog(t *testing.T) {
	repo, cache, svc := newCourseFixtures()

	_, err := svc.Catalog(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, cache.sets)

	updated, err := svc.UpdateCourse(context.Background(), "course-1", &models.Course{
		Name:          "Ortodontia Avancada",
		Format:        "Hibrido",
		WorkloadHours: 800,
		Active:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ortodontia Avancada", updated.Name)
	assert.Equal(t, "Ortodontia Avancada", repo.courses["course-1"].Name)
	assert.Equal(t, 1, cache.deletes)

	_, err = svc.Catalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.loads, "catalog must reload after invalidation")
}

func TestDeactivateCohort(t *testing.T) {
	repo, cache, svc := newCourseFixtures()

	require.NoError(t, svc.DeactivateCohort(context.Background(), "cohort-1"))
	assert.False(t, repo.cohorts["cohort-1"].Active)
	assert.Equal(t, 1, cache.deletes)

	err := svc.DeactivateCohort(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestListCohortsRequiresCourse(t *testing.T) {
	_, _, svc := newCourseFixtures()

	cohorts, err := svc.ListCohorts(context.Background(), "course-1")
	require.NoError(t, err)
	require.Len(t, cohorts, 1)
	assert.Equal(t, "2026-A", cohorts[0].Code)

	_, err = svc.ListCohorts(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}
