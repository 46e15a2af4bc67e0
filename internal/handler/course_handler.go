package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/service"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/response"
)

// CourseHandler exposes the course/cohort catalog endpoints.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Catalog godoc
// @Summary Course catalog
// @Description List active courses with their open cohorts
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) Catalog(c *gin.Context) {
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, catalog, nil)
}

// CreateCourse godoc
// @Summary Create course
// @Description Register a new course offering
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body models.Course true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	if err := h.service.CreateCourse(c.Request.Context(), &course); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, course)
}

// UpdateCourse godoc
// @Summary Update course
// @Description Rewrite a course's catalog data
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.Course true "Course payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	updated, err := h.service.UpdateCourse(c.Request.Context(), c.Param("id"), &course)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated, nil)
}

// DeactivateCourse godoc
// @Summary Deactivate course
// @Description Remove a course from the catalog without touching its contracts
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeactivateCourse(c *gin.Context) {
	if err := h.service.DeactivateCourse(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListCohorts godoc
// @Summary List cohorts of a course
// @Description All cohorts of the course, open and closed
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id}/cohorts [get]
func (h *CourseHandler) ListCohorts(c *gin.Context) {
	cohorts, err := h.service.ListCohorts(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, cohorts, nil)
}

// CreateCohort godoc
// @Summary Create cohort
// @Description Open a new cohort for a course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body models.Cohort true "Cohort payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/{id}/cohorts [post]
func (h *CourseHandler) CreateCohort(c *gin.Context) {
	var cohort models.Cohort
	if err := c.ShouldBindJSON(&cohort); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cohort payload"))
		return
	}
	cohort.CourseID = c.Param("id")

	if err := h.service.CreateCohort(c.Request.Context(), &cohort); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, cohort)
}

// UpdateCohort godoc
// @Summary Update cohort
// @Description Rewrite a cohort's data
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Cohort ID"
// @Param payload body models.Cohort true "Cohort payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cohorts/{id} [put]
func (h *CourseHandler) UpdateCohort(c *gin.Context) {
	var cohort models.Cohort
	if err := c.ShouldBindJSON(&cohort); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cohort payload"))
		return
	}

	updated, err := h.service.UpdateCohort(c.Request.Context(), c.Param("id"), &cohort)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, updated, nil)
}

// DeactivateCohort godoc
// @Summary Deactivate cohort
// @Description Close a cohort to new contracts
// @Tags Courses
// @Produce json
// @Param id path string true "Cohort ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cohorts/{id} [delete]
func (h *CourseHandler) DeactivateCohort(c *gin.Context) {
	if err := h.service.DeactivateCohort(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
