package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/service"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/response"
)

// ContractHandler exposes the contract wizard and management endpoints.
type ContractHandler struct {
	service *service.ContractService
}

// NewContractHandler creates a new handler.
func NewContractHandler(svc *service.ContractService) *ContractHandler {
	return &ContractHandler{service: svc}
}

// PreviewSchedule godoc
// @Summary Preview payment schedule
// @Description Compute derived values and installment schedules without persisting
// @Tags Contracts
// @Accept json
// @Produce json
// @Param payload body dto.PreviewScheduleRequest true "Plan payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /contracts/preview-schedule [post]
func (h *ContractHandler) PreviewSchedule(c *gin.Context) {
	var req dto.PreviewScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule payload"))
		return
	}

	res, err := h.service.PreviewSchedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Create godoc
// @Summary Generate contract
// @Description Run the full generation pipeline: render, convert, store and email
// @Tags Contracts
// @Accept json
// @Produce json
// @Param payload body dto.CreateContractRequest true "Contract payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /contracts [post]
func (h *ContractHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid contract payload"))
		return
	}

	res, err := h.service.Generate(c.Request.Context(), req, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// List godoc
// @Summary List contracts
// @Description List contracts with status, course and student filters
// @Tags Contracts
// @Produce json
// @Param status query string false "Pendente or Assinado"
// @Param student_id query string false "Student ID"
// @Param course_id query string false "Course ID"
// @Param search query string false "Student name or CPF search"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param sort query string false "Sort column"
// @Param order query string false "Sort order (asc/desc)"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /contracts [get]
func (h *ContractHandler) List(c *gin.Context) {
	filter := models.ContractFilter{
		Status:    models.ContractStatus(c.Query("status")),
		StudentID: c.Query("student_id"),
		CourseID:  c.Query("course_id"),
		Search:    c.Query("search"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "limit", 20),
		SortBy:    c.Query("sort"),
		SortOrder: c.Query("order"),
	}

	contracts, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, contracts, pagination)
}

// Get godoc
// @Summary Get contract
// @Description Get a single contract with its signing link
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /contracts/{id} [get]
func (h *ContractHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, detail, nil, map[string]interface{}{
		"signing_link": h.service.SigningLink(detail),
	})
}

// ResendEmail godoc
// @Summary Resend signing email
// @Description Queue the signing-link email again for a pending contract
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 202 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /contracts/{id}/resend-email [post]
func (h *ContractHandler) ResendEmail(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.ResendEmail(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, gin.H{"message": "signing email queued"}, nil)
}

// RegenerateDocument godoc
// @Summary Regenerate contract document
// @Description Re-render and re-convert a pending contract's draft after registration corrections
// @Tags Contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /contracts/{id}/regenerate [post]
func (h *ContractHandler) RegenerateDocument(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	res, err := h.service.RegenerateDocument(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// ExportSchedule godoc
// @Summary Export payment schedule
// @Description Download the contract's payment schedule as CSV or PDF
// @Tags Contracts
// @Produce octet-stream
// @Param id path string true "Contract ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /contracts/{id}/schedule/export [get]
func (h *ContractHandler) ExportSchedule(c *gin.Context) {
	exportFormat := c.DefaultQuery("format", "csv")

	data, contentType, err := h.service.ExportSchedule(c.Request.Context(), c.Param("id"), exportFormat)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("cronograma_%s.%s", c.Param("id"), exportFormat)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
