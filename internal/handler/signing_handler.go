package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/dto"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/service"
	appErrors "github.com/nexusmededucacao/nexusmed-contratos/pkg/errors"
	"github.com/nexusmededucacao/nexusmed-contratos/pkg/response"
)

// SigningHandler exposes the public, token-gated countersignature endpoints.
// Nothing here sits behind JWT: possession of the access token is the
// credential.
type SigningHandler struct {
	service *service.SigningService
}

// NewSigningHandler creates a new handler.
func NewSigningHandler(svc *service.SigningService) *SigningHandler {
	return &SigningHandler{service: svc}
}

// View godoc
// @Summary Public signing page data
// @Description Resolve an access token to the contract summary shown on the signing page
// @Tags Signing
// @Produce json
// @Param token query string true "Access token"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /Assinatura [get]
func (h *SigningHandler) View(c *gin.Context) {
	view, err := h.service.View(c.Request.Context(), c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view, nil)
}

// Sign godoc
// @Summary Countersign contract
// @Description Validate the signer's identity, stamp the document and mark the contract signed
// @Tags Signing
// @Accept json
// @Produce json
// @Param token query string true "Access token"
// @Param payload body dto.SignRequest true "Signature payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /Assinatura [post]
func (h *SigningHandler) Sign(c *gin.Context) {
	var req dto.SignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid signature payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Sign(c.Request.Context(), c.Query("token"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// Document godoc
// @Summary Download contract document
// @Description Serve the contract PDF referenced by a signed URL token
// @Tags Signing
// @Produce application/pdf
// @Param token query string true "Signed URL token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /Assinatura/documento [get]
func (h *SigningHandler) Document(c *gin.Context) {
	data, contentType, err := h.service.Document(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "inline; filename=contrato.pdf")
	c.Data(http.StatusOK, contentType, data)
}
