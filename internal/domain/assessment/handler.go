package assessment

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gfi/internal/domain/friction"
	"gfi/internal/domain/lead"
	"gfi/internal/pkg/response"
	"gfi/internal/pkg/validator"
)

// Handler serves the public calculator API
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetPresets handles GET /api/v1/presets
func (h *Handler) GetPresets(c *gin.Context) {
	response.Success(c, http.StatusOK, h.service.Presets())
}

// Estimate handles POST /api/v1/assessments/estimate
// @Summary Estimate friction cost
// @Tags Assessments
// @Accept json
// @Produce json
// @Param request body friction.Intake true "Calculator inputs"
// @Success 200 {object} response.Response{data=EstimateResult}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /assessments/estimate [post]
func (h *Handler) Estimate(c *gin.Context) {
	var in friction.Intake
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	res, err := h.service.Estimate(in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// ProfitLeak handles POST /api/v1/assessments/profit-leak
func (h *Handler) ProfitLeak(c *gin.Context) {
	var in friction.ProfitLeakIntake
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	res, err := h.service.ProfitLeak(in)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Submit handles POST /api/v1/assessments/submit
// @Summary Submit an assessment as a lead
// @Description Returns the estimate and Snapshot even when storage or e-mail fail
// @Tags Assessments
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Contact details and calculator inputs"
// @Success 201 {object} response.Response{data=Result}
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /assessments/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Organization = strings.TrimSpace(req.Organization)
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Contact details are incomplete", errs)
		return
	}

	res, err := h.service.Submit(c.Request.Context(), req, RequestMeta{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// DownloadSnapshot handles GET /api/v1/assessments/:public_id/snapshot
// @Summary Download a lead's Snapshot
// @Tags Assessments
// @Produce application/pdf
// @Param public_id path string true "Lead public ID"
// @Failure 404 {object} response.Response
// @Router /assessments/{public_id}/snapshot [get]
func (h *Handler) DownloadSnapshot(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.PDF(c, snap.Filename, snap.PDF)
}

// GetDispatches handles GET /api/v1/assessments/:public_id/dispatches
func (h *Handler) GetDispatches(c *gin.Context) {
	res, err := h.service.Dispatches(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	var inputErr *friction.InvalidInputError
	var persistErr *lead.PersistenceError

	switch {
	case errors.As(err, &inputErr):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "INVALID_INPUT", inputErr.Error(),
			gin.H{"field": inputErr.Field})
	case errors.Is(err, lead.ErrLeadNotFound):
		response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Assessment not found")
	case errors.As(err, &persistErr):
		_ = c.Error(err)
		response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Stored assessments are unavailable")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process assessment")
	}
}
