package lead

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gfi/internal/domain/friction"
	"gfi/internal/pkg/response"
)

// Handler handles admin lead HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates lead handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetLead handles GET /api/v1/admin/leads/:id
// @Summary Get lead by ID
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lead ID"
// @Success 200 {object} response.Response{data=Lead}
// @Failure 404 {object} response.Response
// @Router /admin/leads/{id} [get]
func (h *Handler) GetLead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid lead ID")
		return
	}

	lead, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			response.Error(c, http.StatusNotFound, "LEAD_NOT_FOUND", "Lead not found")
			return
		}
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load lead")
		return
	}

	response.Success(c, http.StatusOK, lead)
}

// ListLeads handles GET /api/v1/admin/leads
// @Summary List leads
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Param tier query string false "Filter by risk tier" Enums(low, moderate, severe, critical)
// @Param limit query int false "Limit" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} response.Response{data=LeadListResponse}
// @Router /admin/leads [get]
func (h *Handler) ListLeads(c *gin.Context) {
	var tier *friction.Tier
	if s := c.Query("tier"); s != "" {
		t := friction.Tier(s)
		if !t.Valid() {
			response.Error(c, http.StatusBadRequest, "INVALID_TIER", "Unknown risk tier")
			return
		}
		tier = &t
	}

	limit := 50
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	offset := 0
	if o := c.Query("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	leads, total, err := h.service.ListLeads(c.Request.Context(), tier, limit, offset)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list leads")
		return
	}
	if leads == nil {
		leads = []Lead{}
	}

	response.Success(c, http.StatusOK, LeadListResponse{
		Leads:  leads,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// GetStats handles GET /api/v1/admin/leads/stats
// @Summary Lead counts by risk tier
// @Tags Admin Leads
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=StatsResponse}
// @Router /admin/leads/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
