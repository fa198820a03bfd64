package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/internal/service"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/response"
)

// RecruitmentHandler handles job posting endpoints.
type RecruitmentHandler struct {
	service *service.RecruitmentService
}

// NewRecruitmentHandler constructs a recruitment handler.
func NewRecruitmentHandler(svc *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{service: svc}
}

// List godoc
// @Summary List job postings
// @Tags Recruitments
// @Produce json
// @Param program query string false "Program short name (case-insensitive)"
// @Success 200 {object} response.Envelope
// @Router /recruitments [get]
func (h *RecruitmentHandler) List(c *gin.Context) {
	filter := models.RecruitmentFilter{Program: c.Query("program")}
	postings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, postings)
}

// Get godoc
// @Summary Get job posting by id
// @Tags Recruitments
// @Produce json
// @Param id path string true "Recruitment ID"
// @Success 200 {object} response.Envelope
// @Router /recruitments/{id} [get]
func (h *RecruitmentHandler) Get(c *gin.Context) {
	posting, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posting)
}

// Create godoc
// @Summary Publish a job posting
// @Tags Recruitments
// @Accept json
// @Produce json
// @Param payload body service.CreateRecruitmentRequest true "Recruitment payload"
// @Success 201 {object} response.Envelope
// @Router /recruitments [post]
func (h *RecruitmentHandler) Create(c *gin.Context) {
	var req service.CreateRecruitmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	posting, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, posting)
}

// Delete godoc
// @Summary Delete job posting
// @Tags Recruitments
// @Produce json
// @Param id path string true "Recruitment ID"
// @Success 204
// @Router /recruitments/{id} [delete]
func (h *RecruitmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
