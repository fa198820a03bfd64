package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/internal/service"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/response"
)

// SyllabusHandler handles syllabus endpoints.
type SyllabusHandler struct {
	service *service.SyllabusService
}

// NewSyllabusHandler constructs a syllabus handler.
func NewSyllabusHandler(svc *service.SyllabusService) *SyllabusHandler {
	return &SyllabusHandler{service: svc}
}

// List godoc
// @Summary List syllabi
// @Tags Syllabi
// @Produce json
// @Param program_id query string false "Filter by program"
// @Success 200 {object} response.Envelope
// @Router /syllabi [get]
func (h *SyllabusHandler) List(c *gin.Context) {
	filter := models.SyllabusFilter{ProgramID: c.Query("program_id")}
	syllabi, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, syllabi)
}

// Get godoc
// @Summary Get syllabus by id
// @Tags Syllabi
// @Produce json
// @Param id path string true "Syllabus ID"
// @Success 200 {object} response.Envelope
// @Router /syllabi/{id} [get]
func (h *SyllabusHandler) Get(c *gin.Context) {
	syllabus, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, syllabus)
}

// Create godoc
// @Summary Create syllabus
// @Tags Syllabi
// @Accept json
// @Produce json
// @Param payload body service.CreateSyllabusRequest true "Syllabus payload"
// @Success 201 {object} response.Envelope
// @Router /syllabi [post]
func (h *SyllabusHandler) Create(c *gin.Context) {
	var req service.CreateSyllabusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	syllabus, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, syllabus)
}

// Delete godoc
// @Summary Delete syllabus
// @Tags Syllabi
// @Produce json
// @Param id path string true "Syllabus ID"
// @Success 204
// @Router /syllabi/{id} [delete]
func (h *SyllabusHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
