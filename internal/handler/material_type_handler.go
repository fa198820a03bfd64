package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rguhub/catalog-api/internal/service"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/response"
)

// MaterialTypeHandler handles material category endpoints.
type MaterialTypeHandler struct {
	service *service.MaterialTypeService
}

// NewMaterialTypeHandler constructs a material type handler.
func NewMaterialTypeHandler(svc *service.MaterialTypeService) *MaterialTypeHandler {
	return &MaterialTypeHandler{service: svc}
}

// List godoc
// @Summary List material types
// @Tags MaterialTypes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /material-types [get]
func (h *MaterialTypeHandler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types)
}

// Get godoc
// @Summary Get material type by id
// @Tags MaterialTypes
// @Produce json
// @Param id path string true "Material type ID"
// @Success 200 {object} response.Envelope
// @Router /material-types/{id} [get]
func (h *MaterialTypeHandler) Get(c *gin.Context) {
	mt, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, mt)
}

// Create godoc
// @Summary Create material type
// @Tags MaterialTypes
// @Accept json
// @Produce json
// @Param payload body service.CreateMaterialTypeRequest true "Material type payload"
// @Success 201 {object} response.Envelope
// @Router /material-types [post]
func (h *MaterialTypeHandler) Create(c *gin.Context) {
	var req service.CreateMaterialTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	mt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mt)
}
