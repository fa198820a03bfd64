package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rguhub/catalog-api/internal/service"
	"github.com/rguhub/catalog-api/pkg/response"
)

// UpdatesHandler serves the merged latest-updates feed.
type UpdatesHandler struct {
	service *service.UpdatesService
}

// NewUpdatesHandler constructs an updates handler.
func NewUpdatesHandler(svc *service.UpdatesService) *UpdatesHandler {
	return &UpdatesHandler{service: svc}
}

// Latest godoc
// @Summary Latest catalog updates
// @Description At most six entries merged from the newest materials and job postings.
// @Tags Updates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /latest-updates [get]
func (h *UpdatesHandler) Latest(c *gin.Context) {
	items, err := h.service.Latest(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
