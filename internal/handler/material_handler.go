package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rguhub/catalog-api/internal/models"
	"github.com/rguhub/catalog-api/internal/service"
	appErrors "github.com/rguhub/catalog-api/pkg/errors"
	"github.com/rguhub/catalog-api/pkg/response"
)

// MaterialHandler handles study material endpoints.
type MaterialHandler struct {
	service    *service.MaterialService
	classifier *service.ClassifierService
}

// NewMaterialHandler constructs a material handler.
func NewMaterialHandler(svc *service.MaterialService, classifier *service.ClassifierService) *MaterialHandler {
	return &MaterialHandler{service: svc, classifier: classifier}
}

// List godoc
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param subject query string false "Filter by subject slug"
// @Param type query string false "Filter by material type slug"
// @Success 200 {object} response.Envelope
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	filter := models.MaterialFilter{
		SubjectSlug: c.Query("subject"),
		TypeSlug:    c.Query("type"),
	}
	materials, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, materials)
}

// Get godoc
// @Summary Get material by id
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, material)
}

// Create godoc
// @Summary Create a link-only material
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body service.CreateMaterialRequest true "Material payload"
// @Success 201 {object} response.Envelope
// @Router /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	material, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}

// Upload godoc
// @Summary Upload a material file
// @Tags Materials
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Material file"
// @Param subject_id formData string true "Subject ID"
// @Param material_type_id formData string false "Material type ID"
// @Param title formData string false "Title (defaults to the file name)"
// @Param description formData string false "Description"
// @Success 201 {object} response.Envelope
// @Router /materials/upload [post]
func (h *MaterialHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	req := service.UploadMaterialRequest{
		SubjectID:   c.PostForm("subject_id"),
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if typeID := c.PostForm("material_type_id"); typeID != "" {
		req.MaterialTypeID = &typeID
	}

	material, err := h.service.Upload(c.Request.Context(), req, header)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}

// Update godoc
// @Summary Update material
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param payload body service.UpdateMaterialRequest true "Material payload"
// @Success 200 {object} response.Envelope
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	material, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, material)
}

// DownloadURL godoc
// @Summary Issue a signed download URL for a material file
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Router /materials/{id}/download-url [get]
func (h *MaterialHandler) DownloadURL(c *gin.Context) {
	token, expiresAt, err := h.service.SignedDownloadURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
	})
}

// Download godoc
// @Summary Download a material file with a signed token
// @Tags Materials
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /materials/download/{token} [get]
func (h *MaterialHandler) Download(c *gin.Context) {
	download, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	c.FileAttachment(download.File.Name(), download.Filename)
}

// Delete godoc
// @Summary Delete material
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 204
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Classify godoc
// @Summary Schedule a material type backfill
// @Description Queues a run that assigns a type to every unclassified material.
// @Tags Materials
// @Produce json
// @Success 202 {object} response.Envelope
// @Router /materials/classify [post]
func (h *MaterialHandler) Classify(c *gin.Context) {
	if err := h.classifier.Schedule(); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"status": "scheduled"})
}
