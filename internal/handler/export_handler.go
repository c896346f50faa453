package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aansluitintake/internal/service"
)

// ExportHandler handles export download and delivery endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Download handles GET /api/v1/exports/:format (csv, xlsx, pdf).
func (h *ExportHandler) Download(c *gin.Context) {
	format := c.Param("format")
	switch format {
	case "csv", "xlsx", "pdf":
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv, xlsx or pdf")
		return
	}

	file, err := h.exportService.Render(c.Request.Context(), format)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Email handles POST /api/v1/exports/email
func (h *ExportHandler) Email(c *gin.Context) {
	var input service.EmailExportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	fileName, err := h.exportService.EmailExport(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"file_name": fileName, "sent_to": input.ToEmail})
}
