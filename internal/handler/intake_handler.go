package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/middleware"
	"aansluitintake/internal/service"
)

// IntakeHandler handles intake endpoints: synchronous text/excel intake and
// the queued file pipeline.
type IntakeHandler struct {
	intakeService service.IntakeService
}

// NewIntakeHandler creates a new IntakeHandler.
func NewIntakeHandler(intakeService service.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

// UploadFile handles POST /api/v1/intake/files
func (h *IntakeHandler) UploadFile(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	input := service.FileIntakeInput{
		File:          file,
		Header:        header,
		AllowMultiple: c.PostForm("allow_multiple") == "true",
		SplitMode:     domain.SplitMode(c.PostForm("split_mode")),
		Provider:      c.PostForm("provider"),
		CreatedBy:     userID,
	}

	job, err := h.intakeService.UploadFile(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, job)
}

// Text handles POST /api/v1/intake/text
func (h *IntakeHandler) Text(c *gin.Context) {
	var input service.TextIntakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	conns, err := h.intakeService.IntakeText(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"connections": conns, "count": len(conns)})
}

// Excel handles POST /api/v1/intake/excel
func (h *IntakeHandler) Excel(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.intakeService.IntakeExcel(c.Request.Context(), file)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// ListJobs handles GET /api/v1/intake/jobs
func (h *IntakeHandler) ListJobs(c *gin.Context) {
	offset, limit := parsePagination(c)

	jobs, total, err := h.intakeService.ListJobs(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, jobs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetJob handles GET /api/v1/intake/jobs/:id
func (h *IntakeHandler) GetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid job id")
		return
	}

	job, err := h.intakeService.GetJob(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, job)
}

// Stop handles POST /api/v1/intake/stop
func (h *IntakeHandler) Stop(c *gin.Context) {
	skipped, err := h.intakeService.StopQueued(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"skipped": skipped})
}
