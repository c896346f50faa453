package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"aansluitintake/internal/domain"
	"aansluitintake/internal/service"
)

// ConnectionHandler handles connection CRUD and enrichment endpoints.
type ConnectionHandler struct {
	connService service.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(connService service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connService: connService}
}

// List handles GET /api/v1/connections
func (h *ConnectionHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	conns, total, err := h.connService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, conns, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/connections/:id
func (h *ConnectionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid connection id")
		return
	}

	conn, err := h.connService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conn)
}

// Create handles POST /api/v1/connections
func (h *ConnectionHandler) Create(c *gin.Context) {
	var conn domain.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if conn.Source == "" {
		conn.Source = domain.SourceManual
	}

	saved, err := h.connService.Save(c.Request.Context(), &conn)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, saved)
}

// Update handles PUT /api/v1/connections/:id
func (h *ConnectionHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid connection id")
		return
	}

	var conn domain.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	conn.ID = id

	saved, err := h.connService.Save(c.Request.Context(), &conn)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, saved)
}

// Delete handles DELETE /api/v1/connections/:id
func (h *ConnectionHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid connection id")
		return
	}

	if err := h.connService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "connection deleted"})
}

// DeleteAll handles DELETE /api/v1/connections
func (h *ConnectionHandler) DeleteAll(c *gin.Context) {
	if err := h.connService.DeleteAll(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "all connections deleted"})
}

// Validation handles GET /api/v1/connections/:id/validation
func (h *ConnectionHandler) Validation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid connection id")
		return
	}

	report, err := h.connService.Validate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ApplyKVK handles POST /api/v1/connections/:id/kvk
func (h *ConnectionHandler) ApplyKVK(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid connection id")
		return
	}

	var input service.ApplyKVKInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	conn, err := h.connService.ApplyKVKProfile(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, conn)
}
