package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aansluitintake/internal/kvk"
)

// KvkSearcher is the registry surface the handler needs.
type KvkSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]kvk.SearchItem, error)
	Profile(ctx context.Context, kvkNumber, vestigingsNumber string) (*kvk.Profile, error)
}

// KvkHandler handles business-registry lookup endpoints.
type KvkHandler struct {
	client KvkSearcher
}

// NewKvkHandler creates a new KvkHandler.
func NewKvkHandler(client KvkSearcher) *KvkHandler {
	return &KvkHandler{client: client}
}

// Search handles GET /api/v1/kvk/search?q=...&limit=...
func (h *KvkHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "q query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	items, err := h.client.Search(c.Request.Context(), query, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"results": items, "count": len(items)})
}

// Profile handles GET /api/v1/kvk/profile/:kvkNumber
func (h *KvkHandler) Profile(c *gin.Context) {
	kvkNumber := c.Param("kvkNumber")
	vestigingsNumber := c.Query("vestigingsnummer")

	profile, err := h.client.Profile(c.Request.Context(), kvkNumber, vestigingsNumber)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, profile)
}
