package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aansluitintake/internal/service"
)

// AddressHandler handles address lookup endpoints.
type AddressHandler struct {
	lookup service.AddressLookup
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(lookup service.AddressLookup) *AddressHandler {
	return &AddressHandler{lookup: lookup}
}

// Lookup handles GET /api/v1/address?postcode=...&huisnummer=...
func (h *AddressHandler) Lookup(c *gin.Context) {
	postcode := c.Query("postcode")
	houseNumber := c.Query("huisnummer")
	if postcode == "" || houseNumber == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "postcode and huisnummer query parameters are required")
		return
	}

	result, err := h.lookup.Lookup(c.Request.Context(), postcode, houseNumber)
	if err != nil {
		HandleError(c, err)
		return
	}
	if result == nil {
		RespondOK(c, gin.H{"found": false})
		return
	}
	RespondOK(c, gin.H{"found": true, "street": result.Street, "city": result.City})
}
