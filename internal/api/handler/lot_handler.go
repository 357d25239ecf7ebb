package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkwise/internal/service"
)

type LotHandler struct {
	catalogService *service.CatalogService
}

func NewLotHandler(cs *service.CatalogService) *LotHandler {
	return &LotHandler{catalogService: cs}
}

// GET /lots/nearby
func (h *LotHandler) Nearby(c *gin.Context) {
	lots, err := h.catalogService.NearbyLots(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}
