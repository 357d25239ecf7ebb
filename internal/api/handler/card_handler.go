package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkwise/internal/domain"
	"parkwise/internal/service"
)

type CardHandler struct {
	catalogService *service.CatalogService
}

func NewCardHandler(cs *service.CatalogService) *CardHandler {
	return &CardHandler{catalogService: cs}
}

// GET /cards/:driverId
func (h *CardHandler) List(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		failMsg(c, "driver_id required")
		return
	}

	cards, err := h.catalogService.CardsByDriver(c.Request.Context(), driverID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

// POST /cards/add
func (h *CardHandler) Add(c *gin.Context) {
	var dto domain.AddCardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "driver_id, card_number, card_expiry, and card_cvv are required")
		return
	}

	card, err := h.catalogService.AddCard(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card added", "card_id": card.ID})
}

// POST /cards/set-default
func (h *CardHandler) SetDefault(c *gin.Context) {
	var dto domain.SetDefaultCardDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "driver_id and card_id required")
		return
	}

	if err := h.catalogService.SetDefaultCard(c.Request.Context(), dto); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Default card updated"})
}

// DELETE /cards/:cardId?driver_id=N
func (h *CardHandler) Delete(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	if err != nil || driverID == 0 {
		failMsg(c, "driver_id query param required")
		return
	}
	cardID, err := strconv.Atoi(c.Param("cardId"))
	if err != nil {
		failMsg(c, "card_id required")
		return
	}

	if err := h.catalogService.DeleteCard(c.Request.Context(), driverID, cardID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
