package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkwise/internal/domain"
	"parkwise/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(ps *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: ps}
}

// GET /payments/due/:driverId
func (h *PaymentHandler) Due(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		failMsg(c, "driver_id required")
		return
	}

	due, err := h.paymentService.Due(c.Request.Context(), driverID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, due)
}

// POST /payment/pay
func (h *PaymentHandler) Pay(c *gin.Context) {
	var dto domain.PayDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "driver_id and log_id required")
		return
	}

	amount, err := h.paymentService.PayOne(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Payment processed. You paid $%.2f", amount),
		"amount":  amount,
	})
}

// POST /payment/pay_all
func (h *PaymentHandler) PayAll(c *gin.Context) {
	var dto domain.PayAllDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "driver_id required")
		return
	}

	count, err := h.paymentService.PayAll(c.Request.Context(), dto)
	if err != nil {
		fail(c, err)
		return
	}
	if count == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No unpaid logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("All due paid (%d logs).", count)})
}
