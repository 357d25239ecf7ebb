package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
	"parkwise/internal/service"
)

type VehicleHandler struct {
	catalogService *service.CatalogService
}

func NewVehicleHandler(cs *service.CatalogService) *VehicleHandler {
	return &VehicleHandler{catalogService: cs}
}

// GET /vehicle/:driverId
func (h *VehicleHandler) List(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		failMsg(c, "driver_id required")
		return
	}

	vehicles, err := h.catalogService.VehiclesByDriver(c.Request.Context(), driverID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// POST /vehicle/add
func (h *VehicleHandler) Add(c *gin.Context) {
	var dto domain.AddVehicleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "driver_id and plate_no required")
		return
	}

	if _, err := h.catalogService.AddVehicle(c.Request.Context(), dto); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			failMsg(c, "Vehicle already exists")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle added"})
}

// DELETE /vehicle/:plate và /vehicles/:plate (driver_id trong query).
// Frontend cũ gọi cả hai đường dẫn nên cả hai cùng trỏ về handler này.
func (h *VehicleHandler) Delete(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	plateNo := c.Param("plate")
	if err != nil || driverID == 0 || plateNo == "" {
		failMsg(c, "Missing driver_id or plate")
		return
	}

	if err := h.catalogService.DeleteVehicle(c.Request.Context(), driverID, plateNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			failMsg(c, "Vehicle not found")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle removed"})
}
