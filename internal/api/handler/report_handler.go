package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkwise/internal/service"
)

// ReportHandler phục vụ các màn hình admin và báo cáo tổng hợp.
type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(rs *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// GET /admin/drivers
func (h *ReportHandler) Drivers(c *gin.Context) {
	drivers, err := h.reportService.AllDrivers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GET /admin/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.reportService.Stats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /reports/lot_summary
func (h *ReportHandler) LotSummary(c *gin.Context) {
	rows, err := h.reportService.LotSummary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /reports/unpaid_above_average
func (h *ReportHandler) UnpaidAboveAverage(c *gin.Context) {
	rows, err := h.reportService.UnpaidAboveAverage(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /reports/plates_union
func (h *ReportHandler) PlatesUnion(c *gin.Context) {
	rows, err := h.reportService.PlatesUnion(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
