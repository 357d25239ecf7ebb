package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkwise/internal/domain"
	"parkwise/internal/service"
)

type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(ss *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: ss}
}

// POST /session/start
func (h *SessionHandler) Start(c *gin.Context) {
	var dto domain.StartSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "Missing fields")
		return
	}

	if _, err := h.sessionService.Start(c.Request.Context(), dto); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session started"})
}

// POST /session/end
func (h *SessionHandler) End(c *gin.Context) {
	var dto domain.EndSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		failMsg(c, "plate_no required")
		return
	}

	sess, err := h.sessionService.End(c.Request.Context(), dto.PlateNo)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Exit processed",
		"log_id":  sess.ID,
		"fee":     sess.Fee.Float64,
	})
}

// GET /session/active_spots?lot_id=N
func (h *SessionHandler) ActiveSpots(c *gin.Context) {
	lotID, err := strconv.Atoi(c.Query("lot_id"))
	if err != nil || lotID == 0 {
		failMsg(c, "Missing lot_id")
		return
	}

	spots, err := h.sessionService.ActiveSpots(c.Request.Context(), lotID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, spots)
}

// GET /session/has_unpaid?driver_id=N
func (h *SessionHandler) HasUnpaid(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	if err != nil || driverID == 0 {
		failMsg(c, "driver_id required")
		return
	}

	has, n, err := h.sessionService.HasUnpaid(c.Request.Context(), driverID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"has_unpaid": has, "unpaid_count": n})
}

// GET /session/active?driver_id=N&plate_no=X
func (h *SessionHandler) Active(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Query("driver_id"))
	plateNo := c.Query("plate_no")
	if err != nil || driverID == 0 || plateNo == "" {
		failMsg(c, "driver_id and plate_no required")
		return
	}

	sess, err := h.sessionService.ActiveSession(c.Request.Context(), driverID, plateNo)
	if err != nil {
		// Route này có thông điệp riêng, khác với /session/end.
		if errors.Is(err, service.ErrNoActiveSession) {
			failMsg(c, "No ACTIVE session found")
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"log_id":     sess.ID,
		"lot_id":     sess.LotID,
		"camera_id":  sess.CameraID,
		"spot_id":    sess.SpotID,
		"spot_label": sess.SpotLabel,
		"entry_time": sess.EntryTime,
	})
}

// GET /logs/driver/:driverId
func (h *SessionHandler) HistoryByDriver(c *gin.Context) {
	driverID, err := strconv.Atoi(c.Param("driverId"))
	if err != nil {
		failMsg(c, "driver_id required")
		return
	}

	history, err := h.sessionService.HistoryByDriver(c.Request.Context(), driverID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
