package domain

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

type SessionStatus string

const (
	SessionActive SessionStatus = "ACTIVE"
	SessionUnpaid SessionStatus = "UNPAID"
	SessionPaid   SessionStatus = "PAID"
)

// Vòng đời hợp lệ duy nhất: ACTIVE -> UNPAID -> PAID.
// Không có đường hủy hay quay lui; PAID là trạng thái cuối.
var ErrInvalidTransition = errors.New("chuyển trạng thái phiên đỗ xe không hợp lệ")

// Session là một bản ghi "log" đỗ xe: từ lúc giữ chỗ đến lúc tất toán.
// exit_time và fee luôn NULL khi còn ACTIVE, được điền đúng một lần khi
// chuyển sang UNPAID.
type Session struct {
	ID        int           `json:"log_id"`
	DriverID  int           `json:"driver_id"`
	PlateNo   string        `json:"plate_no"`
	LotID     int           `json:"lot_id"`
	CameraID  int           `json:"camera_id"`
	SpotID    null.Int      `json:"spot_id"`
	SpotLabel null.String   `json:"spot_label"`
	EntryTime time.Time     `json:"entry_time"`
	ExitTime  null.Time     `json:"exit_time"`
	Fee       null.Float    `json:"fee"`
	Status    SessionStatus `json:"status"`
}

func NewSession(driverID int, plateNo string, lotID, cameraID int, spotID null.Int, spotLabel null.String, entryTime time.Time) *Session {
	return &Session{
		DriverID:  driverID,
		PlateNo:   plateNo,
		LotID:     lotID,
		CameraID:  cameraID,
		SpotID:    spotID,
		SpotLabel: spotLabel,
		EntryTime: entryTime,
		Status:    SessionActive,
	}
}

// Close chuyển ACTIVE -> UNPAID, chốt thời gian ra và phí.
func (s *Session) Close(exitTime time.Time, fee float64) error {
	if s.Status != SessionActive {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, SessionUnpaid)
	}
	s.ExitTime = null.TimeFrom(exitTime)
	s.Fee = null.FloatFrom(fee)
	s.Status = SessionUnpaid
	return nil
}

// MarkPaid chuyển UNPAID -> PAID. Phí đã chốt ở Close, không tính lại.
func (s *Session) MarkPaid() error {
	if s.Status != SessionUnpaid {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, SessionPaid)
	}
	s.Status = SessionPaid
	return nil
}

// SessionHistory là một dòng trong lịch sử đỗ xe của driver (join tên bãi).
type SessionHistory struct {
	LogID     int           `json:"log_id"`
	PlateNo   string        `json:"plate_no"`
	LotID     int           `json:"lot_id"`
	LotName   string        `json:"lot_name"`
	SpotLabel null.String   `json:"spot_label"`
	EntryTime time.Time     `json:"entry_time"`
	ExitTime  null.Time     `json:"exit_time"`
	Fee       null.Float    `json:"fee"`
	Status    SessionStatus `json:"status"`
}

// DueSession là một khoản còn nợ của driver.
type DueSession struct {
	LogID int     `json:"log_id"`
	Fee   float64 `json:"fee"`
}

type StartSessionDTO struct {
	DriverID  int    `json:"driver_id" binding:"required"`
	PlateNo   string `json:"plate_no" binding:"required"`
	LotID     int    `json:"lot_id" binding:"required"`
	SpotID    *int   `json:"spot_id"`
	SpotLabel string `json:"spot_label"`
}

type EndSessionDTO struct {
	PlateNo string `json:"plate_no" binding:"required"`
}
