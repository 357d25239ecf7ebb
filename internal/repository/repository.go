package repository

import (
	"context"
	"errors"

	"parkwise/internal/domain"
)

var ErrNotFound = errors.New("không tìm thấy bản ghi")
var ErrDuplicateEntry = errors.New("bản ghi đã tồn tại")
var ErrNoActiveSession = errors.New("không có phiên đỗ xe ACTIVE cho thông tin cung cấp")

// Hai lỗi này ánh xạ từ partial unique index trên bảng log (lớp phòng thủ
// thứ hai cho bất biến "một ACTIVE mỗi driver" / "một ACTIVE mỗi chỗ đỗ"):
// hai request Start cùng lách qua bước kiểm tra thì INSERT thua cuộc vẫn
// nhận đúng lỗi nghiệp vụ.
var ErrActiveDriverConflict = errors.New("driver đã có phiên ACTIVE")
var ErrActiveSpotConflict = errors.New("chỗ đỗ đã có phiên ACTIVE")

type DriverRepository interface {
	Create(ctx context.Context, d *domain.Driver) (*domain.Driver, error)
	FindByEmail(ctx context.Context, email string) (*domain.Driver, error)
	FindByID(ctx context.Context, id int) (*domain.Driver, error)
	FindAll(ctx context.Context) ([]domain.Driver, error)
	Count(ctx context.Context) (int, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	FindByDriverID(ctx context.Context, driverID int) ([]domain.Vehicle, error)
	Delete(ctx context.Context, driverID int, plateNo string) error
	Count(ctx context.Context) (int, error)
}

type CardRepository interface {
	Create(ctx context.Context, c *domain.CreditCard) (*domain.CreditCard, error)
	FindByDriverID(ctx context.Context, driverID int) ([]domain.CreditCard, error)
	ClearDefault(ctx context.Context, driverID int) error
	SetDefault(ctx context.Context, driverID, cardID int) error
	Delete(ctx context.Context, driverID, cardID int) error
}

type ParkingLotRepository interface {
	FindByID(ctx context.Context, id int) (*domain.ParkingLot, error)
	// FindAllWithCamera chỉ trả các bãi có camera (bãi không camera
	// không nhận phiên nên cũng không hiển thị cho driver).
	FindAllWithCamera(ctx context.Context) ([]domain.ParkingLot, error)
	CameraIDForLot(ctx context.Context, lotID int) (int, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	FindByID(ctx context.Context, id int) (*domain.Session, error)
	// FindLatestActiveByPlate: nếu có nhiều phiên ACTIVE cho một biển số
	// (không thể xảy ra khi bất biến được giữ) thì chọn phiên mới nhất
	// theo log_id để lookup luôn xác định.
	FindLatestActiveByPlate(ctx context.Context, plateNo string) (*domain.Session, error)
	FindLatestActiveByDriverAndPlate(ctx context.Context, driverID int, plateNo string) (*domain.Session, error)
	CountByDriverAndStatus(ctx context.Context, driverID int, status domain.SessionStatus) (int, error)
	SpotHasActive(ctx context.Context, lotID int, spotLabel string) (bool, error)
	ActiveSpotLabels(ctx context.Context, lotID int) ([]string, error)
	ListUnpaidByDriver(ctx context.Context, driverID int) ([]domain.Session, error)
	HistoryByDriver(ctx context.Context, driverID int) ([]domain.SessionHistory, error)
	Update(ctx context.Context, s *domain.Session) (*domain.Session, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status domain.SessionStatus) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	CountByLogID(ctx context.Context, logID int) (int, error)
}

type ReportRepository interface {
	LotSummary(ctx context.Context) ([]domain.LotSummary, error)
	UnpaidAboveAverage(ctx context.Context) ([]domain.UnpaidAboveAverageRow, error)
	PlatesUnion(ctx context.Context) ([]domain.PlateSource, error)
}

// Store gom các repository và cung cấp unit of work duy nhất của hệ thống.
type Store interface {
	Drivers() DriverRepository
	Vehicles() VehicleRepository
	Cards() CardRepository
	Lots() ParkingLotRepository
	Sessions() SessionRepository
	Payments() PaymentRepository
	Reports() ReportRepository

	// WithinTx chạy fn trong một transaction: commit khi fn trả nil,
	// rollback trên mọi đường lỗi. Store truyền vào fn đã gắn với
	// transaction đó; gọi lồng nhau dùng lại transaction hiện có.
	WithinTx(ctx context.Context, fn func(Store) error) error
}
