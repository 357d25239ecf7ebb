package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gopkg.in/guregu/null.v4"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

// SessionService quản lý vòng đời phiên đỗ xe: giữ chỗ (ACTIVE),
// xử lý xe ra (UNPAID) và các truy vấn trạng thái kèm theo.
type SessionService struct {
	store repository.Store
	now   func() time.Time
}

func NewSessionService(store repository.Store) *SessionService {
	return &SessionService{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Start giữ chỗ cho driver. Bốn điều kiện được kiểm tra trong cùng một
// transaction, theo đúng thứ tự: nợ phí, đã có phiên ACTIVE, spot bận,
// bãi có camera. Unique index của DB là lưới chắn cuối khi hai request
// đua nhau lọt qua bước kiểm tra.
func (s *SessionService) Start(ctx context.Context, dto domain.StartSessionDTO) (*domain.Session, error) {
	var created *domain.Session
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		unpaid, err := tx.Sessions().CountByDriverAndStatus(ctx, dto.DriverID, domain.SessionUnpaid)
		if err != nil {
			return fmt.Errorf("SessionService.Start: %w", err)
		}
		if unpaid > 0 {
			return ErrUnpaidBalance
		}

		active, err := tx.Sessions().CountByDriverAndStatus(ctx, dto.DriverID, domain.SessionActive)
		if err != nil {
			return fmt.Errorf("SessionService.Start: %w", err)
		}
		if active > 0 {
			return ErrAlreadyActive
		}

		if dto.SpotLabel != "" {
			taken, err := tx.Sessions().SpotHasActive(ctx, dto.LotID, dto.SpotLabel)
			if err != nil {
				return fmt.Errorf("SessionService.Start: %w", err)
			}
			if taken {
				return ErrSpotTaken
			}
		}

		cameraID, err := tx.Lots().CameraIDForLot(ctx, dto.LotID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrLotMisconfigured
			}
			return fmt.Errorf("SessionService.Start: %w", err)
		}

		spotID := null.IntFromPtr(nil)
		if dto.SpotID != nil {
			spotID = null.IntFrom(int64(*dto.SpotID))
		}
		spotLabel := null.String{}
		if dto.SpotLabel != "" {
			spotLabel = null.StringFrom(dto.SpotLabel)
		}

		sess := domain.NewSession(dto.DriverID, dto.PlateNo, dto.LotID, cameraID, spotID, spotLabel, s.now())
		created, err = tx.Sessions().Create(ctx, sess)
		if err != nil {
			// Hai request đua nhau: thua ở index thì báo đúng lỗi nghiệp vụ.
			if errors.Is(err, repository.ErrActiveDriverConflict) {
				return ErrAlreadyActive
			}
			if errors.Is(err, repository.ErrActiveSpotConflict) {
				return ErrSpotTaken
			}
			return fmt.Errorf("SessionService.Start: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Phiên đỗ xe %d bắt đầu: driver %d, biển số %s, bãi %d", created.ID, created.DriverID, created.PlateNo, created.LotID)
	return created, nil
}

// End xử lý xe ra theo biển số: tìm phiên ACTIVE mới nhất, tính phí theo
// biểu giá của bãi rồi chuyển sang UNPAID.
func (s *SessionService) End(ctx context.Context, plateNo string) (*domain.Session, error) {
	var closed *domain.Session
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		sess, err := tx.Sessions().FindLatestActiveByPlate(ctx, plateNo)
		if err != nil {
			if errors.Is(err, repository.ErrNoActiveSession) {
				return ErrNoActiveSession
			}
			return fmt.Errorf("SessionService.End: %w", err)
		}

		lot, err := tx.Lots().FindByID(ctx, sess.LotID)
		if err != nil {
			return fmt.Errorf("SessionService.End: %w", err)
		}

		exitTime := s.now()
		fee := domain.CalcFee(sess.EntryTime, exitTime, lot.EntryFee, lot.HourlyRate)
		if err := sess.Close(exitTime, fee); err != nil {
			return err
		}

		closed, err = tx.Sessions().Update(ctx, sess)
		if err != nil {
			return fmt.Errorf("SessionService.End: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("Phiên đỗ xe %d kết thúc: phí %.2f", closed.ID, closed.Fee.Float64)
	return closed, nil
}

// ActiveSpots trả về danh sách nhãn spot đang có xe trong một bãi.
func (s *SessionService) ActiveSpots(ctx context.Context, lotID int) ([]string, error) {
	return s.store.Sessions().ActiveSpotLabels(ctx, lotID)
}

// HasUnpaid cho biết driver còn nợ phí hay không, kèm số phiên UNPAID.
func (s *SessionService) HasUnpaid(ctx context.Context, driverID int) (bool, int, error) {
	n, err := s.store.Sessions().CountByDriverAndStatus(ctx, driverID, domain.SessionUnpaid)
	if err != nil {
		return false, 0, fmt.Errorf("SessionService.HasUnpaid: %w", err)
	}
	return n > 0, n, nil
}

// ActiveSession tìm phiên ACTIVE mới nhất của driver với biển số đã cho.
func (s *SessionService) ActiveSession(ctx context.Context, driverID int, plateNo string) (*domain.Session, error) {
	sess, err := s.store.Sessions().FindLatestActiveByDriverAndPlate(ctx, driverID, plateNo)
	if err != nil {
		if errors.Is(err, repository.ErrNoActiveSession) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("SessionService.ActiveSession: %w", err)
	}
	return sess, nil
}

// HistoryByDriver trả về toàn bộ lịch sử đỗ xe của driver, mới nhất trước.
func (s *SessionService) HistoryByDriver(ctx context.Context, driverID int) ([]domain.SessionHistory, error) {
	return s.store.Sessions().HistoryByDriver(ctx, driverID)
}
