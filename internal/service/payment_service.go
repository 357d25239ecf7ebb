package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

// PaymentService tất toán các phiên UNPAID. Thanh toán là mô phỏng:
// không gọi cổng thanh toán, chỉ ghi biên lai và chuyển trạng thái.
type PaymentService struct {
	store repository.Store
}

func NewPaymentService(store repository.Store) *PaymentService {
	return &PaymentService{store: store}
}

// Due liệt kê các khoản driver còn nợ.
func (s *PaymentService) Due(ctx context.Context, driverID int) ([]domain.DueSession, error) {
	sessions, err := s.store.Sessions().ListUnpaidByDriver(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("PaymentService.Due: %w", err)
	}
	due := make([]domain.DueSession, 0, len(sessions))
	for _, sess := range sessions {
		due = append(due, domain.DueSession{LogID: sess.ID, Fee: domain.Money2(sess.Fee.Float64)})
	}
	return due, nil
}

// PayOne tất toán một phiên UNPAID. Phí dùng đúng số đã chốt lúc xe ra,
// không tính lại. Phiên của driver khác được báo như không tồn tại.
func (s *PaymentService) PayOne(ctx context.Context, dto domain.PayDTO) (float64, error) {
	var amount float64
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		sess, err := tx.Sessions().FindByID(ctx, dto.LogID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrLogNotFound
			}
			return fmt.Errorf("PaymentService.PayOne: %w", err)
		}
		if sess.DriverID != dto.DriverID {
			return ErrLogNotFound
		}

		if err := sess.MarkPaid(); err != nil {
			return ErrNotPayable
		}
		amount = domain.Money2(sess.Fee.Float64)

		if _, err := tx.Sessions().Update(ctx, sess); err != nil {
			return fmt.Errorf("PaymentService.PayOne: %w", err)
		}
		if err := s.record(ctx, tx, dto.DriverID, sess.ID, amount, dto.CreditCardNo, dto.CcvCvc, dto.CcExpiry); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	log.Printf("Driver %d đã thanh toán phiên %d: %.2f", dto.DriverID, dto.LogID, amount)
	return amount, nil
}

// PayAll tất toán mọi phiên UNPAID của driver trong một transaction.
// Không còn nợ thì trả 0, không phải lỗi.
func (s *PaymentService) PayAll(ctx context.Context, dto domain.PayAllDTO) (int, error) {
	var paid int
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		sessions, err := tx.Sessions().ListUnpaidByDriver(ctx, dto.DriverID)
		if err != nil {
			return fmt.Errorf("PaymentService.PayAll: %w", err)
		}
		for i := range sessions {
			sess := sessions[i]
			if err := sess.MarkPaid(); err != nil {
				return ErrNotPayable
			}
			amount := domain.Money2(sess.Fee.Float64)
			if _, err := tx.Sessions().Update(ctx, &sess); err != nil {
				return fmt.Errorf("PaymentService.PayAll: %w", err)
			}
			if err := s.record(ctx, tx, dto.DriverID, sess.ID, amount, dto.CreditCardNo, dto.CcvCvc, dto.CcExpiry); err != nil {
				return err
			}
		}
		paid = len(sessions)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if paid > 0 {
		log.Printf("Driver %d đã tất toán %d phiên", dto.DriverID, paid)
	}
	return paid, nil
}

// record ghi biên lai append-only cho một phiên vừa thanh toán.
func (s *PaymentService) record(ctx context.Context, tx repository.Store, driverID, logID int, amount float64, cardNo, cvc, expiry string) error {
	p := &domain.Payment{
		DriverID: driverID,
		LogID:    logID,
		Amount:   amount,
		Status:   domain.PaymentPaid,
		TxnRef:   uuid.NewString(),
	}
	if cardNo != "" {
		p.CreditCardNo = null.StringFrom(cardNo)
	}
	if cvc != "" {
		p.CcvCvc = null.StringFrom(cvc)
	}
	if expiry != "" {
		p.CcExpiry = null.StringFrom(expiry)
	}
	if _, err := tx.Payments().Create(ctx, p); err != nil {
		return fmt.Errorf("PaymentService.record: %w", err)
	}
	return nil
}
