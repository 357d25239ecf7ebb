package postgresql

import (
	"context"
	"fmt"
	"time"

	"parkwise/internal/domain"
)

type pgPaymentRepository struct {
	q querier
}

func (r *pgPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	query := `INSERT INTO payment (driver_id, log_id, credit_card_no, ccv_cvc, cc_expiry, amount, payment_status, txn_ref)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING payment_id, created_at`
	err := r.q.QueryRowContext(ctx, query,
		p.DriverID, p.LogID, p.CreditCardNo, p.CcvCvc, p.CcExpiry, p.Amount, p.Status, p.TxnRef,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("PaymentRepository.Create: %w", err)
	}
	p.CreatedAt = p.CreatedAt.In(time.UTC)
	return p, nil
}

func (r *pgPaymentRepository) CountByLogID(ctx context.Context, logID int) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM payment WHERE log_id = $1`
	if err := r.q.QueryRowContext(ctx, query, logID).Scan(&n); err != nil {
		return 0, fmt.Errorf("PaymentRepository.CountByLogID: %w", err)
	}
	return n, nil
}
