package postgresql

import (
	"context"
	"fmt"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

type pgCardRepository struct {
	q querier
}

func (r *pgCardRepository) Create(ctx context.Context, c *domain.CreditCard) (*domain.CreditCard, error) {
	query := `INSERT INTO credit_card (driver_id, card_nickname, card_number, card_expiry, card_cvv, card_type, is_default)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING card_id`
	err := r.q.QueryRowContext(ctx, query,
		c.DriverID, c.Nickname, c.Number, c.Expiry, c.CVV, c.CardType, c.IsDefault,
	).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("CardRepository.Create: %w", err)
	}
	return c, nil
}

func (r *pgCardRepository) FindByDriverID(ctx context.Context, driverID int) ([]domain.CreditCard, error) {
	query := `SELECT card_id, card_nickname, card_number, card_expiry, card_cvv, card_type, is_default
	          FROM credit_card
	          WHERE driver_id = $1
	          ORDER BY is_default DESC, card_id DESC`
	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("CardRepository.FindByDriverID: %w", err)
	}
	defer rows.Close()

	cards := make([]domain.CreditCard, 0)
	for rows.Next() {
		var c domain.CreditCard
		if err := rows.Scan(&c.ID, &c.Nickname, &c.Number, &c.Expiry, &c.CVV, &c.CardType, &c.IsDefault); err != nil {
			return nil, fmt.Errorf("CardRepository.FindByDriverID (scanning row): %w", err)
		}
		c.DriverID = driverID
		cards = append(cards, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("CardRepository.FindByDriverID (rows error): %w", err)
	}
	return cards, nil
}

func (r *pgCardRepository) ClearDefault(ctx context.Context, driverID int) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE credit_card SET is_default = FALSE WHERE driver_id = $1`, driverID)
	if err != nil {
		return fmt.Errorf("CardRepository.ClearDefault: %w", err)
	}
	return nil
}

func (r *pgCardRepository) SetDefault(ctx context.Context, driverID, cardID int) error {
	result, err := r.q.ExecContext(ctx,
		`UPDATE credit_card SET is_default = TRUE WHERE card_id = $1 AND driver_id = $2`, cardID, driverID)
	if err != nil {
		return fmt.Errorf("CardRepository.SetDefault: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("CardRepository.SetDefault (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgCardRepository) Delete(ctx context.Context, driverID, cardID int) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM credit_card WHERE card_id = $1 AND driver_id = $2`, cardID, driverID)
	if err != nil {
		return fmt.Errorf("CardRepository.Delete: %w", err)
	}
	return nil
}
