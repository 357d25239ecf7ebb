package postgresql

import (
	"context"
	"database/sql"
	"fmt"

	"parkwise/internal/repository"
)

// querier là phần giao của *sql.DB và *sql.Tx mà các repo cần:
// cùng một repo chạy được cả ngoài lẫn trong transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB // nil khi Store này đại diện cho một transaction
	q  querier
}

var _ repository.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Drivers() repository.DriverRepository   { return &pgDriverRepository{q: s.q} }
func (s *Store) Vehicles() repository.VehicleRepository { return &pgVehicleRepository{q: s.q} }
func (s *Store) Cards() repository.CardRepository       { return &pgCardRepository{q: s.q} }
func (s *Store) Lots() repository.ParkingLotRepository  { return &pgParkingLotRepository{q: s.q} }
func (s *Store) Sessions() repository.SessionRepository { return &pgSessionRepository{q: s.q} }
func (s *Store) Payments() repository.PaymentRepository { return &pgPaymentRepository{q: s.q} }
func (s *Store) Reports() repository.ReportRepository   { return &pgReportRepository{q: s.q} }

// WithinTx bọc fn trong một transaction. Rollback được defer ngay sau khi
// begin nên mọi đường thoát (kể cả panic) đều không để lại ghi dở;
// sau commit thành công thì rollback là no-op.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Store.WithinTx (begin): %w", err)
	}
	defer tx.Rollback()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Store.WithinTx (commit): %w", err)
	}
	return nil
}
