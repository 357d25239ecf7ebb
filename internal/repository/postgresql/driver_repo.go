package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"parkwise/internal/domain"
	"parkwise/internal/repository"

	"github.com/lib/pq"
)

type pgDriverRepository struct {
	q querier
}

func (r *pgDriverRepository) Create(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	query := `INSERT INTO driver (full_name, email, phone_number, password_hash)
	          VALUES ($1, $2, $3, $4)
	          RETURNING driver_id, created_at`
	err := r.q.QueryRowContext(ctx, query, d.FullName, d.Email, d.PhoneNumber, d.PasswordHash).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return nil, fmt.Errorf("%w: email '%s' đã được đăng ký", repository.ErrDuplicateEntry, d.Email)
		}
		return nil, fmt.Errorf("DriverRepository.Create: %w", err)
	}
	d.CreatedAt = d.CreatedAt.In(time.UTC)
	return d, nil
}

func (r *pgDriverRepository) FindByEmail(ctx context.Context, email string) (*domain.Driver, error) {
	d := &domain.Driver{}
	query := `SELECT driver_id, full_name, email, phone_number, password_hash, created_at
	          FROM driver WHERE email = $1`
	err := r.q.QueryRowContext(ctx, query, email).
		Scan(&d.ID, &d.FullName, &d.Email, &d.PhoneNumber, &d.PasswordHash, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("DriverRepository.FindByEmail: %w", err)
	}
	d.CreatedAt = d.CreatedAt.In(time.UTC)
	return d, nil
}

func (r *pgDriverRepository) FindByID(ctx context.Context, id int) (*domain.Driver, error) {
	d := &domain.Driver{}
	query := `SELECT driver_id, full_name, email, phone_number, password_hash, created_at
	          FROM driver WHERE driver_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).
		Scan(&d.ID, &d.FullName, &d.Email, &d.PhoneNumber, &d.PasswordHash, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("DriverRepository.FindByID: %w", err)
	}
	d.CreatedAt = d.CreatedAt.In(time.UTC)
	return d, nil
}

func (r *pgDriverRepository) FindAll(ctx context.Context) ([]domain.Driver, error) {
	query := `SELECT driver_id, full_name, email, phone_number, created_at
	          FROM driver ORDER BY created_at DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("DriverRepository.FindAll: %w", err)
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(&d.ID, &d.FullName, &d.Email, &d.PhoneNumber, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("DriverRepository.FindAll (scanning row): %w", err)
		}
		d.CreatedAt = d.CreatedAt.In(time.UTC)
		drivers = append(drivers, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("DriverRepository.FindAll (rows error): %w", err)
	}
	return drivers, nil
}

func (r *pgDriverRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM driver`).Scan(&n); err != nil {
		return 0, fmt.Errorf("DriverRepository.Count: %w", err)
	}
	return n, nil
}
