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

type pgSessionRepository struct {
	q querier
}

const sessionColumns = `log_id, driver_id, plate_no, lot_id, camera_id, spot_id, spot_label,
	entry_time, exit_time, fee, status`

func (r *pgSessionRepository) scanSession(row *sql.Row) (*domain.Session, error) {
	s := &domain.Session{}
	err := row.Scan(
		&s.ID, &s.DriverID, &s.PlateNo, &s.LotID, &s.CameraID, &s.SpotID, &s.SpotLabel,
		&s.EntryTime, &s.ExitTime, &s.Fee, &s.Status,
	)
	if err != nil {
		return nil, err
	}
	normalizeSessionTimes(s)
	return s, nil
}

func normalizeSessionTimes(s *domain.Session) {
	s.EntryTime = s.EntryTime.In(time.UTC)
	if s.ExitTime.Valid {
		s.ExitTime.Time = s.ExitTime.Time.In(time.UTC)
	}
}

func (r *pgSessionRepository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	query := `INSERT INTO log (driver_id, plate_no, lot_id, camera_id, spot_id, spot_label, entry_time, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING log_id`
	err := r.q.QueryRowContext(ctx, query,
		s.DriverID, s.PlateNo, s.LotID, s.CameraID, s.SpotID, s.SpotLabel, s.EntryTime, s.Status,
	).Scan(&s.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "uniq_log_active_driver":
				return nil, repository.ErrActiveDriverConflict
			case "uniq_log_active_spot":
				return nil, repository.ErrActiveSpotConflict
			}
			return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateEntry, pqErr.Constraint)
		}
		return nil, fmt.Errorf("SessionRepository.Create: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepository) FindByID(ctx context.Context, id int) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM log WHERE log_id = $1`
	s, err := r.scanSession(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("SessionRepository.FindByID: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepository) FindLatestActiveByPlate(ctx context.Context, plateNo string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + `
	          FROM log
	          WHERE plate_no = $1 AND status = $2
	          ORDER BY log_id DESC
	          LIMIT 1`
	s, err := r.scanSession(r.q.QueryRowContext(ctx, query, plateNo, domain.SessionActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("SessionRepository.FindLatestActiveByPlate: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepository) FindLatestActiveByDriverAndPlate(ctx context.Context, driverID int, plateNo string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + `
	          FROM log
	          WHERE driver_id = $1 AND plate_no = $2 AND status = $3
	          ORDER BY log_id DESC
	          LIMIT 1`
	s, err := r.scanSession(r.q.QueryRowContext(ctx, query, driverID, plateNo, domain.SessionActive))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNoActiveSession
		}
		return nil, fmt.Errorf("SessionRepository.FindLatestActiveByDriverAndPlate: %w", err)
	}
	return s, nil
}

func (r *pgSessionRepository) CountByDriverAndStatus(ctx context.Context, driverID int, status domain.SessionStatus) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM log WHERE driver_id = $1 AND status = $2`
	if err := r.q.QueryRowContext(ctx, query, driverID, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("SessionRepository.CountByDriverAndStatus: %w", err)
	}
	return n, nil
}

func (r *pgSessionRepository) SpotHasActive(ctx context.Context, lotID int, spotLabel string) (bool, error) {
	var one int
	query := `SELECT 1 FROM log WHERE lot_id = $1 AND spot_label = $2 AND status = $3 LIMIT 1`
	err := r.q.QueryRowContext(ctx, query, lotID, spotLabel, domain.SessionActive).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("SessionRepository.SpotHasActive: %w", err)
	}
	return true, nil
}

func (r *pgSessionRepository) ActiveSpotLabels(ctx context.Context, lotID int) ([]string, error) {
	query := `SELECT spot_label
	          FROM log
	          WHERE lot_id = $1 AND status = $2 AND spot_label IS NOT NULL`
	rows, err := r.q.QueryContext(ctx, query, lotID, domain.SessionActive)
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.ActiveSpotLabels: %w", err)
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("SessionRepository.ActiveSpotLabels (scanning row): %w", err)
		}
		labels = append(labels, label)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SessionRepository.ActiveSpotLabels (rows error): %w", err)
	}
	return labels, nil
}

func (r *pgSessionRepository) ListUnpaidByDriver(ctx context.Context, driverID int) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + `
	          FROM log
	          WHERE driver_id = $1 AND status = $2
	          ORDER BY log_id DESC`
	rows, err := r.q.QueryContext(ctx, query, driverID, domain.SessionUnpaid)
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.ListUnpaidByDriver: %w", err)
	}
	defer rows.Close()

	sessions := make([]domain.Session, 0)
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(
			&s.ID, &s.DriverID, &s.PlateNo, &s.LotID, &s.CameraID, &s.SpotID, &s.SpotLabel,
			&s.EntryTime, &s.ExitTime, &s.Fee, &s.Status,
		); err != nil {
			return nil, fmt.Errorf("SessionRepository.ListUnpaidByDriver (scanning row): %w", err)
		}
		normalizeSessionTimes(&s)
		sessions = append(sessions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SessionRepository.ListUnpaidByDriver (rows error): %w", err)
	}
	return sessions, nil
}

func (r *pgSessionRepository) HistoryByDriver(ctx context.Context, driverID int) ([]domain.SessionHistory, error) {
	query := `SELECT l.log_id, l.plate_no, l.lot_id, p.lot_name, l.spot_label,
	                 l.entry_time, l.exit_time, l.fee, l.status
	          FROM log l
	          JOIN parking_lot p ON p.lot_id = l.lot_id
	          WHERE l.driver_id = $1
	          ORDER BY l.log_id DESC`
	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.HistoryByDriver: %w", err)
	}
	defer rows.Close()

	history := make([]domain.SessionHistory, 0)
	for rows.Next() {
		var h domain.SessionHistory
		if err := rows.Scan(
			&h.LogID, &h.PlateNo, &h.LotID, &h.LotName, &h.SpotLabel,
			&h.EntryTime, &h.ExitTime, &h.Fee, &h.Status,
		); err != nil {
			return nil, fmt.Errorf("SessionRepository.HistoryByDriver (scanning row): %w", err)
		}
		h.EntryTime = h.EntryTime.In(time.UTC)
		if h.ExitTime.Valid {
			h.ExitTime.Time = h.ExitTime.Time.In(time.UTC)
		}
		history = append(history, h)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("SessionRepository.HistoryByDriver (rows error): %w", err)
	}
	return history, nil
}

func (r *pgSessionRepository) Update(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	query := `UPDATE log
	          SET exit_time = $1, fee = $2, status = $3
	          WHERE log_id = $4`
	result, err := r.q.ExecContext(ctx, query, s.ExitTime, s.Fee, s.Status, s.ID)
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.Update: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("SessionRepository.Update (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (r *pgSessionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("SessionRepository.Count: %w", err)
	}
	return n, nil
}

func (r *pgSessionRepository) CountByStatus(ctx context.Context, status domain.SessionStatus) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM log WHERE status = $1`
	if err := r.q.QueryRowContext(ctx, query, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("SessionRepository.CountByStatus: %w", err)
	}
	return n, nil
}
