package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

type pgParkingLotRepository struct {
	q querier
}

func (r *pgParkingLotRepository) FindByID(ctx context.Context, id int) (*domain.ParkingLot, error) {
	lot := &domain.ParkingLot{}
	query := `SELECT lot_id, lot_name, location, opening_hours, entry_fee, hourly_rate, spot_count, lat, lng
	          FROM parking_lot WHERE lot_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&lot.ID, &lot.Name, &lot.Address, &lot.OpeningHours,
		&lot.EntryFee, &lot.HourlyRate, &lot.SpotCount, &lot.Lat, &lot.Lng,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("ParkingLotRepository.FindByID: %w", err)
	}
	return lot, nil
}

func (r *pgParkingLotRepository) FindAllWithCamera(ctx context.Context) ([]domain.ParkingLot, error) {
	query := `SELECT p.lot_id, c.camera_id, p.lot_name, p.location, p.opening_hours,
	                 p.entry_fee, p.hourly_rate, p.spot_count, p.lat, p.lng
	          FROM parking_lot p
	          JOIN camera c ON c.lot_id = p.lot_id
	          ORDER BY p.lot_id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ParkingLotRepository.FindAllWithCamera: %w", err)
	}
	defer rows.Close()

	lots := make([]domain.ParkingLot, 0)
	for rows.Next() {
		var lot domain.ParkingLot
		if err := rows.Scan(
			&lot.ID, &lot.CameraID, &lot.Name, &lot.Address, &lot.OpeningHours,
			&lot.EntryFee, &lot.HourlyRate, &lot.SpotCount, &lot.Lat, &lot.Lng,
		); err != nil {
			return nil, fmt.Errorf("ParkingLotRepository.FindAllWithCamera (scanning row): %w", err)
		}
		lots = append(lots, lot)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ParkingLotRepository.FindAllWithCamera (rows error): %w", err)
	}
	return lots, nil
}

func (r *pgParkingLotRepository) CameraIDForLot(ctx context.Context, lotID int) (int, error) {
	var cameraID int
	query := `SELECT camera_id FROM camera WHERE lot_id = $1 LIMIT 1`
	err := r.q.QueryRowContext(ctx, query, lotID).Scan(&cameraID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("ParkingLotRepository.CameraIDForLot: %w", err)
	}
	return cameraID, nil
}
