package postgresql

import (
	"context"
	"fmt"

	"parkwise/internal/domain"
	"parkwise/internal/repository"

	"github.com/lib/pq"
)

type pgVehicleRepository struct {
	q querier
}

func (r *pgVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicle (plate_no, driver_id, vehicle_type, model, year, color)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.ExecContext(ctx, query, v.PlateNo, v.DriverID, v.VehicleType, v.Model, v.Year, v.Color)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("%w: biển số '%s' đã được đăng ký cho driver này", repository.ErrDuplicateEntry, v.PlateNo)
		}
		return fmt.Errorf("VehicleRepository.Create: %w", err)
	}
	return nil
}

func (r *pgVehicleRepository) FindByDriverID(ctx context.Context, driverID int) ([]domain.Vehicle, error) {
	query := `SELECT plate_no, vehicle_type, model, year, color
	          FROM vehicle WHERE driver_id = $1 ORDER BY plate_no`
	rows, err := r.q.QueryContext(ctx, query, driverID)
	if err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindByDriverID: %w", err)
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.PlateNo, &v.VehicleType, &v.Model, &v.Year, &v.Color); err != nil {
			return nil, fmt.Errorf("VehicleRepository.FindByDriverID (scanning row): %w", err)
		}
		v.DriverID = driverID
		vehicles = append(vehicles, v)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("VehicleRepository.FindByDriverID (rows error): %w", err)
	}
	return vehicles, nil
}

func (r *pgVehicleRepository) Delete(ctx context.Context, driverID int, plateNo string) error {
	result, err := r.q.ExecContext(ctx,
		`DELETE FROM vehicle WHERE plate_no = $1 AND driver_id = $2`, plateNo, driverID)
	if err != nil {
		return fmt.Errorf("VehicleRepository.Delete: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("VehicleRepository.Delete (checking rows affected): %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *pgVehicleRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicle`).Scan(&n); err != nil {
		return 0, fmt.Errorf("VehicleRepository.Count: %w", err)
	}
	return n, nil
}
