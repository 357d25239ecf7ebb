package postgresql

import (
	"context"
	"fmt"

	"parkwise/internal/domain"
)

type pgReportRepository struct {
	q querier
}

func (r *pgReportRepository) LotSummary(ctx context.Context) ([]domain.LotSummary, error) {
	query := `SELECT p.lot_id,
	                 p.lot_name,
	                 COUNT(l.log_id) AS total_sessions,
	                 COALESCE(SUM(CASE WHEN l.status = 'ACTIVE' THEN 1 ELSE 0 END), 0) AS active_sessions,
	                 COALESCE(SUM(CASE WHEN l.status IN ('UNPAID','PAID') THEN 1 ELSE 0 END), 0) AS completed_sessions,
	                 COALESCE(SUM(CASE WHEN l.status IN ('UNPAID','PAID') THEN l.fee ELSE 0 END), 0) AS total_revenue
	          FROM parking_lot p
	          LEFT JOIN log l ON l.lot_id = p.lot_id
	          GROUP BY p.lot_id, p.lot_name
	          ORDER BY p.lot_id`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.LotSummary: %w", err)
	}
	defer rows.Close()

	summaries := make([]domain.LotSummary, 0)
	for rows.Next() {
		var s domain.LotSummary
		if err := rows.Scan(&s.LotID, &s.LotName, &s.TotalSessions, &s.ActiveSessions, &s.CompletedSessions, &s.TotalRevenue); err != nil {
			return nil, fmt.Errorf("ReportRepository.LotSummary (scanning row): %w", err)
		}
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ReportRepository.LotSummary (rows error): %w", err)
	}
	return summaries, nil
}

func (r *pgReportRepository) UnpaidAboveAverage(ctx context.Context) ([]domain.UnpaidAboveAverageRow, error) {
	query := `SELECT d.driver_id, d.full_name, t.unpaid_total
	          FROM driver d
	          JOIN (
	            SELECT driver_id, COALESCE(SUM(fee), 0) AS unpaid_total
	            FROM log
	            WHERE status = 'UNPAID'
	            GROUP BY driver_id
	          ) t ON t.driver_id = d.driver_id
	          WHERE t.unpaid_total > (
	            SELECT AVG(x.unpaid_total)
	            FROM (
	              SELECT COALESCE(SUM(fee), 0) AS unpaid_total
	              FROM log
	              WHERE status = 'UNPAID'
	              GROUP BY driver_id
	            ) x
	          )
	          ORDER BY t.unpaid_total DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.UnpaidAboveAverage: %w", err)
	}
	defer rows.Close()

	out := make([]domain.UnpaidAboveAverageRow, 0)
	for rows.Next() {
		var row domain.UnpaidAboveAverageRow
		if err := rows.Scan(&row.DriverID, &row.FullName, &row.UnpaidTotal); err != nil {
			return nil, fmt.Errorf("ReportRepository.UnpaidAboveAverage (scanning row): %w", err)
		}
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ReportRepository.UnpaidAboveAverage (rows error): %w", err)
	}
	return out, nil
}

func (r *pgReportRepository) PlatesUnion(ctx context.Context) ([]domain.PlateSource, error) {
	query := `(SELECT DISTINCT plate_no AS plate, 'EVER_PARKED' AS source FROM log)
	          UNION
	          (SELECT DISTINCT plate_no AS plate, 'UNPAID' AS source FROM log WHERE status = 'UNPAID')
	          ORDER BY plate`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ReportRepository.PlatesUnion: %w", err)
	}
	defer rows.Close()

	out := make([]domain.PlateSource, 0)
	for rows.Next() {
		var row domain.PlateSource
		if err := rows.Scan(&row.Plate, &row.Source); err != nil {
			return nil, fmt.Errorf("ReportRepository.PlatesUnion (scanning row): %w", err)
		}
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("ReportRepository.PlatesUnion (rows error): %w", err)
	}
	return out, nil
}
