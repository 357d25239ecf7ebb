package service

import (
	"context"
	"fmt"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

// ReportService phục vụ các màn hình admin: thống kê và báo cáo tổng hợp.
type ReportService struct {
	store repository.Store
}

func NewReportService(store repository.Store) *ReportService {
	return &ReportService{store: store}
}

func (s *ReportService) AllDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.store.Drivers().FindAll(ctx)
}

func (s *ReportService) Stats(ctx context.Context) (*domain.AdminStats, error) {
	drivers, err := s.store.Drivers().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReportService.Stats: %w", err)
	}
	vehicles, err := s.store.Vehicles().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReportService.Stats: %w", err)
	}
	total, err := s.store.Sessions().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReportService.Stats: %w", err)
	}
	active, err := s.store.Sessions().CountByStatus(ctx, domain.SessionActive)
	if err != nil {
		return nil, fmt.Errorf("ReportService.Stats: %w", err)
	}
	return &domain.AdminStats{
		Drivers:        drivers,
		Vehicles:       vehicles,
		TotalSessions:  total,
		ActiveSessions: active,
	}, nil
}

func (s *ReportService) LotSummary(ctx context.Context) ([]domain.LotSummary, error) {
	return s.store.Reports().LotSummary(ctx)
}

func (s *ReportService) UnpaidAboveAverage(ctx context.Context) ([]domain.UnpaidAboveAverageRow, error) {
	return s.store.Reports().UnpaidAboveAverage(ctx)
}

func (s *ReportService) PlatesUnion(ctx context.Context) ([]domain.PlateSource, error) {
	return s.store.Reports().PlatesUnion(ctx)
}
