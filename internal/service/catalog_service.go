package service

import (
	"context"
	"fmt"

	"gopkg.in/guregu/null.v4"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

// CatalogService gom các nghiệp vụ phụ trợ: xe, thẻ và danh sách bãi đỗ.
type CatalogService struct {
	store repository.Store
}

func NewCatalogService(store repository.Store) *CatalogService {
	return &CatalogService{store: store}
}

// --- Vehicle ---

func (s *CatalogService) AddVehicle(ctx context.Context, dto domain.AddVehicleDTO) (*domain.Vehicle, error) {
	v := &domain.Vehicle{
		PlateNo:  dto.PlateNo,
		DriverID: dto.DriverID,
	}
	if dto.VehicleType != "" {
		v.VehicleType = null.StringFrom(dto.VehicleType)
	}
	if dto.Model != "" {
		v.Model = null.StringFrom(dto.Model)
	}
	if dto.Year != nil {
		v.Year = null.IntFrom(int64(*dto.Year))
	}
	if dto.Color != "" {
		v.Color = null.StringFrom(dto.Color)
	}
	if err := s.store.Vehicles().Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *CatalogService) VehiclesByDriver(ctx context.Context, driverID int) ([]domain.Vehicle, error) {
	return s.store.Vehicles().FindByDriverID(ctx, driverID)
}

func (s *CatalogService) DeleteVehicle(ctx context.Context, driverID int, plateNo string) error {
	return s.store.Vehicles().Delete(ctx, driverID, plateNo)
}

// --- CreditCard ---

// AddCard thêm thẻ mới. Nếu thẻ được đánh dấu mặc định thì cờ mặc định cũ
// phải bị gỡ trong cùng transaction.
func (s *CatalogService) AddCard(ctx context.Context, dto domain.AddCardDTO) (*domain.CreditCard, error) {
	card := &domain.CreditCard{
		DriverID:  dto.DriverID,
		Number:    dto.Number,
		Expiry:    dto.Expiry,
		CVV:       dto.CVV,
		CardType:  dto.CardType,
		IsDefault: dto.IsDefault,
	}
	if dto.Nickname != "" {
		card.Nickname = null.StringFrom(dto.Nickname)
	}

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if dto.IsDefault {
			if err := tx.Cards().ClearDefault(ctx, dto.DriverID); err != nil {
				return fmt.Errorf("CatalogService.AddCard: %w", err)
			}
		}
		created, err := tx.Cards().Create(ctx, card)
		if err != nil {
			return fmt.Errorf("CatalogService.AddCard: %w", err)
		}
		card = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CatalogService) CardsByDriver(ctx context.Context, driverID int) ([]domain.CreditCard, error) {
	return s.store.Cards().FindByDriverID(ctx, driverID)
}

func (s *CatalogService) SetDefaultCard(ctx context.Context, dto domain.SetDefaultCardDTO) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Cards().ClearDefault(ctx, dto.DriverID); err != nil {
			return fmt.Errorf("CatalogService.SetDefaultCard: %w", err)
		}
		return tx.Cards().SetDefault(ctx, dto.DriverID, dto.CardID)
	})
}

func (s *CatalogService) DeleteCard(ctx context.Context, driverID, cardID int) error {
	return s.store.Cards().Delete(ctx, driverID, cardID)
}

// --- ParkingLot ---

// NearbyLots trả về các bãi đỗ có camera, kèm tọa độ để frontend vẽ bản đồ.
func (s *CatalogService) NearbyLots(ctx context.Context) ([]domain.ParkingLot, error) {
	return s.store.Lots().FindAllWithCamera(ctx)
}
