package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

// AuthService đăng ký và xác thực driver. Không phát hành token:
// API phía sau nhận driver_id trực tiếp theo hợp đồng với frontend.
type AuthService struct {
	store      repository.Store
	bcryptCost int
}

func NewAuthService(store repository.Store, bcryptCost int) *AuthService {
	return &AuthService{store: store, bcryptCost: bcryptCost}
}

func (s *AuthService) Register(ctx context.Context, dto domain.RegisterDriverDTO) (*domain.Driver, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("AuthService.Register: %w", err)
	}

	driver := &domain.Driver{
		FullName:     dto.FullName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		PasswordHash: string(hash),
	}
	created, err := s.store.Drivers().Create(ctx, driver)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("AuthService.Register: %w", err)
	}
	log.Printf("Driver mới đăng ký: %s (id %d)", created.Email, created.ID)
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, dto domain.LoginDTO) (*domain.Driver, error) {
	driver, err := s.store.Drivers().FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("AuthService.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(driver.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return driver, nil
}
