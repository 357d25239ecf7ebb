package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"parkwise/internal/domain"
	"parkwise/internal/repository/memory"
)

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store, bcrypt.MinCost)
	ctx := context.Background()

	dto := domain.RegisterDriverDTO{
		FullName: "Nguyễn Văn A", Email: "a@x.vn", PhoneNumber: "0901", Password: "secret",
	}
	driver, err := svc.Register(ctx, dto)
	require.NoError(t, err)
	assert.NotZero(t, driver.ID)
	assert.NotEqual(t, "secret", driver.PasswordHash)

	_, err = svc.Register(ctx, dto)
	assert.ErrorIs(t, err, ErrEmailExists)

	got, err := svc.Login(ctx, domain.LoginDTO{Email: "a@x.vn", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, driver.ID, got.ID)

	_, err = svc.Login(ctx, domain.LoginDTO{Email: "a@x.vn", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginDTO{Email: "ghost@x.vn", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
