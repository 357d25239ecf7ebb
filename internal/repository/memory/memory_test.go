package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"

	"parkwise/internal/domain"
	"parkwise/internal/repository"
)

func TestWithinTxRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Drivers().Create(ctx, &domain.Driver{FullName: "A", Email: "a@x.vn"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := s.Drivers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "rollback phải trả dữ liệu về snapshot")
}

func TestWithinTxCommit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Drivers().Create(ctx, &domain.Driver{FullName: "A", Email: "a@x.vn"})
		return err
	})
	require.NoError(t, err)

	n, err := s.Drivers().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSessionCreateEnforcesActiveConflicts(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	lot := s.AddLot(domain.ParkingLot{Name: "Lot A"}, true)

	spot := null.StringFrom("S1")
	first := domain.NewSession(1, "51A-123", lot.ID, lot.CameraID, null.Int{}, spot, time.Now().UTC())
	_, err := s.Sessions().Create(ctx, first)
	require.NoError(t, err)

	_, err = s.Sessions().Create(ctx, domain.NewSession(1, "51A-999", lot.ID, lot.CameraID, null.Int{}, null.String{}, time.Now().UTC()))
	assert.ErrorIs(t, err, repository.ErrActiveDriverConflict)

	_, err = s.Sessions().Create(ctx, domain.NewSession(2, "51B-456", lot.ID, lot.CameraID, null.Int{}, spot, time.Now().UTC()))
	assert.ErrorIs(t, err, repository.ErrActiveSpotConflict)

	// Spot cùng nhãn nhưng thuộc bãi khác thì không đụng nhau.
	other := s.AddLot(domain.ParkingLot{Name: "Lot B"}, true)
	_, err = s.Sessions().Create(ctx, domain.NewSession(2, "51B-456", other.ID, other.CameraID, null.Int{}, spot, time.Now().UTC()))
	assert.NoError(t, err)
}

func TestFindLatestActivePicksNewest(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	lot := s.AddLot(domain.ParkingLot{Name: "Lot A"}, true)

	old := domain.NewSession(1, "51A-123", lot.ID, lot.CameraID, null.Int{}, null.String{}, time.Now().UTC())
	old, err := s.Sessions().Create(ctx, old)
	require.NoError(t, err)
	require.NoError(t, old.Close(time.Now().UTC(), 5))
	_, err = s.Sessions().Update(ctx, old)
	require.NoError(t, err)

	cur, err := s.Sessions().Create(ctx, domain.NewSession(1, "51A-123", lot.ID, lot.CameraID, null.Int{}, null.String{}, time.Now().UTC()))
	require.NoError(t, err)

	got, err := s.Sessions().FindLatestActiveByPlate(ctx, "51A-123")
	require.NoError(t, err)
	assert.Equal(t, cur.ID, got.ID)

	_, err = s.Sessions().FindLatestActiveByPlate(ctx, "00X-000")
	assert.ErrorIs(t, err, repository.ErrNoActiveSession)
}
