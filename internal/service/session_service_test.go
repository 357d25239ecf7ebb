package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkwise/internal/domain"
	"parkwise/internal/repository/memory"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestEnv(t *testing.T) (*memory.Store, domain.ParkingLot) {
	t.Helper()
	store := memory.NewStore()
	lot := store.AddLot(domain.ParkingLot{
		Name:       "Trung tâm",
		EntryFee:   5,
		HourlyRate: 3,
	}, true)
	return store, lot
}

func TestStartAndEndLifecycle(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)

	sess, err := svc.Start(ctx, domain.StartSessionDTO{
		DriverID: 1, PlateNo: "51A-123", LotID: lot.ID, SpotLabel: "S1",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.Equal(t, lot.CameraID, sess.CameraID)
	assert.Equal(t, "S1", sess.SpotLabel.String)
	assert.False(t, sess.ExitTime.Valid)
	assert.False(t, sess.Fee.Valid)

	// 90 phút, entry_fee 5, hourly_rate 3: 5 + 30 * (3/60) = 6.50
	svc.now = fixedClock(entry.Add(90 * time.Minute))
	closed, err := svc.End(ctx, "51A-123")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionUnpaid, closed.Status)
	assert.Equal(t, 6.5, closed.Fee.Float64)

	// Không còn phiên ACTIVE thì end lần nữa phải lỗi.
	_, err = svc.End(ctx, "51A-123")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestEndChargesEntryFeeForShortStay(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)
	_, err := svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID})
	require.NoError(t, err)

	// Đỗ 1 giây vẫn trả đủ entry_fee.
	svc.now = fixedClock(entry.Add(time.Second))
	closed, err := svc.End(ctx, "51A-123")
	require.NoError(t, err)
	assert.Equal(t, 5.0, closed.Fee.Float64)
}

func TestEndClampsClockSkew(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)
	_, err := svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID})
	require.NoError(t, err)

	// Đồng hồ lùi: exit trước entry vẫn chỉ tính entry_fee.
	svc.now = fixedClock(entry.Add(-2 * time.Hour))
	closed, err := svc.End(ctx, "51A-123")
	require.NoError(t, err)
	assert.Equal(t, 5.0, closed.Fee.Float64)
}

func TestStartPreconditions(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)

	_, err := svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID, SpotLabel: "S1"})
	require.NoError(t, err)

	// Driver 1 đã có phiên ACTIVE.
	_, err = svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-999", LotID: lot.ID})
	assert.ErrorIs(t, err, ErrAlreadyActive)

	// Spot S1 đang bận.
	_, err = svc.Start(ctx, domain.StartSessionDTO{DriverID: 2, PlateNo: "51B-456", LotID: lot.ID, SpotLabel: "S1"})
	assert.ErrorIs(t, err, ErrSpotTaken)

	// Driver 1 ra xe nhưng chưa trả: bị chặn vì còn nợ.
	svc.now = fixedClock(entry.Add(30 * time.Minute))
	_, err = svc.End(ctx, "51A-123")
	require.NoError(t, err)
	_, err = svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID})
	assert.ErrorIs(t, err, ErrUnpaidBalance)

	// Bãi không có camera thì không nhận xe.
	noCam := store.AddLot(domain.ParkingLot{Name: "Bãi hỏng", EntryFee: 5, HourlyRate: 3}, false)
	_, err = svc.Start(ctx, domain.StartSessionDTO{DriverID: 3, PlateNo: "51C-789", LotID: noCam.ID})
	assert.ErrorIs(t, err, ErrLotMisconfigured)
}

func TestStartRaceSameDriverHasOneWinner(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Start(ctx, domain.StartSessionDTO{DriverID: 7, PlateNo: "51A-123", LotID: lot.ID})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyActive)
		}
	}
	assert.Equal(t, 1, ok, "chỉ đúng một request được giữ chỗ")
}

func TestStartRaceSameSpotHasOneWinner(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Start(ctx, domain.StartSessionDTO{
				DriverID: 100 + i, PlateNo: "51A-123", LotID: lot.ID, SpotLabel: "S1",
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, ErrSpotTaken)
		}
	}
	assert.Equal(t, 1, ok, "chỉ đúng một request chiếm được spot")
}

func TestActiveSpotsAndQueries(t *testing.T) {
	store, lot := newTestEnv(t)
	svc := NewSessionService(store)
	ctx := context.Background()
	svc.now = fixedClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	_, err := svc.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID, SpotLabel: "S1"})
	require.NoError(t, err)

	spots, err := svc.ActiveSpots(ctx, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"S1"}, spots)

	has, n, err := svc.HasUnpaid(ctx, 1)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Zero(t, n)

	sess, err := svc.ActiveSession(ctx, 1, "51A-123")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, sess.Status)

	_, err = svc.ActiveSession(ctx, 1, "00X-000")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	history, err := svc.HistoryByDriver(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Trung tâm", history[0].LotName)
}
