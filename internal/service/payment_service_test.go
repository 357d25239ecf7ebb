package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkwise/internal/domain"
)

// endOneSession dựng một phiên UNPAID cho driver rồi trả về log_id và phí.
func endOneSession(t *testing.T, svc *SessionService, driverID int, plateNo string, lotID int, parked time.Duration) (int, float64) {
	t.Helper()
	ctx := context.Background()
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc.now = fixedClock(entry)
	_, err := svc.Start(ctx, domain.StartSessionDTO{DriverID: driverID, PlateNo: plateNo, LotID: lotID})
	require.NoError(t, err)
	svc.now = fixedClock(entry.Add(parked))
	closed, err := svc.End(ctx, plateNo)
	require.NoError(t, err)
	return closed.ID, closed.Fee.Float64
}

func TestPayOneSettlesAndRecordsReceipt(t *testing.T) {
	store, lot := newTestEnv(t)
	sessions := NewSessionService(store)
	payments := NewPaymentService(store)
	ctx := context.Background()

	logID, fee := endOneSession(t, sessions, 1, "51A-123", lot.ID, 90*time.Minute)
	require.Equal(t, 6.5, fee)

	due, err := payments.Due(ctx, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, domain.DueSession{LogID: logID, Fee: 6.5}, due[0])

	amount, err := payments.PayOne(ctx, domain.PayDTO{DriverID: 1, LogID: logID, CreditCardNo: "4111"})
	require.NoError(t, err)
	assert.Equal(t, 6.5, amount)

	// Đúng một biên lai cho phiên đã thanh toán.
	n, err := store.Payments().CountByLogID(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Hết nợ: driver lại được giữ chỗ.
	sessions.now = fixedClock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	_, err = sessions.Start(ctx, domain.StartSessionDTO{DriverID: 1, PlateNo: "51A-123", LotID: lot.ID})
	assert.NoError(t, err)
}

func TestPayOneRejectsDoublePay(t *testing.T) {
	store, lot := newTestEnv(t)
	sessions := NewSessionService(store)
	payments := NewPaymentService(store)
	ctx := context.Background()

	logID, _ := endOneSession(t, sessions, 1, "51A-123", lot.ID, 30*time.Minute)

	_, err := payments.PayOne(ctx, domain.PayDTO{DriverID: 1, LogID: logID})
	require.NoError(t, err)

	_, err = payments.PayOne(ctx, domain.PayDTO{DriverID: 1, LogID: logID})
	assert.ErrorIs(t, err, ErrNotPayable)

	// Thanh toán hụt không được sinh thêm biên lai.
	n, err := store.Payments().CountByLogID(ctx, logID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPayOneHidesOtherDriversLogs(t *testing.T) {
	store, lot := newTestEnv(t)
	sessions := NewSessionService(store)
	payments := NewPaymentService(store)
	ctx := context.Background()

	logID, _ := endOneSession(t, sessions, 1, "51A-123", lot.ID, 30*time.Minute)

	// Driver khác không thấy và không trả được log của người khác.
	_, err := payments.PayOne(ctx, domain.PayDTO{DriverID: 2, LogID: logID})
	assert.ErrorIs(t, err, ErrLogNotFound)

	_, err = payments.PayOne(ctx, domain.PayDTO{DriverID: 1, LogID: 9999})
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestPayAll(t *testing.T) {
	store, lot := newTestEnv(t)
	sessions := NewSessionService(store)
	payments := NewPaymentService(store)
	ctx := context.Background()

	// Hai phiên UNPAID, cách nhau một ngày.
	logA, _ := endOneSession(t, sessions, 1, "51A-123", lot.ID, 30*time.Minute)
	_, err := payments.PayOne(ctx, domain.PayDTO{DriverID: 1, LogID: logA})
	require.NoError(t, err)
	endOneSession(t, sessions, 1, "51A-123", lot.ID, 90*time.Minute)

	paid, err := payments.PayAll(ctx, domain.PayAllDTO{DriverID: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, paid)

	due, err := payments.Due(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, due)

	// Không còn nợ: pay_all trả 0 chứ không lỗi.
	paid, err = payments.PayAll(ctx, domain.PayAllDTO{DriverID: 1})
	require.NoError(t, err)
	assert.Zero(t, paid)
}
