package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

func TestSessionLifecycle(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSession(1, "51A-123", 2, 3, null.Int{}, null.StringFrom("S1"), entry)
	assert.Equal(t, SessionActive, s.Status)
	assert.False(t, s.ExitTime.Valid)
	assert.False(t, s.Fee.Valid)

	exit := entry.Add(90 * time.Minute)
	require.NoError(t, s.Close(exit, 6.5))
	assert.Equal(t, SessionUnpaid, s.Status)
	assert.Equal(t, exit, s.ExitTime.Time)
	assert.Equal(t, 6.5, s.Fee.Float64)

	require.NoError(t, s.MarkPaid())
	assert.Equal(t, SessionPaid, s.Status)
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	s := NewSession(1, "51A-123", 2, 3, null.Int{}, null.String{}, entry)

	// ACTIVE không được nhảy thẳng sang PAID.
	assert.ErrorIs(t, s.MarkPaid(), ErrInvalidTransition)

	require.NoError(t, s.Close(entry.Add(time.Hour), 5))

	// UNPAID không được đóng lần hai.
	assert.ErrorIs(t, s.Close(entry.Add(2*time.Hour), 8), ErrInvalidTransition)

	require.NoError(t, s.MarkPaid())

	// PAID là trạng thái cuối.
	assert.ErrorIs(t, s.MarkPaid(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Close(entry.Add(3*time.Hour), 9), ErrInvalidTransition)
}
