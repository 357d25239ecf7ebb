package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalcFee(t *testing.T) {
	entry := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		parked     time.Duration
		entryFee   float64
		hourlyRate float64
		want       float64
	}{
		{"đỗ 1 giây vẫn trả đủ entry_fee", time.Second, 5, 3, 5},
		{"đúng 60 phút vẫn trong khoán giờ đầu", time.Hour, 5, 3, 5},
		{"60 phút 1 giây làm tròn thành phút 61", time.Hour + time.Second, 5, 3, 5.05},
		{"90 phút: 5 + 30 phút lẻ x 0.05", 90 * time.Minute, 5, 3, 6.5},
		{"3 giờ: 5 + 120 x 0.05", 3 * time.Hour, 5, 3, 11},
		{"đơn giá lẻ được làm tròn về cent", 61 * time.Minute, 2.5, 1, 2.52},
		{"đồng hồ lệch: exit trước entry kẹp về 0", -time.Hour, 5, 3, 5},
		{"0 phút", 0, 7.25, 4, 7.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcFee(entry, entry.Add(tt.parked), tt.entryFee, tt.hourlyRate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney2(t *testing.T) {
	assert.Equal(t, 6.5, Money2(6.4999999999))
	assert.Equal(t, 2.52, Money2(2.5166666667))
	assert.Equal(t, 5.0, Money2(5))
}
