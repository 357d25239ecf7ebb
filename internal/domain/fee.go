package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalcFee tính phí cho một phiên đỗ xe.
//
// Quy tắc: entry_fee bao trọn 60 phút đầu (đỗ 1 giây vẫn trả đủ entry_fee);
// quá 60 phút thì phần dư tính theo phút, đơn giá = hourly_rate / 60.
// Phút đã bắt đầu thì tính tròn phút (làm tròn lên, có lợi cho bãi xe).
// Lệch đồng hồ (exit trước entry) được kẹp về 0 phút.
func CalcFee(entryTime, exitTime time.Time, entryFee, hourlyRate float64) float64 {
	elapsed := exitTime.Sub(entryTime)
	if elapsed < 0 {
		elapsed = 0
	}
	minutes := int64(elapsed / time.Minute)
	if elapsed%time.Minute != 0 {
		minutes++
	}

	if minutes <= 60 {
		return Money2(entryFee)
	}

	overtime := decimal.NewFromInt(minutes - 60)
	perMinute := decimal.NewFromFloat(hourlyRate).Div(decimal.NewFromInt(60))
	fee := decimal.NewFromFloat(entryFee).Add(overtime.Mul(perMinute))
	f, _ := fee.Round(2).Float64()
	return f
}

// Money2 làm tròn một số tiền về 2 chữ số thập phân.
func Money2(n float64) float64 {
	f, _ := decimal.NewFromFloat(n).Round(2).Float64()
	return f
}
