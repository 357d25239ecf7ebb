package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

const PaymentPaid = "PAID"

// Payment là biên lai tất toán, chỉ ghi thêm (append-only):
// đúng một bản ghi cho mỗi session từng được thanh toán, không sửa, không xóa.
// Thông tin thẻ chỉ được lưu lại để đối soát, hệ thống mô phỏng thanh toán
// chứ không gọi cổng thanh toán thật.
type Payment struct {
	ID           int         `json:"payment_id"`
	DriverID     int         `json:"driver_id"`
	LogID        int         `json:"log_id"`
	CreditCardNo null.String `json:"credit_card_no,omitempty"`
	CcvCvc       null.String `json:"-"`
	CcExpiry     null.String `json:"cc_expiry,omitempty"`
	Amount       float64     `json:"amount"`
	Status       string      `json:"payment_status"`
	TxnRef       string      `json:"txn_ref"`
	CreatedAt    time.Time   `json:"created_at"`
}

type PayDTO struct {
	DriverID     int    `json:"driver_id" binding:"required"`
	LogID        int    `json:"log_id" binding:"required"`
	CreditCardNo string `json:"credit_card_no"`
	CcvCvc       string `json:"ccv_cvc"`
	CcExpiry     string `json:"cc_expiry"`
}

type PayAllDTO struct {
	DriverID     int    `json:"driver_id" binding:"required"`
	CreditCardNo string `json:"credit_card_no"`
	CcvCvc       string `json:"ccv_cvc"`
	CcExpiry     string `json:"cc_expiry"`
}
