package domain

// ParkingLot là dữ liệu seed tĩnh; core không sửa đổi bãi đỗ.
// Mỗi bãi phải có đúng một camera giám sát thì mới nhận phiên đỗ xe.
type ParkingLot struct {
	ID           int     `json:"lot_id"`
	CameraID     int     `json:"camera_id,omitempty"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	OpeningHours string  `json:"opening_hours"`
	EntryFee     float64 `json:"entry_fee"`
	HourlyRate   float64 `json:"hourly_rate"`
	SpotCount    int     `json:"total_spots"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

type Camera struct {
	ID    int `json:"camera_id"`
	LotID int `json:"lot_id"`
}
