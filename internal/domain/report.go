package domain

type LotSummary struct {
	LotID             int     `json:"lot_id"`
	LotName           string  `json:"lot_name"`
	TotalSessions     int     `json:"total_sessions"`
	ActiveSessions    int     `json:"active_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	TotalRevenue      float64 `json:"total_revenue"`
}

type UnpaidAboveAverageRow struct {
	DriverID    int     `json:"driver_id"`
	FullName    string  `json:"full_name"`
	UnpaidTotal float64 `json:"unpaid_total"`
}

const (
	PlateSourceEverParked = "EVER_PARKED"
	PlateSourceUnpaid     = "UNPAID"
)

type PlateSource struct {
	Plate  string `json:"plate"`
	Source string `json:"source"`
}

type AdminStats struct {
	Drivers        int `json:"drivers"`
	Vehicles       int `json:"vehicles"`
	TotalSessions  int `json:"total_sessions"`
	ActiveSessions int `json:"active_sessions"`
}
