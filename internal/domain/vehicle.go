package domain

import "gopkg.in/guregu/null.v4"

// Vehicle thuộc về đúng một driver; plate_no là khóa trong phạm vi driver.
type Vehicle struct {
	PlateNo     string      `json:"plate_no"`
	DriverID    int         `json:"driver_id,omitempty"`
	VehicleType null.String `json:"vehicle_type"`
	Model       null.String `json:"model"`
	Year        null.Int    `json:"year"`
	Color       null.String `json:"color"`
}

type AddVehicleDTO struct {
	DriverID    int    `json:"driver_id" binding:"required"`
	PlateNo     string `json:"plate_no" binding:"required"`
	VehicleType string `json:"vehicle_type"`
	Model       string `json:"model"`
	Year        *int   `json:"year"`
	Color       string `json:"color"`
}
