package service

import "errors"

// Lỗi nghiệp vụ. Thông điệp giữ nguyên tiếng Anh vì frontend hiển thị trực
// tiếp chuỗi trong trường "error" của response.
var (
	ErrUnpaidBalance    = errors.New("Cannot reserve: you have unpaid parking fees. Please pay first.")
	ErrAlreadyActive    = errors.New("Driver already has an ACTIVE session")
	ErrSpotTaken        = errors.New("Spot already taken (ACTIVE)")
	ErrLotMisconfigured = errors.New("Lot has no camera")
	ErrNoActiveSession  = errors.New("No ACTIVE session for this plate")
	ErrNotPayable       = errors.New("This log is not UNPAID")
	ErrLogNotFound      = errors.New("Log not found")

	ErrEmailExists        = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
)
