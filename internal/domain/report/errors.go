package report

import "errors"

var (
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
	ErrInvalidYear      = errors.New("year must be a valid year")
	ErrNoDataFound      = errors.New("no data found for the specified criteria")
	ErrRunNotCalculated = errors.New("payroll run for this period has not been calculated")
)
