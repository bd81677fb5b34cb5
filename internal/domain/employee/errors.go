package employee

import "errors"

var (
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrEmployeeCodeExists    = errors.New("employee code already exists")
	ErrNIKExists             = errors.New("NIK already registered")
	ErrInvalidNIK            = errors.New("NIK must be exactly 16 digits")
	ErrInvalidPhoneNumber    = errors.New("phone number must be 10-13 digits")
	ErrInvalidGender         = errors.New("gender must be Male or Female")
	ErrInvalidPTKPStatus     = errors.New("invalid PTKP status code")
	ErrFutureDateNotAllowed  = errors.New("date cannot be in the future")
	ErrUnauthorized          = errors.New("unauthorized to access this employee")
	ErrEmployeeNotActive     = errors.New("employee is not active")
	ErrResignationBeforeHire = errors.New("resignation date cannot be before hire date")
)
