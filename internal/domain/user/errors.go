package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrOwnerAccessRequired     = errors.New("owner access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrCompanyIDRequired       = errors.New("company ID is required")
	ErrEmployeeTokenRequired   = errors.New("token is not linked to an employee record")
)
