package company

import "errors"

var (
	ErrCompanyNotFound              = errors.New("company not found")
	ErrCompanyUsernameExists        = errors.New("company username already exists")
	ErrInvalidCompanyUsernameFormat = errors.New("invalid company username format")

	// The tax profile is seeded on company creation, so a miss usually
	// means the company predates profile seeding.
	ErrTaxProfileNotFound = errors.New("company tax profile not found")
)
