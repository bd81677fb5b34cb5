package company

import (
	"context"
)

type CompanyService interface {
	// GetMyCompany returns the company the caller's token belongs to.
	GetMyCompany(ctx context.Context) (CompanyResponse, error)

	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	Update(ctx context.Context, req UpdateCompanyRequest) error

	// GetTaxProfile returns the caller company's statutory registration data.
	GetTaxProfile(ctx context.Context) (TaxProfileResponse, error)

	// UpdateTaxProfile replaces the company's tax profile. The new JKK risk
	// class applies to future calculations only.
	UpdateTaxProfile(ctx context.Context, req UpdateTaxProfileRequest) error
}
