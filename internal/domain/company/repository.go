package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByUsername(ctx context.Context, username string) (Company, error)

	// ListAll returns every company. Used by the payroll scheduler, which
	// runs outside any request scope.
	ListAll(ctx context.Context) ([]Company, error)

	Create(ctx context.Context, newCompany Company) (Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) error

	GetTaxProfile(ctx context.Context, companyID string) (TaxProfile, error)
	CreateTaxProfile(ctx context.Context, profile TaxProfile) (TaxProfile, error)
	UpdateTaxProfile(ctx context.Context, companyID string, req UpdateTaxProfileRequest) error
}
