package fixtures

import (
	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// COMPANY DEFAULTS
// ==========================================

// GetDefaultTaxProfile returns the tax profile seeded for a newly created
// company. Risk class I (office work) is the lowest statutory JKK rate;
// registrations (NPWP, BPJS numbers) stay empty until the owner fills them
// in, and payroll still calculates without them.
func GetDefaultTaxProfile(companyID string) company.TaxProfile {
	return company.TaxProfile{
		CompanyID:    companyID,
		JKKRiskClass: payroll.JKKRiskClass1,
	}
}

// DefaultRunNote is attached to payroll runs opened automatically by the
// scheduler so they are distinguishable from hand-created drafts.
func DefaultRunNote() *string {
	return strPtr("Opened automatically")
}
