package report

import "context"

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// GetPayrollSummaryRows returns per-employee payslip aggregates for one
	// period, joined with employee identity. Also reports the run status so
	// callers can tell drafts from paid runs.
	GetPayrollSummaryRows(ctx context.Context, companyID string, month, year int) (string, []PayrollSummaryRow, error)

	// GetAnnualRecapRows sums payslips from paid runs across a calendar year,
	// grouped per employee.
	GetAnnualRecapRows(ctx context.Context, companyID string, year int) ([]AnnualRecapRow, error)
}
