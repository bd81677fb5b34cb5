package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// Generate Payroll Summary Report for one period
	GeneratePayrollSummaryReport(ctx context.Context, req PayrollSummaryReportRequest) (PayrollSummaryReport, error)

	// Generate Annual Recap Report across paid runs of a year
	GenerateAnnualRecapReport(ctx context.Context, req AnnualRecapReportRequest) (AnnualRecapReport, error)
}
