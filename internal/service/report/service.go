package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/report"
	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
}

func NewReportService(reportRepo report.ReportRepository) report.ReportService {
	return &ReportServiceImpl{
		reportRepo: reportRepo,
	}
}

// getCompanyIDFromContext extracts company_id from JWT claims
func (s *ReportServiceImpl) getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyIDRequired
	}

	return companyID, nil
}

// GeneratePayrollSummaryReport builds the per-period summary. Rows come from
// SQL aggregation; the totals are folded here in decimal so they reconcile
// exactly with the rows beneath them.
func (s *ReportServiceImpl) GeneratePayrollSummaryReport(ctx context.Context, req report.PayrollSummaryReportRequest) (report.PayrollSummaryReport, error) {
	if err := req.Validate(); err != nil {
		return report.PayrollSummaryReport{}, err
	}

	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return report.PayrollSummaryReport{}, err
	}

	runStatus, rows, err := s.reportRepo.GetPayrollSummaryRows(ctx, companyID, req.Month, req.Year)
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("failed to get payroll summary data: %w", err)
	}

	var totalGross, totalPPh21, totalBPJSEmployee, totalBPJSEmployer decimal.Decimal
	var totalDeductions, totalNet decimal.Decimal
	for _, row := range rows {
		totalGross = totalGross.Add(row.GrossSalary)
		totalPPh21 = totalPPh21.Add(row.PPh21)
		totalBPJSEmployee = totalBPJSEmployee.Add(row.BPJSEmployee)
		totalBPJSEmployer = totalBPJSEmployer.Add(row.BPJSEmployer)
		totalDeductions = totalDeductions.Add(row.TotalDeductions)
		totalNet = totalNet.Add(row.NetSalary)
	}

	return report.PayrollSummaryReport{
		PeriodMonth:       req.Month,
		PeriodYear:        req.Year,
		RunStatus:         runStatus,
		GeneratedAt:       time.Now().Format(time.RFC3339),
		TotalEmployees:    len(rows),
		TotalGross:        totalGross,
		TotalPPh21:        totalPPh21,
		TotalBPJSEmployee: totalBPJSEmployee,
		TotalBPJSEmployer: totalBPJSEmployer,
		TotalDeductions:   totalDeductions,
		TotalNetPayout:    totalNet,
		Rows:              rows,
	}, nil
}

// GenerateAnnualRecapReport builds the per-employee yearly recap over paid
// runs only; draft and calculated runs never enter the annual numbers.
func (s *ReportServiceImpl) GenerateAnnualRecapReport(ctx context.Context, req report.AnnualRecapReportRequest) (report.AnnualRecapReport, error) {
	if err := req.Validate(); err != nil {
		return report.AnnualRecapReport{}, err
	}

	companyID, err := s.getCompanyIDFromContext(ctx)
	if err != nil {
		return report.AnnualRecapReport{}, err
	}

	rows, err := s.reportRepo.GetAnnualRecapRows(ctx, companyID, req.Year)
	if err != nil {
		return report.AnnualRecapReport{}, fmt.Errorf("failed to get annual recap data: %w", err)
	}

	var totalGross, totalPPh21, totalNet decimal.Decimal
	for _, row := range rows {
		totalGross = totalGross.Add(row.GrossSalary)
		totalPPh21 = totalPPh21.Add(row.PPh21)
		totalNet = totalNet.Add(row.NetSalary)
	}

	return report.AnnualRecapReport{
		Year:        req.Year,
		GeneratedAt: time.Now().Format(time.RFC3339),
		TotalGross:  totalGross,
		TotalPPh21:  totalPPh21,
		TotalNet:    totalNet,
		Rows:        rows,
	}, nil
}
