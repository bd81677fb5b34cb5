package report

import (
	"fmt"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// PAYROLL SUMMARY REPORT
// ========================================

type PayrollSummaryReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *PayrollSummaryReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollSummaryReport struct {
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	RunStatus   string `json:"run_status"`
	GeneratedAt string `json:"generated_at"`

	TotalEmployees int             `json:"total_employees"`
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalPPh21     decimal.Decimal `json:"total_pph21"`

	// Employee and employer BPJS contributions, summed per scheme.
	TotalBPJSEmployee decimal.Decimal `json:"total_bpjs_employee"`
	TotalBPJSEmployer decimal.Decimal `json:"total_bpjs_employer"`

	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPayout  decimal.Decimal `json:"total_net_payout"`

	Rows []PayrollSummaryRow `json:"rows"`
}

type PayrollSummaryRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`

	// Earnings
	BaseSalary      decimal.Decimal `json:"base_salary"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	Bonus           decimal.Decimal `json:"bonus"`
	Overtime        decimal.Decimal `json:"overtime"`
	Reimbursements  decimal.Decimal `json:"reimbursements"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`

	// Deductions
	BPJSEmployee    decimal.Decimal `json:"bpjs_employee"`
	PPh21           decimal.Decimal `json:"pph21"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	// Employer cost, informational
	BPJSEmployer decimal.Decimal `json:"bpjs_employer"`

	NetSalary decimal.Decimal `json:"net_salary"`
}

// ========================================
// ANNUAL RECAP REPORT
// ========================================

type AnnualRecapReportRequest struct {
	Year int `json:"year"`
}

func (r *AnnualRecapReportRequest) Validate() error {
	var errs validator.ValidationErrors

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AnnualRecapReport aggregates every paid run in a calendar year per
// employee. Finance teams use it to reconcile the yearly withholding
// forms, so only paid runs count.
type AnnualRecapReport struct {
	Year        int    `json:"year"`
	GeneratedAt string `json:"generated_at"`

	TotalGross decimal.Decimal `json:"total_gross"`
	TotalPPh21 decimal.Decimal `json:"total_pph21"`
	TotalNet   decimal.Decimal `json:"total_net"`

	Rows []AnnualRecapRow `json:"rows"`
}

type AnnualRecapRow struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name"`
	NIK          string `json:"nik"`
	PTKPStatus   string `json:"ptkp_status"`

	MonthsPaid int `json:"months_paid"`

	GrossSalary     decimal.Decimal `json:"gross_salary"`
	BPJSEmployee    decimal.Decimal `json:"bpjs_employee"`
	BPJSEmployer    decimal.Decimal `json:"bpjs_employer"`
	PPh21           decimal.Decimal `json:"pph21"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}
