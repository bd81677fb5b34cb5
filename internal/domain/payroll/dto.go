package payroll

import (
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== SALARY COMPONENT DTOs ==========

type CreateSalaryComponentRequest struct {
	EmployeeID             string          `json:"-"`
	BaseSalary             decimal.Decimal `json:"base_salary"`
	AllowanceTransport     decimal.Decimal `json:"allowance_transport"`
	AllowanceMeal          decimal.Decimal `json:"allowance_meal"`
	AllowanceCommunication decimal.Decimal `json:"allowance_communication"`
	AllowancePosition      decimal.Decimal `json:"allowance_position"`
	AllowanceOther         decimal.Decimal `json:"allowance_other"`
	EffectiveDate          string          `json:"effective_date"` // YYYY-MM-DD
}

func (r *CreateSalaryComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be greater than zero"})
	}
	allowances := map[string]decimal.Decimal{
		"allowance_transport":     r.AllowanceTransport,
		"allowance_meal":          r.AllowanceMeal,
		"allowance_communication": r.AllowanceCommunication,
		"allowance_position":      r.AllowancePosition,
		"allowance_other":         r.AllowanceOther,
	}
	for field, amount := range allowances {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}
	if r.EffectiveDate == "" {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.EffectiveDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryComponentResponse struct {
	ID                     string          `json:"id"`
	EmployeeID             string          `json:"employee_id"`
	BaseSalary             decimal.Decimal `json:"base_salary"`
	AllowanceTransport     decimal.Decimal `json:"allowance_transport"`
	AllowanceMeal          decimal.Decimal `json:"allowance_meal"`
	AllowanceCommunication decimal.Decimal `json:"allowance_communication"`
	AllowancePosition      decimal.Decimal `json:"allowance_position"`
	AllowanceOther         decimal.Decimal `json:"allowance_other"`
	EffectiveDate          string          `json:"effective_date"`
}

// ========== PAYROLL RUN DTOs ==========

type CreatePayrollRunRequest struct {
	PeriodMonth int     `json:"period_month"`
	PeriodYear  int     `json:"period_year"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreatePayrollRunRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < 2020 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertRunInputRequest struct {
	PayrollRunID    string          `json:"-"`
	EmployeeID      string          `json:"-"`
	Bonus           decimal.Decimal `json:"bonus"`
	Overtime        decimal.Decimal `json:"overtime"`
	Reimbursements  decimal.Decimal `json:"reimbursements"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	Note            *string         `json:"note,omitempty"`
}

func (r *UpsertRunInputRequest) Validate() error {
	var errs validator.ValidationErrors

	amounts := map[string]decimal.Decimal{
		"bonus":            r.Bonus,
		"overtime":         r.Overtime,
		"reimbursements":   r.Reimbursements,
		"other_deductions": r.OtherDeductions,
	}
	for field, amount := range amounts {
		if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRunResponse struct {
	ID           string  `json:"id"`
	PeriodMonth  int     `json:"period_month"`
	PeriodYear   int     `json:"period_year"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	CalculatedAt *string `json:"calculated_at,omitempty"`
	PaidAt       *string `json:"paid_at,omitempty"`
	PayslipCount *int    `json:"payslip_count,omitempty"`
}

type PayrollRunFilter struct {
	PeriodYear *int    `json:"period_year,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	SortBy     string  `json:"sort_by"`
	SortOrder  string  `json:"sort_order"`
}

type ListPayrollRunResponse struct {
	Data       []PayrollRunResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ID            string  `json:"id"`
	PayrollRunID  string  `json:"payroll_run_id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	EmployeeCode  *string `json:"employee_code,omitempty"`
	PayslipNumber string  `json:"payslip_number"`
	PeriodMonth   int     `json:"period_month"`
	PeriodYear    int     `json:"period_year"`

	BaseSalary             decimal.Decimal `json:"base_salary"`
	AllowanceTransport     decimal.Decimal `json:"allowance_transport"`
	AllowanceMeal          decimal.Decimal `json:"allowance_meal"`
	AllowanceCommunication decimal.Decimal `json:"allowance_communication"`
	AllowancePosition      decimal.Decimal `json:"allowance_position"`
	AllowanceOther         decimal.Decimal `json:"allowance_other"`
	Bonus                  decimal.Decimal `json:"bonus"`
	Overtime               decimal.Decimal `json:"overtime"`
	Reimbursements         decimal.Decimal `json:"reimbursements"`

	GrossSalary decimal.Decimal `json:"gross_salary"`

	BPJSKesehatanEmployee decimal.Decimal `json:"bpjs_kesehatan_employee"`
	BPJSKesehatanEmployer decimal.Decimal `json:"bpjs_kesehatan_employer"`
	BPJSJHTEmployee       decimal.Decimal `json:"bpjs_jht_employee"`
	BPJSJHTEmployer       decimal.Decimal `json:"bpjs_jht_employer"`
	BPJSJPEmployee        decimal.Decimal `json:"bpjs_jp_employee"`
	BPJSJPEmployer        decimal.Decimal `json:"bpjs_jp_employer"`
	BPJSJKKEmployer       decimal.Decimal `json:"bpjs_jkk_employer"`
	BPJSJKMEmployer       decimal.Decimal `json:"bpjs_jkm_employer"`

	PPh21                 decimal.Decimal `json:"pph21"`
	OtherDeductions       decimal.Decimal `json:"other_deductions"`
	TotalDeductions       decimal.Decimal `json:"total_deductions"`
	NetSalary             decimal.Decimal `json:"net_salary"`
	DeductionsExceedGross bool            `json:"deductions_exceed_gross"`

	PTKPStatus   string `json:"ptkp_status"`
	JKKRiskClass int    `json:"jkk_risk_class"`
}

type PayslipFilter struct {
	PeriodYear *int `json:"period_year,omitempty"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	SortBy     string
	SortOrder  string
}

type ListPayslipResponse struct {
	Data       []PayslipResponse `json:"data"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// RunPreviewResponse carries freshly computed, unpersisted payslips for a
// draft run together with their aggregate totals.
type RunPreviewResponse struct {
	Run      PayrollRunResponse `json:"run"`
	Payslips []PayslipResponse  `json:"payslips"`
	Summary  RunSummaryResponse `json:"summary"`
	Skipped  []SkippedEmployee  `json:"skipped,omitempty"`
}

// SkippedEmployee names an employee left out of a calculation and why.
type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

type RunSummaryResponse struct {
	TotalEmployees             int             `json:"total_employees"`
	TotalGross                 decimal.Decimal `json:"total_gross"`
	TotalPPh21                 decimal.Decimal `json:"total_pph21"`
	TotalBPJSKesehatanEmployee decimal.Decimal `json:"total_bpjs_kesehatan_employee"`
	TotalBPJSKesehatanEmployer decimal.Decimal `json:"total_bpjs_kesehatan_employer"`
	TotalBPJSJHTEmployee       decimal.Decimal `json:"total_bpjs_jht_employee"`
	TotalBPJSJHTEmployer       decimal.Decimal `json:"total_bpjs_jht_employer"`
	TotalBPJSJPEmployee        decimal.Decimal `json:"total_bpjs_jp_employee"`
	TotalBPJSJPEmployer        decimal.Decimal `json:"total_bpjs_jp_employer"`
	TotalBPJSJKKEmployer       decimal.Decimal `json:"total_bpjs_jkk_employer"`
	TotalBPJSJKMEmployer       decimal.Decimal `json:"total_bpjs_jkm_employer"`
	TotalDeductions            decimal.Decimal `json:"total_deductions"`
	TotalNet                   decimal.Decimal `json:"total_net"`
}
