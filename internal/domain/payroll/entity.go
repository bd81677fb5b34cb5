package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PTKPStatus enum - Indonesian non-taxable income status (marital status + dependents)
type PTKPStatus string

const (
	PTKPTK0 PTKPStatus = "TK/0"
	PTKPTK1 PTKPStatus = "TK/1"
	PTKPTK2 PTKPStatus = "TK/2"
	PTKPTK3 PTKPStatus = "TK/3"
	PTKPK0  PTKPStatus = "K/0"
	PTKPK1  PTKPStatus = "K/1"
	PTKPK2  PTKPStatus = "K/2"
	PTKPK3  PTKPStatus = "K/3"
	PTKPKI0 PTKPStatus = "K/I/0"
	PTKPKI1 PTKPStatus = "K/I/1"
	PTKPKI2 PTKPStatus = "K/I/2"
	PTKPKI3 PTKPStatus = "K/I/3"
)

// PTKPStatuses lists all recognized codes. Unknown codes are rejected, never defaulted.
var PTKPStatuses = []PTKPStatus{
	PTKPTK0, PTKPTK1, PTKPTK2, PTKPTK3,
	PTKPK0, PTKPK1, PTKPK2, PTKPK3,
	PTKPKI0, PTKPKI1, PTKPKI2, PTKPKI3,
}

func (s PTKPStatus) Valid() bool {
	for _, known := range PTKPStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// JKKRiskClass enum - workplace accident insurance risk class (PP 44/2015).
// Classes I..V map to employer contribution rates 0.24% / 0.54% / 0.89% / 1.27% / 1.74%.
type JKKRiskClass int

const (
	JKKRiskClass1 JKKRiskClass = 1
	JKKRiskClass2 JKKRiskClass = 2
	JKKRiskClass3 JKKRiskClass = 3
	JKKRiskClass4 JKKRiskClass = 4
	JKKRiskClass5 JKKRiskClass = 5
)

func (c JKKRiskClass) Valid() bool {
	return c >= JKKRiskClass1 && c <= JKKRiskClass5
}

// SalaryComponent - versioned salary record for an employee. A new row is
// appended on every salary change; the row with the latest effective date
// that is not after the payroll period end is the one used for calculation.
type SalaryComponent struct {
	ID                     string
	EmployeeID             string
	CompanyID              string
	BaseSalary             decimal.Decimal // gaji pokok
	AllowanceTransport     decimal.Decimal
	AllowanceMeal          decimal.Decimal
	AllowanceCommunication decimal.Decimal
	AllowancePosition      decimal.Decimal
	AllowanceOther         decimal.Decimal
	EffectiveDate          time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// PayrollRunStatus enum
type PayrollRunStatus string

const (
	RunStatusDraft      PayrollRunStatus = "draft"
	RunStatusCalculated PayrollRunStatus = "calculated"
	RunStatusPaid       PayrollRunStatus = "paid"
)

// PayrollRun - one payroll period per company
type PayrollRun struct {
	ID           string
	CompanyID    string
	PeriodMonth  int
	PeriodYear   int
	Status       PayrollRunStatus
	Notes        *string
	CalculatedAt *time.Time
	PaidAt       *time.Time
	PaidBy       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined fields
	PayslipCount *int
}

// PeriodEnd returns the last day of the run's period, the reference date for
// selecting the effective salary component.
func (r PayrollRun) PeriodEnd() time.Time {
	return time.Date(r.PeriodYear, time.Month(r.PeriodMonth), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 1, -1)
}

// PayrollRunInput - ad-hoc period additions entered per employee while a run
// is still draft (bonus, overtime pay, reimbursements, non-tax deductions).
type PayrollRunInput struct {
	ID              string
	PayrollRunID    string
	EmployeeID      string
	Bonus           decimal.Decimal
	Overtime        decimal.Decimal
	Reimbursements  decimal.Decimal
	OtherDeductions decimal.Decimal
	Note            *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Payslip - the calculation result for one employee in one run. Immutable
// once created; regeneration replaces every computed field at once.
type Payslip struct {
	ID            string
	PayrollRunID  string
	EmployeeID    string
	CompanyID     string
	PayslipNumber string
	PeriodMonth   int
	PeriodYear    int

	// Salary components copied forward at calculation time
	BaseSalary             decimal.Decimal
	AllowanceTransport     decimal.Decimal
	AllowanceMeal          decimal.Decimal
	AllowanceCommunication decimal.Decimal
	AllowancePosition      decimal.Decimal
	AllowanceOther         decimal.Decimal

	// Ad-hoc additions
	Bonus          decimal.Decimal
	Overtime       decimal.Decimal
	Reimbursements decimal.Decimal

	GrossSalary decimal.Decimal

	// BPJS contributions, whole rupiah, rounded per field
	BPJSKesehatanEmployee decimal.Decimal
	BPJSKesehatanEmployer decimal.Decimal
	BPJSJHTEmployee       decimal.Decimal
	BPJSJHTEmployer       decimal.Decimal
	BPJSJPEmployee        decimal.Decimal
	BPJSJPEmployer        decimal.Decimal
	BPJSJKKEmployer       decimal.Decimal
	BPJSJKMEmployer       decimal.Decimal

	PPh21                 decimal.Decimal
	OtherDeductions       decimal.Decimal
	TotalDeductions       decimal.Decimal
	NetSalary             decimal.Decimal
	DeductionsExceedGross bool

	// Tax status snapshots, not live references. Changing an employee's PTKP
	// status or the company's risk class never rewrites past payslips.
	PTKPStatus   PTKPStatus
	JKKRiskClass JKKRiskClass

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// CalculationInput - everything the engine consumes for one employee in one
// period. Pure value record; the engine performs no I/O.
type CalculationInput struct {
	BaseSalary             decimal.Decimal
	AllowanceTransport     decimal.Decimal
	AllowanceMeal          decimal.Decimal
	AllowanceCommunication decimal.Decimal
	AllowancePosition      decimal.Decimal
	AllowanceOther         decimal.Decimal
	Bonus                  decimal.Decimal
	Overtime               decimal.Decimal
	Reimbursements         decimal.Decimal
	OtherDeductions        decimal.Decimal
	PTKPStatus             PTKPStatus
	JKKRiskClass           JKKRiskClass
}

// CalculationResult - the engine's output, all amounts whole rupiah.
type CalculationResult struct {
	GrossSalary           decimal.Decimal
	BPJSKesehatanEmployee decimal.Decimal
	BPJSKesehatanEmployer decimal.Decimal
	BPJSJHTEmployee       decimal.Decimal
	BPJSJHTEmployer       decimal.Decimal
	BPJSJPEmployee        decimal.Decimal
	BPJSJPEmployer        decimal.Decimal
	BPJSJKKEmployer       decimal.Decimal
	BPJSJKMEmployer       decimal.Decimal
	PPh21                 decimal.Decimal
	OtherDeductions       decimal.Decimal
	TotalDeductions       decimal.Decimal
	NetSalary             decimal.Decimal
	DeductionsExceedGross bool
}

// RunSummary - aggregate totals over a set of payslips (one run or one year).
type RunSummary struct {
	TotalEmployees             int
	TotalGross                 decimal.Decimal
	TotalPPh21                 decimal.Decimal
	TotalBPJSKesehatanEmployee decimal.Decimal
	TotalBPJSKesehatanEmployer decimal.Decimal
	TotalBPJSJHTEmployee       decimal.Decimal
	TotalBPJSJHTEmployer       decimal.Decimal
	TotalBPJSJPEmployee        decimal.Decimal
	TotalBPJSJPEmployer        decimal.Decimal
	TotalBPJSJKKEmployer       decimal.Decimal
	TotalBPJSJKMEmployer       decimal.Decimal
	TotalDeductions            decimal.Decimal
	TotalNet                   decimal.Decimal
}
