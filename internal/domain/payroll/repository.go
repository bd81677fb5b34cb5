package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for payroll.
// All methods include companyID parameter to prevent cross-company data access attacks.
type PayrollRepository interface {
	// Salary Components (versioned history, append-only)
	CreateSalaryComponent(ctx context.Context, component SalaryComponent) (SalaryComponent, error)
	GetSalaryComponents(ctx context.Context, employeeID string, companyID string) ([]SalaryComponent, error)
	GetEffectiveSalaryComponent(ctx context.Context, employeeID string, companyID string, periodEnd time.Time) (SalaryComponent, error)
	GetEffectiveSalaryComponents(ctx context.Context, companyID string, periodEnd time.Time) (map[string]SalaryComponent, error)

	// Payroll Runs
	CreatePayrollRun(ctx context.Context, run PayrollRun) (PayrollRun, error)
	GetPayrollRunByID(ctx context.Context, id string, companyID string) (PayrollRun, error)
	GetPayrollRunByPeriod(ctx context.Context, companyID string, month, year int) (PayrollRun, error)
	ListPayrollRuns(ctx context.Context, companyID string, filter PayrollRunFilter) ([]PayrollRun, int64, error)
	UpdatePayrollRunStatus(ctx context.Context, id string, companyID string, status PayrollRunStatus, paidBy *string) error
	DeletePayrollRun(ctx context.Context, id string, companyID string) error

	// Run Inputs (ad-hoc per-employee additions, upserted while the run is draft)
	UpsertRunInput(ctx context.Context, input PayrollRunInput, companyID string) (PayrollRunInput, error)
	GetRunInputs(ctx context.Context, payrollRunID string, companyID string) (map[string]PayrollRunInput, error)

	// Payslips. Regeneration deletes payslips (one or a run's whole set) and
	// recreates them in one transaction; individual amounts are never
	// patched in place.
	CreatePayslip(ctx context.Context, payslip Payslip) (Payslip, error)
	GetPayslipByID(ctx context.Context, id string, companyID string) (Payslip, error)
	GetPayslipByEmployeeAndRun(ctx context.Context, employeeID string, payrollRunID string, companyID string) (Payslip, error)
	ListPayslipsByRun(ctx context.Context, payrollRunID string, companyID string) ([]Payslip, error)
	ListPayslipsByEmployee(ctx context.Context, employeeID string, companyID string, filter PayslipFilter) ([]Payslip, int64, error)
	DeletePayslipByID(ctx context.Context, id string, companyID string) error
	DeletePayslipsByRun(ctx context.Context, payrollRunID string, companyID string) error
}
