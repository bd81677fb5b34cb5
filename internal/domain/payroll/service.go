package payroll

import "context"

// PayrollService defines business logic for salary components, payroll
// runs, and payslips. The company scope always comes from the caller's
// token claims, never from request bodies.
type PayrollService interface {
	// CreateSalaryComponent appends a new salary version for an employee.
	// Existing versions are never modified.
	CreateSalaryComponent(ctx context.Context, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)

	// ListSalaryComponents returns an employee's full salary history,
	// newest effective date first.
	ListSalaryComponents(ctx context.Context, employeeID string) ([]SalaryComponentResponse, error)

	// CreateRun opens a draft payroll run for a period (manager+ only).
	CreateRun(ctx context.Context, req CreatePayrollRunRequest) (PayrollRunResponse, error)

	GetRun(ctx context.Context, id string) (PayrollRunResponse, error)
	ListRuns(ctx context.Context, filter PayrollRunFilter) (ListPayrollRunResponse, error)

	// DeleteRun removes a draft or calculated run together with its inputs
	// and payslips. Paid runs are permanent.
	DeleteRun(ctx context.Context, id string) error

	// UpsertRunInput records ad-hoc amounts (bonus, overtime,
	// reimbursements, other deductions) for one employee on a draft run.
	UpsertRunInput(ctx context.Context, req UpsertRunInputRequest) error

	// CalculateRun generates payslips for every active employee with salary
	// history effective on or before the period end. Employees without
	// history are skipped and reported, not failed.
	CalculateRun(ctx context.Context, id string) (RunPreviewResponse, error)

	// RecalculateRun discards a calculated run's payslips and generates a
	// fresh set. Paid runs cannot be recalculated.
	RecalculateRun(ctx context.Context, id string) (RunPreviewResponse, error)

	// RecalculatePayslip regenerates a single employee's payslip on a
	// calculated run, replacing the stored row whole. The rest of the run
	// is untouched.
	RecalculatePayslip(ctx context.Context, runID, employeeID string) (PayslipResponse, error)

	// PreviewRun computes payslips for a draft run without persisting them.
	PreviewRun(ctx context.Context, id string) (RunPreviewResponse, error)

	// MarkRunPaid transitions a calculated run to paid, freezing it.
	MarkRunPaid(ctx context.Context, id string) (PayrollRunResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListRunPayslips(ctx context.Context, runID string) ([]PayslipResponse, error)

	// ListMyPayslips returns payslips belonging to the employee linked to
	// the caller's token.
	ListMyPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)

	// PayslipPDF renders a payslip document. Returns the PDF bytes and a
	// suggested filename.
	PayslipPDF(ctx context.Context, id string) ([]byte, string, error)
}
