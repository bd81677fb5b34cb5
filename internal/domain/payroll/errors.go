package payroll

import "errors"

var (
	ErrPayrollRunNotFound         = errors.New("payroll run not found")
	ErrPayrollRunAlreadyExists    = errors.New("payroll run already exists for this period")
	ErrPayrollRunAlreadyPaid      = errors.New("payroll run already paid, cannot modify")
	ErrPayrollRunNotCalculated    = errors.New("payroll run has not been calculated")
	ErrPayrollRunNotDraft         = errors.New("payroll run is no longer a draft")
	ErrCannotDeletePaidRun        = errors.New("cannot delete paid payroll run")
	ErrPayslipNotFound            = errors.New("payslip not found")
	ErrPayslipAlreadyExists       = errors.New("payslip already exists for this employee and run")
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrSalaryComponentNotFound    = errors.New("salary component not found")
	ErrSalaryComponentDateExists  = errors.New("a salary component with this effective date already exists")
	ErrNoEffectiveSalaryComponent = errors.New("no salary component is effective for the period")
	ErrInvalidPeriod              = errors.New("invalid payroll period")

	// Engine precondition violations. Wrapped with the offending field name,
	// e.g. fmt.Errorf("bonus: %w", ErrNegativeAmount), so the caller learns
	// exactly which input broke the contract.
	ErrNegativeAmount      = errors.New("monetary amount must not be negative")
	ErrUnknownPTKPStatus   = errors.New("unrecognized PTKP status")
	ErrUnknownJKKRiskClass = errors.New("unrecognized JKK risk class")
)
