package response

import (
	"errors"
	"net/http"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/report"
	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyUsernameExists):
		Conflict(w, "Company username already exists")
	case errors.Is(err, company.ErrInvalidCompanyUsernameFormat):
		BadRequest(w, "Invalid company username format", nil)
	case errors.Is(err, company.ErrTaxProfileNotFound):
		NotFound(w, "Company tax profile not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrNIKExists):
		Conflict(w, "NIK already registered")
	case errors.Is(err, employee.ErrResignationBeforeHire):
		BadRequest(w, "Resignation date cannot be before hire date", nil)
	case errors.Is(err, employee.ErrFutureDateNotAllowed):
		BadRequest(w, "Date cannot be in the future", nil)
	case errors.Is(err, employee.ErrEmployeeNotActive):
		BadRequest(w, "Employee is not active", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayrollRunAlreadyExists):
		Conflict(w, "A payroll run already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRunAlreadyPaid):
		Conflict(w, "Payroll run is already paid and frozen")
	case errors.Is(err, payroll.ErrPayrollRunNotCalculated):
		Conflict(w, "Payroll run has not been calculated yet")
	case errors.Is(err, payroll.ErrPayrollRunNotDraft):
		Conflict(w, "Payroll run is no longer a draft")
	case errors.Is(err, payroll.ErrCannotDeletePaidRun):
		Conflict(w, "Paid payroll runs cannot be deleted")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyExists):
		Conflict(w, "Payslip already exists for this employee and run")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrSalaryComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrSalaryComponentDateExists):
		Conflict(w, "A salary component with this effective date already exists")
	case errors.Is(err, payroll.ErrNoEffectiveSalaryComponent):
		NotFound(w, "No salary component is effective for the period")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrNegativeAmount):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnknownPTKPStatus):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnknownJKKRiskClass):
		BadRequest(w, err.Error(), nil)

	// Report domain errors
	case errors.Is(err, report.ErrInvalidMonth):
		BadRequest(w, "Month must be between 1 and 12", nil)
	case errors.Is(err, report.ErrInvalidYear):
		BadRequest(w, "Year is out of range", nil)
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the specified criteria")
	case errors.Is(err, report.ErrRunNotCalculated):
		NotFound(w, "Payroll run for this period has not been calculated")

	// Access errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, user.ErrCompanyIDRequired):
		Unauthorized(w, "Token lacks a company scope")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrEmployeeTokenRequired):
		Forbidden(w, "Token is not linked to an employee record")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
