package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/pkg/pdf"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	db           *database.DB
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	companyRepo  company.CompanyRepository
}

func NewPayrollService(
	db *database.DB,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:           db,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		companyRepo:  companyRepo,
	}
}

// Helper to get company_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", user.ErrCompanyIDRequired
	}

	userID, _ = claims["user_id"].(string)

	return companyID, userID, nil
}

// getEmployeeIDFromContext extracts the employee_id claim for self-service
// endpoints. Tokens issued to accounts with no employee record carry none.
func getEmployeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", user.ErrEmployeeTokenRequired
	}

	return employeeID, nil
}

// ========== SALARY COMPONENTS ==========

func (s *PayrollServiceImpl) CreateSalaryComponent(ctx context.Context, req payroll.CreateSalaryComponentRequest) (payroll.SalaryComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryComponentResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.SalaryComponentResponse{}, err
	}

	effectiveDate, _ := validator.IsValidDate(req.EffectiveDate)

	created, err := s.payrollRepo.CreateSalaryComponent(ctx, payroll.SalaryComponent{
		EmployeeID:             req.EmployeeID,
		CompanyID:              companyID,
		BaseSalary:             req.BaseSalary,
		AllowanceTransport:     req.AllowanceTransport,
		AllowanceMeal:          req.AllowanceMeal,
		AllowanceCommunication: req.AllowanceCommunication,
		AllowancePosition:      req.AllowancePosition,
		AllowanceOther:         req.AllowanceOther,
		EffectiveDate:          effectiveDate,
	})
	if err != nil {
		return payroll.SalaryComponentResponse{}, err
	}

	return mapToSalaryComponentResponse(created), nil
}

func (s *PayrollServiceImpl) ListSalaryComponents(ctx context.Context, employeeID string) ([]payroll.SalaryComponentResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	// Reject unknown employees explicitly; an empty history is a valid answer
	// only for employees that exist.
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, companyID); err != nil {
		return nil, err
	}

	components, err := s.payrollRepo.GetSalaryComponents(ctx, employeeID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.SalaryComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, mapToSalaryComponentResponse(c))
	}

	return result, nil
}

// ========== PAYROLL RUNS ==========

func (s *PayrollServiceImpl) CreateRun(ctx context.Context, req payroll.CreatePayrollRunRequest) (payroll.PayrollRunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	created, err := s.payrollRepo.CreatePayrollRun(ctx, payroll.PayrollRun{
		CompanyID:   companyID,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Status:      payroll.RunStatusDraft,
		Notes:       req.Notes,
	})
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	slog.Info("Opened payroll run",
		"company_id", companyID,
		"period_month", created.PeriodMonth,
		"period_year", created.PeriodYear,
	)

	return mapToRunResponse(created), nil
}

func (s *PayrollServiceImpl) GetRun(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	return mapToRunResponse(run), nil
}

func (s *PayrollServiceImpl) ListRuns(ctx context.Context, filter payroll.PayrollRunFilter) (payroll.ListPayrollRunResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayrollRunResponse{}, err
	}

	runs, totalCount, err := s.payrollRepo.ListPayrollRuns(ctx, companyID, filter)
	if err != nil {
		return payroll.ListPayrollRunResponse{}, err
	}

	result := make([]payroll.PayrollRunResponse, 0, len(runs))
	for _, run := range runs {
		result = append(result, mapToRunResponse(run))
	}

	return payroll.ListPayrollRunResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) DeleteRun(ctx context.Context, id string) error {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	return s.payrollRepo.DeletePayrollRun(ctx, id, companyID)
}

// ========== RUN INPUTS ==========

func (s *PayrollServiceImpl) UpsertRunInput(ctx context.Context, req payroll.UpsertRunInputRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, req.PayrollRunID, companyID)
	if err != nil {
		return err
	}
	// Inputs are frozen the moment the run is calculated; a wrong bonus on a
	// calculated run means deleting the run and starting over.
	if run.Status != payroll.RunStatusDraft {
		if run.Status == payroll.RunStatusPaid {
			return payroll.ErrPayrollRunAlreadyPaid
		}
		return payroll.ErrPayrollRunNotDraft
	}

	_, err = s.payrollRepo.UpsertRunInput(ctx, payroll.PayrollRunInput{
		PayrollRunID:    req.PayrollRunID,
		EmployeeID:      req.EmployeeID,
		Bonus:           req.Bonus,
		Overtime:        req.Overtime,
		Reimbursements:  req.Reimbursements,
		OtherDeductions: req.OtherDeductions,
		Note:            req.Note,
	}, companyID)
	return err
}

// ========== CALCULATION ==========

// computeRunPayslips assembles engine inputs for every active employee and
// runs the calculator. Employees without a salary component effective for
// the period are collected as skipped, not failed. Nothing is persisted.
func (s *PayrollServiceImpl) computeRunPayslips(ctx context.Context, run payroll.PayrollRun, companyID string) ([]payroll.Payslip, []payroll.SkippedEmployee, error) {
	taxProfile, err := s.companyRepo.GetTaxProfile(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}

	// Statutory tables are frozen by the run's period year so recalculating
	// an old run reproduces the amounts that were legal at the time.
	calculator := NewPayslipCalculator(payroll.TaxConfigForYear(run.PeriodYear))

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get active employees: %w", err)
	}

	periodEnd := run.PeriodEnd()
	components, err := s.payrollRepo.GetEffectiveSalaryComponents(ctx, companyID, periodEnd)
	if err != nil {
		return nil, nil, err
	}

	inputs, err := s.payrollRepo.GetRunInputs(ctx, run.ID, companyID)
	if err != nil {
		return nil, nil, err
	}

	var payslips []payroll.Payslip
	var skipped []payroll.SkippedEmployee
	for _, emp := range employees {
		component, ok := components[emp.ID]
		if !ok {
			skipped = append(skipped, payroll.SkippedEmployee{
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Reason:       "no salary component effective for the period",
			})
			continue
		}

		// A zero-valued input means no ad-hoc additions for this employee.
		p, err := buildPayslip(calculator, run, emp, component, inputs[emp.ID], taxProfile.JKKRiskClass)
		if err != nil {
			return nil, nil, fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
		}
		payslips = append(payslips, p)
	}

	return payslips, skipped, nil
}

// buildPayslip runs the engine for one employee and assembles the payslip
// row, snapshotting every input it was computed from.
func buildPayslip(
	calculator *PayslipCalculator,
	run payroll.PayrollRun,
	emp employee.Employee,
	component payroll.SalaryComponent,
	runInput payroll.PayrollRunInput,
	jkkRiskClass payroll.JKKRiskClass,
) (payroll.Payslip, error) {
	result, err := calculator.Calculate(payroll.CalculationInput{
		BaseSalary:             component.BaseSalary,
		AllowanceTransport:     component.AllowanceTransport,
		AllowanceMeal:          component.AllowanceMeal,
		AllowanceCommunication: component.AllowanceCommunication,
		AllowancePosition:      component.AllowancePosition,
		AllowanceOther:         component.AllowanceOther,
		Bonus:                  runInput.Bonus,
		Overtime:               runInput.Overtime,
		Reimbursements:         runInput.Reimbursements,
		OtherDeductions:        runInput.OtherDeductions,
		PTKPStatus:             emp.PTKPStatus,
		JKKRiskClass:           jkkRiskClass,
	})
	if err != nil {
		return payroll.Payslip{}, err
	}

	fullName := emp.FullName
	employeeCode := emp.EmployeeCode
	return payroll.Payslip{
		PayrollRunID:           run.ID,
		EmployeeID:             emp.ID,
		CompanyID:              emp.CompanyID,
		PayslipNumber:          newPayslipNumber(run.PeriodYear, run.PeriodMonth),
		PeriodMonth:            run.PeriodMonth,
		PeriodYear:             run.PeriodYear,
		BaseSalary:             component.BaseSalary,
		AllowanceTransport:     component.AllowanceTransport,
		AllowanceMeal:          component.AllowanceMeal,
		AllowanceCommunication: component.AllowanceCommunication,
		AllowancePosition:      component.AllowancePosition,
		AllowanceOther:         component.AllowanceOther,
		Bonus:                  runInput.Bonus,
		Overtime:               runInput.Overtime,
		Reimbursements:         runInput.Reimbursements,
		GrossSalary:            result.GrossSalary,
		BPJSKesehatanEmployee:  result.BPJSKesehatanEmployee,
		BPJSKesehatanEmployer:  result.BPJSKesehatanEmployer,
		BPJSJHTEmployee:        result.BPJSJHTEmployee,
		BPJSJHTEmployer:        result.BPJSJHTEmployer,
		BPJSJPEmployee:         result.BPJSJPEmployee,
		BPJSJPEmployer:         result.BPJSJPEmployer,
		BPJSJKKEmployer:        result.BPJSJKKEmployer,
		BPJSJKMEmployer:        result.BPJSJKMEmployer,
		PPh21:                  result.PPh21,
		OtherDeductions:        result.OtherDeductions,
		TotalDeductions:        result.TotalDeductions,
		NetSalary:              result.NetSalary,
		DeductionsExceedGross:  result.DeductionsExceedGross,
		PTKPStatus:             emp.PTKPStatus,
		JKKRiskClass:           jkkRiskClass,
		EmployeeName:           &fullName,
		EmployeeCode:           &employeeCode,
	}, nil
}

// newPayslipNumber builds a human-referenceable document number like
// PS-202603-1A2B3C4D. Uniqueness comes from the random suffix.
func newPayslipNumber(year, month int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("PS-%04d%02d-%s", year, month, suffix)
}

func (s *PayrollServiceImpl) CalculateRun(ctx context.Context, id string) (payroll.RunPreviewResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}
	if run.Status != payroll.RunStatusDraft {
		if run.Status == payroll.RunStatusPaid {
			return payroll.RunPreviewResponse{}, payroll.ErrPayrollRunAlreadyPaid
		}
		return payroll.RunPreviewResponse{}, payroll.ErrPayrollRunNotDraft
	}

	payslips, skipped, err := s.computeRunPayslips(ctx, run, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		for _, p := range payslips {
			if _, err := s.payrollRepo.CreatePayslip(txCtx, p); err != nil {
				return err
			}
		}
		return s.payrollRepo.UpdatePayrollRunStatus(txCtx, run.ID, companyID, payroll.RunStatusCalculated, nil)
	})
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	slog.Info("Calculated payroll run",
		"company_id", companyID,
		"payroll_run_id", run.ID,
		"payslips", len(payslips),
		"skipped", len(skipped),
	)

	return s.runResultResponse(ctx, run.ID, companyID, skipped)
}

func (s *PayrollServiceImpl) RecalculateRun(ctx context.Context, id string) (payroll.RunPreviewResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}
	switch run.Status {
	case payroll.RunStatusPaid:
		return payroll.RunPreviewResponse{}, payroll.ErrPayrollRunAlreadyPaid
	case payroll.RunStatusDraft:
		return payroll.RunPreviewResponse{}, payroll.ErrPayrollRunNotCalculated
	}

	payslips, skipped, err := s.computeRunPayslips(ctx, run, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	// Old payslips are discarded and the full set recreated in one
	// transaction; computed fields are never patched one by one.
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.DeletePayslipsByRun(txCtx, run.ID, companyID); err != nil {
			return err
		}
		for _, p := range payslips {
			if _, err := s.payrollRepo.CreatePayslip(txCtx, p); err != nil {
				return err
			}
		}
		return s.payrollRepo.UpdatePayrollRunStatus(txCtx, run.ID, companyID, payroll.RunStatusCalculated, nil)
	})
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	slog.Info("Recalculated payroll run",
		"company_id", companyID,
		"payroll_run_id", run.ID,
		"payslips", len(payslips),
		"skipped", len(skipped),
	)

	return s.runResultResponse(ctx, run.ID, companyID, skipped)
}

func (s *PayrollServiceImpl) RecalculatePayslip(ctx context.Context, runID, employeeID string) (payroll.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	switch run.Status {
	case payroll.RunStatusPaid:
		return payroll.PayslipResponse{}, payroll.ErrPayrollRunAlreadyPaid
	case payroll.RunStatusDraft:
		return payroll.PayslipResponse{}, payroll.ErrPayrollRunNotCalculated
	}

	// Only an existing payslip can be regenerated; an employee who was
	// skipped at calculation stays skipped until the whole run is redone.
	existing, err := s.payrollRepo.GetPayslipByEmployeeAndRun(ctx, employeeID, run.ID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	taxProfile, err := s.companyRepo.GetTaxProfile(ctx, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	component, err := s.payrollRepo.GetEffectiveSalaryComponent(ctx, employeeID, companyID, run.PeriodEnd())
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	inputs, err := s.payrollRepo.GetRunInputs(ctx, run.ID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	calculator := NewPayslipCalculator(payroll.TaxConfigForYear(run.PeriodYear))
	fresh, err := buildPayslip(calculator, run, emp, component, inputs[employeeID], taxProfile.JKKRiskClass)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
	}

	// The row is swapped whole; computed fields are never patched in place.
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.payrollRepo.DeletePayslipByID(txCtx, existing.ID, companyID); err != nil {
			return err
		}
		_, err := s.payrollRepo.CreatePayslip(txCtx, fresh)
		return err
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	slog.Info("Recalculated payslip",
		"company_id", companyID,
		"payroll_run_id", run.ID,
		"employee_id", employeeID,
	)

	replaced, err := s.payrollRepo.GetPayslipByEmployeeAndRun(ctx, employeeID, run.ID, companyID)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return mapToPayslipResponse(replaced), nil
}

func (s *PayrollServiceImpl) PreviewRun(ctx context.Context, id string) (payroll.RunPreviewResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}
	if run.Status == payroll.RunStatusPaid {
		return payroll.RunPreviewResponse{}, payroll.ErrPayrollRunAlreadyPaid
	}

	payslips, skipped, err := s.computeRunPayslips(ctx, run, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}

	return payroll.RunPreviewResponse{
		Run:      mapToRunResponse(run),
		Payslips: result,
		Summary:  mapToSummaryResponse(SummarizePayslips(payslips)),
		Skipped:  skipped,
	}, nil
}

// runResultResponse reloads a freshly (re)calculated run and its persisted
// payslips so the caller sees stored rows, not in-memory ones.
func (s *PayrollServiceImpl) runResultResponse(ctx context.Context, runID, companyID string, skipped []payroll.SkippedEmployee) (payroll.RunPreviewResponse, error) {
	run, err := s.payrollRepo.GetPayrollRunByID(ctx, runID, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	payslips, err := s.payrollRepo.ListPayslipsByRun(ctx, runID, companyID)
	if err != nil {
		return payroll.RunPreviewResponse{}, err
	}

	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}

	return payroll.RunPreviewResponse{
		Run:      mapToRunResponse(run),
		Payslips: result,
		Summary:  mapToSummaryResponse(SummarizePayslips(payslips)),
		Skipped:  skipped,
	}, nil
}

func (s *PayrollServiceImpl) MarkRunPaid(ctx context.Context, id string) (payroll.PayrollRunResponse, error) {
	companyID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	run, err := s.payrollRepo.GetPayrollRunByID(ctx, id, companyID)
	if err != nil {
		return payroll.PayrollRunResponse{}, err
	}
	switch run.Status {
	case payroll.RunStatusPaid:
		return payroll.PayrollRunResponse{}, payroll.ErrPayrollRunAlreadyPaid
	case payroll.RunStatusDraft:
		return payroll.PayrollRunResponse{}, payroll.ErrPayrollRunNotCalculated
	}

	var paidBy *string
	if userID != "" {
		paidBy = &userID
	}
	if err := s.payrollRepo.UpdatePayrollRunStatus(ctx, id, companyID, payroll.RunStatusPaid, paidBy); err != nil {
		return payroll.PayrollRunResponse{}, err
	}

	slog.Info("Marked payroll run paid",
		"company_id", companyID,
		"payroll_run_id", id,
		"paid_by", userID,
	)

	return s.GetRun(ctx, id)
}

// ========== PAYSLIPS ==========

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	payslip, err := s.getScopedPayslip(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return mapToPayslipResponse(payslip), nil
}

// getScopedPayslip loads a payslip within the caller's company and, for
// employee tokens, refuses payslips belonging to anyone else.
func (s *PayrollServiceImpl) getScopedPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, err
	}

	payslip, err := s.payrollRepo.GetPayslipByID(ctx, id, companyID)
	if err != nil {
		return payroll.Payslip{}, err
	}

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	role, _ := claims["role"].(string)
	if !user.Role(role).IsManager() {
		employeeID, _ := claims["employee_id"].(string)
		if employeeID == "" || employeeID != payslip.EmployeeID {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
	}

	return payslip, nil
}

func (s *PayrollServiceImpl) ListRunPayslips(ctx context.Context, runID string) ([]payroll.PayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.payrollRepo.GetPayrollRunByID(ctx, runID, companyID); err != nil {
		return nil, err
	}

	payslips, err := s.payrollRepo.ListPayslipsByRun(ctx, runID, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}

	return result, nil
}

func (s *PayrollServiceImpl) ListMyPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	employeeID, err := getEmployeeIDFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	payslips, totalCount, err := s.payrollRepo.ListPayslipsByEmployee(ctx, employeeID, companyID, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	result := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, mapToPayslipResponse(p))
	}

	return payroll.ListPayslipResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) PayslipPDF(ctx context.Context, id string) ([]byte, string, error) {
	companyID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, "", err
	}

	payslip, err := s.getScopedPayslip(ctx, id)
	if err != nil {
		return nil, "", err
	}

	companyData, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}

	document, err := pdf.RenderPayslip(payslip, companyData.Name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render payslip PDF: %w", err)
	}

	filename := fmt.Sprintf("%s.pdf", payslip.PayslipNumber)
	return document, filename, nil
}

// ========== HELPERS ==========

func mapToSalaryComponentResponse(c payroll.SalaryComponent) payroll.SalaryComponentResponse {
	return payroll.SalaryComponentResponse{
		ID:                     c.ID,
		EmployeeID:             c.EmployeeID,
		BaseSalary:             c.BaseSalary,
		AllowanceTransport:     c.AllowanceTransport,
		AllowanceMeal:          c.AllowanceMeal,
		AllowanceCommunication: c.AllowanceCommunication,
		AllowancePosition:      c.AllowancePosition,
		AllowanceOther:         c.AllowanceOther,
		EffectiveDate:          c.EffectiveDate.Format("2006-01-02"),
	}
}

func mapToRunResponse(run payroll.PayrollRun) payroll.PayrollRunResponse {
	var calculatedAtStr, paidAtStr *string
	if run.CalculatedAt != nil {
		str := run.CalculatedAt.Format(time.RFC3339)
		calculatedAtStr = &str
	}
	if run.PaidAt != nil {
		str := run.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	return payroll.PayrollRunResponse{
		ID:           run.ID,
		PeriodMonth:  run.PeriodMonth,
		PeriodYear:   run.PeriodYear,
		Status:       string(run.Status),
		Notes:        run.Notes,
		CalculatedAt: calculatedAtStr,
		PaidAt:       paidAtStr,
		PayslipCount: run.PayslipCount,
	}
}

func mapToPayslipResponse(p payroll.Payslip) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:                     p.ID,
		PayrollRunID:           p.PayrollRunID,
		EmployeeID:             p.EmployeeID,
		EmployeeName:           p.EmployeeName,
		EmployeeCode:           p.EmployeeCode,
		PayslipNumber:          p.PayslipNumber,
		PeriodMonth:            p.PeriodMonth,
		PeriodYear:             p.PeriodYear,
		BaseSalary:             p.BaseSalary,
		AllowanceTransport:     p.AllowanceTransport,
		AllowanceMeal:          p.AllowanceMeal,
		AllowanceCommunication: p.AllowanceCommunication,
		AllowancePosition:      p.AllowancePosition,
		AllowanceOther:         p.AllowanceOther,
		Bonus:                  p.Bonus,
		Overtime:               p.Overtime,
		Reimbursements:         p.Reimbursements,
		GrossSalary:            p.GrossSalary,
		BPJSKesehatanEmployee:  p.BPJSKesehatanEmployee,
		BPJSKesehatanEmployer:  p.BPJSKesehatanEmployer,
		BPJSJHTEmployee:        p.BPJSJHTEmployee,
		BPJSJHTEmployer:        p.BPJSJHTEmployer,
		BPJSJPEmployee:         p.BPJSJPEmployee,
		BPJSJPEmployer:         p.BPJSJPEmployer,
		BPJSJKKEmployer:        p.BPJSJKKEmployer,
		BPJSJKMEmployer:        p.BPJSJKMEmployer,
		PPh21:                  p.PPh21,
		OtherDeductions:        p.OtherDeductions,
		TotalDeductions:        p.TotalDeductions,
		NetSalary:              p.NetSalary,
		DeductionsExceedGross:  p.DeductionsExceedGross,
		PTKPStatus:             string(p.PTKPStatus),
		JKKRiskClass:           int(p.JKKRiskClass),
	}
}

func mapToSummaryResponse(summary payroll.RunSummary) payroll.RunSummaryResponse {
	return payroll.RunSummaryResponse{
		TotalEmployees:             summary.TotalEmployees,
		TotalGross:                 summary.TotalGross,
		TotalPPh21:                 summary.TotalPPh21,
		TotalBPJSKesehatanEmployee: summary.TotalBPJSKesehatanEmployee,
		TotalBPJSKesehatanEmployer: summary.TotalBPJSKesehatanEmployer,
		TotalBPJSJHTEmployee:       summary.TotalBPJSJHTEmployee,
		TotalBPJSJHTEmployer:       summary.TotalBPJSJHTEmployer,
		TotalBPJSJPEmployee:        summary.TotalBPJSJPEmployee,
		TotalBPJSJPEmployer:        summary.TotalBPJSJPEmployer,
		TotalBPJSJKKEmployer:       summary.TotalBPJSJKKEmployer,
		TotalBPJSJKMEmployer:       summary.TotalBPJSJKMEmployer,
		TotalDeductions:            summary.TotalDeductions,
		TotalNet:                   summary.TotalNet,
	}
}
