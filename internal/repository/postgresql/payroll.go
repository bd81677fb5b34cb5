package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SALARY COMPONENTS ==========

const salaryComponentColumns = `
	id, employee_id, company_id, base_salary,
	allowance_transport, allowance_meal, allowance_communication,
	allowance_position, allowance_other,
	effective_date, created_at, updated_at
`

func scanSalaryComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var c payroll.SalaryComponent
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.CompanyID, &c.BaseSalary,
		&c.AllowanceTransport, &c.AllowanceMeal, &c.AllowanceCommunication,
		&c.AllowancePosition, &c.AllowanceOther,
		&c.EffectiveDate, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payrollRepository) CreateSalaryComponent(ctx context.Context, component payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	// Verify employee belongs to company
	var empExists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL)`,
		component.EmployeeID, component.CompanyID).Scan(&empExists)
	if err != nil || !empExists {
		return payroll.SalaryComponent{}, payroll.ErrEmployeeNotFound
	}

	query := fmt.Sprintf(`
		INSERT INTO salary_components (
			employee_id, company_id, base_salary,
			allowance_transport, allowance_meal, allowance_communication,
			allowance_position, allowance_other, effective_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s
	`, salaryComponentColumns)

	created, err := scanSalaryComponent(q.QueryRow(ctx, query,
		component.EmployeeID, component.CompanyID, component.BaseSalary,
		component.AllowanceTransport, component.AllowanceMeal, component.AllowanceCommunication,
		component.AllowancePosition, component.AllowanceOther, component.EffectiveDate,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_components_effective") {
			return payroll.SalaryComponent{}, payroll.ErrSalaryComponentDateExists
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetSalaryComponents(ctx context.Context, employeeID string, companyID string) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_components
		WHERE employee_id = $1 AND company_id = $2
		ORDER BY effective_date DESC
	`, salaryComponentColumns)

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		c, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}

func (r *payrollRepository) GetEffectiveSalaryComponent(ctx context.Context, employeeID string, companyID string, periodEnd time.Time) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM salary_components
		WHERE employee_id = $1 AND company_id = $2 AND effective_date <= $3
		ORDER BY effective_date DESC
		LIMIT 1
	`, salaryComponentColumns)

	c, err := scanSalaryComponent(q.QueryRow(ctx, query, employeeID, companyID, periodEnd))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryComponent{}, payroll.ErrNoEffectiveSalaryComponent
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to get effective salary component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetEffectiveSalaryComponents(ctx context.Context, companyID string, periodEnd time.Time) (map[string]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	// DISTINCT ON picks the newest effective row per employee in one pass.
	query := fmt.Sprintf(`
		SELECT DISTINCT ON (employee_id) %s
		FROM salary_components
		WHERE company_id = $1 AND effective_date <= $2
		ORDER BY employee_id, effective_date DESC
	`, salaryComponentColumns)

	rows, err := q.Query(ctx, query, companyID, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to get effective salary components: %w", err)
	}
	defer rows.Close()

	components := make(map[string]payroll.SalaryComponent)
	for rows.Next() {
		c, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components[c.EmployeeID] = c
	}

	return components, nil
}

// ========== PAYROLL RUNS ==========

func (r *payrollRepository) CreatePayrollRun(ctx context.Context, run payroll.PayrollRun) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (company_id, period_month, period_year, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, period_month, period_year, status, notes,
			calculated_at, paid_at, paid_by, created_at, updated_at
	`

	var created payroll.PayrollRun
	err := q.QueryRow(ctx, query,
		run.CompanyID, run.PeriodMonth, run.PeriodYear, run.Status, run.Notes,
	).Scan(
		&created.ID, &created.CompanyID, &created.PeriodMonth, &created.PeriodYear,
		&created.Status, &created.Notes,
		&created.CalculatedAt, &created.PaidAt, &created.PaidBy,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_runs_period") {
			return payroll.PayrollRun{}, payroll.ErrPayrollRunAlreadyExists
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayrollRunByID(ctx context.Context, id string, companyID string) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.company_id, pr.period_month, pr.period_year, pr.status, pr.notes,
			   pr.calculated_at, pr.paid_at, pr.paid_by, pr.created_at, pr.updated_at,
			   (SELECT COUNT(*) FROM payslips p WHERE p.payroll_run_id = pr.id) AS payslip_count
		FROM payroll_runs pr
		WHERE pr.id = $1 AND pr.company_id = $2
	`

	var run payroll.PayrollRun
	var payslipCount int
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&run.ID, &run.CompanyID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.Notes,
		&run.CalculatedAt, &run.PaidAt, &run.PaidBy, &run.CreatedAt, &run.UpdatedAt,
		&payslipCount,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	run.PayslipCount = &payslipCount

	return run, nil
}

func (r *payrollRepository) GetPayrollRunByPeriod(ctx context.Context, companyID string, month, year int) (payroll.PayrollRun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_month, period_year, status, notes,
			   calculated_at, paid_at, paid_by, created_at, updated_at
		FROM payroll_runs
		WHERE company_id = $1 AND period_month = $2 AND period_year = $3
	`

	var run payroll.PayrollRun
	err := q.QueryRow(ctx, query, companyID, month, year).Scan(
		&run.ID, &run.CompanyID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.Notes,
		&run.CalculatedAt, &run.PaidAt, &run.PaidBy, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRun{}, payroll.ErrPayrollRunNotFound
		}
		return payroll.PayrollRun{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) ListPayrollRuns(ctx context.Context, companyID string, filter payroll.PayrollRunFilter) ([]payroll.PayrollRun, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_runs pr
		WHERE pr.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}

	// Sort
	sortColumn := "pr.period_year DESC, pr.period_month"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at": "pr.created_at",
			"period":     "pr.period_year DESC, pr.period_month",
			"status":     "pr.status",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT pr.id, pr.company_id, pr.period_month, pr.period_year, pr.status, pr.notes,
			   pr.calculated_at, pr.paid_at, pr.paid_by, pr.created_at, pr.updated_at,
			   (SELECT COUNT(*) FROM payslips p WHERE p.payroll_run_id = pr.id) AS payslip_count
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.PayrollRun
	for rows.Next() {
		var run payroll.PayrollRun
		var payslipCount int
		if err := rows.Scan(
			&run.ID, &run.CompanyID, &run.PeriodMonth, &run.PeriodYear, &run.Status, &run.Notes,
			&run.CalculatedAt, &run.PaidAt, &run.PaidBy, &run.CreatedAt, &run.UpdatedAt,
			&payslipCount,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		run.PayslipCount = &payslipCount
		runs = append(runs, run)
	}

	return runs, totalCount, nil
}

func (r *payrollRepository) UpdatePayrollRunStatus(ctx context.Context, id string, companyID string, status payroll.PayrollRunStatus, paidBy *string) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"status = $3", "updated_at = NOW()"}
	args := []interface{}{id, companyID, string(status)}
	argIdx := 4

	switch status {
	case payroll.RunStatusCalculated:
		setParts = append(setParts, "calculated_at = NOW()")
	case payroll.RunStatusPaid:
		setParts = append(setParts, "paid_at = NOW()")
		if paidBy != nil {
			setParts = append(setParts, fmt.Sprintf("paid_by = $%d", argIdx))
			args = append(args, *paidBy)
			argIdx++
		}
	}

	query := fmt.Sprintf(`
		UPDATE payroll_runs
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRunNotFound
		}
		return fmt.Errorf("failed to update payroll run status: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeletePayrollRun(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	// Check if run is already paid
	var status string
	err := q.QueryRow(ctx, `SELECT status FROM payroll_runs WHERE id = $1 AND company_id = $2`, id, companyID).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRunNotFound
		}
		return fmt.Errorf("failed to check payroll run status: %w", err)
	}
	if status == string(payroll.RunStatusPaid) {
		return payroll.ErrCannotDeletePaidRun
	}

	// Inputs and payslips cascade with the run.
	query := `DELETE FROM payroll_runs WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	err = q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRunNotFound
		}
		return fmt.Errorf("failed to delete payroll run: %w", err)
	}

	return nil
}

// ========== RUN INPUTS ==========

func (r *payrollRepository) UpsertRunInput(ctx context.Context, input payroll.PayrollRunInput, companyID string) (payroll.PayrollRunInput, error) {
	q := GetQuerier(ctx, r.db)

	// Verify run belongs to company
	var runExists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM payroll_runs WHERE id = $1 AND company_id = $2)`,
		input.PayrollRunID, companyID).Scan(&runExists)
	if err != nil || !runExists {
		return payroll.PayrollRunInput{}, payroll.ErrPayrollRunNotFound
	}

	// Verify employee belongs to company
	var empExists bool
	err = q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM employees WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL)`,
		input.EmployeeID, companyID).Scan(&empExists)
	if err != nil || !empExists {
		return payroll.PayrollRunInput{}, payroll.ErrEmployeeNotFound
	}

	query := `
		INSERT INTO payroll_run_inputs (
			payroll_run_id, employee_id, bonus, overtime, reimbursements, other_deductions, note
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (payroll_run_id, employee_id) DO UPDATE SET
			bonus = EXCLUDED.bonus,
			overtime = EXCLUDED.overtime,
			reimbursements = EXCLUDED.reimbursements,
			other_deductions = EXCLUDED.other_deductions,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, payroll_run_id, employee_id, bonus, overtime, reimbursements,
			other_deductions, note, created_at, updated_at
	`

	var upserted payroll.PayrollRunInput
	err = q.QueryRow(ctx, query,
		input.PayrollRunID, input.EmployeeID, input.Bonus, input.Overtime,
		input.Reimbursements, input.OtherDeductions, input.Note,
	).Scan(
		&upserted.ID, &upserted.PayrollRunID, &upserted.EmployeeID,
		&upserted.Bonus, &upserted.Overtime, &upserted.Reimbursements,
		&upserted.OtherDeductions, &upserted.Note,
		&upserted.CreatedAt, &upserted.UpdatedAt,
	)
	if err != nil {
		return payroll.PayrollRunInput{}, fmt.Errorf("failed to upsert run input: %w", err)
	}

	return upserted, nil
}

func (r *payrollRepository) GetRunInputs(ctx context.Context, payrollRunID string, companyID string) (map[string]payroll.PayrollRunInput, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.id, i.payroll_run_id, i.employee_id, i.bonus, i.overtime,
			   i.reimbursements, i.other_deductions, i.note, i.created_at, i.updated_at
		FROM payroll_run_inputs i
		JOIN payroll_runs pr ON i.payroll_run_id = pr.id
		WHERE i.payroll_run_id = $1 AND pr.company_id = $2
	`

	rows, err := q.Query(ctx, query, payrollRunID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run inputs: %w", err)
	}
	defer rows.Close()

	inputs := make(map[string]payroll.PayrollRunInput)
	for rows.Next() {
		var in payroll.PayrollRunInput
		if err := rows.Scan(
			&in.ID, &in.PayrollRunID, &in.EmployeeID, &in.Bonus, &in.Overtime,
			&in.Reimbursements, &in.OtherDeductions, &in.Note, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run input: %w", err)
		}
		inputs[in.EmployeeID] = in
	}

	return inputs, nil
}

// ========== PAYSLIPS ==========

const payslipColumns = `
	p.id, p.payroll_run_id, p.employee_id, p.company_id, p.payslip_number,
	p.period_month, p.period_year,
	p.base_salary, p.allowance_transport, p.allowance_meal,
	p.allowance_communication, p.allowance_position, p.allowance_other,
	p.bonus, p.overtime, p.reimbursements, p.gross_salary,
	p.bpjs_kesehatan_employee, p.bpjs_kesehatan_employer,
	p.bpjs_jht_employee, p.bpjs_jht_employer,
	p.bpjs_jp_employee, p.bpjs_jp_employer,
	p.bpjs_jkk_employer, p.bpjs_jkm_employer,
	p.pph21, p.other_deductions, p.total_deductions, p.net_salary,
	p.deductions_exceed_gross, p.ptkp_status, p.jkk_risk_class,
	p.created_at, p.updated_at
`

func scanPayslip(row pgx.Row, joined bool) (payroll.Payslip, error) {
	var p payroll.Payslip
	dest := []interface{}{
		&p.ID, &p.PayrollRunID, &p.EmployeeID, &p.CompanyID, &p.PayslipNumber,
		&p.PeriodMonth, &p.PeriodYear,
		&p.BaseSalary, &p.AllowanceTransport, &p.AllowanceMeal,
		&p.AllowanceCommunication, &p.AllowancePosition, &p.AllowanceOther,
		&p.Bonus, &p.Overtime, &p.Reimbursements, &p.GrossSalary,
		&p.BPJSKesehatanEmployee, &p.BPJSKesehatanEmployer,
		&p.BPJSJHTEmployee, &p.BPJSJHTEmployer,
		&p.BPJSJPEmployee, &p.BPJSJPEmployer,
		&p.BPJSJKKEmployer, &p.BPJSJKMEmployer,
		&p.PPh21, &p.OtherDeductions, &p.TotalDeductions, &p.NetSalary,
		&p.DeductionsExceedGross, &p.PTKPStatus, &p.JKKRiskClass,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if joined {
		dest = append(dest, &p.EmployeeName, &p.EmployeeCode)
	}
	err := row.Scan(dest...)
	return p, err
}

func (r *payrollRepository) CreatePayslip(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO payslips AS p (
			payroll_run_id, employee_id, company_id, payslip_number,
			period_month, period_year,
			base_salary, allowance_transport, allowance_meal,
			allowance_communication, allowance_position, allowance_other,
			bonus, overtime, reimbursements, gross_salary,
			bpjs_kesehatan_employee, bpjs_kesehatan_employer,
			bpjs_jht_employee, bpjs_jht_employer,
			bpjs_jp_employee, bpjs_jp_employer,
			bpjs_jkk_employer, bpjs_jkm_employer,
			pph21, other_deductions, total_deductions, net_salary,
			deductions_exceed_gross, ptkp_status, jkk_risk_class
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
		RETURNING %s
	`, payslipColumns)

	created, err := scanPayslip(q.QueryRow(ctx, query,
		payslip.PayrollRunID, payslip.EmployeeID, payslip.CompanyID, payslip.PayslipNumber,
		payslip.PeriodMonth, payslip.PeriodYear,
		payslip.BaseSalary, payslip.AllowanceTransport, payslip.AllowanceMeal,
		payslip.AllowanceCommunication, payslip.AllowancePosition, payslip.AllowanceOther,
		payslip.Bonus, payslip.Overtime, payslip.Reimbursements, payslip.GrossSalary,
		payslip.BPJSKesehatanEmployee, payslip.BPJSKesehatanEmployer,
		payslip.BPJSJHTEmployee, payslip.BPJSJHTEmployer,
		payslip.BPJSJPEmployee, payslip.BPJSJPEmployer,
		payslip.BPJSJKKEmployer, payslip.BPJSJKMEmployer,
		payslip.PPh21, payslip.OtherDeductions, payslip.TotalDeductions, payslip.NetSalary,
		payslip.DeductionsExceedGross, payslip.PTKPStatus, payslip.JKKRiskClass,
	), false)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payslips_employee_run") {
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetPayslipByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name, e.employee_code
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.id = $1 AND p.company_id = $2
	`, payslipColumns)

	p, err := scanPayslip(q.QueryRow(ctx, query, id, companyID), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPayslipByEmployeeAndRun(ctx context.Context, employeeID string, payrollRunID string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name, e.employee_code
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.employee_id = $1 AND p.payroll_run_id = $2 AND p.company_id = $3
	`, payslipColumns)

	p, err := scanPayslip(q.QueryRow(ctx, query, employeeID, payrollRunID, companyID), true)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by employee and run: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPayslipsByRun(ctx context.Context, payrollRunID string, companyID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name, e.employee_code
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.payroll_run_id = $1 AND p.company_id = $2
		ORDER BY e.full_name
	`, payslipColumns)

	rows, err := q.Query(ctx, query, payrollRunID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips by run: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, nil
}

func (r *payrollRepository) ListPayslipsByEmployee(ctx context.Context, employeeID string, companyID string, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		WHERE p.employee_id = $1 AND p.company_id = $2
	`
	args := []interface{}{employeeID, companyID}
	argIdx := 3

	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	// Sort
	sortColumn := "p.period_year DESC, p.period_month"
	if filter.SortBy == "created_at" {
		sortColumn = "p.created_at"
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name AS employee_name, e.employee_code
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, payslipColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}

	return payslips, totalCount, nil
}

func (r *payrollRepository) DeletePayslipByID(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payslips WHERE id = $1 AND company_id = $2 RETURNING id`

	var deletedID string
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayslipNotFound
		}
		return fmt.Errorf("failed to delete payslip: %w", err)
	}

	return nil
}

func (r *payrollRepository) DeletePayslipsByRun(ctx context.Context, payrollRunID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payslips WHERE payroll_run_id = $1 AND company_id = $2`

	if _, err := q.Exec(ctx, query, payrollRunID, companyID); err != nil {
		return fmt.Errorf("failed to delete payslips: %w", err)
	}

	return nil
}
