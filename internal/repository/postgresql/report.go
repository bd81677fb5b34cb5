package postgresql

import (
	"context"
	"fmt"

	"github.com/gajihub/payroll-backend-go/internal/domain/report"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// GetPayrollSummaryRows returns one row per payslip for the requested period.
// The run status comes back too so the caller can label drafts.
func (r *reportRepositoryImpl) GetPayrollSummaryRows(ctx context.Context, companyID string, month, year int) (string, []report.PayrollSummaryRow, error) {
	q := GetQuerier(ctx, r.db)

	var runStatus string
	err := q.QueryRow(ctx,
		`SELECT status FROM payroll_runs WHERE company_id = $1 AND period_month = $2 AND period_year = $3`,
		companyID, month, year,
	).Scan(&runStatus)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil, report.ErrNoDataFound
		}
		return "", nil, fmt.Errorf("failed to get payroll run status: %w", err)
	}

	query := `
		SELECT
			p.employee_id,
			e.employee_code,
			e.full_name AS employee_name,
			p.base_salary,
			(p.allowance_transport + p.allowance_meal + p.allowance_communication
				+ p.allowance_position + p.allowance_other) AS total_allowances,
			p.bonus,
			p.overtime,
			p.reimbursements,
			p.gross_salary,
			(p.bpjs_kesehatan_employee + p.bpjs_jht_employee + p.bpjs_jp_employee) AS bpjs_employee,
			p.pph21,
			p.other_deductions,
			p.total_deductions,
			(p.bpjs_kesehatan_employer + p.bpjs_jht_employer + p.bpjs_jp_employer
				+ p.bpjs_jkk_employer + p.bpjs_jkm_employer) AS bpjs_employer,
			p.net_salary
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		JOIN payroll_runs pr ON p.payroll_run_id = pr.id
		WHERE pr.company_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, companyID, month, year)
	if err != nil {
		return "", nil, fmt.Errorf("failed to query payroll summary: %w", err)
	}
	defer rows.Close()

	var result []report.PayrollSummaryRow
	for rows.Next() {
		var row report.PayrollSummaryRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName,
			&row.BaseSalary, &row.TotalAllowances,
			&row.Bonus, &row.Overtime, &row.Reimbursements, &row.GrossSalary,
			&row.BPJSEmployee, &row.PPh21, &row.OtherDeductions, &row.TotalDeductions,
			&row.BPJSEmployer, &row.NetSalary,
		); err != nil {
			return "", nil, fmt.Errorf("failed to scan payroll summary row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return "", nil, fmt.Errorf("rows error: %w", err)
	}

	return runStatus, result, nil
}

// GetAnnualRecapRows aggregates paid payslips per employee for one calendar
// year. Draft and merely calculated runs stay out of the recap.
func (r *reportRepositoryImpl) GetAnnualRecapRows(ctx context.Context, companyID string, year int) ([]report.AnnualRecapRow, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			p.employee_id,
			e.employee_code,
			e.full_name AS employee_name,
			e.nik,
			e.ptkp_status,
			COUNT(*) AS months_paid,
			SUM(p.gross_salary) AS gross_salary,
			SUM(p.bpjs_kesehatan_employee + p.bpjs_jht_employee + p.bpjs_jp_employee) AS bpjs_employee,
			SUM(p.bpjs_kesehatan_employer + p.bpjs_jht_employer + p.bpjs_jp_employer
				+ p.bpjs_jkk_employer + p.bpjs_jkm_employer) AS bpjs_employer,
			SUM(p.pph21) AS pph21,
			SUM(p.other_deductions) AS other_deductions,
			SUM(p.net_salary) AS net_salary
		FROM payslips p
		JOIN employees e ON p.employee_id = e.id
		JOIN payroll_runs pr ON p.payroll_run_id = pr.id
		WHERE pr.company_id = $1 AND pr.period_year = $2 AND pr.status = 'paid'
		GROUP BY p.employee_id, e.employee_code, e.full_name, e.nik, e.ptkp_status
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, companyID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query annual recap: %w", err)
	}
	defer rows.Close()

	var result []report.AnnualRecapRow
	for rows.Next() {
		var row report.AnnualRecapRow
		if err := rows.Scan(
			&row.EmployeeID, &row.EmployeeCode, &row.EmployeeName, &row.NIK, &row.PTKPStatus,
			&row.MonthsPaid,
			&row.GrossSalary, &row.BPJSEmployee, &row.BPJSEmployer,
			&row.PPh21, &row.OtherDeductions, &row.NetSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan annual recap row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
