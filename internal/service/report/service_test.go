package report

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/report"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReportDB *database.DB

func reportTestInit(t *testing.T) {
	t.Helper()
	if testReportDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testReportDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

func reportAuthedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"role":       "owner",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// ===== FIXTURES =====

func seedReportCompany(t *testing.T, ctx context.Context) string {
	t.Helper()
	var companyID string
	username := fmt.Sprintf("rep-co-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	err := testReportDB.QueryRow(ctx, `
		INSERT INTO companies (name, username)
		VALUES ('PT Maju Sejahtera', $1)
		RETURNING id
	`, username).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func seedReportEmployee(t *testing.T, ctx context.Context, companyID, employeeCode, fullName, nik string) string {
	t.Helper()
	var employeeID string
	err := testReportDB.QueryRow(ctx, `
		INSERT INTO employees (
			company_id, employee_code, full_name, nik, gender, phone_number,
			ptkp_status, hire_date, employment_type, employment_status,
			bank_name, bank_account_number
		) VALUES (
			$1, $2, $3, $4, 'Male', '081234567890',
			'TK/0', '2023-01-16', 'permanent', 'active',
			'BCA', '1234567890'
		)
		RETURNING id
	`, companyID, employeeCode, fullName, nik).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func seedReportRun(t *testing.T, ctx context.Context, companyID string, month, year int, status string) string {
	t.Helper()
	var runID string
	err := testReportDB.QueryRow(ctx, `
		INSERT INTO payroll_runs (company_id, period_month, period_year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, companyID, month, year, status).Scan(&runID)
	require.NoError(t, err)
	return runID
}

// seedReportPayslip inserts a payslip with fixed BPJS amounts so report sums
// are predictable: employee side 100,000 + 200,000 + 95,596 = 395,596 and
// employer side 400,000 + 370,000 + 191,192 + 24,000 + 30,000 = 1,015,192.
// Every slip carries a 500,000 transport allowance inside its gross.
func seedReportPayslip(t *testing.T, ctx context.Context, runID, employeeID, companyID string, month, year int, gross, pph21 int64) {
	t.Helper()
	number := fmt.Sprintf("PS-%04d%02d-%s", year, month,
		strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8])
	totalDeductions := 395596 + pph21
	_, err := testReportDB.Exec(ctx, `
		INSERT INTO payslips (
			payroll_run_id, employee_id, company_id, payslip_number,
			period_month, period_year,
			base_salary, allowance_transport, gross_salary,
			bpjs_kesehatan_employee, bpjs_jht_employee, bpjs_jp_employee,
			bpjs_kesehatan_employer, bpjs_jht_employer, bpjs_jp_employer,
			bpjs_jkk_employer, bpjs_jkm_employer,
			pph21, total_deductions, net_salary,
			ptkp_status, jkk_risk_class
		) VALUES (
			$1, $2, $3, $4,
			$5, $6,
			$7, 500000, $8,
			100000, 200000, 95596,
			400000, 370000, 191192,
			24000, 30000,
			$9, $10, $11,
			'TK/0', 1
		)
	`, runID, employeeID, companyID, number,
		month, year,
		gross-500000, gross,
		pph21, totalDeductions, gross-totalDeductions)
	require.NoError(t, err)
}

// ===== PAYROLL SUMMARY REPORT TESTS =====

func TestReportService_GeneratePayrollSummaryReport_Success(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	budi := seedReportEmployee(t, ctx, companyID, "EMP-001", "Budi Santoso", "3171234567890001")
	adi := seedReportEmployee(t, ctx, companyID, "EMP-002", "Adi Wijaya", "3171234567890002")
	runID := seedReportRun(t, ctx, companyID, 3, 2025, "paid")
	seedReportPayslip(t, ctx, runID, budi, companyID, 3, 2025, 10500000, 230220)
	seedReportPayslip(t, ctx, runID, adi, companyID, 3, 2025, 8500000, 100000)

	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	summary, err := reportService.GeneratePayrollSummaryReport(reportAuthedContext(t, companyID), report.PayrollSummaryReportRequest{
		Month: 3,
		Year:  2025,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, summary.PeriodMonth)
	assert.Equal(t, 2025, summary.PeriodYear)
	assert.Equal(t, "paid", summary.RunStatus)
	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, "19000000", summary.TotalGross.String())
	assert.Equal(t, "330220", summary.TotalPPh21.String())
	assert.Equal(t, "791192", summary.TotalBPJSEmployee.String())
	assert.Equal(t, "2030384", summary.TotalBPJSEmployer.String())
	assert.Equal(t, "1121412", summary.TotalDeductions.String())
	assert.Equal(t, "17878588", summary.TotalNetPayout.String())

	// Rows come back alphabetically by employee name.
	require.Len(t, summary.Rows, 2)
	assert.Equal(t, "Adi Wijaya", summary.Rows[0].EmployeeName)
	assert.Equal(t, "Budi Santoso", summary.Rows[1].EmployeeName)

	budiRow := summary.Rows[1]
	assert.Equal(t, "EMP-001", budiRow.EmployeeCode)
	assert.Equal(t, "10000000", budiRow.BaseSalary.String())
	assert.Equal(t, "500000", budiRow.TotalAllowances.String())
	assert.Equal(t, "10500000", budiRow.GrossSalary.String())
	assert.Equal(t, "395596", budiRow.BPJSEmployee.String())
	assert.Equal(t, "1015192", budiRow.BPJSEmployer.String())
	assert.Equal(t, "230220", budiRow.PPh21.String())
	assert.Equal(t, "9874184", budiRow.NetSalary.String())
}

func TestReportService_GeneratePayrollSummaryReport_NoRunForPeriod(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	_, err := reportService.GeneratePayrollSummaryReport(reportAuthedContext(t, companyID), report.PayrollSummaryReportRequest{
		Month: 3,
		Year:  2025,
	})

	// Assert
	assert.ErrorIs(t, err, report.ErrNoDataFound)
}

func TestReportService_GeneratePayrollSummaryReport_InvalidMonth(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	_, err := reportService.GeneratePayrollSummaryReport(reportAuthedContext(t, companyID), report.PayrollSummaryReportRequest{
		Month: 13,
		Year:  2025,
	})

	// Assert
	assert.Error(t, err)
}

// ===== ANNUAL RECAP REPORT TESTS =====

func TestReportService_GenerateAnnualRecapReport_PaidRunsOnly(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	employeeID := seedReportEmployee(t, ctx, companyID, "EMP-001", "Budi Santoso", "3171234567890001")

	januaryRun := seedReportRun(t, ctx, companyID, 1, 2025, "paid")
	seedReportPayslip(t, ctx, januaryRun, employeeID, companyID, 1, 2025, 10500000, 230220)
	februaryRun := seedReportRun(t, ctx, companyID, 2, 2025, "paid")
	seedReportPayslip(t, ctx, februaryRun, employeeID, companyID, 2, 2025, 10500000, 230220)
	// A calculated-but-unpaid run must stay out of the annual numbers.
	marchRun := seedReportRun(t, ctx, companyID, 3, 2025, "calculated")
	seedReportPayslip(t, ctx, marchRun, employeeID, companyID, 3, 2025, 10500000, 230220)

	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	recap, err := reportService.GenerateAnnualRecapReport(reportAuthedContext(t, companyID), report.AnnualRecapReportRequest{
		Year: 2025,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2025, recap.Year)
	assert.Equal(t, "21000000", recap.TotalGross.String())
	assert.Equal(t, "460440", recap.TotalPPh21.String())
	assert.Equal(t, "19748368", recap.TotalNet.String())

	require.Len(t, recap.Rows, 1)
	row := recap.Rows[0]
	assert.Equal(t, employeeID, row.EmployeeID)
	assert.Equal(t, "Budi Santoso", row.EmployeeName)
	assert.Equal(t, "3171234567890001", row.NIK)
	assert.Equal(t, "TK/0", row.PTKPStatus)
	assert.Equal(t, 2, row.MonthsPaid)
	assert.Equal(t, "791192", row.BPJSEmployee.String())
	assert.Equal(t, "2030384", row.BPJSEmployer.String())
}

func TestReportService_GenerateAnnualRecapReport_EmptyYear(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	recap, err := reportService.GenerateAnnualRecapReport(reportAuthedContext(t, companyID), report.AnnualRecapReportRequest{
		Year: 2024,
	})

	// Assert - an empty year is a valid, all-zero report
	require.NoError(t, err)
	assert.Empty(t, recap.Rows)
	assert.True(t, recap.TotalGross.IsZero())
	assert.True(t, recap.TotalNet.IsZero())
}

func TestReportService_GenerateAnnualRecapReport_FutureYearRejected(t *testing.T) {
	reportTestInit(t)
	ctx := context.Background()

	companyID := seedReportCompany(t, ctx)
	reportService := NewReportService(postgresql.NewReportRepository(testReportDB))

	// Act
	_, err := reportService.GenerateAnnualRecapReport(reportAuthedContext(t, companyID), report.AnnualRecapReportRequest{
		Year: time.Now().Year() + 1,
	})

	// Assert
	assert.Error(t, err)
}
