package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testDB *database.DB

// testInit connects to the test database on first use. Machines without one
// skip these tests; CI provides TEST_DATABASE_URL with migrations applied.
func testInit(t *testing.T) {
	t.Helper()
	if testDB != nil {
		return
	}

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

// ===== FIXTURES =====
// Every test provisions its own company, so rows from other tests or other
// packages sharing the database never leak into company-scoped queries.

func createTestCompany(t *testing.T, ctx context.Context) string {
	var companyID string
	// Generate unique username per test
	username := fmt.Sprintf("test-co-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	err := testDB.QueryRow(ctx, `
		INSERT INTO companies (name, username)
		VALUES ('PT Maju Sejahtera', $1)
		RETURNING id
	`, username).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func createTestTaxProfile(t *testing.T, ctx context.Context, companyID string, jkkRiskClass int) {
	_, err := testDB.Exec(ctx, `
		INSERT INTO company_tax_profiles (company_id, jkk_risk_class)
		VALUES ($1, $2)
	`, companyID, jkkRiskClass)
	require.NoError(t, err)
}

func createTestEmployee(t *testing.T, ctx context.Context, companyID, employeeCode, nik, ptkpStatus string) string {
	var employeeID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO employees (
			company_id, employee_code, full_name, nik, gender, phone_number,
			ptkp_status, hire_date, employment_type, employment_status,
			bank_name, bank_account_number
		) VALUES (
			$1, $2, 'Budi Santoso', $3, 'Male', '081234567890',
			$4, '2023-01-16', 'permanent', 'active',
			'BCA', '1234567890'
		)
		RETURNING id
	`, companyID, employeeCode, nik, ptkpStatus).Scan(&employeeID)
	require.NoError(t, err)
	return employeeID
}

func createTestSalaryComponent(t *testing.T, ctx context.Context, companyID, employeeID string, baseSalary decimal.Decimal, effectiveDate string) string {
	var componentID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO salary_components (employee_id, company_id, base_salary, allowance_transport, effective_date)
		VALUES ($1, $2, $3, 500000, $4)
		RETURNING id
	`, employeeID, companyID, baseSalary, effectiveDate).Scan(&componentID)
	require.NoError(t, err)
	return componentID
}

func createTestPayrollRun(t *testing.T, ctx context.Context, companyID string, month, year int, status string) string {
	var runID string
	err := testDB.QueryRow(ctx, `
		INSERT INTO payroll_runs (company_id, period_month, period_year, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, companyID, month, year, status).Scan(&runID)
	require.NoError(t, err)
	return runID
}

func strPtr(s string) *string {
	return &s
}
