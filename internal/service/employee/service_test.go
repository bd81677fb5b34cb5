package employee

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEmployeeDB *database.DB

func employeeTestInit(t *testing.T) {
	t.Helper()
	if testEmployeeDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testEmployeeDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

func employeeAuthedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"role":       "owner",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedEmployeeCompany(t *testing.T, ctx context.Context) string {
	t.Helper()
	var companyID string
	username := fmt.Sprintf("emp-co-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	err := testEmployeeDB.QueryRow(ctx, `
		INSERT INTO companies (name, username)
		VALUES ('PT Maju Sejahtera', $1)
		RETURNING id
	`, username).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func newTestEmployeeService() employee.EmployeeService {
	return NewEmployeeService(testEmployeeDB, postgresql.NewEmployeeRepository(testEmployeeDB))
}

func validCreateRequest(employeeCode, nik string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		EmployeeCode:      employeeCode,
		FullName:          "Budi Santoso",
		NIK:               nik,
		Gender:            "Male",
		PhoneNumber:       "081234567890",
		HireDate:          "2023-01-16",
		EmploymentType:    "permanent",
		BankName:          "BCA",
		BankAccountNumber: "1234567890",
	}
}

// updateRequestFrom rebuilds the full-replace update payload from a created
// employee, so tests only override the fields under test.
func updateRequestFrom(resp employee.EmployeeResponse) employee.UpdateEmployeeRequest {
	return employee.UpdateEmployeeRequest{
		EmployeeCode:          resp.EmployeeCode,
		FullName:              resp.FullName,
		NIK:                   resp.NIK,
		Gender:                resp.Gender,
		PhoneNumber:           resp.PhoneNumber,
		Address:               resp.Address,
		PTKPStatus:            resp.PTKPStatus,
		NPWP:                  resp.NPWP,
		HireDate:              resp.HireDate,
		EmploymentType:        resp.EmploymentType,
		EmploymentStatus:      resp.EmploymentStatus,
		BankName:              resp.BankName,
		BankAccountHolderName: resp.BankAccountHolderName,
		BankAccountNumber:     resp.BankAccountNumber,
	}
}

func strPtr(s string) *string { return &s }

// ===== CREATE TESTS =====

func TestEmployeeService_CreateEmployee_Success(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()

	// Act
	created, err := employeeService.CreateEmployee(employeeAuthedContext(t, companyID), validCreateRequest("EMP-001", "3171234567890001"))

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "EMP-001", created.EmployeeCode)
	assert.Equal(t, "Budi Santoso", created.FullName)
	assert.Equal(t, "2023-01-16", created.HireDate)
	assert.Equal(t, "active", created.EmploymentStatus)
	// Omitted PTKP status defaults to single with no dependents.
	assert.Equal(t, "TK/0", created.PTKPStatus)
}

func TestEmployeeService_CreateEmployee_ExplicitPTKPStatus(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()

	req := validCreateRequest("EMP-001", "3171234567890001")
	req.PTKPStatus = "K/2"

	// Act
	created, err := employeeService.CreateEmployee(employeeAuthedContext(t, companyID), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "K/2", created.PTKPStatus)
}

func TestEmployeeService_CreateEmployee_DuplicateCode(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	_, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	// Act - same code, different NIK
	_, err = employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890002"))

	// Assert
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_CreateEmployee_DuplicateNIK(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	_, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	// Act - same NIK, different code
	_, err = employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-002", "3171234567890001"))

	// Assert
	assert.ErrorIs(t, err, employee.ErrNIKExists)
}

func TestEmployeeService_CreateEmployee_InvalidNIK(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()

	req := validCreateRequest("EMP-001", "315")

	// Act
	_, err := employeeService.CreateEmployee(employeeAuthedContext(t, companyID), req)

	// Assert
	assert.ErrorContains(t, err, "16 digits")
}

// ===== UPDATE TESTS =====

func TestEmployeeService_UpdateEmployee_Success(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	req := updateRequestFrom(created)
	req.FullName = "Budi Santoso Putra"
	req.PTKPStatus = "K/1"

	// Act
	updated, err := employeeService.UpdateEmployee(authedCtx, created.ID, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso Putra", updated.FullName)
	assert.Equal(t, "K/1", updated.PTKPStatus)
}

func TestEmployeeService_UpdateEmployee_KeepOwnCodeAndNIK(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	// Act - resubmitting the employee's own code and NIK is not a conflict
	_, err = employeeService.UpdateEmployee(authedCtx, created.ID, updateRequestFrom(created))

	// Assert
	assert.NoError(t, err)
}

func TestEmployeeService_UpdateEmployee_CodeTakenByColleague(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	_, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)
	second, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-002", "3171234567890002"))
	require.NoError(t, err)

	req := updateRequestFrom(second)
	req.EmployeeCode = "EMP-001"

	// Act
	_, err = employeeService.UpdateEmployee(authedCtx, second.ID, req)

	// Assert
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_UpdateEmployee_Resignation(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	req := updateRequestFrom(created)
	req.ResignationDate = strPtr("2025-06-30")
	req.EmploymentStatus = "active" // the date alone must flip the status

	// Act
	updated, err := employeeService.UpdateEmployee(authedCtx, created.ID, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "resigned", updated.EmploymentStatus)
	require.NotNil(t, updated.ResignationDate)
	assert.Equal(t, "2025-06-30", *updated.ResignationDate)
}

func TestEmployeeService_UpdateEmployee_ResignationBeforeHire(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	req := updateRequestFrom(created)
	req.ResignationDate = strPtr("2022-12-31") // hire date is 2023-01-16

	// Act
	_, err = employeeService.UpdateEmployee(authedCtx, created.ID, req)

	// Assert
	assert.ErrorIs(t, err, employee.ErrResignationBeforeHire)
}

func TestEmployeeService_UpdateEmployee_FutureResignationRejected(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	req := updateRequestFrom(created)
	req.ResignationDate = strPtr(time.Now().AddDate(0, 0, 7).Format("2006-01-02"))

	// Act
	_, err = employeeService.UpdateEmployee(authedCtx, created.ID, req)

	// Assert
	assert.ErrorIs(t, err, employee.ErrFutureDateNotAllowed)
}

// ===== DELETE / LIST TESTS =====

func TestEmployeeService_DeleteEmployee_ThenGetFails(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	created, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)

	// Act
	err = employeeService.DeleteEmployee(authedCtx, created.ID)

	// Assert
	require.NoError(t, err)
	_, err = employeeService.GetEmployee(authedCtx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_ListEmployees_Search(t *testing.T) {
	employeeTestInit(t)
	ctx := context.Background()

	companyID := seedEmployeeCompany(t, ctx)
	employeeService := newTestEmployeeService()
	authedCtx := employeeAuthedContext(t, companyID)

	_, err := employeeService.CreateEmployee(authedCtx, validCreateRequest("EMP-001", "3171234567890001"))
	require.NoError(t, err)
	other := validCreateRequest("EMP-002", "3171234567890002")
	other.FullName = "Siti Rahayu"
	other.Gender = "Female"
	_, err = employeeService.CreateEmployee(authedCtx, other)
	require.NoError(t, err)

	// Act
	resp, err := employeeService.ListEmployees(authedCtx, employee.EmployeeFilter{
		Search: "Siti",
		Page:   1,
		Limit:  20,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.TotalCount)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "Siti Rahayu", resp.Data[0].FullName)
}
