package company

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCompanyDB *database.DB

func companyTestInit(t *testing.T) {
	t.Helper()
	if testCompanyDB != nil {
		return
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	var err error
	testCompanyDB, err = database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatal("Failed to connect to test database: " + err.Error())
	}
}

// authedContext returns a context carrying a verified token with the given
// company_id claim, the shape the router's jwtauth middleware produces.
func authedContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"company_id": companyID,
		"role":       "owner",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

// createCompanyTestCompany inserts a company row directly, without the
// default tax profile the service seeds. Usernames are unique per call so
// tests never collide on uk_companies_username.
func createCompanyTestCompany(t *testing.T, ctx context.Context, name string) string {
	t.Helper()
	var companyID string
	uniqueUsername := fmt.Sprintf("svc-co-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	err := testCompanyDB.QueryRow(ctx, `
		INSERT INTO companies (name, username)
		VALUES ($1, $2)
		RETURNING id
	`, name, uniqueUsername).Scan(&companyID)
	require.NoError(t, err)
	return companyID
}

func strPtr(s string) *string { return &s }

// ===== COMPANY SERVICE TESTS =====

func TestCompanyService_Create_Success(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	username := fmt.Sprintf("pt-baru-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	created, err := companyService.Create(ctx, company.CreateCompanyRequest{
		Name:     "PT Baru Sejahtera",
		Username: username,
		Address:  strPtr("Jl. Sudirman Kav. 1, Jakarta"),
	})

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "PT Baru Sejahtera", created.Name)
	assert.Equal(t, username, created.Username)

	// Creation seeds the default tax profile in the same transaction.
	profile, err := companyRepo.GetTaxProfile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.JKKRiskClass1, profile.JKKRiskClass)
	assert.Nil(t, profile.NPWP)
}

func TestCompanyService_Create_DuplicateUsername(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	username := fmt.Sprintf("pt-dobel-%d-%d", time.Now().Unix(), time.Now().Nanosecond())
	_, err := companyService.Create(ctx, company.CreateCompanyRequest{
		Name:     "PT Pertama",
		Username: username,
	})
	require.NoError(t, err)

	// Act
	_, err = companyService.Create(ctx, company.CreateCompanyRequest{
		Name:     "PT Kedua",
		Username: username,
	})

	// Assert
	assert.ErrorIs(t, err, company.ErrCompanyUsernameExists)
}

func TestCompanyService_Create_InvalidUsername(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	_, err := companyService.Create(ctx, company.CreateCompanyRequest{
		Name:     "PT Spasi",
		Username: "has space",
	})

	// Assert
	assert.ErrorIs(t, err, company.ErrInvalidCompanyUsernameFormat)
}

func TestCompanyService_GetMyCompany_Success(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup
	companyID := createCompanyTestCompany(t, ctx, "PT Sumber Makmur")

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	resp, err := companyService.GetMyCompany(authedContext(t, companyID))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, companyID, resp.ID)
	assert.Equal(t, "PT Sumber Makmur", resp.Name)
}

func TestCompanyService_GetMyCompany_NoToken(t *testing.T) {
	companyTestInit(t)

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act - plain context, no token
	_, err := companyService.GetMyCompany(context.Background())

	// Assert
	assert.Error(t, err)
}

func TestCompanyService_Update_Success(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup
	companyID := createCompanyTestCompany(t, ctx, "PT Nama Lama")

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	err := companyService.Update(authedContext(t, companyID), company.UpdateCompanyRequest{
		Name:    strPtr("PT Nama Baru"),
		Address: strPtr("Jl. Gatot Subroto No. 12, Jakarta"),
	})

	// Assert
	require.NoError(t, err)

	retrieved, err := companyRepo.GetByID(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, "PT Nama Baru", retrieved.Name)
	require.NotNil(t, retrieved.Address)
	assert.Equal(t, "Jl. Gatot Subroto No. 12, Jakarta", *retrieved.Address)
}

func TestCompanyService_Update_NoFields(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup
	companyID := createCompanyTestCompany(t, ctx, "PT Tanpa Perubahan")

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act - empty request has nothing to update
	err := companyService.Update(authedContext(t, companyID), company.UpdateCompanyRequest{})

	// Assert
	assert.ErrorContains(t, err, "no updatable fields")
}

// ===== TAX PROFILE TESTS =====

func TestCompanyService_GetTaxProfile_DefaultWhenMissing(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup - fixture company has no tax profile row
	companyID := createCompanyTestCompany(t, ctx, "PT Tanpa Profil")

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	resp, err := companyService.GetTaxProfile(authedContext(t, companyID))

	// Assert - falls back to the default risk class instead of erroring
	require.NoError(t, err)
	assert.Equal(t, companyID, resp.CompanyID)
	assert.Equal(t, int(payroll.JKKRiskClass1), resp.JKKRiskClass)
	assert.Nil(t, resp.NPWP)
}

func TestCompanyService_UpdateTaxProfile_CreatesThenUpdates(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup - fixture company has no tax profile row
	companyID := createCompanyTestCompany(t, ctx, "PT Profil Baru")
	authedCtx := authedContext(t, companyID)

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act - first update creates the missing profile
	err := companyService.UpdateTaxProfile(authedCtx, company.UpdateTaxProfileRequest{
		NPWP:         strPtr("012345678901000"),
		JKKRiskClass: 3,
	})
	require.NoError(t, err)

	resp, err := companyService.GetTaxProfile(authedCtx)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.JKKRiskClass)
	require.NotNil(t, resp.NPWP)
	assert.Equal(t, "012345678901000", *resp.NPWP)

	// Act - second update hits the existing row
	err = companyService.UpdateTaxProfile(authedCtx, company.UpdateTaxProfileRequest{
		NPWP:             strPtr("012345678901000"),
		JKKRiskClass:     2,
		BPJSHealthNumber: strPtr("01234567"),
	})
	require.NoError(t, err)

	resp, err = companyService.GetTaxProfile(authedCtx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.JKKRiskClass)
	require.NotNil(t, resp.BPJSHealthNumber)
	assert.Equal(t, "01234567", *resp.BPJSHealthNumber)
}

func TestCompanyService_UpdateTaxProfile_InvalidRiskClass(t *testing.T) {
	companyTestInit(t)
	ctx := context.Background()

	// Setup
	companyID := createCompanyTestCompany(t, ctx, "PT Kelas Salah")

	companyRepo := postgresql.NewCompanyRepository(testCompanyDB)
	companyService := NewCompanyService(testCompanyDB, companyRepo)

	// Act
	err := companyService.UpdateTaxProfile(authedContext(t, companyID), company.UpdateTaxProfileRequest{
		JKKRiskClass: 9,
	})

	// Assert
	assert.Error(t, err)
}
