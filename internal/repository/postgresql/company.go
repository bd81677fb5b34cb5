package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name, username, address)
		VALUES ($1, $2, $3)
		RETURNING id, name, username, address, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, newCompany.Name, newCompany.Username, newCompany.Address).
		Scan(&created.ID, &created.Name, &created.Username, &created.Address, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "uk_companies_username") {
			return company.Company{}, company.ErrCompanyUsernameExists
		}
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, address, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).
		Scan(&found.ID, &found.Name, &found.Username, &found.Address, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company: %w", err)
	}

	return found, nil
}

// GetByUsername implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, address, created_at, updated_at
		FROM companies
		WHERE username = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, username).
		Scan(&found.ID, &found.Name, &found.Username, &found.Address, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by username: %w", err)
	}

	return found, nil
}

// ListAll implements company.CompanyRepository.
func (c *companyRepositoryImpl) ListAll(ctx context.Context) ([]company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, name, username, address, created_at, updated_at
		FROM companies
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		var found company.Company
		if err := rows.Scan(&found.ID, &found.Name, &found.Username, &found.Address, &found.CreatedAt, &found.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, found)
	}

	return companies, nil
}

// Update implements company.CompanyRepository.
func (c *companyRepositoryImpl) Update(ctx context.Context, id string, req company.UpdateCompanyRequest) error {
	q := GetQuerier(ctx, c.db)

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for company update")
	}
	updates["updated_at"] = time.Now()

	setClauses := make([]string, 0, len(updates))
	args := make([]interface{}, 0, len(updates)+1)
	i := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, i))
		args = append(args, val)
		i++
	}

	sql := "UPDATE companies SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", i)
	args = append(args, id)

	var updatedID string
	if err := q.QueryRow(ctx, sql+" RETURNING id", args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return company.ErrCompanyNotFound
		}
		return fmt.Errorf("failed to update company with id %s: %w", id, err)
	}
	return nil
}

// GetTaxProfile implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetTaxProfile(ctx context.Context, companyID string) (company.TaxProfile, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, company_id, npwp, jkk_risk_class, bpjs_health_number, bpjs_employment_number,
			   created_at, updated_at
		FROM company_tax_profiles
		WHERE company_id = $1
	`

	var p company.TaxProfile
	err := q.QueryRow(ctx, query, companyID).Scan(
		&p.ID, &p.CompanyID, &p.NPWP, &p.JKKRiskClass,
		&p.BPJSHealthNumber, &p.BPJSEmploymentNumber,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.TaxProfile{}, company.ErrTaxProfileNotFound
		}
		return company.TaxProfile{}, fmt.Errorf("failed to get tax profile: %w", err)
	}

	return p, nil
}

// CreateTaxProfile implements company.CompanyRepository.
func (c *companyRepositoryImpl) CreateTaxProfile(ctx context.Context, profile company.TaxProfile) (company.TaxProfile, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO company_tax_profiles (company_id, npwp, jkk_risk_class, bpjs_health_number, bpjs_employment_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, company_id, npwp, jkk_risk_class, bpjs_health_number, bpjs_employment_number,
			created_at, updated_at
	`

	var created company.TaxProfile
	err := q.QueryRow(ctx, query,
		profile.CompanyID, profile.NPWP, profile.JKKRiskClass,
		profile.BPJSHealthNumber, profile.BPJSEmploymentNumber,
	).Scan(
		&created.ID, &created.CompanyID, &created.NPWP, &created.JKKRiskClass,
		&created.BPJSHealthNumber, &created.BPJSEmploymentNumber,
		&created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		return company.TaxProfile{}, fmt.Errorf("failed to create tax profile: %w", err)
	}

	return created, nil
}

// UpdateTaxProfile implements company.CompanyRepository.
func (c *companyRepositoryImpl) UpdateTaxProfile(ctx context.Context, companyID string, req company.UpdateTaxProfileRequest) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE company_tax_profiles
		SET npwp = $2, jkk_risk_class = $3, bpjs_health_number = $4,
			bpjs_employment_number = $5, updated_at = NOW()
		WHERE company_id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		companyID, req.NPWP, req.JKKRiskClass, req.BPJSHealthNumber, req.BPJSEmploymentNumber,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return company.ErrTaxProfileNotFound
		}
		return fmt.Errorf("failed to update tax profile: %w", err)
	}

	return nil
}
