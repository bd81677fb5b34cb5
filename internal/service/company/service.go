package company

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/company"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/fixtures"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/gajihub/payroll-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
)

type CompanyServiceImpl struct {
	db          *database.DB
	companyRepo company.CompanyRepository
}

func NewCompanyService(
	db *database.DB,
	companyRepo company.CompanyRepository,
) company.CompanyService {
	return &CompanyServiceImpl{
		db:          db,
		companyRepo: companyRepo,
	}
}

// Helper to get company_id from JWT context
func getCompanyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyIDRequired
	}

	return companyID, nil
}

// GetMyCompany implements company.CompanyService.
func (c *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	companyData, err := c.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	return company.CompanyResponse{
		ID:        companyData.ID,
		Name:      companyData.Name,
		Username:  companyData.Username,
		Address:   companyData.Address,
		CreatedAt: companyData.CreatedAt,
		UpdatedAt: companyData.UpdatedAt,
	}, nil
}

// Create implements company.CompanyService. The company row and its default
// tax profile are created in one transaction so payroll can calculate from
// day one.
func (c *CompanyServiceImpl) Create(ctx context.Context, req company.CreateCompanyRequest) (company.Company, error) {
	if err := req.Validate(); err != nil {
		return company.Company{}, err
	}
	if !validator.IsValidCompanyUsername(req.Username) {
		return company.Company{}, company.ErrInvalidCompanyUsernameFormat
	}

	var newCompany company.Company
	err := postgresql.WithTransaction(ctx, c.db, func(txCtx context.Context) error {
		_, err := c.companyRepo.GetByUsername(txCtx, req.Username)
		if err != nil {
			if !errors.Is(err, company.ErrCompanyNotFound) {
				return fmt.Errorf("failed to get company by username: %w", err)
			}
		} else {
			return company.ErrCompanyUsernameExists
		}

		newCompany, err = c.companyRepo.Create(txCtx, company.Company{
			Name:     req.Name,
			Username: req.Username,
			Address:  req.Address,
		})
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		if _, err := c.companyRepo.CreateTaxProfile(txCtx, fixtures.GetDefaultTaxProfile(newCompany.ID)); err != nil {
			return fmt.Errorf("failed to seed default tax profile: %w", err)
		}

		return nil
	})
	if err != nil {
		return company.Company{}, err
	}

	slog.Info("Created company", "company_id", newCompany.ID, "company_username", newCompany.Username)

	return newCompany, nil
}

// Update implements company.CompanyService.
func (c *CompanyServiceImpl) Update(ctx context.Context, req company.UpdateCompanyRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	return c.companyRepo.Update(ctx, companyID, req)
}

// GetTaxProfile implements company.CompanyService. Companies created before
// profiles were seeded fall back to the default risk class instead of
// erroring out.
func (c *CompanyServiceImpl) GetTaxProfile(ctx context.Context) (company.TaxProfileResponse, error) {
	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return company.TaxProfileResponse{}, err
	}

	profile, err := c.companyRepo.GetTaxProfile(ctx, companyID)
	if err != nil {
		if errors.Is(err, company.ErrTaxProfileNotFound) {
			return company.TaxProfileResponse{
				CompanyID:    companyID,
				JKKRiskClass: int(payroll.JKKRiskClass1),
			}, nil
		}
		return company.TaxProfileResponse{}, err
	}

	return mapToTaxProfileResponse(profile), nil
}

// UpdateTaxProfile implements company.CompanyService.
func (c *CompanyServiceImpl) UpdateTaxProfile(ctx context.Context, req company.UpdateTaxProfileRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	companyID, err := getCompanyIDFromContext(ctx)
	if err != nil {
		return err
	}

	err = c.companyRepo.UpdateTaxProfile(ctx, companyID, req)
	if errors.Is(err, company.ErrTaxProfileNotFound) {
		_, err = c.companyRepo.CreateTaxProfile(ctx, company.TaxProfile{
			CompanyID:            companyID,
			NPWP:                 req.NPWP,
			JKKRiskClass:         payroll.JKKRiskClass(req.JKKRiskClass),
			BPJSHealthNumber:     req.BPJSHealthNumber,
			BPJSEmploymentNumber: req.BPJSEmploymentNumber,
		})
	}
	if err != nil {
		return err
	}

	slog.Info("Updated company tax profile",
		"company_id", companyID,
		"jkk_risk_class", req.JKKRiskClass,
	)

	return nil
}

func mapToTaxProfileResponse(profile company.TaxProfile) company.TaxProfileResponse {
	return company.TaxProfileResponse{
		CompanyID:            profile.CompanyID,
		NPWP:                 profile.NPWP,
		JKKRiskClass:         int(profile.JKKRiskClass),
		BPJSHealthNumber:     profile.BPJSHealthNumber,
		BPJSEmploymentNumber: profile.BPJSEmploymentNumber,
		UpdatedAt:            profile.UpdatedAt.Format(time.RFC3339),
	}
}
