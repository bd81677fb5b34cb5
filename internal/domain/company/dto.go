package company

import (
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
)

type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"company_name"`
	Username  string    `json:"company_username"`
	Address   *string   `json:"company_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateCompanyRequest struct {
	Name     string  `json:"company_name"`
	Username string  `json:"company_username"`
	Address  *string `json:"company_address,omitempty"`
}

func (r *CreateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_username",
			Message: "company_username is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateCompanyRequest struct {
	Name    *string `json:"company_name,omitempty"`
	Address *string `json:"company_address,omitempty"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil {
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "company_name",
				Message: "company_name must not exceed 255 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TaxProfileResponse struct {
	CompanyID            string  `json:"company_id"`
	NPWP                 *string `json:"npwp,omitempty"`
	JKKRiskClass         int     `json:"jkk_risk_class"`
	BPJSHealthNumber     *string `json:"bpjs_health_number,omitempty"`
	BPJSEmploymentNumber *string `json:"bpjs_employment_number,omitempty"`
	UpdatedAt            string  `json:"updated_at"`
}

type UpdateTaxProfileRequest struct {
	NPWP                 *string `json:"npwp,omitempty"`
	JKKRiskClass         int     `json:"jkk_risk_class"`
	BPJSHealthNumber     *string `json:"bpjs_health_number,omitempty"`
	BPJSEmploymentNumber *string `json:"bpjs_employment_number,omitempty"`
}

func (r *UpdateTaxProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if !payroll.JKKRiskClass(r.JKKRiskClass).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "jkk_risk_class",
			Message: "must be a risk class between 1 and 5",
		})
	}
	if r.NPWP != nil && !validator.IsValidNPWP(*r.NPWP) {
		errs = append(errs, validator.ValidationError{
			Field:   "npwp",
			Message: "NPWP must be 15 or 16 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
