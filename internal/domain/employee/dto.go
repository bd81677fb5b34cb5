package employee

import (
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	EmployeeCode          string  `json:"employee_code"`
	FullName              string  `json:"full_name"`
	NIK                   string  `json:"nik"`
	Gender                string  `json:"gender"`
	PhoneNumber           string  `json:"phone_number"`
	Address               *string `json:"address,omitempty"`
	PTKPStatus            string  `json:"ptkp_status,omitempty"`
	NPWP                  *string `json:"npwp,omitempty"`
	HireDate              string  `json:"hire_date"`
	EmploymentType        string  `json:"employment_type"`
	BankName              string  `json:"bank_name"`
	BankAccountHolderName *string `json:"bank_account_holder_name,omitempty"`
	BankAccountNumber     string  `json:"bank_account_number"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeCode == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee code is required"})
	}
	if r.FullName == "" {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if !validator.IsValidNIK(r.NIK) {
		errs = append(errs, validator.ValidationError{Field: "nik", Message: "NIK must be exactly 16 digits"})
	}
	if r.Gender != string(Male) && r.Gender != string(Female) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be Male or Female"})
	}
	if r.PhoneNumber != "" && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "phone number must be 10-13 digits"})
	}
	// Empty PTKP status is allowed and defaults to TK/0 on create.
	if r.PTKPStatus != "" && !payroll.PTKPStatus(r.PTKPStatus).Valid() {
		errs = append(errs, validator.ValidationError{Field: "ptkp_status", Message: "must be a valid PTKP code such as TK/0 or K/1"})
	}
	if r.NPWP != nil && !validator.IsValidNPWP(*r.NPWP) {
		errs = append(errs, validator.ValidationError{Field: "npwp", Message: "NPWP must be 15 or 16 digits"})
	}
	if r.HireDate == "" {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "hire date is required"})
	} else if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if !isValidEmploymentType(r.EmploymentType) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be one of permanent, probation, contract, internship, freelance"})
	}
	if r.BankName == "" {
		errs = append(errs, validator.ValidationError{Field: "bank_name", Message: "bank name is required"})
	}
	if r.BankAccountNumber == "" {
		errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "bank account number is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	EmployeeCode          string  `json:"employee_code"`
	FullName              string  `json:"full_name"`
	NIK                   string  `json:"nik"`
	Gender                string  `json:"gender"`
	PhoneNumber           string  `json:"phone_number"`
	Address               *string `json:"address,omitempty"`
	PTKPStatus            string  `json:"ptkp_status"`
	NPWP                  *string `json:"npwp,omitempty"`
	HireDate              string  `json:"hire_date"`
	ResignationDate       *string `json:"resignation_date,omitempty"`
	EmploymentType        string  `json:"employment_type"`
	EmploymentStatus      string  `json:"employment_status"`
	BankName              string  `json:"bank_name"`
	BankAccountHolderName *string `json:"bank_account_holder_name,omitempty"`
	BankAccountNumber     string  `json:"bank_account_number"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeCode == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee code is required"})
	}
	if r.FullName == "" {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full name is required"})
	}
	if !validator.IsValidNIK(r.NIK) {
		errs = append(errs, validator.ValidationError{Field: "nik", Message: "NIK must be exactly 16 digits"})
	}
	if r.Gender != string(Male) && r.Gender != string(Female) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be Male or Female"})
	}
	if r.PhoneNumber != "" && !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs = append(errs, validator.ValidationError{Field: "phone_number", Message: "phone number must be 10-13 digits"})
	}
	if !payroll.PTKPStatus(r.PTKPStatus).Valid() {
		errs = append(errs, validator.ValidationError{Field: "ptkp_status", Message: "must be a valid PTKP code such as TK/0 or K/1"})
	}
	if r.NPWP != nil && !validator.IsValidNPWP(*r.NPWP) {
		errs = append(errs, validator.ValidationError{Field: "npwp", Message: "NPWP must be 15 or 16 digits"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date in YYYY-MM-DD format"})
	}
	if r.ResignationDate != nil {
		if _, ok := validator.IsValidDate(*r.ResignationDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "resignation_date", Message: "must be a valid date in YYYY-MM-DD format"})
		}
	}
	if !isValidEmploymentType(r.EmploymentType) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "must be one of permanent, probation, contract, internship, freelance"})
	}
	switch EmploymentStatus(r.EmploymentStatus) {
	case EmploymentStatusActive, EmploymentStatusResigned, EmploymentStatusTerminated:
	default:
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be one of active, resigned, terminated"})
	}
	if r.BankName == "" {
		errs = append(errs, validator.ValidationError{Field: "bank_name", Message: "bank name is required"})
	}
	if r.BankAccountNumber == "" {
		errs = append(errs, validator.ValidationError{Field: "bank_account_number", Message: "bank account number is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func isValidEmploymentType(t string) bool {
	switch EmploymentType(t) {
	case EmploymentTypePermanent, EmploymentTypeProbation, EmploymentTypeContract,
		EmploymentTypeInternship, EmploymentTypeFreelance:
		return true
	}
	return false
}

type EmployeeResponse struct {
	ID                    string  `json:"id"`
	EmployeeCode          string  `json:"employee_code"`
	FullName              string  `json:"full_name"`
	NIK                   string  `json:"nik"`
	Gender                string  `json:"gender"`
	PhoneNumber           string  `json:"phone_number"`
	Address               *string `json:"address,omitempty"`
	PTKPStatus            string  `json:"ptkp_status"`
	NPWP                  *string `json:"npwp,omitempty"`
	HireDate              string  `json:"hire_date"`
	ResignationDate       *string `json:"resignation_date,omitempty"`
	EmploymentType        string  `json:"employment_type"`
	EmploymentStatus      string  `json:"employment_status"`
	BankName              string  `json:"bank_name"`
	BankAccountHolderName *string `json:"bank_account_holder_name,omitempty"`
	BankAccountNumber     string  `json:"bank_account_number"`
	CreatedAt             string  `json:"created_at"`
}

// NewEmployeeResponse maps an entity to its API shape. Dates are rendered
// as YYYY-MM-DD, timestamps as RFC 3339.
func NewEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                    e.ID,
		EmployeeCode:          e.EmployeeCode,
		FullName:              e.FullName,
		NIK:                   e.NIK,
		Gender:                string(e.Gender),
		PhoneNumber:           e.PhoneNumber,
		Address:               e.Address,
		PTKPStatus:            string(e.PTKPStatus),
		NPWP:                  e.NPWP,
		HireDate:              e.HireDate.Format("2006-01-02"),
		EmploymentType:        string(e.EmploymentType),
		EmploymentStatus:      string(e.EmploymentStatus),
		BankName:              e.BankName,
		BankAccountHolderName: e.BankAccountHolderName,
		BankAccountNumber:     e.BankAccountNumber,
		CreatedAt:             e.CreatedAt.Format(time.RFC3339),
	}
	if e.ResignationDate != nil {
		d := e.ResignationDate.Format("2006-01-02")
		resp.ResignationDate = &d
	}
	return resp
}

type EmployeeFilter struct {
	Search           string `json:"search,omitempty"`
	EmploymentStatus string `json:"employment_status,omitempty"`
	Page             int    `json:"page"`
	Limit            int    `json:"limit"`
	SortBy           string `json:"sort_by"`
	SortOrder        string `json:"sort_order"`
}

type ListEmployeeResponse struct {
	Data       []EmployeeResponse `json:"data"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}
