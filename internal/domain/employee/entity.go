package employee

import (
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
)

// Employee is the payroll master record. Salary amounts live in versioned
// payroll.SalaryComponent rows, never here; the employee carries the tax
// attributes (PTKP status, NPWP) the engine snapshots into each payslip.
// Soft-deleted rows release their code and NIK for reuse.
type Employee struct {
	ID        string
	CompanyID string

	// Identity. Code and NIK are unique per company among live rows.
	EmployeeCode string
	FullName     string
	NIK          string
	Gender       Gender
	PhoneNumber  string
	Address      *string

	// Tax attributes, snapshotted into payslips at calculation time.
	PTKPStatus payroll.PTKPStatus
	NPWP       *string

	HireDate         time.Time
	ResignationDate  *time.Time
	EmploymentStatus EmploymentStatus
	EmploymentType   EmploymentType

	// Disbursement target printed on the payslip.
	BankName              string
	BankAccountNumber     string
	BankAccountHolderName *string

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// EmploymentStatus gates run calculation: only active employees are swept
// into a payroll run.
type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusResigned   EmploymentStatus = "resigned"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// EmploymentType is informational for payroll: the engine calculates every
// type the same way, the distinction matters to HR exports only.
type EmploymentType string

const (
	EmploymentTypePermanent  EmploymentType = "permanent"
	EmploymentTypeContract   EmploymentType = "contract"
	EmploymentTypeProbation  EmploymentType = "probation"
	EmploymentTypeInternship EmploymentType = "internship"
	EmploymentTypeFreelance  EmploymentType = "freelance"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)
