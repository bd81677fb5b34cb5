package company

import (
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
)

type Company struct {
	ID        string
	Name      string
	Username  string
	Address   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaxProfile holds the statutory registration data a company needs before
// payroll can run. Every company gets one on creation, seeded with the
// lowest JKK risk class. Changing the risk class only affects runs
// calculated afterwards because payslips snapshot the class they used.
type TaxProfile struct {
	ID                   string
	CompanyID            string
	NPWP                 *string
	JKKRiskClass         payroll.JKKRiskClass
	BPJSHealthNumber     *string
	BPJSEmploymentNumber *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
