package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, companyID string, employeeCode string) (Employee, error)
	ExistsByCodeOrNIK(ctx context.Context, companyID string, employeeCode, nik *string, excludeID *string) (bool, error)
	List(ctx context.Context, companyID string, filter EmployeeFilter) ([]Employee, int64, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Update(ctx context.Context, updated Employee) error
	SoftDelete(ctx context.Context, id string, companyID string) error
}
