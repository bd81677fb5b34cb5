package employee

import (
	"context"
)

// EmployeeService is the employee master-data surface. Every method scopes
// by the company_id claim in ctx; the manager-role gate sits in middleware,
// not here.
type EmployeeService interface {
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee registers an employee as active. An empty PTKP status
	// defaults to TK/0.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee replaces the editable fields whole; there is no
	// partial patch. Setting a resignation date moves status to resigned.
	UpdateEmployee(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee soft deletes, releasing the code and NIK for reuse.
	DeleteEmployee(ctx context.Context, id string) error

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
