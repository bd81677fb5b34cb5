package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/domain/payroll"
	"github.com/gajihub/payroll-backend-go/internal/domain/user"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/gajihub/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

type EmployeeServiceImpl struct {
	db           *database.DB
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
	}
}

// Helper function to extract claims from context
func getClaimsFromContext(ctx context.Context) (companyID, employeeID, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", user.ErrCompanyIDRequired
	}

	employeeID, _ = claims["employee_id"].(string)
	role, _ = claims["role"].(string)

	return companyID, employeeID, role, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, _, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(emp), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, _, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	codeTaken, err := s.employeeRepo.ExistsByCodeOrNIK(ctx, companyID, &req.EmployeeCode, nil, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if codeTaken {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	nikTaken, err := s.employeeRepo.ExistsByCodeOrNIK(ctx, companyID, nil, &req.NIK, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check NIK: %w", err)
	}
	if nikTaken {
		return employee.EmployeeResponse{}, employee.ErrNIKExists
	}

	// Single employees with no dependents are the default withholding status.
	ptkpStatus := payroll.PTKPTK0
	if req.PTKPStatus != "" {
		ptkpStatus = payroll.PTKPStatus(req.PTKPStatus)
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		CompanyID:             companyID,
		EmployeeCode:          req.EmployeeCode,
		FullName:              req.FullName,
		NIK:                   req.NIK,
		Gender:                employee.Gender(req.Gender),
		PhoneNumber:           req.PhoneNumber,
		Address:               req.Address,
		PTKPStatus:            ptkpStatus,
		NPWP:                  req.NPWP,
		HireDate:              hireDate,
		EmploymentType:        employee.EmploymentType(req.EmploymentType),
		EmploymentStatus:      employee.EmploymentStatusActive,
		BankName:              req.BankName,
		BankAccountHolderName: req.BankAccountHolderName,
		BankAccountNumber:     req.BankAccountNumber,
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Created employee",
		"company_id", companyID,
		"employee_id", created.ID,
		"employee_code", created.EmployeeCode,
	)

	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, _, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	codeTaken, err := s.employeeRepo.ExistsByCodeOrNIK(ctx, companyID, &req.EmployeeCode, nil, &id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code: %w", err)
	}
	if codeTaken {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}
	nikTaken, err := s.employeeRepo.ExistsByCodeOrNIK(ctx, companyID, nil, &req.NIK, &id)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check NIK: %w", err)
	}
	if nikTaken {
		return employee.EmployeeResponse{}, employee.ErrNIKExists
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	var resignationDate *time.Time
	if req.ResignationDate != nil {
		parsed, _ := validator.IsValidDate(*req.ResignationDate)
		if parsed.Before(hireDate) {
			return employee.EmployeeResponse{}, employee.ErrResignationBeforeHire
		}
		if parsed.After(time.Now()) {
			return employee.EmployeeResponse{}, employee.ErrFutureDateNotAllowed
		}
		resignationDate = &parsed
	}

	updated := existing
	updated.EmployeeCode = req.EmployeeCode
	updated.FullName = req.FullName
	updated.NIK = req.NIK
	updated.Gender = employee.Gender(req.Gender)
	updated.PhoneNumber = req.PhoneNumber
	updated.Address = req.Address
	updated.PTKPStatus = payroll.PTKPStatus(req.PTKPStatus)
	updated.NPWP = req.NPWP
	updated.HireDate = hireDate
	updated.ResignationDate = resignationDate
	updated.EmploymentType = employee.EmploymentType(req.EmploymentType)
	updated.EmploymentStatus = employee.EmploymentStatus(req.EmploymentStatus)
	// A resignation date always means resigned, whatever status the request
	// carried; resigned employees drop out of the next calculation sweep.
	if resignationDate != nil {
		updated.EmploymentStatus = employee.EmploymentStatusResigned
	}
	updated.BankName = req.BankName
	updated.BankAccountHolderName = req.BankAccountHolderName
	updated.BankAccountNumber = req.BankAccountNumber

	if err := s.employeeRepo.Update(ctx, updated); err != nil {
		return employee.EmployeeResponse{}, err
	}

	// PTKP changes take effect from the next calculation; existing payslips
	// keep the status they were computed with.
	if existing.PTKPStatus != updated.PTKPStatus {
		slog.Info("Employee PTKP status changed",
			"employee_id", id,
			"from", existing.PTKPStatus,
			"to", updated.PTKPStatus,
		)
	}

	fresh, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return employee.NewEmployeeResponse(fresh), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	companyID, _, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.employeeRepo.SoftDelete(ctx, id, companyID); err != nil {
		return err
	}

	slog.Info("Soft deleted employee", "company_id", companyID, "employee_id", id)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	companyID, _, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, totalCount, err := s.employeeRepo.List(ctx, companyID, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, employee.NewEmployeeResponse(emp))
	}

	return employee.ListEmployeeResponse{
		Data:       result,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}
