package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/gajihub/payroll-backend-go/internal/domain/employee"
	"github.com/gajihub/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, nik, gender, phone_number, address,
	ptkp_status, npwp, hire_date, resignation_date, employment_type, employment_status,
	bank_name, bank_account_holder_name, bank_account_number,
	created_at, updated_at, deleted_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FullName, &e.NIK, &e.Gender,
		&e.PhoneNumber, &e.Address, &e.PTKPStatus, &e.NPWP,
		&e.HireDate, &e.ResignationDate, &e.EmploymentType, &e.EmploymentStatus,
		&e.BankName, &e.BankAccountHolderName, &e.BankAccountNumber,
		&e.CreatedAt, &e.UpdatedAt, &e.DeletedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (
			company_id, employee_code, full_name, nik, gender, phone_number, address,
			ptkp_status, npwp, hire_date, resignation_date, employment_type, employment_status,
			bank_name, bank_account_holder_name, bank_account_number
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13,
			$14, $15, $16
		)
		RETURNING %s
	`, employeeColumns)

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.CompanyID, newEmployee.EmployeeCode, newEmployee.FullName,
		newEmployee.NIK, newEmployee.Gender, newEmployee.PhoneNumber, newEmployee.Address,
		newEmployee.PTKPStatus, newEmployee.NPWP, newEmployee.HireDate, newEmployee.ResignationDate,
		newEmployee.EmploymentType, newEmployee.EmploymentStatus,
		newEmployee.BankName, newEmployee.BankAccountHolderName, newEmployee.BankAccountNumber,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "uk_employees_nik") {
			return employee.Employee{}, employee.ErrNIKExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
	`, employeeColumns)

	found, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return found, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, companyID string, employeeCode string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE employee_code = $1 AND company_id = $2 AND deleted_at IS NULL
	`, employeeColumns)

	found, err := scanEmployee(q.QueryRow(ctx, query, employeeCode, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return found, nil
}

// ExistsByCodeOrNIK implements employee.EmployeeRepository. excludeID skips one
// employee row so updates do not collide with themselves.
func (r *employeeRepositoryImpl) ExistsByCodeOrNIK(ctx context.Context, companyID string, employeeCode, nik *string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"company_id = $1", "deleted_at IS NULL"}
	args := []interface{}{companyID}
	argIdx := 2

	matchParts := []string{}
	if employeeCode != nil {
		matchParts = append(matchParts, fmt.Sprintf("employee_code = $%d", argIdx))
		args = append(args, *employeeCode)
		argIdx++
	}
	if nik != nil {
		matchParts = append(matchParts, fmt.Sprintf("nik = $%d", argIdx))
		args = append(args, *nik)
		argIdx++
	}
	if len(matchParts) == 0 {
		return false, nil
	}
	conditions = append(conditions, "("+strings.Join(matchParts, " OR ")+")")

	if excludeID != nil {
		conditions = append(conditions, fmt.Sprintf("id != $%d", argIdx))
		args = append(args, *excludeID)
	}

	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM employees WHERE %s)`, strings.Join(conditions, " AND "))

	var exists bool
	if err := q.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}

	return exists, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, companyID string, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM employees
		WHERE company_id = $1 AND deleted_at IS NULL
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.Search != "" {
		baseQuery += fmt.Sprintf(" AND (full_name ILIKE $%d OR employee_code ILIKE $%d OR nik LIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.EmploymentStatus != "" {
		baseQuery += fmt.Sprintf(" AND employment_status = $%d", argIdx)
		args = append(args, filter.EmploymentStatus)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	// Sort
	sortColumn := "full_name"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"full_name":     "full_name",
			"employee_code": "employee_code",
			"hire_date":     "hire_date",
			"created_at":    "created_at",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "ASC"
	if filter.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, employeeColumns, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, totalCount, nil
}

// GetActiveByCompanyID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE company_id = $1 AND employment_status = $2 AND deleted_at IS NULL
		ORDER BY employee_code
	`, employeeColumns)

	rows, err := q.Query(ctx, query, companyID, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employee_code = $3, full_name = $4, nik = $5, gender = $6,
			phone_number = $7, address = $8, ptkp_status = $9, npwp = $10,
			hire_date = $11, resignation_date = $12,
			employment_type = $13, employment_status = $14,
			bank_name = $15, bank_account_holder_name = $16, bank_account_number = $17,
			updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		updated.ID, updated.CompanyID,
		updated.EmployeeCode, updated.FullName, updated.NIK, updated.Gender,
		updated.PhoneNumber, updated.Address, updated.PTKPStatus, updated.NPWP,
		updated.HireDate, updated.ResignationDate,
		updated.EmploymentType, updated.EmploymentStatus,
		updated.BankName, updated.BankAccountHolderName, updated.BankAccountNumber,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		if strings.Contains(err.Error(), "uk_employees_code") {
			return employee.ErrEmployeeCodeExists
		}
		if strings.Contains(err.Error(), "uk_employees_nik") {
			return employee.ErrNIKExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
