package user

// Permission names a single capability gate. Route wiring uses permissions
// instead of role names where the capability is what matters, so a route
// states what it needs, not who it expects.
type Permission string

const (
	// Payroll lifecycle
	PermissionPayrollView   Permission = "payroll.view"
	PermissionPayrollManage Permission = "payroll.manage"
	PermissionPayrollPay    Permission = "payroll.pay"
	PermissionSalaryManage  Permission = "salary.manage"

	// Employee administration
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Company settings
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"

	// Reporting
	PermissionReportsView Permission = "reports.view"

	// Self service
	PermissionPayslipViewOwn Permission = "payslip.view_own"
)

// RolePermissions is the capability matrix. Owner holds everything; manager
// runs payroll day to day but cannot mark runs paid or change company
// settings; employee is self-service only.
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionPayrollPay,
		PermissionSalaryManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionCompanyManage,
		PermissionReportsView,
		PermissionPayslipViewOwn,
	},
	RoleManager: {
		PermissionPayrollView,
		PermissionPayrollManage,
		PermissionSalaryManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionReportsView,
		PermissionPayslipViewOwn,
	},
	RoleEmployee: {
		PermissionPayslipViewOwn,
	},
}

// HasPermission reports whether the role's permission set contains
// permission. Unknown roles have no permissions.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
