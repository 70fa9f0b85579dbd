package domain

// Module represents a named area of application functionality gated by
// permission.
type Module string

const (
	ModuleDashboard  Module = "dashboard"
	ModuleCustomers  Module = "customers"
	ModuleProducts   Module = "products"
	ModuleFDAccounts Module = "fd_accounts"
	ModuleCalculator Module = "calculator"
	ModuleReports    Module = "reports"
	ModuleSettings   Module = "settings"
)

// rolePermissions maps each role to the modules it may access.
// This is the single source of truth for the authorisation model; it is fixed
// at build time and never mutated at runtime.
var rolePermissions = map[RoleName][]Module{
	RoleAdmin: {
		ModuleDashboard,
		ModuleCustomers,
		ModuleProducts,
		ModuleFDAccounts,
		ModuleCalculator,
		ModuleReports,
		ModuleSettings,
	},
	RoleUser: {
		ModuleDashboard,
		ModuleCalculator,
		ModuleProducts,
	},
	RoleCustomerManager: {
		ModuleDashboard,
		ModuleCustomers,
		ModuleFDAccounts,
	},
	RoleProductManager: {
		ModuleDashboard,
		ModuleProducts,
		ModuleCalculator,
	},
	RoleFDManager: {
		ModuleDashboard,
		ModuleFDAccounts,
		ModuleCalculator,
	},
	RoleReportViewer: {
		ModuleDashboard,
		ModuleReports,
	},
}

// HasModulePermission reports whether at least one of the held roles grants
// access to the module. Unknown role names grant nothing; an empty role set
// never has access.
func HasModulePermission(roles []RoleName, module Module) bool {
	for _, role := range roles {
		for _, m := range rolePermissions[role] {
			if m == module {
				return true
			}
		}
	}
	return false
}

// UserModules returns the deduplicated union of modules accessible to the
// given roles. The result is independent of role order and empty for an empty
// role set.
func UserModules(roles []RoleName) []Module {
	seen := make(map[Module]struct{})
	var modules []Module
	for _, role := range roles {
		for _, m := range rolePermissions[role] {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			modules = append(modules, m)
		}
	}
	return modules
}

// KnownModules lists every module the application defines, in display order.
var KnownModules = []Module{
	ModuleDashboard,
	ModuleCustomers,
	ModuleProducts,
	ModuleFDAccounts,
	ModuleCalculator,
	ModuleReports,
	ModuleSettings,
}
