package constants

const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleSupervisor = "supervisor"
)

var (
	AllRoles = []string{RoleAdmin, RoleManager, RoleSupervisor}

	AdminOnly = []string{RoleAdmin}

	// Reports are an admin/supervisor surface; managers only see their own
	// school's data pages.
	ReportRoles = []string{RoleAdmin, RoleSupervisor}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
