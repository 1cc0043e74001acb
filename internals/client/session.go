package client

import "madaris_backend/internals/constants"

// Session mirrors the login response. IsNew marks a manager whose school is
// not registered yet; the UI routes them to the school form first.
type Session struct {
	Token       string `json:"token"`
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	SchoolID    uint   `json:"schoolId,omitempty"`
	SchoolName  string `json:"schoolName,omitempty"`
	NationalID  string `json:"nationalId,omitempty"`
	IsNew       bool   `json:"isNew"`
}

// Navigation page keys, matching what each role's sidebar shows.
const (
	PageUsers   = "users"
	PageSchools = "schools"
	PageResults = "results"
	PageReports = "reports"
)

// VisiblePages lists the navigation entries a role gets. Admins see
// everything, managers maintain their own school's data, supervisors only
// read reports.
func VisiblePages(role string) []string {
	switch role {
	case constants.RoleAdmin:
		return []string{PageUsers, PageSchools, PageResults, PageReports}
	case constants.RoleManager:
		return []string{PageSchools, PageResults}
	case constants.RoleSupervisor:
		return []string{PageReports}
	default:
		return nil
	}
}

// CanDeleteUser applies the last-admin guard on the client side so the
// delete button is disabled before the server would refuse anyway.
func CanDeleteUser(targetRole string, adminCount int) bool {
	if targetRole != constants.RoleAdmin {
		return true
	}
	return adminCount > 1
}
