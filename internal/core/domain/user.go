package domain

// RoleName identifies an authorisation role granted to a user.
type RoleName string

const (
	RoleAdmin           RoleName = "ROLE_ADMIN"
	RoleUser            RoleName = "ROLE_USER"
	RoleCustomerManager RoleName = "ROLE_CUSTOMER_MANAGER"
	RoleProductManager  RoleName = "ROLE_PRODUCT_MANAGER"
	RoleFDManager       RoleName = "ROLE_FD_MANAGER"
	RoleReportViewer    RoleName = "ROLE_REPORT_VIEWER"
)

// UserProfile is the authenticated user's identity as returned by the login
// service. It is owned by the session: replaced wholesale on login, never
// partially mutated.
type UserProfile struct {
	UserID            int64      `json:"userId"`
	Username          string     `json:"username"`
	Email             string     `json:"email,omitempty"`
	MobileNumber      string     `json:"mobileNumber,omitempty"`
	Roles             []RoleName `json:"roles"`
	PreferredLanguage string     `json:"preferredLanguage,omitempty"`
	PreferredCurrency string     `json:"preferredCurrency,omitempty"`
}

// HasRole reports whether the profile carries the given role.
func (u *UserProfile) HasRole(role RoleName) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
