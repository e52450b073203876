package enums

import "fmt"

// Role is the fixed permission class of a pharmacy user.
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleCashier         Role = "CASHIER"
	RoleStockMonitor    Role = "STOCK_MONITOR"
	RoleStockKeeper     Role = "STOCK_KEEPER"
	RoleCustomerSupport Role = "CUSTOMER_SUPPORT"
	RoleAnalyst         Role = "ANALYST"
	RoleManager         Role = "MANAGER"
)

var validRoles = []Role{
	RoleAdmin,
	RoleCashier,
	RoleStockMonitor,
	RoleStockKeeper,
	RoleCustomerSupport,
	RoleAnalyst,
	RoleManager,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// RoleSatisfies reports whether userRole grants access to a section that
// requires any of the given roles. An empty requirement permits everyone;
// ADMIN satisfies every requirement.
func RoleSatisfies(userRole Role, required []Role) bool {
	if len(required) == 0 {
		return true
	}
	if userRole == RoleAdmin {
		return true
	}
	for _, candidate := range required {
		if candidate == userRole {
			return true
		}
	}
	return false
}
