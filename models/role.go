package models

// Role is a user's persisted role. A session cookie carries a snapshot of it;
// privileged writes must re-read the persisted value instead of trusting the
// snapshot.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// ParseRole maps a claim value to a Role. Anything unknown (including the
// absent claim) is a plain customer.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperAdmin:
		return RoleSuperAdmin
	default:
		return RoleCustomer
	}
}

// Capability is the closed set of privileged actions. Call sites check
// role.Can(...) instead of comparing role strings ad hoc.
type Capability int

const (
	CapViewAdminPanel Capability = iota
	CapManageProducts
	CapManageOrders
	CapManageUsers
	CapChangeRoles
)

func (r Role) Can(c Capability) bool {
	switch r {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return c != CapChangeRoles
	default:
		return false
	}
}
