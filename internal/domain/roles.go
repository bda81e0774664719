package domain

import "strings"

// Role is a fixed position in the operator hierarchy.
type Role string

const (
	RoleMasterAdmin Role = "master-admin"
	RoleBusOwner    Role = "bus-owner"
	RoleBusAdmin    Role = "bus-admin"
	RoleBookingMan  Role = "booking-man"
	RoleBusEmployee Role = "bus-employee"
	RoleCustomer    Role = "customer"
)

// Subrole only applies to bus employees.
type Subrole string

const (
	SubroleDriver Subrole = "driver"
	SubroleHelper Subrole = "helper"
)

// roleRank orders the creation hierarchy. A role may create accounts of any
// strictly lower rank. booking-man and bus-employee share a rank; customers
// self-register.
var roleRank = map[Role]int{
	RoleMasterAdmin: 5,
	RoleBusOwner:    4,
	RoleBusAdmin:    3,
	RoleBookingMan:  2,
	RoleBusEmployee: 2,
	RoleCustomer:    1,
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := roleRank[r]
	return r, ok
}

func ParseSubrole(s string) (Subrole, bool) {
	sr := Subrole(strings.ToLower(strings.TrimSpace(s)))
	return sr, sr == SubroleDriver || sr == SubroleHelper
}

// CanCreate reports whether creator may provision an account with the
// target role.
func CanCreate(creator, target Role) bool {
	cr, ok := roleRank[creator]
	if !ok {
		return false
	}
	tr, ok := roleRank[target]
	if !ok {
		return false
	}
	return cr > tr
}

// RequiresSubrole: subrole is mandatory for bus employees and disallowed
// for everyone else.
func RequiresSubrole(r Role) bool {
	return r == RoleBusEmployee
}

// Capability sets. Each endpoint declares one set and the rbac middleware
// evaluates membership once, instead of a bespoke predicate per role combo.
var (
	// AnyStaff covers everything above customer.
	AnyStaff = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBookingMan, RoleBusEmployee}

	// CatalogManagers may create/update/delete buses, routes and trips.
	CatalogManagers = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin}

	// UserManagers may provision and manage accounts.
	UserManagers = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBookingMan}

	// BookingCreators may create bookings (customers for themselves,
	// booking staff on behalf of walk-ins).
	BookingCreators = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBookingMan, RoleCustomer}

	// BookingManagers may force status transitions on bookings.
	BookingManagers = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBookingMan}

	// ExpenseSubmitters record costs against a bus or trip.
	ExpenseSubmitters = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBusEmployee}

	// ExpenseReviewers approve or reject pending expenses.
	ExpenseReviewers = []Role{RoleMasterAdmin, RoleBusOwner}

	// Everyone is any authenticated principal.
	Everyone = []Role{RoleMasterAdmin, RoleBusOwner, RoleBusAdmin, RoleBookingMan, RoleBusEmployee, RoleCustomer}
)

// RoleIn reports set membership; the single evaluation point for endpoint
// role checks.
func RoleIn(r Role, set []Role) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}

// Elevated reports whether the role may act on resources it does not own.
func Elevated(r Role) bool {
	return r != RoleCustomer && roleRank[r] > 0
}
