package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanCreateHierarchy(t *testing.T) {
	cases := []struct {
		creator, target Role
		allowed         bool
	}{
		{RoleMasterAdmin, RoleBusOwner, true},
		{RoleMasterAdmin, RoleCustomer, true},
		{RoleBusOwner, RoleBusAdmin, true},
		{RoleBusOwner, RoleBusEmployee, true},
		{RoleBusOwner, RoleBusOwner, false},
		{RoleBusOwner, RoleMasterAdmin, false},
		{RoleBusAdmin, RoleBookingMan, true},
		{RoleBusAdmin, RoleBusAdmin, false},
		{RoleBookingMan, RoleCustomer, true},
		{RoleBookingMan, RoleBusEmployee, false},
		{RoleBusEmployee, RoleCustomer, true},
		{RoleCustomer, RoleCustomer, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanCreate(tc.creator, tc.target),
			"%s creating %s", tc.creator, tc.target)
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole(" Bus-Owner ")
	assert.True(t, ok)
	assert.Equal(t, RoleBusOwner, r)

	_, ok = ParseRole("superuser")
	assert.False(t, ok)
}

func TestRequiresSubrole(t *testing.T) {
	assert.True(t, RequiresSubrole(RoleBusEmployee))
	assert.False(t, RequiresSubrole(RoleBookingMan))
	assert.False(t, RequiresSubrole(RoleCustomer))
}

func TestCapabilitySets(t *testing.T) {
	assert.True(t, RoleIn(RoleBusAdmin, CatalogManagers))
	assert.False(t, RoleIn(RoleBookingMan, CatalogManagers))
	assert.False(t, RoleIn(RoleCustomer, AnyStaff))
	assert.True(t, RoleIn(RoleCustomer, BookingCreators))
	assert.False(t, RoleIn(RoleBusEmployee, BookingCreators))
	assert.True(t, RoleIn(RoleBusEmployee, ExpenseSubmitters))
	assert.False(t, RoleIn(RoleBookingMan, ExpenseSubmitters))
	assert.True(t, RoleIn(RoleBusOwner, ExpenseReviewers))
	assert.False(t, RoleIn(RoleBusAdmin, ExpenseReviewers))
}

func TestElevated(t *testing.T) {
	assert.True(t, Elevated(RoleMasterAdmin))
	assert.True(t, Elevated(RoleBusEmployee))
	assert.False(t, Elevated(RoleCustomer))
	assert.False(t, Elevated(Role("ghost")))
}
