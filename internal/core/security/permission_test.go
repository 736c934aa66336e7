package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
)

func TestCan_AdminHoldsEverything(t *testing.T) {
	for _, a := range Actions() {
		assert.True(t, Can(RoleAdmin, a), a.String())
	}
}

func TestCan_Matrix(t *testing.T) {
	tests := []struct {
		role   Role
		action Action
		want   bool
	}{
		{RoleSeller, CreateOrder, true},
		{RoleSeller, ReceivePO, false},
		{RoleSeller, ShipOrder, false},
		{RoleSeller, ManageCatalog, false},
		{RoleSeller, ViewKPI, true},
		{RoleWarehouse, ShipOrder, true},
		{RoleWarehouse, ReceivePO, true},
		{RoleWarehouse, CreateOrder, false},
		{RoleWarehouse, ManageCatalog, false},
		{RoleWarehouse, ViewKPI, false},
		{Role("guest"), ViewAll, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.action.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Can(tt.role, tt.action))
		})
	}
}

func TestCan_OutOfRangeAction(t *testing.T) {
	assert.False(t, Can(RoleAdmin, actionCount))
	assert.False(t, Can(RoleAdmin, Action(-1)))
}

func TestRequire_AnyOf(t *testing.T) {
	warehouse := Actor{ID: "u-2", Role: RoleWarehouse}

	assert.NoError(t, Require(warehouse, CreateOrder, ShipOrder))

	err := Require(warehouse, CreateOrder)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodePermissionDenied))

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"create_order"}, appErr.Details["required_any"])
	assert.Equal(t, "u-2", appErr.Details["actor_id"])
}

func TestParseAction_RoundTrip(t *testing.T) {
	for _, a := range Actions() {
		got, ok := ParseAction(a.String())
		require.True(t, ok)
		assert.Equal(t, a, got)
	}
	_, ok := ParseAction("fly")
	assert.False(t, ok)
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("root").Valid())
}
