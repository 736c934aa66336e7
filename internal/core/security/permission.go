// Package security provides the role/action permission matrix and the acting user.
package security

import (
	"fmt"

	"stockbook/internal/core/apperror"
)

// Role is the job function of an actor.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleWarehouse Role = "warehouse"
	RoleSeller    Role = "seller"
)

// Roles lists every known role.
var Roles = []Role{RoleAdmin, RoleWarehouse, RoleSeller}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := matrix[r]
	return ok
}

// Action is a permission-guarded capability.
type Action int

const (
	ViewAll Action = iota
	ViewKPI
	ManageCatalog
	CreateOrder
	CreatePO
	LogWaste
	AdjustInventory
	ControlMovements
	ReceivePO
	ShipOrder

	actionCount
)

var actionNames = [actionCount]string{
	ViewAll:          "view_all",
	ViewKPI:          "view_kpi",
	ManageCatalog:    "manage_catalog",
	CreateOrder:      "create_order",
	CreatePO:         "create_po",
	LogWaste:         "log_waste",
	AdjustInventory:  "adjust_inventory",
	ControlMovements: "control_movements",
	ReceivePO:        "receive_po",
	ShipOrder:        "ship_order",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a wire name.
func ParseAction(s string) (Action, bool) {
	for a, name := range actionNames {
		if name == s {
			return Action(a), true
		}
	}
	return 0, false
}

// Actions lists every known action.
func Actions() []Action {
	out := make([]Action, 0, actionCount)
	for a := Action(0); a < actionCount; a++ {
		out = append(out, a)
	}
	return out
}

type grants [actionCount]bool

// matrix is fixed at compile time; there is no runtime mutation.
var matrix = map[Role]grants{
	RoleAdmin: {
		ViewAll: true, ViewKPI: true, ManageCatalog: true,
		CreateOrder: true, CreatePO: true, LogWaste: true,
		AdjustInventory: true, ControlMovements: true,
		ReceivePO: true, ShipOrder: true,
	},
	RoleWarehouse: {
		ViewAll: true, CreatePO: true, LogWaste: true,
		AdjustInventory: true, ControlMovements: true,
		ReceivePO: true, ShipOrder: true,
	},
	RoleSeller: {
		ViewAll: true, ViewKPI: true, CreateOrder: true,
	},
}

// Can reports whether role may perform action.
func Can(role Role, action Action) bool {
	g, ok := matrix[role]
	if !ok || action < 0 || action >= actionCount {
		return false
	}
	return g[action]
}

// Granted returns the actions held by role, in declaration order.
func Granted(role Role) []Action {
	var out []Action
	for _, a := range Actions() {
		if Can(role, a) {
			out = append(out, a)
		}
	}
	return out
}

// Actor is the user on whose behalf an operation runs.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// System is the actor used for seeding and other unattended writes.
var System = Actor{ID: "system", Name: "System", Role: RoleAdmin}

// Require returns PermissionDenied unless actor holds at least one of actions.
func Require(actor Actor, actions ...Action) error {
	for _, a := range actions {
		if Can(actor.Role, a) {
			return nil
		}
	}
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return apperror.NewPermissionDenied(string(actor.Role), names...).
		WithDetail("actor_id", actor.ID)
}
