package model

import "fmt"

// Role is a workspace role chosen once per session.
type Role string

const (
	RoleUnset             Role = ""
	RoleOperationsManager Role = "operations-manager"
	RoleProcessingWorker  Role = "processing-worker"
	RolePackingStaff      Role = "packing-staff"
	RoleFinanceClerk      Role = "finance-clerk"
)

// Roles lists the selectable workspace roles.
func Roles() []Role {
	return []Role{RoleOperationsManager, RoleProcessingWorker, RolePackingStaff, RoleFinanceClerk}
}

// Valid reports whether r is one of the selectable roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOperationsManager, RoleProcessingWorker, RolePackingStaff, RoleFinanceClerk:
		return true
	}
	return false
}

// ParseRole converts a string to a Role, rejecting unknown values and unset.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return RoleUnset, fmt.Errorf("unknown role: %q", s)
	}
	return r, nil
}
