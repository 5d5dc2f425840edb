package model

import "time"

// User represents an application account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Region       string    `json:"region,omitempty"`
	ShiftID      *int64    `json:"shift_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles. Roles are not hierarchical; each operation names the roles
// allowed to perform it.
const (
	RoleManager         = "manager"
	RoleSupervisor      = "supervisor"
	RoleNightSupervisor = "night_supervisor"
	RoleStorekeeper     = "storekeeper"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleManager, RoleSupervisor, RoleNightSupervisor, RoleStorekeeper:
		return true
	}
	return false
}

// IsSupervisor reports whether role is one of the supervisor roles
// (day or night), which share the same permissions.
func IsSupervisor(role string) bool {
	return role == RoleSupervisor || role == RoleNightSupervisor
}
