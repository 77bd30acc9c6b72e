package domain

import "fmt"

// Role is the advisory console role. The zero value means no role.
type Role string

const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RolePassenger Role = "passenger"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RolePassenger:
		return Role(s), nil
	default:
		return RoleNone, fmt.Errorf("unknown role %q", s)
	}
}

func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}
