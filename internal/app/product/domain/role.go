package domain

// Role is the closed set of caller roles understood by the management API.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole maps a raw role string onto a known Role. Unknown or empty
// strings yield ok == false.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// HasAccess reports whether a caller with the given role may use the
// management operations. Only administrators may.
func HasAccess(role string) bool {
	r, ok := ParseRole(role)
	return ok && r == RoleAdmin
}
