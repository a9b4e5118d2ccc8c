// Package access carries the caller's identity and role through service calls.
//
// There is no authentication behind an Actor: the role is whatever the caller
// asserts.
package access

// Role is the capability level of a caller
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Actor identifies who is performing an operation
type Actor struct {
	UserID string
	Role   Role
}

// Member returns a non-admin actor for userID
func Member(userID string) Actor {
	return Actor{UserID: userID, Role: RoleMember}
}

// Admin returns an admin actor for userID
func Admin(userID string) Actor {
	return Actor{UserID: userID, Role: RoleAdmin}
}

// CanModerate reports whether the actor may use admin operations
func (a Actor) CanModerate() bool {
	return a.Role == RoleAdmin
}

// Is reports whether the actor acts as userID
func (a Actor) Is(userID string) bool {
	return a.UserID != "" && a.UserID == userID
}
