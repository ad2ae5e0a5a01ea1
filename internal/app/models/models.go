package models

// RoleType represents a user's role in the system
type RoleType string

// Role constants. A user's role is set at registration and never changes.
const (
	RoleTeacher RoleType = "TEACHER"
	RoleStudent RoleType = "STUDENT"
)

// IsValid reports whether the role is one of the known roles
func (r RoleType) IsValid() bool {
	return r == RoleTeacher || r == RoleStudent
}
