package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`                                  // Unique identifier for the user
	Username  string    `json:"username" db:"username" example:"mrs.yilmaz"`             // Case-sensitive unique username
	Password  string    `json:"-" db:"password"`                                         // Bcrypt hash (excluded from JSON)
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"TEACHER"`               // User's role (TEACHER or STUDENT)
	CreatedAt time.Time `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"` // Timestamp when the user was created
}
