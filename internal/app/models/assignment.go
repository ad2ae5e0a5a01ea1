package models

import "time"

// Assignment represents an assignment record in the database.
// TeacherID and CreatedAt are fixed at creation; there is no update path.
type Assignment struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Deadline       time.Time `json:"deadline" db:"deadline"` // caller-supplied, accepted even if in the past
	AttachmentPath *string   `json:"attachmentPath,omitempty" db:"attachment_path"`
	TeacherID      int64     `json:"teacherId" db:"teacher_id"`

	// Relation, populated on reads that join users
	Teacher *User `json:"teacher,omitempty"`
}
